// package models defines the data model for the meme roller
package models

import "time"

// Storage is a single-namespace key-value slot.
//
// Implementations back the seen-set with a browser cookie, a SQLite row or process memory.
type Storage interface {
	Get(key string) (value string, ok bool, err error) // Get returns the stored value and whether the key was present
	Set(key, value string) error                       // Set replaces the value stored under key
}

// Progress is the collected/total readout shown under the title.
type Progress struct {
	Collected int
	Total     int
	Percent   int
}

// NewProgress computes the rounded completion percentage, 0 for an empty catalog.
func NewProgress(collected, total int) Progress {
	p := Progress{Collected: collected, Total: total}
	if total > 0 {
		p.Percent = int(float64(collected)/float64(total)*100 + 0.5)
	}
	return p
}

// HistoryAction enumerates recorded roller actions.
type HistoryAction string

const (
	ActionRoll  HistoryAction = "roll"
	ActionReset HistoryAction = "reset"
)

// HistoryEntry is one roll or reset recorded for a device.
type HistoryEntry struct {
	ID        string
	Action    HistoryAction
	Title     string
	CreatedAt time.Time
}
