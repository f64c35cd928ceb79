package tasks

// ProgressUpdate represents a progress event while the roller boots.
type ProgressUpdate struct {
	Phase   Phase  // Boot phase
	Message string // Human-readable message for display
	Err     error  // Set when the phase failed
}

// Phase enumerates boot phases.
type Phase int

const (
	FetchCatalog Phase = iota
	HydrateSeen
	PickInitial
	BootComplete
)

func (p Phase) String() string {
	switch p {
	case FetchCatalog:
		return "fetch_catalog"
	case HydrateSeen:
		return "hydrate_seen"
	case PickInitial:
		return "pick_initial"
	case BootComplete:
		return "boot_complete"
	default:
		return ""
	}
}

func fetchCatalogUpdate(source string) ProgressUpdate {
	return ProgressUpdate{Phase: FetchCatalog, Message: "Fetching catalog from " + source + "..."}
}

func hydrateSeenUpdate(key string) ProgressUpdate {
	return ProgressUpdate{Phase: HydrateSeen, Message: "Loading seen memes from " + key + "..."}
}

func pickInitialUpdate() ProgressUpdate {
	return ProgressUpdate{Phase: PickInitial, Message: "Loading your roll..."}
}

func bootCompleteUpdate(err error) ProgressUpdate {
	return ProgressUpdate{Phase: BootComplete, Message: "Ready", Err: err}
}

// sendProgress sends without blocking; a nil or full channel drops the update.
func sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
