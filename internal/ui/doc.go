// Package ui implements the terminal front end of the meme roller using bubbletea's Elm architecture.
//
// The TUI moves through these views:
//  1. [LoadingView] : catalog fetch and seen-set hydration run in the background
//  2. [RollView] : the current item, progress readout and seen preview
//  3. [SeenView] : the full seen list, browsable with bubbles/list
//  4. [ExhaustedView] : a modal that blocks every key until dismissed
//
// The [Model] owns a [tasks.Roller] whose storage is the device's SQLite key-value row, so progress survives restarts.
// Boot progress flows through a channel from [tasks.Roller.Boot] and is drained one message at a time.
//
// Key bindings (r/space roll, x reset, s seen list, o open, q quit) are shown via charmbracelet/bubbles/help.
package ui
