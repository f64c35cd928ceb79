// Package repositories implements persistence for visitor state.
//
// Storage backends implement [models.Storage], a get/set key-value slot:
//   - [MemoryStorage] : process memory, used by tests and ephemeral sessions
//   - [SQLiteStorage] : the kv_store table, used by the CLI and TUI as the per-device slot
//
// The web front end adds a cookie-backed implementation in the server package.
//
// [SeenStore] is the seen-set store. It hydrates once from its storage key and writes the whole
// set back on every mutation, so storage always holds the latest state as a JSON array of titles.
//
// [HistoryRepository] appends rolls and resets to the roll_history table for the CLI history command.
package repositories
