package services

// Status is the single sync-state indicator exposed to the UI. Exactly one
// value holds at a time; there are no independent loading/syncing/error flags
// to fall out of agreement.
type Status string

const (
	// StatusIdle: local data is served, no remote operation in flight.
	StatusIdle Status = "idle"
	// StatusLoading: the local store is being read for the first time.
	StatusLoading Status = "loading"
	// StatusSyncing: a remote fetch/reconcile cycle is in progress.
	StatusSyncing Status = "syncing"
	// StatusDegraded: the last remote read failed; the app keeps operating
	// from the local store until a refresh succeeds.
	StatusDegraded Status = "degraded"
)
