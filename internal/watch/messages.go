package watch

// TickMsg triggers the next poll.
type TickMsg struct{}

// SnapshotMsg carries one poll of the server.
type SnapshotMsg struct {
	Snapshot Snapshot
	Err      error
}

// ActionMsg carries the reply of a control endpoint.
type ActionMsg struct {
	Result ActionResult
	Err    error
}
