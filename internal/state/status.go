package state

// Status identifies where a build job sits in the pipeline.
type Status string

// Segment extraction runs inside the converting phase, so it carries no
// status of its own.
const (
	StatusPending    Status = "pending"
	StatusPlanning   Status = "planning"
	StatusConverting Status = "converting"
	StatusPatching   Status = "patching"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var processingStatuses = map[Status]struct{}{
	StatusPlanning:   {},
	StatusConverting: {},
	StatusPatching:   {},
}

// IsProcessing reports whether the status marks an in-flight job.
func (s Status) IsProcessing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// IsTerminal reports whether the job will not advance further.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
