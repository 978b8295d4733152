package model

// Event is a job-manager lifecycle notification. The set of implementations
// is closed: JobUpdateEvent and TaskUpdateEvent.
type Event interface {
	isEvent()
}

// JobUpdateEvent reports that a job changed, carrying its current snapshot.
// Prior-state data never crosses to the wire.
type JobUpdateEvent struct {
	Current Job
}

// TaskUpdateEvent reports that a task changed, carrying its current snapshot.
type TaskUpdateEvent struct {
	Current Task
}

func (JobUpdateEvent) isEvent()  {}
func (TaskUpdateEvent) isEvent() {}
