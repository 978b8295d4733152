package model

// Reserved task context keys. The task codec owns these entries: on the way
// out it overwrites any caller-supplied values with the canonical lineage
// fields, and on the way in it requires OriginalID and ResubmitNumber to be
// present. TaskIndex presence is what classifies a task as a batch task.
const (
	ContextKeyOriginalID           = "task.originalId"
	ContextKeyResubmitNumber       = "task.resubmitNumber"
	ContextKeySystemResubmitNumber = "task.systemResubmitNumber"
	ContextKeyResubmitOf           = "task.resubmitOf"
	ContextKeyTaskIndex            = "task.index"
)

// TaskState is the lifecycle state of a task.
type TaskState int

const (
	taskStateUnspecified TaskState = iota

	// TaskStateAccepted means the task is queued for placement.
	TaskStateAccepted

	// TaskStateLaunched means the task was placed on an agent.
	TaskStateLaunched

	// TaskStateStartInitiated means the container is being started.
	TaskStateStartInitiated

	// TaskStateStarted means the main process is running.
	TaskStateStarted

	// TaskStateKillInitiated means a terminate request was accepted.
	TaskStateKillInitiated

	// TaskStateDisconnected means the owning agent stopped reporting.
	TaskStateDisconnected

	// TaskStateFinished is terminal.
	TaskStateFinished
)

func (s TaskState) String() string {
	switch s {
	case TaskStateAccepted:
		return "Accepted"
	case TaskStateLaunched:
		return "Launched"
	case TaskStateStartInitiated:
		return "StartInitiated"
	case TaskStateStarted:
		return "Started"
	case TaskStateKillInitiated:
		return "KillInitiated"
	case TaskStateDisconnected:
		return "Disconnected"
	case TaskStateFinished:
		return "Finished"
	}
	return "Unspecified"
}

// TaskStatus is one entry of a task's lifecycle trajectory.
type TaskStatus struct {
	State         TaskState
	ReasonCode    string
	ReasonMessage string

	// TimestampMs is epoch milliseconds at which the state was entered.
	TimestampMs int64
}

// MigrationDetails records whether a service task must be moved off its
// current agent and by when.
type MigrationDetails struct {
	NeedsMigration bool

	// DeadlineMs is epoch milliseconds; zero means no deadline set.
	DeadlineMs int64
}

// Task is a single execution attempt belonging to a job.
type Task struct {
	ID     string
	JobID  string
	Status TaskStatus

	// StatusHistory is ordered oldest first.
	StatusHistory []TaskStatus

	// OriginalID is the id of the first incarnation in this task's resubmit
	// chain (the task's own ID for a first attempt).
	OriginalID string

	// ResubmitOf is the id of the directly preceding incarnation, nil for a
	// first attempt.
	ResubmitOf *string

	// ResubmitNumber counts all resubmits in the chain;
	// SystemResubmitNumber counts only system-caused ones.
	ResubmitNumber       int
	SystemResubmitNumber int

	// Context carries free-form task metadata. Entries under the reserved
	// keys above are derived from the fields of this struct when the task is
	// sent on the wire.
	Context map[string]string

	// Variant is exactly one of BatchTask or ServiceTask.
	Variant TaskVariant
}

// TaskVariant distinguishes batch tasks from service tasks. Exactly one
// implementation is attached to every Task.
type TaskVariant interface {
	isTaskVariant()
}

// BatchTask carries the task's slot index within its batch job.
type BatchTask struct {
	Index int
}

// ServiceTask carries agent-migration state for a service job's task.
type ServiceTask struct {
	Migration MigrationDetails
}

func (BatchTask) isTaskVariant()   {}
func (ServiceTask) isTaskVariant() {}
