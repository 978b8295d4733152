package wire

// ChangeNotificationCase identifies which branch of a ChangeNotification is
// set.
type ChangeNotificationCase int

const (
	ChangeNotificationCaseNone ChangeNotificationCase = iota
	ChangeNotificationCaseJobUpdate
	ChangeNotificationCaseTaskUpdate
)

// JobUpdate carries a job's current snapshot after a change.
type JobUpdate struct {
	Job Job `json:"job" yaml:"job"`
}

// TaskUpdate carries a task's current snapshot after a change.
type TaskUpdate struct {
	Task Task `json:"task" yaml:"task"`
}

// ChangeNotification is the streamed lifecycle event envelope. Exactly one
// branch is set per notification.
type ChangeNotification struct {
	JobUpdate  *JobUpdate  `json:"jobUpdate,omitempty" yaml:"jobUpdate,omitempty"`
	TaskUpdate *TaskUpdate `json:"taskUpdate,omitempty" yaml:"taskUpdate,omitempty"`
}

// Case reports which notification branch is set.
func (n ChangeNotification) Case() ChangeNotificationCase {
	switch {
	case n.JobUpdate != nil:
		return ChangeNotificationCaseJobUpdate
	case n.TaskUpdate != nil:
		return ChangeNotificationCaseTaskUpdate
	}
	return ChangeNotificationCaseNone
}
