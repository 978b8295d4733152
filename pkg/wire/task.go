package wire

// TaskState is the wire task lifecycle enum. StateUnrecognized is reserved
// as an outbound fallback and is never a valid input.
type TaskState string

const (
	TaskStateAccepted       TaskState = "Accepted"
	TaskStateLaunched       TaskState = "Launched"
	TaskStateStartInitiated TaskState = "StartInitiated"
	TaskStateStarted        TaskState = "Started"
	TaskStateKillInitiated  TaskState = "KillInitiated"
	TaskStateDisconnected   TaskState = "Disconnected"
	TaskStateFinished       TaskState = "Finished"
	TaskStateUnrecognized   TaskState = "UNRECOGNIZED"
)

// TaskStatus is one entry of a task's lifecycle trajectory.
type TaskStatus struct {
	State         TaskState `json:"state" yaml:"state"`
	ReasonCode    string    `json:"reasonCode" yaml:"reasonCode"`
	ReasonMessage string    `json:"reasonMessage" yaml:"reasonMessage"`

	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// MigrationDetails records whether a service task must be moved off its
// current agent and by when. Only tasks of service jobs carry it.
type MigrationDetails struct {
	NeedsMigration bool  `json:"needsMigration" yaml:"needsMigration"`
	Deadline       int64 `json:"deadline" yaml:"deadline"`
}

// LogLocationUI points at the log viewer page for a task.
type LogLocationUI struct {
	URL string `json:"url" yaml:"url"`
}

// LogLocationLiveStream points at the task's live output stream.
type LogLocationLiveStream struct {
	URL string `json:"url" yaml:"url"`
}

// LogLocationS3 locates a task's archived logs in object storage.
type LogLocationS3 struct {
	AccountID   string `json:"accountId" yaml:"accountId"`
	AccountName string `json:"accountName" yaml:"accountName"`
	Region      string `json:"region" yaml:"region"`
	Bucket      string `json:"bucket" yaml:"bucket"`
	Key         string `json:"key" yaml:"key"`
}

// LogLocation aggregates three independently optional log access points.
type LogLocation struct {
	UI         *LogLocationUI         `json:"ui,omitempty" yaml:"ui,omitempty"`
	LiveStream *LogLocationLiveStream `json:"liveStream,omitempty" yaml:"liveStream,omitempty"`
	S3         *LogLocationS3         `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// Task is the wire form of a single execution attempt.
//
// Task lineage (original id, resubmit counters) travels inside TaskContext
// under reserved keys rather than as first-class fields, and batch tasks are
// distinguished from service tasks solely by the presence of the task index
// context entry.
type Task struct {
	ID               string            `json:"id" yaml:"id"`
	JobID            string            `json:"jobId" yaml:"jobId"`
	TaskContext      map[string]string `json:"taskContext" yaml:"taskContext"`
	Status           TaskStatus        `json:"status" yaml:"status"`
	StatusHistory    []TaskStatus      `json:"statusHistory" yaml:"statusHistory"`
	LogLocation      LogLocation       `json:"logLocation" yaml:"logLocation"`
	MigrationDetails *MigrationDetails `json:"migrationDetails,omitempty" yaml:"migrationDetails,omitempty"`
}
