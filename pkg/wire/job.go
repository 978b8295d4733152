package wire

// JobState is the wire job lifecycle enum. StateUnrecognized is reserved as
// an outbound fallback and is never a valid input.
type JobState string

const (
	JobStateAccepted      JobState = "Accepted"
	JobStateKillInitiated JobState = "KillInitiated"
	JobStateFinished      JobState = "Finished"
	JobStateUnrecognized  JobState = "UNRECOGNIZED"
)

// JobStatus is one entry of a job's lifecycle trajectory.
type JobStatus struct {
	State         JobState `json:"state" yaml:"state"`
	ReasonCode    string   `json:"reasonCode" yaml:"reasonCode"`
	ReasonMessage string   `json:"reasonMessage" yaml:"reasonMessage"`

	// Timestamp is epoch milliseconds.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

// Job is the wire form of a submitted job.
type Job struct {
	ID            string        `json:"id" yaml:"id"`
	JobDescriptor JobDescriptor `json:"jobDescriptor" yaml:"jobDescriptor"`
	Status        JobStatus     `json:"status" yaml:"status"`
	StatusHistory []JobStatus   `json:"statusHistory" yaml:"statusHistory"`
}

// Owner identifies the team accountable for a job.
type Owner struct {
	TeamEmail string `json:"teamEmail" yaml:"teamEmail"`
}

// JobGroupInfo groups jobs belonging to one logical deployment stack. It is
// always transmitted; an all-empty value means the group was never set.
type JobGroupInfo struct {
	Stack    string `json:"stack" yaml:"stack"`
	Detail   string `json:"detail" yaml:"detail"`
	Sequence string `json:"sequence" yaml:"sequence"`
}

// Capacity is the instance-count envelope of a service job.
type Capacity struct {
	Min     int `json:"min" yaml:"min"`
	Desired int `json:"desired" yaml:"desired"`
	Max     int `json:"max" yaml:"max"`
}

// ServiceJobProcesses toggles which scaling directions are allowed.
type ServiceJobProcesses struct {
	DisableIncreaseDesired bool `json:"disableIncreaseDesired" yaml:"disableIncreaseDesired"`
	DisableDecreaseDesired bool `json:"disableDecreaseDesired" yaml:"disableDecreaseDesired"`
}

// BatchJobSpec describes a finite job of Size parallel tasks.
type BatchJobSpec struct {
	Size int `json:"size" yaml:"size"`

	// RuntimeLimitSec bounds a task's runtime in whole seconds.
	RuntimeLimitSec     int64       `json:"runtimeLimitSec" yaml:"runtimeLimitSec"`
	RetryPolicy         RetryPolicy `json:"retryPolicy" yaml:"retryPolicy"`
	RetryOnRuntimeLimit bool        `json:"retryOnRuntimeLimit" yaml:"retryOnRuntimeLimit"`
}

// ServiceJobSpec describes a long-running, scalable job.
type ServiceJobSpec struct {
	Capacity            Capacity            `json:"capacity" yaml:"capacity"`
	Enabled             bool                `json:"enabled" yaml:"enabled"`
	RetryPolicy         RetryPolicy         `json:"retryPolicy" yaml:"retryPolicy"`
	MigrationPolicy     MigrationPolicy     `json:"migrationPolicy" yaml:"migrationPolicy"`
	ServiceJobProcesses ServiceJobProcesses `json:"serviceJobProcesses" yaml:"serviceJobProcesses"`
}

// JobSpecCase identifies which job spec branch of a JobDescriptor is set.
type JobSpecCase int

const (
	JobSpecCaseNone JobSpecCase = iota
	JobSpecCaseBatch
	JobSpecCaseService
)

// JobDescriptor is the user-provided shape of a job. Exactly one of Batch or
// Service must be set; Batch wins if both are present.
type JobDescriptor struct {
	Owner           Owner             `json:"owner" yaml:"owner"`
	ApplicationName string            `json:"applicationName" yaml:"applicationName"`
	JobGroupInfo    JobGroupInfo      `json:"jobGroupInfo" yaml:"jobGroupInfo"`
	CapacityGroup   string            `json:"capacityGroup" yaml:"capacityGroup"`
	Container       Container         `json:"container" yaml:"container"`
	Attributes      map[string]string `json:"attributes" yaml:"attributes"`

	Batch   *BatchJobSpec   `json:"batch,omitempty" yaml:"batch,omitempty"`
	Service *ServiceJobSpec `json:"service,omitempty" yaml:"service,omitempty"`
}

// SpecCase reports which job spec branch is set.
func (d JobDescriptor) SpecCase() JobSpecCase {
	switch {
	case d.Batch != nil:
		return JobSpecCaseBatch
	case d.Service != nil:
		return JobSpecCaseService
	}
	return JobSpecCaseNone
}
