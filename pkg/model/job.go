// Package model holds the orchestration engine's internal representation of
// jobs, tasks, and their lifecycle events.
//
// Values here are immutable snapshots: converters and callers construct them
// fresh and never share mutable state (maps and slices are copied at the
// boundary). Optional fields are pointers; absent means nil. Closed variant
// sets are sealed interfaces so every mapper can switch exhaustively.
package model

// JobState is the lifecycle state of a job.
type JobState int

const (
	jobStateUnspecified JobState = iota

	// JobStateAccepted means the job was admitted and owns tasks.
	JobStateAccepted

	// JobStateKillInitiated means a terminate request was accepted and the
	// job is winding down.
	JobStateKillInitiated

	// JobStateFinished is terminal.
	JobStateFinished
)

func (s JobState) String() string {
	switch s {
	case JobStateAccepted:
		return "Accepted"
	case JobStateKillInitiated:
		return "KillInitiated"
	case JobStateFinished:
		return "Finished"
	}
	return "Unspecified"
}

// JobStatus is one entry of a job's lifecycle trajectory.
type JobStatus struct {
	State         JobState
	ReasonCode    string
	ReasonMessage string

	// TimestampMs is epoch milliseconds at which the state was entered.
	TimestampMs int64
}

// Job is a submitted job with its descriptor and lifecycle trajectory.
type Job struct {
	ID         string
	Descriptor JobDescriptor
	Status     JobStatus

	// StatusHistory is ordered oldest first.
	StatusHistory []JobStatus
}

// Owner identifies the team accountable for a job.
type Owner struct {
	TeamEmail string
}

// JobGroupInfo groups jobs belonging to one logical deployment stack.
type JobGroupInfo struct {
	Stack    string
	Detail   string
	Sequence string
}

// Capacity is the instance-count envelope of a service job. Callers are
// expected to keep Min <= Desired <= Max; this layer does not enforce it.
type Capacity struct {
	Min     int
	Desired int
	Max     int
}

// ServiceJobProcesses toggles which scaling directions are allowed.
type ServiceJobProcesses struct {
	DisableIncreaseDesired bool
	DisableDecreaseDesired bool
}

// JobDescriptor is the user-provided shape of a job.
type JobDescriptor struct {
	Owner           Owner
	ApplicationName string
	JobGroupInfo    *JobGroupInfo
	CapacityGroup   string
	Container       Container
	Attributes      map[string]string

	// Extension is exactly one of BatchExtension or ServiceExtension.
	Extension Extension
}

// Extension determines whether a job runs as a finite batch or a long-running
// service. Exactly one implementation is attached to every JobDescriptor.
type Extension interface {
	isExtension()
}

// BatchExtension describes a finite job of Size parallel tasks.
type BatchExtension struct {
	Size        int
	RetryPolicy RetryPolicy

	// RuntimeLimitMs bounds a task's runtime. The wire form carries whole
	// seconds, so sub-second precision does not survive transmission.
	RuntimeLimitMs      int64
	RetryOnRuntimeLimit bool
}

// ServiceExtension describes a long-running, scalable job.
type ServiceExtension struct {
	Capacity        Capacity
	RetryPolicy     RetryPolicy
	MigrationPolicy MigrationPolicy
	Enabled         bool
	Processes       ServiceJobProcesses
}

func (BatchExtension) isExtension()   {}
func (ServiceExtension) isExtension() {}
