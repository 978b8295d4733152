package model

// RetryPolicy decides how a failed task is resubmitted. The set of
// implementations is closed; mappers switch exhaustively over it.
type RetryPolicy interface {
	isRetryPolicy()
}

// ImmediateRetryPolicy resubmits without delay.
type ImmediateRetryPolicy struct {
	Retries int
}

// DelayedRetryPolicy resubmits after a fixed delay.
type DelayedRetryPolicy struct {
	Retries int
	DelayMs int64
}

// ExponentialBackoffRetryPolicy doubles the delay per attempt up to a cap.
type ExponentialBackoffRetryPolicy struct {
	Retries        int
	InitialDelayMs int64
	MaxDelayMs     int64
}

func (ImmediateRetryPolicy) isRetryPolicy()          {}
func (DelayedRetryPolicy) isRetryPolicy()            {}
func (ExponentialBackoffRetryPolicy) isRetryPolicy() {}

// MigrationPolicy decides who moves a service task off a draining agent.
// The set of implementations is closed.
type MigrationPolicy interface {
	isMigrationPolicy()
}

// SystemDefaultMigrationPolicy lets the platform move the task.
type SystemDefaultMigrationPolicy struct{}

// SelfManagedMigrationPolicy leaves migration to the job owner.
type SelfManagedMigrationPolicy struct{}

func (SystemDefaultMigrationPolicy) isMigrationPolicy() {}
func (SelfManagedMigrationPolicy) isMigrationPolicy()   {}
