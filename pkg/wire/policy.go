package wire

// RetryPolicyCase identifies which branch of a RetryPolicy is set.
type RetryPolicyCase int

const (
	RetryPolicyCaseNone RetryPolicyCase = iota
	RetryPolicyCaseImmediate
	RetryPolicyCaseDelayed
	RetryPolicyCaseExponentialBackOff
)

// RetryPolicyImmediate resubmits without delay.
type RetryPolicyImmediate struct {
	Retries int `json:"retries" yaml:"retries"`
}

// RetryPolicyDelayed resubmits after a fixed delay.
type RetryPolicyDelayed struct {
	DelayMs int64 `json:"delayMs" yaml:"delayMs"`
	Retries int   `json:"retries" yaml:"retries"`
}

// RetryPolicyExponentialBackOff doubles the delay per attempt up to a cap.
type RetryPolicyExponentialBackOff struct {
	InitialDelayMs     int64 `json:"initialDelayMs" yaml:"initialDelayMs"`
	MaxDelayIntervalMs int64 `json:"maxDelayIntervalMs" yaml:"maxDelayIntervalMs"`
	Retries            int   `json:"retries" yaml:"retries"`
}

// RetryPolicy is the tagged union of retry behaviors. The first set branch
// in declaration order wins if several are present.
type RetryPolicy struct {
	Immediate          *RetryPolicyImmediate          `json:"immediate,omitempty" yaml:"immediate,omitempty"`
	Delayed            *RetryPolicyDelayed            `json:"delayed,omitempty" yaml:"delayed,omitempty"`
	ExponentialBackOff *RetryPolicyExponentialBackOff `json:"exponentialBackOff,omitempty" yaml:"exponentialBackOff,omitempty"`
}

// Case reports which retry branch is set.
func (p RetryPolicy) Case() RetryPolicyCase {
	switch {
	case p.Immediate != nil:
		return RetryPolicyCaseImmediate
	case p.Delayed != nil:
		return RetryPolicyCaseDelayed
	case p.ExponentialBackOff != nil:
		return RetryPolicyCaseExponentialBackOff
	}
	return RetryPolicyCaseNone
}

// MigrationPolicyCase identifies which branch of a MigrationPolicy is set.
type MigrationPolicyCase int

const (
	MigrationPolicyCaseNone MigrationPolicyCase = iota
	MigrationPolicyCaseSystemDefault
	MigrationPolicyCaseSelfManaged
)

// MigrationPolicySystemDefault lets the platform move the task.
type MigrationPolicySystemDefault struct{}

// MigrationPolicySelfManaged leaves migration to the job owner.
type MigrationPolicySelfManaged struct{}

// MigrationPolicy is the tagged union of migration behaviors.
type MigrationPolicy struct {
	SystemDefault *MigrationPolicySystemDefault `json:"systemDefault,omitempty" yaml:"systemDefault,omitempty"`
	SelfManaged   *MigrationPolicySelfManaged   `json:"selfManaged,omitempty" yaml:"selfManaged,omitempty"`
}

// Case reports which migration branch is set.
func (p MigrationPolicy) Case() MigrationPolicyCase {
	switch {
	case p.SystemDefault != nil:
		return MigrationPolicyCaseSystemDefault
	case p.SelfManaged != nil:
		return MigrationPolicyCaseSelfManaged
	}
	return MigrationPolicyCaseNone
}
