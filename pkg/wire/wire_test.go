package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keys unmarshals data into a generic map and returns it, so tests can check
// which fields were transmitted.
func keys(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestScalarFieldsAlwaysTransmitted(t *testing.T) {
	data, err := json.Marshal(Image{Name: "repo/app"})
	require.NoError(t, err)

	m := keys(t, data)
	assert.Contains(t, m, "tag")
	assert.Contains(t, m, "digest")
	assert.Equal(t, "", m["tag"])
}

func TestOneofBranchesOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(RetryPolicy{
		Delayed: &RetryPolicyDelayed{DelayMs: 100, Retries: 2},
	})
	require.NoError(t, err)

	m := keys(t, data)
	assert.Contains(t, m, "delayed")
	assert.NotContains(t, m, "immediate")
	assert.NotContains(t, m, "exponentialBackOff")
}

func TestTaskOptionalMessagesOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(Task{ID: "t-1"})
	require.NoError(t, err)

	m := keys(t, data)
	assert.NotContains(t, m, "migrationDetails")

	// the aggregate is always present; its absent access points are not
	require.Contains(t, m, "logLocation")
	assert.Empty(t, m["logLocation"])
}

func TestJobSpecCase(t *testing.T) {
	batch := &BatchJobSpec{Size: 1}
	service := &ServiceJobSpec{}

	tests := []struct {
		name string
		d    JobDescriptor
		want JobSpecCase
	}{
		{"none", JobDescriptor{}, JobSpecCaseNone},
		{"batch", JobDescriptor{Batch: batch}, JobSpecCaseBatch},
		{"service", JobDescriptor{Service: service}, JobSpecCaseService},
		{"batch wins over service", JobDescriptor{Batch: batch, Service: service}, JobSpecCaseBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.SpecCase())
		})
	}
}

func TestRetryPolicyCase(t *testing.T) {
	tests := []struct {
		name string
		p    RetryPolicy
		want RetryPolicyCase
	}{
		{"none", RetryPolicy{}, RetryPolicyCaseNone},
		{"immediate", RetryPolicy{Immediate: &RetryPolicyImmediate{}}, RetryPolicyCaseImmediate},
		{"delayed", RetryPolicy{Delayed: &RetryPolicyDelayed{}}, RetryPolicyCaseDelayed},
		{"exponential", RetryPolicy{ExponentialBackOff: &RetryPolicyExponentialBackOff{}}, RetryPolicyCaseExponentialBackOff},
		{
			name: "first branch wins",
			p: RetryPolicy{
				Immediate: &RetryPolicyImmediate{},
				Delayed:   &RetryPolicyDelayed{},
			},
			want: RetryPolicyCaseImmediate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Case())
		})
	}
}

func TestMigrationPolicyCase(t *testing.T) {
	tests := []struct {
		name string
		p    MigrationPolicy
		want MigrationPolicyCase
	}{
		{"none", MigrationPolicy{}, MigrationPolicyCaseNone},
		{"system default", MigrationPolicy{SystemDefault: &MigrationPolicySystemDefault{}}, MigrationPolicyCaseSystemDefault},
		{"self managed", MigrationPolicy{SelfManaged: &MigrationPolicySelfManaged{}}, MigrationPolicyCaseSelfManaged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Case())
		})
	}
}

func TestChangeNotificationCase(t *testing.T) {
	tests := []struct {
		name string
		n    ChangeNotification
		want ChangeNotificationCase
	}{
		{"none", ChangeNotification{}, ChangeNotificationCaseNone},
		{"job update", ChangeNotification{JobUpdate: &JobUpdate{}}, ChangeNotificationCaseJobUpdate},
		{"task update", ChangeNotification{TaskUpdate: &TaskUpdate{}}, ChangeNotificationCaseTaskUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Case())
		})
	}
}
