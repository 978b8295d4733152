package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/model"
	"github.com/stratushq/stratuswire/pkg/testkit"
	"github.com/stratushq/stratuswire/pkg/wire"
)

func TestToWireJob_Batch(t *testing.T) {
	job := testkit.NewBatchJob()

	w, err := ToWireJob(job)
	require.NoError(t, err)

	assert.Equal(t, job.ID, w.ID)
	assert.Equal(t, "platform@stratus.example.com", w.JobDescriptor.Owner.TeamEmail)
	assert.Equal(t, "stratus-demo", w.JobDescriptor.ApplicationName)
	assert.Equal(t, "main", w.JobDescriptor.JobGroupInfo.Stack)
	assert.Equal(t, wire.JobSpecCaseBatch, w.JobDescriptor.SpecCase())
	require.NotNil(t, w.JobDescriptor.Batch)
	assert.Equal(t, int64(600), w.JobDescriptor.Batch.RuntimeLimitSec)
	require.NotNil(t, w.JobDescriptor.Batch.RetryPolicy.ExponentialBackOff)
	assert.Equal(t, int64(60000), w.JobDescriptor.Batch.RetryPolicy.ExponentialBackOff.MaxDelayIntervalMs)
	assert.Equal(t, wire.JobStateAccepted, w.Status.State)
	require.Len(t, w.StatusHistory, 1)
}

func TestToWireJob_Service(t *testing.T) {
	job := testkit.NewServiceJob()

	w, err := ToWireJob(job)
	require.NoError(t, err)

	assert.Equal(t, wire.JobSpecCaseService, w.JobDescriptor.SpecCase())
	require.NotNil(t, w.JobDescriptor.Service)
	assert.Equal(t, wire.Capacity{Min: 1, Desired: 2, Max: 5}, w.JobDescriptor.Service.Capacity)
	assert.True(t, w.JobDescriptor.Service.Enabled)
	require.NotNil(t, w.JobDescriptor.Service.MigrationPolicy.SystemDefault)
	assert.Nil(t, w.JobDescriptor.Service.MigrationPolicy.SelfManaged)
}

func TestToWireJobDescriptor_NilExtension(t *testing.T) {
	job := testkit.NewBatchJob()
	job.Descriptor.Extension = nil

	_, err := ToWireJobDescriptor(job.Descriptor)
	require.Error(t, err)
	assert.True(t, IsUnknownVariant(err))
}

func TestToWireJobGroupInfo_NilBecomesEmpty(t *testing.T) {
	job := testkit.NewBatchJob()
	job.Descriptor.JobGroupInfo = nil

	w, err := ToWireJob(job)
	require.NoError(t, err)
	assert.Equal(t, wire.JobGroupInfo{}, w.JobDescriptor.JobGroupInfo)
}

func TestToWireBatchJobSpec_TruncatesRuntimeLimit(t *testing.T) {
	ext := model.BatchExtension{
		Size:           1,
		RetryPolicy:    model.ImmediateRetryPolicy{Retries: 1},
		RuntimeLimitMs: 10_999,
	}

	w, err := ToWireBatchJobSpec(ext)
	require.NoError(t, err)

	// whole seconds on the wire; the 999 ms remainder is dropped
	assert.Equal(t, int64(10), w.RuntimeLimitSec)
}

func TestToWireRetryPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  model.RetryPolicy
		want    wire.RetryPolicy
		wantErr bool
	}{
		{
			name:   "immediate",
			policy: model.ImmediateRetryPolicy{Retries: 2},
			want:   wire.RetryPolicy{Immediate: &wire.RetryPolicyImmediate{Retries: 2}},
		},
		{
			name:   "delayed",
			policy: model.DelayedRetryPolicy{Retries: 3, DelayMs: 500},
			want:   wire.RetryPolicy{Delayed: &wire.RetryPolicyDelayed{DelayMs: 500, Retries: 3}},
		},
		{
			name:   "exponential backoff",
			policy: model.ExponentialBackoffRetryPolicy{Retries: 7, InitialDelayMs: 100, MaxDelayMs: 10000},
			want: wire.RetryPolicy{ExponentialBackOff: &wire.RetryPolicyExponentialBackOff{
				InitialDelayMs:     100,
				MaxDelayIntervalMs: 10000,
				Retries:            7,
			}},
		},
		{
			name:    "nil policy",
			policy:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWireRetryPolicy(tt.policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsUnknownVariant(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWireMigrationPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  model.MigrationPolicy
		want    wire.MigrationPolicy
		wantErr bool
	}{
		{
			name:   "system default",
			policy: model.SystemDefaultMigrationPolicy{},
			want:   wire.MigrationPolicy{SystemDefault: &wire.MigrationPolicySystemDefault{}},
		},
		{
			name:   "self managed",
			policy: model.SelfManagedMigrationPolicy{},
			want:   wire.MigrationPolicy{SelfManaged: &wire.MigrationPolicySelfManaged{}},
		},
		{
			name:    "nil policy",
			policy:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWireMigrationPolicy(tt.policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsUnknownVariant(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWireImage_SetIfPresent(t *testing.T) {
	tag := "v1.2"
	tests := []struct {
		name string
		img  model.Image
		want wire.Image
	}{
		{
			name: "tag only",
			img:  model.Image{Name: "repo/app", Tag: &tag},
			want: wire.Image{Name: "repo/app", Tag: "v1.2"},
		},
		{
			name: "nothing optional",
			img:  model.Image{Name: "repo/app"},
			want: wire.Image{Name: "repo/app"},
		},
		{
			name: "empty tag still set",
			img:  model.Image{Name: "repo/app", Tag: strPtr("")},
			want: wire.Image{Name: "repo/app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToWireImage(tt.img))
		})
	}
}

func TestToWireSecurityProfile_NilRole(t *testing.T) {
	w := ToWireSecurityProfile(model.SecurityProfile{
		SecurityGroups: []string{"sg-1"},
	})

	assert.Empty(t, w.IamRole)
	assert.Equal(t, []string{"sg-1"}, w.SecurityGroups)
	assert.NotNil(t, w.Attributes)
}

func TestToWireEfsMount_UnknownPerm(t *testing.T) {
	_, err := ToWireEfsMount(model.EfsMount{
		EfsID: "efs-1",
		Perm:  model.MountPerm(42),
	})
	require.Error(t, err)
	assert.True(t, IsUnknownVariant(err))
}

func TestToWireContainer_EmptyCollections(t *testing.T) {
	c, err := ToWireContainer(model.Container{
		Image: model.Image{Name: "repo/app"},
	})
	require.NoError(t, err)

	assert.NotNil(t, c.Env)
	assert.NotNil(t, c.Attributes)
	assert.NotNil(t, c.SoftConstraints.Constraints)
	assert.NotNil(t, c.EntryPoint)
	assert.NotNil(t, c.Resources.EfsMounts)
	assert.Empty(t, c.Resources.EfsMounts)
}

func TestToWireJobStatus_UnrecognizedFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	w := ToWireJobStatus(model.JobStatus{State: model.JobState(99)})

	assert.Equal(t, wire.JobStateUnrecognized, w.State)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "no wire mapping")
}

func TestToWireTaskStatus_UnrecognizedFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	w := ToWireTaskStatus(model.TaskStatus{State: model.TaskState(99)})

	assert.Equal(t, wire.TaskStateUnrecognized, w.State)
	require.Equal(t, 1, logs.Len())
}

func TestToWireTask_Batch(t *testing.T) {
	task := testkit.NewBatchTask("job-1", 4)

	w, err := ToWireTask(task, logstore.Empty{})
	require.NoError(t, err)

	assert.Equal(t, task.ID, w.ID)
	assert.Equal(t, "job-1", w.JobID)
	assert.Equal(t, task.OriginalID, w.TaskContext[model.ContextKeyOriginalID])
	assert.Equal(t, "0", w.TaskContext[model.ContextKeyResubmitNumber])
	assert.Equal(t, "0", w.TaskContext[model.ContextKeySystemResubmitNumber])
	assert.Equal(t, "4", w.TaskContext[model.ContextKeyTaskIndex])
	assert.Nil(t, w.MigrationDetails)
	assert.Equal(t, wire.LogLocation{}, w.LogLocation)
	assert.Equal(t, wire.TaskStateStarted, w.Status.State)
	require.Len(t, w.StatusHistory, 3)
}

func TestToWireTask_Service(t *testing.T) {
	task := testkit.NewServiceTask("job-1")

	w, err := ToWireTask(task, logstore.Empty{})
	require.NoError(t, err)

	_, hasIndex := w.TaskContext[model.ContextKeyTaskIndex]
	assert.False(t, hasIndex)
	require.NotNil(t, w.MigrationDetails)
	assert.True(t, w.MigrationDetails.NeedsMigration)

	variant := task.Variant.(model.ServiceTask)
	assert.Equal(t, variant.Migration.DeadlineMs, w.MigrationDetails.Deadline)
}

func TestToWireTask_UnknownVariant(t *testing.T) {
	task := testkit.NewServiceTask("job-1")
	task.Variant = nil

	_, err := ToWireTask(task, logstore.Empty{})
	require.Error(t, err)
	assert.True(t, IsUnknownVariant(err))
}

func TestToWireTask_DoesNotMutateTaskContext(t *testing.T) {
	task := testkit.NewBatchTask("job-1", 0)
	task.Context[model.ContextKeyOriginalID] = "tampered"

	_, err := ToWireTask(task, logstore.Empty{})
	require.NoError(t, err)

	assert.Equal(t, "tampered", task.Context[model.ContextKeyOriginalID])
}

func TestToWireChangeNotification(t *testing.T) {
	t.Run("job update", func(t *testing.T) {
		event := model.JobUpdateEvent{Current: testkit.NewBatchJob()}

		w, err := ToWireChangeNotification(event, logstore.Empty{})
		require.NoError(t, err)

		assert.Equal(t, wire.ChangeNotificationCaseJobUpdate, w.Case())
		require.NotNil(t, w.JobUpdate)
		assert.Nil(t, w.TaskUpdate)
		assert.Equal(t, event.Current.ID, w.JobUpdate.Job.ID)
	})

	t.Run("task update", func(t *testing.T) {
		event := model.TaskUpdateEvent{Current: testkit.NewServiceTask("job-1")}

		w, err := ToWireChangeNotification(event, logstore.Empty{})
		require.NoError(t, err)

		assert.Equal(t, wire.ChangeNotificationCaseTaskUpdate, w.Case())
		require.NotNil(t, w.TaskUpdate)
		assert.Nil(t, w.JobUpdate)
		assert.Equal(t, event.Current.ID, w.TaskUpdate.Task.ID)
	})

	t.Run("nil event", func(t *testing.T) {
		_, err := ToWireChangeNotification(nil, logstore.Empty{})
		require.Error(t, err)
		assert.True(t, IsUnknownVariant(err))
	})
}
