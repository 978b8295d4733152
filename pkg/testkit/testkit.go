// Package testkit builds well-formed sample jobs and tasks. Tests use it for
// fixtures and the CLI uses it to emit example documents; it depends only on
// the model and wire packages so any package may import it.
package testkit

import (
	"github.com/google/uuid"

	"github.com/stratushq/stratuswire/pkg/model"
)

// baseTimestampMs anchors generated status histories so fixtures are stable.
const baseTimestampMs int64 = 1_755_000_000_000

// NewContainer returns a fully populated container spec.
func NewContainer() model.Container {
	tag := "latest"
	iamRole := "arn:aws:iam::123456789012:role/stratusTaskRole"
	return model.Container{
		Image: model.Image{
			Name: "registry.example.com/stratus/sleep",
			Tag:  &tag,
		},
		Resources: model.ContainerResources{
			CPU:         2,
			GPU:         0,
			MemoryMB:    4096,
			DiskMB:      10000,
			NetworkMbps: 128,
			AllocateIP:  true,
			EfsMounts: []model.EfsMount{
				{
					EfsID:              "efs-data",
					MountPoint:         "/data",
					Perm:               model.MountPermRW,
					RelativeMountPoint: "/shared",
				},
			},
		},
		SecurityProfile: model.SecurityProfile{
			SecurityGroups: []string{"sg-12345"},
			IAMRole:        &iamRole,
			Attributes:     map[string]string{"ipv6": "enabled"},
		},
		Env:             map[string]string{"TASK_ENV": "test"},
		SoftConstraints: map[string]string{"zoneBalance": "true"},
		HardConstraints: map[string]string{"uniqueHost": "true"},
		EntryPoint:      []string{"/bin/sleep", "300"},
		Command:         []string{"--verbose"},
		Attributes:      map[string]string{"owner": "platform"},
	}
}

// NewBatchJob returns an accepted batch job with two tasks' worth of size.
func NewBatchJob() model.Job {
	return model.Job{
		ID: uuid.NewString(),
		Descriptor: model.JobDescriptor{
			Owner:           model.Owner{TeamEmail: "platform@stratus.example.com"},
			ApplicationName: "stratus-demo",
			JobGroupInfo: &model.JobGroupInfo{
				Stack:    "main",
				Detail:   "canary",
				Sequence: "v001",
			},
			CapacityGroup: "DEFAULT",
			Container:     NewContainer(),
			Attributes:    map[string]string{"source": "testkit"},
			Extension: model.BatchExtension{
				Size: 2,
				RetryPolicy: model.ExponentialBackoffRetryPolicy{
					Retries:        3,
					InitialDelayMs: 5000,
					MaxDelayMs:     60000,
				},
				RuntimeLimitMs:      600_000,
				RetryOnRuntimeLimit: false,
			},
		},
		Status: model.JobStatus{
			State:         model.JobStateAccepted,
			ReasonCode:    "normal",
			ReasonMessage: "job accepted",
			TimestampMs:   baseTimestampMs,
		},
		StatusHistory: []model.JobStatus{
			{
				State:         model.JobStateAccepted,
				ReasonCode:    "normal",
				ReasonMessage: "job accepted",
				TimestampMs:   baseTimestampMs,
			},
		},
	}
}

// NewServiceJob returns an accepted service job.
func NewServiceJob() model.Job {
	job := NewBatchJob()
	job.Descriptor.Extension = model.ServiceExtension{
		Capacity: model.Capacity{Min: 1, Desired: 2, Max: 5},
		RetryPolicy: model.DelayedRetryPolicy{
			Retries: 5,
			DelayMs: 1000,
		},
		MigrationPolicy: model.SystemDefaultMigrationPolicy{},
		Enabled:         true,
		Processes: model.ServiceJobProcesses{
			DisableIncreaseDesired: false,
			DisableDecreaseDesired: false,
		},
	}
	return job
}

// NewBatchTask returns a started batch task holding the given index.
func NewBatchTask(jobID string, index int) model.Task {
	task := newTask(jobID)
	task.Variant = model.BatchTask{Index: index}
	return task
}

// NewServiceTask returns a started service task with migration details set.
func NewServiceTask(jobID string) model.Task {
	task := newTask(jobID)
	task.Variant = model.ServiceTask{
		Migration: model.MigrationDetails{
			NeedsMigration: true,
			DeadlineMs:     baseTimestampMs + 3_600_000,
		},
	}
	return task
}

func newTask(jobID string) model.Task {
	id := uuid.NewString()
	return model.Task{
		ID:    id,
		JobID: jobID,
		Status: model.TaskStatus{
			State:         model.TaskStateStarted,
			ReasonCode:    "normal",
			ReasonMessage: "main container running",
			TimestampMs:   baseTimestampMs + 30_000,
		},
		StatusHistory: []model.TaskStatus{
			{State: model.TaskStateAccepted, TimestampMs: baseTimestampMs},
			{State: model.TaskStateLaunched, TimestampMs: baseTimestampMs + 10_000},
			{State: model.TaskStateStartInitiated, TimestampMs: baseTimestampMs + 20_000},
		},
		OriginalID:           id,
		ResubmitNumber:       0,
		SystemResubmitNumber: 0,
		Context:              map[string]string{"agent.region": "us-east-1"},
	}
}
