package testkit

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/stratushq/stratuswire/pkg/model"
	"github.com/stratushq/stratuswire/pkg/wire"
)

// NewWireContainer returns a fully populated wire container spec.
func NewWireContainer() wire.Container {
	return wire.Container{
		Image: wire.Image{
			Name: "registry.example.com/stratus/sleep",
			Tag:  "latest",
		},
		Resources: wire.ContainerResources{
			CPU:         2,
			MemoryMB:    4096,
			DiskMB:      10000,
			NetworkMbps: 128,
			AllocateIP:  true,
			EfsMounts: []wire.EfsMount{
				{
					EfsID:                 "efs-data",
					MountPoint:            "/data",
					MountPerm:             wire.MountPermRW,
					EfsRelativeMountPoint: "/shared",
				},
			},
		},
		SecurityProfile: wire.SecurityProfile{
			SecurityGroups: []string{"sg-12345"},
			IamRole:        "arn:aws:iam::123456789012:role/stratusTaskRole",
			Attributes:     map[string]string{"ipv6": "enabled"},
		},
		Env:             map[string]string{"TASK_ENV": "test"},
		SoftConstraints: wire.Constraints{Constraints: map[string]string{"zoneBalance": "true"}},
		HardConstraints: wire.Constraints{Constraints: map[string]string{"uniqueHost": "true"}},
		EntryPoint:      []string{"/bin/sleep", "300"},
		Command:         []string{"--verbose"},
		Attributes:      map[string]string{"owner": "platform"},
	}
}

// NewWireBatchJob returns an accepted wire batch job.
func NewWireBatchJob() wire.Job {
	job := newWireJob()
	job.JobDescriptor.Batch = &wire.BatchJobSpec{
		Size:            2,
		RuntimeLimitSec: 600,
		RetryPolicy: wire.RetryPolicy{
			ExponentialBackOff: &wire.RetryPolicyExponentialBackOff{
				InitialDelayMs:     5000,
				MaxDelayIntervalMs: 60000,
				Retries:            3,
			},
		},
	}
	return job
}

// NewWireServiceJob returns an accepted wire service job.
func NewWireServiceJob() wire.Job {
	job := newWireJob()
	job.JobDescriptor.Service = &wire.ServiceJobSpec{
		Capacity: wire.Capacity{Min: 1, Desired: 2, Max: 5},
		Enabled:  true,
		RetryPolicy: wire.RetryPolicy{
			Delayed: &wire.RetryPolicyDelayed{DelayMs: 1000, Retries: 5},
		},
		MigrationPolicy: wire.MigrationPolicy{
			SystemDefault: &wire.MigrationPolicySystemDefault{},
		},
	}
	return job
}

func newWireJob() wire.Job {
	return wire.Job{
		ID: uuid.NewString(),
		JobDescriptor: wire.JobDescriptor{
			Owner:           wire.Owner{TeamEmail: "platform@stratus.example.com"},
			ApplicationName: "stratus-demo",
			JobGroupInfo: wire.JobGroupInfo{
				Stack:    "main",
				Detail:   "canary",
				Sequence: "v001",
			},
			CapacityGroup: "DEFAULT",
			Container:     NewWireContainer(),
			Attributes:    map[string]string{"source": "testkit"},
		},
		Status: wire.JobStatus{
			State:         wire.JobStateAccepted,
			ReasonCode:    "normal",
			ReasonMessage: "job accepted",
			Timestamp:     baseTimestampMs,
		},
		StatusHistory: []wire.JobStatus{
			{
				State:         wire.JobStateAccepted,
				ReasonCode:    "normal",
				ReasonMessage: "job accepted",
				Timestamp:     baseTimestampMs,
			},
		},
	}
}

// NewWireBatchTask returns a started wire batch task; the index travels in
// the task context.
func NewWireBatchTask(jobID string, index int) wire.Task {
	task := newWireTask(jobID)
	task.TaskContext[model.ContextKeyTaskIndex] = strconv.Itoa(index)
	return task
}

// NewWireServiceTask returns a started wire service task.
func NewWireServiceTask(jobID string) wire.Task {
	task := newWireTask(jobID)
	task.MigrationDetails = &wire.MigrationDetails{
		NeedsMigration: true,
		Deadline:       baseTimestampMs + 3_600_000,
	}
	return task
}

func newWireTask(jobID string) wire.Task {
	id := uuid.NewString()
	context := map[string]string{"agent.region": "us-east-1"}
	context[model.ContextKeyOriginalID] = id
	context[model.ContextKeyResubmitNumber] = "0"
	context[model.ContextKeySystemResubmitNumber] = "0"
	return wire.Task{
		ID:          id,
		JobID:       jobID,
		TaskContext: context,
		Status: wire.TaskStatus{
			State:         wire.TaskStateStarted,
			ReasonCode:    "normal",
			ReasonMessage: "main container running",
			Timestamp:     baseTimestampMs + 30_000,
		},
		StatusHistory: []wire.TaskStatus{
			{State: wire.TaskStateAccepted, Timestamp: baseTimestampMs},
			{State: wire.TaskStateLaunched, Timestamp: baseTimestampMs + 10_000},
			{State: wire.TaskStateStartInitiated, Timestamp: baseTimestampMs + 20_000},
		},
	}
}

// NewWireNotification returns a task-update change notification.
func NewWireNotification() wire.ChangeNotification {
	return wire.ChangeNotification{
		TaskUpdate: &wire.TaskUpdate{
			Task: NewWireServiceTask(uuid.NewString()),
		},
	}
}
