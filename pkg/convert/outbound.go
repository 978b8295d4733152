package convert

import (
	"go.uber.org/zap"

	"github.com/stratushq/stratuswire/pkg/logstore"
	"github.com/stratushq/stratuswire/pkg/model"
	"github.com/stratushq/stratuswire/pkg/wire"
)

// ToWireJob renders a domain job for transmission.
func ToWireJob(j model.Job) (wire.Job, error) {
	descriptor, err := ToWireJobDescriptor(j.Descriptor)
	if err != nil {
		return wire.Job{}, err
	}
	return wire.Job{
		ID:            j.ID,
		JobDescriptor: descriptor,
		Status:        ToWireJobStatus(j.Status),
		StatusHistory: toWireJobStatusHistory(j.StatusHistory),
	}, nil
}

// ToWireJobDescriptor renders a job descriptor with its batch or service
// spec branch.
func ToWireJobDescriptor(d model.JobDescriptor) (wire.JobDescriptor, error) {
	container, err := ToWireContainer(d.Container)
	if err != nil {
		return wire.JobDescriptor{}, err
	}
	out := wire.JobDescriptor{
		Owner:           wire.Owner{TeamEmail: d.Owner.TeamEmail},
		ApplicationName: d.ApplicationName,
		JobGroupInfo:    toWireJobGroupInfo(d.JobGroupInfo),
		CapacityGroup:   d.CapacityGroup,
		Container:       container,
		Attributes:      wireMap(d.Attributes),
	}
	switch ext := d.Extension.(type) {
	case model.BatchExtension:
		batch, err := ToWireBatchJobSpec(ext)
		if err != nil {
			return wire.JobDescriptor{}, err
		}
		out.Batch = &batch
	case model.ServiceExtension:
		service, err := ToWireServiceJobSpec(ext)
		if err != nil {
			return wire.JobDescriptor{}, err
		}
		out.Service = &service
	default:
		return wire.JobDescriptor{}, unknownVariant("JobDescriptor", d.Extension)
	}
	return out, nil
}

func toWireJobGroupInfo(info *model.JobGroupInfo) wire.JobGroupInfo {
	if info == nil {
		return wire.JobGroupInfo{}
	}
	return wire.JobGroupInfo{
		Stack:    info.Stack,
		Detail:   info.Detail,
		Sequence: info.Sequence,
	}
}

// ToWireBatchJobSpec renders a batch extension. The runtime limit is carried
// in whole seconds on the wire; sub-second precision is dropped.
func ToWireBatchJobSpec(ext model.BatchExtension) (wire.BatchJobSpec, error) {
	retry, err := ToWireRetryPolicy(ext.RetryPolicy)
	if err != nil {
		return wire.BatchJobSpec{}, err
	}
	return wire.BatchJobSpec{
		Size:                ext.Size,
		RuntimeLimitSec:     ext.RuntimeLimitMs / 1000,
		RetryPolicy:         retry,
		RetryOnRuntimeLimit: ext.RetryOnRuntimeLimit,
	}, nil
}

// ToWireServiceJobSpec renders a service extension.
func ToWireServiceJobSpec(ext model.ServiceExtension) (wire.ServiceJobSpec, error) {
	retry, err := ToWireRetryPolicy(ext.RetryPolicy)
	if err != nil {
		return wire.ServiceJobSpec{}, err
	}
	migration, err := ToWireMigrationPolicy(ext.MigrationPolicy)
	if err != nil {
		return wire.ServiceJobSpec{}, err
	}
	return wire.ServiceJobSpec{
		Capacity:            ToWireCapacity(ext.Capacity),
		Enabled:             ext.Enabled,
		RetryPolicy:         retry,
		MigrationPolicy:     migration,
		ServiceJobProcesses: ToWireServiceJobProcesses(ext.Processes),
	}, nil
}

// ToWireRetryPolicy renders the retry policy union. A policy outside the
// closed set is a hard failure.
func ToWireRetryPolicy(policy model.RetryPolicy) (wire.RetryPolicy, error) {
	switch p := policy.(type) {
	case model.ImmediateRetryPolicy:
		return wire.RetryPolicy{
			Immediate: &wire.RetryPolicyImmediate{Retries: p.Retries},
		}, nil
	case model.DelayedRetryPolicy:
		return wire.RetryPolicy{
			Delayed: &wire.RetryPolicyDelayed{
				DelayMs: p.DelayMs,
				Retries: p.Retries,
			},
		}, nil
	case model.ExponentialBackoffRetryPolicy:
		return wire.RetryPolicy{
			ExponentialBackOff: &wire.RetryPolicyExponentialBackOff{
				InitialDelayMs:     p.InitialDelayMs,
				MaxDelayIntervalMs: p.MaxDelayMs,
				Retries:            p.Retries,
			},
		}, nil
	default:
		return wire.RetryPolicy{}, unknownVariant("RetryPolicy", policy)
	}
}

// ToWireMigrationPolicy renders the migration policy union. A policy outside
// the closed set is a hard failure.
func ToWireMigrationPolicy(policy model.MigrationPolicy) (wire.MigrationPolicy, error) {
	switch policy.(type) {
	case model.SystemDefaultMigrationPolicy:
		return wire.MigrationPolicy{
			SystemDefault: &wire.MigrationPolicySystemDefault{},
		}, nil
	case model.SelfManagedMigrationPolicy:
		return wire.MigrationPolicy{
			SelfManaged: &wire.MigrationPolicySelfManaged{},
		}, nil
	default:
		return wire.MigrationPolicy{}, unknownVariant("MigrationPolicy", policy)
	}
}

// ToWireCapacity renders the instance-count envelope.
func ToWireCapacity(c model.Capacity) wire.Capacity {
	return wire.Capacity{
		Min:     c.Min,
		Desired: c.Desired,
		Max:     c.Max,
	}
}

// ToWireServiceJobProcesses renders the scaling toggles.
func ToWireServiceJobProcesses(p model.ServiceJobProcesses) wire.ServiceJobProcesses {
	return wire.ServiceJobProcesses{
		DisableIncreaseDesired: p.DisableIncreaseDesired,
		DisableDecreaseDesired: p.DisableDecreaseDesired,
	}
}

// ToWireContainer renders a container spec.
func ToWireContainer(c model.Container) (wire.Container, error) {
	resources, err := ToWireResources(c.Resources)
	if err != nil {
		return wire.Container{}, err
	}
	return wire.Container{
		Image:           ToWireImage(c.Image),
		Resources:       resources,
		SecurityProfile: ToWireSecurityProfile(c.SecurityProfile),
		Env:             wireMap(c.Env),
		SoftConstraints: wire.Constraints{Constraints: wireMap(c.SoftConstraints)},
		HardConstraints: wire.Constraints{Constraints: wireMap(c.HardConstraints)},
		EntryPoint:      wireStrings(c.EntryPoint),
		Command:         wireStrings(c.Command),
		Attributes:      wireMap(c.Attributes),
	}, nil
}

// ToWireImage renders an image reference. Absent tag and digest stay at the
// wire default; they are never explicitly cleared.
func ToWireImage(img model.Image) wire.Image {
	out := wire.Image{Name: img.Name}
	if img.Tag != nil {
		out.Tag = *img.Tag
	}
	if img.Digest != nil {
		out.Digest = *img.Digest
	}
	return out
}

// ToWireSecurityProfile renders a security profile. An absent IAM role stays
// at the wire default.
func ToWireSecurityProfile(p model.SecurityProfile) wire.SecurityProfile {
	out := wire.SecurityProfile{
		SecurityGroups: wireStrings(p.SecurityGroups),
		Attributes:     wireMap(p.Attributes),
	}
	if p.IAMRole != nil {
		out.IamRole = *p.IAMRole
	}
	return out
}

// ToWireResources renders a resource envelope.
func ToWireResources(r model.ContainerResources) (wire.ContainerResources, error) {
	mounts, err := toWireEfsMounts(r.EfsMounts)
	if err != nil {
		return wire.ContainerResources{}, err
	}
	return wire.ContainerResources{
		CPU:         r.CPU,
		GPU:         r.GPU,
		MemoryMB:    r.MemoryMB,
		DiskMB:      r.DiskMB,
		NetworkMbps: r.NetworkMbps,
		AllocateIP:  r.AllocateIP,
		EfsMounts:   mounts,
	}, nil
}

func toWireEfsMounts(mounts []model.EfsMount) ([]wire.EfsMount, error) {
	if len(mounts) == 0 {
		return []wire.EfsMount{}, nil
	}
	out := make([]wire.EfsMount, 0, len(mounts))
	for _, m := range mounts {
		mount, err := ToWireEfsMount(m)
		if err != nil {
			return nil, err
		}
		out = append(out, mount)
	}
	return out, nil
}

// ToWireEfsMount renders one mount. A permission outside the closed set is a
// hard failure; there is no catch-all on the wire for mount permissions.
func ToWireEfsMount(m model.EfsMount) (wire.EfsMount, error) {
	perm, err := toWireMountPerm(m.Perm)
	if err != nil {
		return wire.EfsMount{}, err
	}
	return wire.EfsMount{
		EfsID:                 m.EfsID,
		MountPoint:            m.MountPoint,
		MountPerm:             perm,
		EfsRelativeMountPoint: m.RelativeMountPoint,
	}, nil
}

func toWireMountPerm(p model.MountPerm) (wire.MountPerm, error) {
	switch p {
	case model.MountPermRO:
		return wire.MountPermRO, nil
	case model.MountPermWO:
		return wire.MountPermWO, nil
	case model.MountPermRW:
		return wire.MountPermRW, nil
	}
	return "", unknownEnum("EfsMount", "mountPerm", p)
}

// ToWireJobStatus renders one job status entry.
func ToWireJobStatus(status model.JobStatus) wire.JobStatus {
	return wire.JobStatus{
		State:         toWireJobState(status.State),
		ReasonCode:    status.ReasonCode,
		ReasonMessage: status.ReasonMessage,
		Timestamp:     status.TimestampMs,
	}
}

// toWireJobState maps every defined state to its wire value. A state outside
// the schema falls back to UNRECOGNIZED and is flagged; it means the model
// and the converter disagree about the schema version.
func toWireJobState(s model.JobState) wire.JobState {
	switch s {
	case model.JobStateAccepted:
		return wire.JobStateAccepted
	case model.JobStateKillInitiated:
		return wire.JobStateKillInitiated
	case model.JobStateFinished:
		return wire.JobStateFinished
	}
	log.Warn("job state has no wire mapping, sending UNRECOGNIZED",
		zap.Stringer("state", s))
	return wire.JobStateUnrecognized
}

func toWireJobStatusHistory(history []model.JobStatus) []wire.JobStatus {
	out := make([]wire.JobStatus, 0, len(history))
	for _, status := range history {
		out = append(out, ToWireJobStatus(status))
	}
	return out
}

// ToWireTaskStatus renders one task status entry.
func ToWireTaskStatus(status model.TaskStatus) wire.TaskStatus {
	return wire.TaskStatus{
		State:         toWireTaskState(status.State),
		ReasonCode:    status.ReasonCode,
		ReasonMessage: status.ReasonMessage,
		Timestamp:     status.TimestampMs,
	}
}

func toWireTaskState(s model.TaskState) wire.TaskState {
	switch s {
	case model.TaskStateAccepted:
		return wire.TaskStateAccepted
	case model.TaskStateLaunched:
		return wire.TaskStateLaunched
	case model.TaskStateStartInitiated:
		return wire.TaskStateStartInitiated
	case model.TaskStateStarted:
		return wire.TaskStateStarted
	case model.TaskStateKillInitiated:
		return wire.TaskStateKillInitiated
	case model.TaskStateDisconnected:
		return wire.TaskStateDisconnected
	case model.TaskStateFinished:
		return wire.TaskStateFinished
	}
	log.Warn("task state has no wire mapping, sending UNRECOGNIZED",
		zap.Stringer("state", s))
	return wire.TaskStateUnrecognized
}

func toWireTaskStatusHistory(history []model.TaskStatus) []wire.TaskStatus {
	out := make([]wire.TaskStatus, 0, len(history))
	for _, status := range history {
		out = append(out, ToWireTaskStatus(status))
	}
	return out
}

// ToWireTask renders a domain task. Lineage fields are written into the
// context under the reserved keys, the log location is composed from the
// provider, and service tasks carry their migration details.
func ToWireTask(task model.Task, logStore logstore.Provider) (wire.Task, error) {
	out := wire.Task{
		ID:            task.ID,
		JobID:         task.JobID,
		TaskContext:   encodeTaskContext(task),
		Status:        ToWireTaskStatus(task.Status),
		StatusHistory: toWireTaskStatusHistory(task.StatusHistory),
		LogLocation:   ToWireLogLocation(&task, logStore),
	}
	switch v := task.Variant.(type) {
	case model.BatchTask:
		// index travels in the task context
	case model.ServiceTask:
		details := ToWireMigrationDetails(v.Migration)
		out.MigrationDetails = &details
	default:
		return wire.Task{}, unknownVariant("Task", task.Variant)
	}
	return out, nil
}

// ToWireChangeNotification renders a lifecycle event. An event outside the
// closed set is a hard failure.
func ToWireChangeNotification(event model.Event, logStore logstore.Provider) (wire.ChangeNotification, error) {
	switch e := event.(type) {
	case model.JobUpdateEvent:
		job, err := ToWireJob(e.Current)
		if err != nil {
			return wire.ChangeNotification{}, err
		}
		return wire.ChangeNotification{
			JobUpdate: &wire.JobUpdate{Job: job},
		}, nil
	case model.TaskUpdateEvent:
		task, err := ToWireTask(e.Current, logStore)
		if err != nil {
			return wire.ChangeNotification{}, err
		}
		return wire.ChangeNotification{
			TaskUpdate: &wire.TaskUpdate{Task: task},
		}, nil
	default:
		return wire.ChangeNotification{}, unknownVariant("ChangeNotification", event)
	}
}
