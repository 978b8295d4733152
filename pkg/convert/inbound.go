package convert

import (
	"github.com/stratushq/stratuswire/pkg/model"
	"github.com/stratushq/stratuswire/pkg/wire"
)

// ToModelJob parses a wire job into its domain form.
func ToModelJob(w wire.Job) (model.Job, error) {
	descriptor, err := ToModelJobDescriptor(w.JobDescriptor)
	if err != nil {
		return model.Job{}, err
	}
	status, err := ToModelJobStatus(w.Status)
	if err != nil {
		return model.Job{}, err
	}
	history, err := toModelJobStatusHistory(w.StatusHistory)
	if err != nil {
		return model.Job{}, err
	}
	return model.Job{
		ID:            w.ID,
		Descriptor:    descriptor,
		Status:        status,
		StatusHistory: history,
	}, nil
}

// ToModelJobDescriptor parses a wire job descriptor, including its batch or
// service spec branch. A descriptor with neither branch set is structurally
// invalid.
func ToModelJobDescriptor(w wire.JobDescriptor) (model.JobDescriptor, error) {
	container, err := ToModelContainer(w.Container)
	if err != nil {
		return model.JobDescriptor{}, err
	}
	extension, err := toModelExtension(w)
	if err != nil {
		return model.JobDescriptor{}, err
	}
	return model.JobDescriptor{
		Owner:           model.Owner{TeamEmail: w.Owner.TeamEmail},
		ApplicationName: w.ApplicationName,
		JobGroupInfo:    toModelJobGroupInfo(w.JobGroupInfo),
		CapacityGroup:   w.CapacityGroup,
		Container:       container,
		Attributes:      cloneMap(w.Attributes),
		Extension:       extension,
	}, nil
}

// toModelJobGroupInfo maps the always-transmitted group info; an all-empty
// value means the group was never set.
func toModelJobGroupInfo(w wire.JobGroupInfo) *model.JobGroupInfo {
	if w == (wire.JobGroupInfo{}) {
		return nil
	}
	return &model.JobGroupInfo{
		Stack:    w.Stack,
		Detail:   w.Detail,
		Sequence: w.Sequence,
	}
}

func toModelExtension(w wire.JobDescriptor) (model.Extension, error) {
	switch w.SpecCase() {
	case wire.JobSpecCaseBatch:
		return toModelBatchExtension(*w.Batch)
	case wire.JobSpecCaseService:
		return toModelServiceExtension(*w.Service)
	}
	return nil, missingField("JobDescriptor", "jobSpec")
}

func toModelBatchExtension(w wire.BatchJobSpec) (model.Extension, error) {
	retry, err := ToModelRetryPolicy(w.RetryPolicy)
	if err != nil {
		return nil, err
	}
	return model.BatchExtension{
		Size:                w.Size,
		RetryPolicy:         retry,
		RuntimeLimitMs:      w.RuntimeLimitSec * 1000,
		RetryOnRuntimeLimit: w.RetryOnRuntimeLimit,
	}, nil
}

func toModelServiceExtension(w wire.ServiceJobSpec) (model.Extension, error) {
	retry, err := ToModelRetryPolicy(w.RetryPolicy)
	if err != nil {
		return nil, err
	}
	return model.ServiceExtension{
		Capacity:        ToModelCapacity(w.Capacity),
		RetryPolicy:     retry,
		MigrationPolicy: ToModelMigrationPolicy(w.MigrationPolicy),
		Enabled:         w.Enabled,
		Processes:       ToModelServiceJobProcesses(w.ServiceJobProcesses),
	}, nil
}

// ToModelRetryPolicy parses the retry policy union. An unset or unknown
// branch is a hard failure.
func ToModelRetryPolicy(w wire.RetryPolicy) (model.RetryPolicy, error) {
	switch w.Case() {
	case wire.RetryPolicyCaseImmediate:
		return model.ImmediateRetryPolicy{
			Retries: w.Immediate.Retries,
		}, nil
	case wire.RetryPolicyCaseDelayed:
		return model.DelayedRetryPolicy{
			Retries: w.Delayed.Retries,
			DelayMs: w.Delayed.DelayMs,
		}, nil
	case wire.RetryPolicyCaseExponentialBackOff:
		return model.ExponentialBackoffRetryPolicy{
			Retries:        w.ExponentialBackOff.Retries,
			InitialDelayMs: w.ExponentialBackOff.InitialDelayMs,
			MaxDelayMs:     w.ExponentialBackOff.MaxDelayIntervalMs,
		}, nil
	}
	return nil, unrecognizedState("RetryPolicy", "policy", "none")
}

// ToModelMigrationPolicy parses the migration policy union. Unset or unknown
// branches fall back to the system default.
func ToModelMigrationPolicy(w wire.MigrationPolicy) model.MigrationPolicy {
	if w.Case() == wire.MigrationPolicyCaseSelfManaged {
		return model.SelfManagedMigrationPolicy{}
	}
	return model.SystemDefaultMigrationPolicy{}
}

// ToModelCapacity maps the instance-count envelope. Min/desired/max ordering
// is the caller's contract and is not checked here.
func ToModelCapacity(w wire.Capacity) model.Capacity {
	return model.Capacity{
		Min:     w.Min,
		Desired: w.Desired,
		Max:     w.Max,
	}
}

// ToModelServiceJobProcesses maps the scaling toggles.
func ToModelServiceJobProcesses(w wire.ServiceJobProcesses) model.ServiceJobProcesses {
	return model.ServiceJobProcesses{
		DisableIncreaseDesired: w.DisableIncreaseDesired,
		DisableDecreaseDesired: w.DisableDecreaseDesired,
	}
}

// ToModelContainer parses a wire container spec.
func ToModelContainer(w wire.Container) (model.Container, error) {
	resources, err := ToModelResources(w.Resources)
	if err != nil {
		return model.Container{}, err
	}
	return model.Container{
		Image:           ToModelImage(w.Image),
		Resources:       resources,
		SecurityProfile: ToModelSecurityProfile(w.SecurityProfile),
		Env:             cloneMap(w.Env),
		SoftConstraints: cloneMap(w.SoftConstraints.Constraints),
		HardConstraints: cloneMap(w.HardConstraints.Constraints),
		EntryPoint:      cloneStrings(w.EntryPoint),
		Command:         cloneStrings(w.Command),
		Attributes:      cloneMap(w.Attributes),
	}, nil
}

// ToModelImage maps a wire image. Tag and digest arrive empty-but-present;
// the wire form cannot express absence for them.
func ToModelImage(w wire.Image) model.Image {
	return model.Image{
		Name:   w.Name,
		Tag:    strPtr(w.Tag),
		Digest: strPtr(w.Digest),
	}
}

// ToModelSecurityProfile maps a wire security profile. The IAM role arrives
// empty-but-present, like image tag and digest.
func ToModelSecurityProfile(w wire.SecurityProfile) model.SecurityProfile {
	return model.SecurityProfile{
		SecurityGroups: cloneStrings(w.SecurityGroups),
		IAMRole:        strPtr(w.IamRole),
		Attributes:     cloneMap(w.Attributes),
	}
}

// ToModelResources parses a wire resource envelope.
func ToModelResources(w wire.ContainerResources) (model.ContainerResources, error) {
	mounts, err := toModelEfsMounts(w.EfsMounts)
	if err != nil {
		return model.ContainerResources{}, err
	}
	return model.ContainerResources{
		CPU:         w.CPU,
		GPU:         w.GPU,
		MemoryMB:    w.MemoryMB,
		DiskMB:      w.DiskMB,
		NetworkMbps: w.NetworkMbps,
		AllocateIP:  w.AllocateIP,
		EfsMounts:   mounts,
	}, nil
}

func toModelEfsMounts(ws []wire.EfsMount) ([]model.EfsMount, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	mounts := make([]model.EfsMount, 0, len(ws))
	for _, w := range ws {
		mount, err := ToModelEfsMount(w)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, mount)
	}
	return mounts, nil
}

// ToModelEfsMount parses one mount. The permission is matched by name so a
// reordered wire enum cannot silently change access modes.
func ToModelEfsMount(w wire.EfsMount) (model.EfsMount, error) {
	perm, err := toModelMountPerm(w.MountPerm)
	if err != nil {
		return model.EfsMount{}, err
	}
	return model.EfsMount{
		EfsID:              w.EfsID,
		MountPoint:         w.MountPoint,
		Perm:               perm,
		RelativeMountPoint: w.EfsRelativeMountPoint,
	}, nil
}

func toModelMountPerm(p wire.MountPerm) (model.MountPerm, error) {
	switch p {
	case wire.MountPermRO:
		return model.MountPermRO, nil
	case wire.MountPermWO:
		return model.MountPermWO, nil
	case wire.MountPermRW:
		return model.MountPermRW, nil
	}
	return 0, unrecognizedState("EfsMount", "mountPerm", string(p))
}

// ToModelJobStatus parses one job status entry. Unknown states are hard
// failures, never coerced to a default.
func ToModelJobStatus(w wire.JobStatus) (model.JobStatus, error) {
	state, err := toModelJobState(w.State)
	if err != nil {
		return model.JobStatus{}, err
	}
	return model.JobStatus{
		State:         state,
		ReasonCode:    w.ReasonCode,
		ReasonMessage: w.ReasonMessage,
		TimestampMs:   w.Timestamp,
	}, nil
}

func toModelJobState(s wire.JobState) (model.JobState, error) {
	switch s {
	case wire.JobStateAccepted:
		return model.JobStateAccepted, nil
	case wire.JobStateKillInitiated:
		return model.JobStateKillInitiated, nil
	case wire.JobStateFinished:
		return model.JobStateFinished, nil
	}
	return 0, unrecognizedState("JobStatus", "state", string(s))
}

func toModelJobStatusHistory(ws []wire.JobStatus) ([]model.JobStatus, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	history := make([]model.JobStatus, 0, len(ws))
	for _, w := range ws {
		status, err := ToModelJobStatus(w)
		if err != nil {
			return nil, err
		}
		history = append(history, status)
	}
	return history, nil
}

// ToModelTaskStatus parses one task status entry.
func ToModelTaskStatus(w wire.TaskStatus) (model.TaskStatus, error) {
	state, err := toModelTaskState(w.State)
	if err != nil {
		return model.TaskStatus{}, err
	}
	return model.TaskStatus{
		State:         state,
		ReasonCode:    w.ReasonCode,
		ReasonMessage: w.ReasonMessage,
		TimestampMs:   w.Timestamp,
	}, nil
}

func toModelTaskState(s wire.TaskState) (model.TaskState, error) {
	switch s {
	case wire.TaskStateAccepted:
		return model.TaskStateAccepted, nil
	case wire.TaskStateLaunched:
		return model.TaskStateLaunched, nil
	case wire.TaskStateStartInitiated:
		return model.TaskStateStartInitiated, nil
	case wire.TaskStateStarted:
		return model.TaskStateStarted, nil
	case wire.TaskStateKillInitiated:
		return model.TaskStateKillInitiated, nil
	case wire.TaskStateDisconnected:
		return model.TaskStateDisconnected, nil
	case wire.TaskStateFinished:
		return model.TaskStateFinished, nil
	}
	return 0, unrecognizedState("TaskStatus", "state", string(s))
}

func toModelTaskStatusHistory(ws []wire.TaskStatus) ([]model.TaskStatus, error) {
	if len(ws) == 0 {
		return nil, nil
	}
	history := make([]model.TaskStatus, 0, len(ws))
	for _, w := range ws {
		status, err := ToModelTaskStatus(w)
		if err != nil {
			return nil, err
		}
		history = append(history, status)
	}
	return history, nil
}

// ToModelTask parses a wire task. Lineage fields are read from the reserved
// context entries, and the batch/service variant is inferred from the task
// index entry. The wire log location is derived data and is not read back.
func ToModelTask(w wire.Task) (model.Task, error) {
	lineage, err := parseTaskLineage(w.TaskContext)
	if err != nil {
		return model.Task{}, err
	}
	variant, err := classifyTask(w.TaskContext)
	if err != nil {
		return model.Task{}, err
	}
	if service, ok := variant.(model.ServiceTask); ok && w.MigrationDetails != nil {
		service.Migration = model.MigrationDetails{
			NeedsMigration: w.MigrationDetails.NeedsMigration,
			DeadlineMs:     w.MigrationDetails.Deadline,
		}
		variant = service
	}
	status, err := ToModelTaskStatus(w.Status)
	if err != nil {
		return model.Task{}, err
	}
	history, err := toModelTaskStatusHistory(w.StatusHistory)
	if err != nil {
		return model.Task{}, err
	}
	return model.Task{
		ID:             w.ID,
		JobID:          w.JobID,
		Status:         status,
		StatusHistory:  history,
		OriginalID:     lineage.originalID,
		ResubmitOf:     lineage.resubmitOf,
		ResubmitNumber: lineage.resubmitNumber,
		Context:        cloneMap(w.TaskContext),
		Variant:        variant,
	}, nil
}

// ToModelEvent parses a wire change notification into a lifecycle event. A
// notification with no branch set is structurally invalid.
func ToModelEvent(w wire.ChangeNotification) (model.Event, error) {
	switch w.Case() {
	case wire.ChangeNotificationCaseJobUpdate:
		job, err := ToModelJob(w.JobUpdate.Job)
		if err != nil {
			return nil, err
		}
		return model.JobUpdateEvent{Current: job}, nil
	case wire.ChangeNotificationCaseTaskUpdate:
		task, err := ToModelTask(w.TaskUpdate.Task)
		if err != nil {
			return nil, err
		}
		return model.TaskUpdateEvent{Current: task}, nil
	}
	return nil, missingField("ChangeNotification", "notification")
}
