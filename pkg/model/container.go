package model

// Image identifies the container image to run. Exactly one of Tag or Digest
// is normally set; the converter treats both as independently optional.
type Image struct {
	Name   string
	Tag    *string
	Digest *string
}

// MountPerm is the access mode of an EFS mount.
type MountPerm int

const (
	mountPermUnspecified MountPerm = iota
	MountPermRO
	MountPermWO
	MountPermRW
)

func (p MountPerm) String() string {
	switch p {
	case MountPermRO:
		return "RO"
	case MountPermWO:
		return "WO"
	case MountPermRW:
		return "RW"
	}
	return "Unspecified"
}

// EfsMount is a shared-filesystem mount attached to a container.
type EfsMount struct {
	EfsID              string
	MountPoint         string
	Perm               MountPerm
	RelativeMountPoint string
}

// ContainerResources is the resource envelope requested for a container.
type ContainerResources struct {
	CPU         float64
	GPU         int
	MemoryMB    int
	DiskMB      int
	NetworkMbps int
	AllocateIP  bool

	// EfsMounts is ordered; mount order is significant at container start.
	EfsMounts []EfsMount
}

// SecurityProfile carries the network and identity settings of a container.
type SecurityProfile struct {
	SecurityGroups []string
	IAMRole        *string
	Attributes     map[string]string
}

// Container is the full runtime specification of a job's container.
type Container struct {
	Image           Image
	Resources       ContainerResources
	SecurityProfile SecurityProfile
	Env             map[string]string

	SoftConstraints map[string]string
	HardConstraints map[string]string

	// EntryPoint and Command are ordered argument vectors.
	EntryPoint []string
	Command    []string

	Attributes map[string]string
}
