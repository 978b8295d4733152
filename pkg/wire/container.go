package wire

// Image identifies the container image to run. Tag and Digest default to
// empty when the submitter did not pin them.
type Image struct {
	Name   string `json:"name" yaml:"name"`
	Tag    string `json:"tag" yaml:"tag"`
	Digest string `json:"digest" yaml:"digest"`
}

// MountPerm is the access mode of an EFS mount. Values are matched by name,
// never by position.
type MountPerm string

const (
	MountPermRO MountPerm = "RO"
	MountPermWO MountPerm = "WO"
	MountPermRW MountPerm = "RW"
)

// EfsMount is a shared-filesystem mount attached to a container.
type EfsMount struct {
	EfsID                 string    `json:"efsId" yaml:"efsId"`
	MountPoint            string    `json:"mountPoint" yaml:"mountPoint"`
	MountPerm             MountPerm `json:"mountPerm" yaml:"mountPerm"`
	EfsRelativeMountPoint string    `json:"efsRelativeMountPoint" yaml:"efsRelativeMountPoint"`
}

// ContainerResources is the resource envelope requested for a container.
type ContainerResources struct {
	CPU         float64    `json:"cpu" yaml:"cpu"`
	GPU         int        `json:"gpu" yaml:"gpu"`
	MemoryMB    int        `json:"memoryMB" yaml:"memoryMB"`
	DiskMB      int        `json:"diskMB" yaml:"diskMB"`
	NetworkMbps int        `json:"networkMbps" yaml:"networkMbps"`
	AllocateIP  bool       `json:"allocateIP" yaml:"allocateIP"`
	EfsMounts   []EfsMount `json:"efsMounts" yaml:"efsMounts"`
}

// SecurityProfile carries the network and identity settings of a container.
type SecurityProfile struct {
	SecurityGroups []string          `json:"securityGroups" yaml:"securityGroups"`
	IamRole        string            `json:"iamRole" yaml:"iamRole"`
	Attributes     map[string]string `json:"attributes" yaml:"attributes"`
}

// Constraints wraps a constraint map so the schema can grow beyond plain
// key/value pairs without breaking readers.
type Constraints struct {
	Constraints map[string]string `json:"constraints" yaml:"constraints"`
}

// Container is the full runtime specification of a job's container.
type Container struct {
	Image           Image              `json:"image" yaml:"image"`
	Resources       ContainerResources `json:"resources" yaml:"resources"`
	SecurityProfile SecurityProfile    `json:"securityProfile" yaml:"securityProfile"`
	Env             map[string]string  `json:"env" yaml:"env"`
	SoftConstraints Constraints        `json:"softConstraints" yaml:"softConstraints"`
	HardConstraints Constraints        `json:"hardConstraints" yaml:"hardConstraints"`
	EntryPoint      []string           `json:"entryPoint" yaml:"entryPoint"`
	Command         []string           `json:"command" yaml:"command"`
	Attributes      map[string]string  `json:"attributes" yaml:"attributes"`
}
