package compute

import (
	"context"
	"errors"
)

// ErrBackendUnavailable is wrapped by backends when the provider could not be
// reached or refused the credentials.
var ErrBackendUnavailable = errors.New("backend unavailable")

// Compute types reported by backends.
const (
	ComputeTypeNode     = "NODE"
	ComputeTypeHardware = "HARDWARE"
	ComputeTypeImage    = "IMAGE"
)

// Normalized node statuses.
const (
	NodeStatusPending      = "PENDING"
	NodeStatusRunning      = "RUNNING"
	NodeStatusSuspended    = "SUSPENDED"
	NodeStatusTerminated   = "TERMINATED"
	NodeStatusError        = "ERROR"
	NodeStatusUnrecognized = "UNRECOGNIZED"
)

// Location is a region or zone. Zones carry their region as Parent.
type Location struct {
	ID     string
	Parent *Location
}

// OperatingSystem is reported by backends that know what a node runs.
type OperatingSystem struct {
	Family      string
	Description string
	Is64Bit     bool
}

// Hardware is a provider hardware profile (instance type, machine type).
type Hardware struct {
	ID       string
	Name     string
	Type     string
	Location *Location
}

// Image is a provider boot image.
type Image struct {
	ID   string
	Name string
}

// Node is the backend-native view of a compute resource. Location,
// OperatingSystem and Hardware are nil when the backend does not report them.
type Node struct {
	ID               string
	Name             string
	Type             string
	ProviderID       string
	Location         *Location
	OperatingSystem  *OperatingSystem
	Hardware         *Hardware
	Status           string
	BackendStatus    string
	PrivateAddresses []string
	PublicAddresses  []string
	ImageID          string
}

// NodeSpec is the provisioning request handed to Backend.CreateNodes.
type NodeSpec struct {
	ImageID             string
	LocationID          string
	HardwareID          string
	OS64Bit             bool
	SecurityGroups      []string
	KeyPair             string
	AuthorizedPublicKey string
	NetworkTags         []string
}

// SpecOption applies a provider-specific setting to a NodeSpec.
// Options only touch the fields they own.
type SpecOption func(*NodeSpec)

// Apply returns a copy of s with opts applied in order.
func (s NodeSpec) Apply(opts ...SpecOption) NodeSpec {
	out := s
	out.SecurityGroups = append([]string(nil), s.SecurityGroups...)
	out.NetworkTags = append([]string(nil), s.NetworkTags...)
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

// WithSecurityGroups appends security groups to the spec.
func WithSecurityGroups(groups ...string) SpecOption {
	return func(s *NodeSpec) {
		for _, g := range groups {
			if g != "" {
				s.SecurityGroups = append(s.SecurityGroups, g)
			}
		}
	}
}

// WithKeyPair sets the named key pair installed on new nodes.
func WithKeyPair(name string) SpecOption {
	return func(s *NodeSpec) {
		if name != "" {
			s.KeyPair = name
		}
	}
}

// WithAuthorizedPublicKey sets the public key authorized on new nodes.
func WithAuthorizedPublicKey(key string) SpecOption {
	return func(s *NodeSpec) {
		if key != "" {
			s.AuthorizedPublicKey = key
		}
	}
}

// WithNetworkTags appends network tags to the spec.
func WithNetworkTags(tags ...string) SpecOption {
	return func(s *NodeSpec) {
		for _, t := range tags {
			if t != "" {
				s.NetworkTags = append(s.NetworkTags, t)
			}
		}
	}
}

// Backend is the capability a provider SDK exposes to an adapter.
//
// CreateNodes returns the nodes that were actually created, which may be
// fewer than count. A non-nil error means the batch call itself failed.
type Backend interface {
	ListAllNodes(ctx context.Context) ([]Node, error)
	ListNodesInRegion(ctx context.Context, regionID string) ([]Node, error)
	ListHardwareProfiles(ctx context.Context) ([]Hardware, error)
	ListImages(ctx context.Context) ([]Image, error)
	CreateNodes(ctx context.Context, groupName string, count int, spec NodeSpec) ([]Node, error)
}

// ProviderAdapter is implemented once per cloud provider.
type ProviderAdapter interface {
	Name() string
	Discover(ctx context.Context, criteria SearchCriteria) ([]InstanceRecord, error)
	Create(ctx context.Context, template InstanceTemplate) (*ProvisionOutcome, error)
}
