package compute

import "math"

// ProvisionStatus classifies a batch creation relative to what was requested.
type ProvisionStatus string

const (
	StatusSuccess        ProvisionStatus = "Success"
	StatusPartialSuccess ProvisionStatus = "Partial Success"
	StatusFailure        ProvisionStatus = "Failure"
)

// InstanceRecord is the provider-independent snapshot of a single node.
// Only ID is guaranteed to be set.
type InstanceRecord struct {
	ID               string   `json:"id"`
	Name             string   `json:"name,omitempty"`
	ProviderID       string   `json:"providerId,omitempty"`
	Region           string   `json:"region,omitempty"`
	Zone             string   `json:"zone,omitempty"`
	InstanceType     string   `json:"type,omitempty"`
	OSFamily         string   `json:"osType,omitempty"`
	OSDescription    string   `json:"osDescription,omitempty"`
	OS64Bit          *bool    `json:"os64bit,omitempty"`
	BackendStatus    string   `json:"backendStatus,omitempty"`
	Status           string   `json:"status,omitempty"`
	PrivateAddresses []string `json:"privateAddresses"`
	PublicAddresses  []string `json:"publicAddresses"`
	ImageID          string   `json:"imageId,omitempty"`
	HardwareType     string   `json:"hardwareType,omitempty"`
}

// SearchCriteria filters discovery. An empty Regions list means all regions.
type SearchCriteria struct {
	Regions []string `json:"regions"`
}

// MaxInstanceCount bounds InstanceTemplate.InstanceCount. Backends take the
// count as a 32-bit value.
const MaxInstanceCount = math.MaxInt32

// InstanceTemplate describes a batch of instances to create on one provider.
type InstanceTemplate struct {
	CloudProvider string `json:"cloudProvider,omitempty"`
	ImageID       string `json:"imageId"`
	LocationID    string `json:"locationId"`
	HardwareID    string `json:"hardwareId"`
	OS64Bit       bool   `json:"os64Bit"`
	SecurityGroup string `json:"securityGroup,omitempty"`
	KeyPair       string `json:"keyPair,omitempty"`
	GroupName     string `json:"groupName"`
	InstanceCount int    `json:"instanceCount"`
}

// ProvisionOutcome is the result of one template against one provider.
// Build it with NewProvisionOutcome so Status always agrees with the counts.
type ProvisionOutcome struct {
	Template       InstanceTemplate `json:"template"`
	Instances      []InstanceRecord `json:"instances"`
	RequestedCount int              `json:"requestedCount"`
	Count          int              `json:"count"`
	Status         ProvisionStatus  `json:"status"`
}

// DiscoveryResult holds the instances discovered on one provider.
type DiscoveryResult struct {
	Provider  string           `json:"cloudProvider"`
	Instances []InstanceRecord `json:"instances"`
}

// DeriveStatus returns Success when every requested instance was created,
// Failure when none were, and PartialSuccess otherwise.
func DeriveStatus(requested, created int) ProvisionStatus {
	switch {
	case created >= requested:
		return StatusSuccess
	case created <= 0:
		return StatusFailure
	default:
		return StatusPartialSuccess
	}
}

// NewProvisionOutcome folds the created instances into an outcome for template.
func NewProvisionOutcome(template InstanceTemplate, created []InstanceRecord) *ProvisionOutcome {
	if created == nil {
		created = []InstanceRecord{}
	}
	return &ProvisionOutcome{
		Template:       template,
		Instances:      created,
		RequestedCount: template.InstanceCount,
		Count:          len(created),
		Status:         DeriveStatus(template.InstanceCount, len(created)),
	}
}
