package handlers

import (
	"github.com/dcm-project/compute-provisioner/internal/api/server"
	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// toTemplate converts an API template. Absent fields become zero values and
// are rejected per template by the service.
func toTemplate(t server.InstanceTemplate) compute.InstanceTemplate {
	return compute.InstanceTemplate{
		CloudProvider: value(t.CloudProvider),
		ImageID:       value(t.ImageId),
		LocationID:    value(t.LocationId),
		HardwareID:    value(t.HardwareId),
		OS64Bit:       value(t.Os64Bit),
		SecurityGroup: value(t.SecurityGroup),
		KeyPair:       value(t.KeyPair),
		GroupName:     value(t.GroupName),
		InstanceCount: value(t.InstanceCount),
	}
}

// fromOutcome converts an outcome, echoing the template exactly as received.
func fromOutcome(o *compute.ProvisionOutcome, template server.InstanceTemplate) *server.ProvisionOutcome {
	if o == nil {
		return nil
	}
	return &server.ProvisionOutcome{
		Template:       template,
		Instances:      fromRecords(o.Instances),
		RequestedCount: o.RequestedCount,
		Count:          o.Count,
		Status:         server.ProvisionOutcomeStatus(o.Status),
	}
}

func fromRecords(records []compute.InstanceRecord) []server.InstanceMetadata {
	out := make([]server.InstanceMetadata, 0, len(records))
	for _, r := range records {
		out = append(out, fromRecord(r))
	}
	return out
}

func fromRecord(r compute.InstanceRecord) server.InstanceMetadata {
	return server.InstanceMetadata{
		Id:               r.ID,
		Name:             optional(r.Name),
		ProviderId:       optional(r.ProviderID),
		Region:           optional(r.Region),
		Zone:             optional(r.Zone),
		Type:             optional(r.InstanceType),
		OsType:           optional(r.OSFamily),
		OsDescription:    optional(r.OSDescription),
		Os64bit:          r.OS64Bit,
		BackendStatus:    optional(r.BackendStatus),
		Status:           optional(r.Status),
		PrivateAddresses: nonNil(r.PrivateAddresses),
		PublicAddresses:  nonNil(r.PublicAddresses),
		ImageId:          optional(r.ImageID),
		HardwareType:     optional(r.HardwareType),
	}
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
