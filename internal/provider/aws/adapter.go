// Package aws serves compute requests from Amazon EC2.
package aws

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// ProviderName is the registry key of the AWS adapter.
const ProviderName = "AWS"

// Adapter implements compute.ProviderAdapter on top of an EC2 backend.
type Adapter struct {
	backend compute.Backend
	logger  log.Logger
}

var _ compute.ProviderAdapter = (*Adapter)(nil)

// NewAdapter creates an AWS adapter for backend.
func NewAdapter(backend compute.Backend, logger log.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		logger:  log.With(logger, "provider", ProviderName),
	}
}

func (a *Adapter) Name() string {
	return ProviderName
}

// Discover lists the instances matching criteria.
func (a *Adapter) Discover(ctx context.Context, criteria compute.SearchCriteria) ([]compute.InstanceRecord, error) {
	level.Info(a.logger).Log("msg", "instance discovery begin", "regions", strings.Join(criteria.Regions, ","))

	nodes, err := compute.CollectNodes(ctx, a.backend, criteria)
	if err != nil {
		level.Error(a.logger).Log("msg", "instance discovery failed", "err", err)
		return nil, compute.NewDiscoveryError(ProviderName, err)
	}

	records := compute.ToInstanceRecords(nodes)
	level.Info(a.logger).Log("msg", "instance discovery done", "count", len(records))
	return records, nil
}

// Create launches template.InstanceCount instances as one batch. The image
// and hardware IDs are EC2 identifiers and are passed through unresolved.
func (a *Adapter) Create(ctx context.Context, template compute.InstanceTemplate) (*compute.ProvisionOutcome, error) {
	level.Info(a.logger).Log("msg", "instance creation begin", "group", template.GroupName, "count", template.InstanceCount)

	spec := compute.NodeSpec{
		ImageID:    template.ImageID,
		LocationID: template.LocationID,
		HardwareID: template.HardwareID,
		OS64Bit:    template.OS64Bit,
	}.Apply(
		compute.WithSecurityGroups(template.SecurityGroup),
		compute.WithKeyPair(template.KeyPair),
	)

	nodes, err := a.backend.CreateNodes(ctx, template.GroupName, template.InstanceCount, spec)
	if err != nil {
		level.Error(a.logger).Log("msg", "instance creation failed", "group", template.GroupName, "err", err)
		return nil, compute.NewCreationError(ProviderName, err)
	}

	outcome := compute.NewProvisionOutcome(template, compute.ToInstanceRecords(nodes))
	level.Info(a.logger).Log("msg", "instance creation done", "group", template.GroupName,
		"requested", outcome.RequestedCount, "created", outcome.Count, "status", outcome.Status)
	return outcome, nil
}
