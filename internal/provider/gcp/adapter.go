// Package gcp serves compute requests from Google Compute Engine.
package gcp

import (
	"context"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// ProviderName is the registry key of the GCP adapter.
const ProviderName = "GCP"

// Adapter implements compute.ProviderAdapter on top of a Compute Engine backend.
type Adapter struct {
	backend compute.Backend
	logger  log.Logger
}

var _ compute.ProviderAdapter = (*Adapter)(nil)

// NewAdapter creates a GCP adapter for backend.
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

// Create resolves the template's machine type and image by name and launches
// the group as one bulk insert. Nothing is provisioned when either name does
// not resolve.
func (a *Adapter) Create(ctx context.Context, template compute.InstanceTemplate) (*compute.ProvisionOutcome, error) {
	level.Info(a.logger).Log("msg", "instance creation begin", "group", template.GroupName, "count", template.InstanceCount)

	profiles, err := a.backend.ListHardwareProfiles(ctx)
	if err != nil {
		level.Error(a.logger).Log("msg", "listing machine types failed", "err", err)
		return nil, compute.NewCreationError(ProviderName, err)
	}
	hardware := compute.FindHardware(profiles, template.HardwareID, template.LocationID)
	if !hardware.Found {
		level.Warn(a.logger).Log("msg", "unknown machine type", "hardwareId", template.HardwareID)
		return nil, compute.NewNotFoundError(ProviderName, "hardwareId", template.HardwareID)
	}

	images, err := a.backend.ListImages(ctx)
	if err != nil {
		level.Error(a.logger).Log("msg", "listing images failed", "err", err)
		return nil, compute.NewCreationError(ProviderName, err)
	}
	image := compute.FindImage(images, template.ImageID)
	if !image.Found {
		level.Warn(a.logger).Log("msg", "unknown image", "imageId", template.ImageID)
		return nil, compute.NewNotFoundError(ProviderName, "imageId", template.ImageID)
	}

	spec := compute.NodeSpec{
		ImageID:    image.Value.ID,
		LocationID: template.LocationID,
		HardwareID: hardware.Value.ID,
		OS64Bit:    template.OS64Bit,
	}.Apply(
		compute.WithAuthorizedPublicKey(template.KeyPair),
		compute.WithNetworkTags(template.SecurityGroup),
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
