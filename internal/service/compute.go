package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"

	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/metrics"
	"github.com/dcm-project/compute-provisioner/internal/provider"
)

const defaultMaxParallel = 8

// DiscoveryOutcome is the discovery result of one provider. Instances is nil
// when Err is set.
type DiscoveryOutcome struct {
	compute.DiscoveryResult
	Err error
}

// CreateResult is the creation result of one template. Outcome is nil when
// Err is set.
type CreateResult struct {
	Template compute.InstanceTemplate
	Outcome  *compute.ProvisionOutcome
	Err      error
}

// ComputeService fans discovery and creation requests out to the registered
// provider adapters. Each unit of work writes only its own result slot.
type ComputeService struct {
	registry    *provider.Registry
	metrics     *metrics.Metrics
	logger      log.Logger
	maxParallel int
}

// NewComputeService creates a ComputeService. maxParallel bounds the number
// of units running at once; values below one use the default.
func NewComputeService(registry *provider.Registry, m *metrics.Metrics, logger log.Logger, maxParallel int) *ComputeService {
	if maxParallel < 1 {
		maxParallel = defaultMaxParallel
	}
	return &ComputeService{
		registry:    registry,
		metrics:     m,
		logger:      logger,
		maxParallel: maxParallel,
	}
}

// DiscoverAll runs discovery on every resolved provider and returns one
// outcome per provider in resolution order. The returned error is set only
// when no requested provider is registered.
func (s *ComputeService) DiscoverAll(ctx context.Context, providerNames []string, criteria compute.SearchCriteria) ([]DiscoveryOutcome, error) {
	resolutions, err := s.registry.Resolve(providerNames)
	if err != nil {
		if errors.Is(err, provider.ErrNoProvider) {
			return nil, NewUnknownProviderError(err.Error())
		}
		return nil, err
	}

	outcomes := make([]DiscoveryOutcome, len(resolutions))
	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, res := range resolutions {
		g.Go(func() error {
			outcomes[i] = s.discover(ctx, res, criteria)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, nil
}

func (s *ComputeService) discover(ctx context.Context, res provider.Resolution, criteria compute.SearchCriteria) (out DiscoveryOutcome) {
	out.Provider = res.Name
	if res.Err != nil {
		out.Err = res.Err
		return out
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			level.Error(s.logger).Log("msg", "provider discovery panicked", "provider", res.Name, "panic", r)
			out.Instances = nil
			out.Err = compute.NewDiscoveryError(res.Name, fmt.Errorf("adapter panic: %v", r))
		}
		s.metrics.ObserveDiscovery(res.Name, len(out.Instances), out.Err, time.Since(start))
	}()

	out.Instances, out.Err = res.Adapter.Discover(ctx, criteria)
	if out.Err != nil {
		out.Instances = nil
	} else if out.Instances == nil {
		out.Instances = []compute.InstanceRecord{}
	}
	return out
}

// CreateAll creates every template on its provider and returns one result per
// template in input order. The returned error is set only when there is
// nothing to create.
func (s *ComputeService) CreateAll(ctx context.Context, templates []compute.InstanceTemplate) ([]CreateResult, error) {
	if len(templates) == 0 {
		return nil, NewValidationError("at least one instance template is required")
	}

	results := make([]CreateResult, len(templates))
	var g errgroup.Group
	g.SetLimit(s.maxParallel)
	for i, template := range templates {
		g.Go(func() error {
			results[i] = s.create(ctx, template)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (s *ComputeService) create(ctx context.Context, template compute.InstanceTemplate) (out CreateResult) {
	out.Template = template

	name := s.route(template)
	if err := validateTemplate(name, template); err != nil {
		out.Err = err
		return out
	}
	adapter, ok := s.registry.Lookup(name)
	if !ok {
		out.Err = compute.NewUnknownProviderError(name)
		return out
	}
	name = adapter.Name()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			level.Error(s.logger).Log("msg", "instance creation panicked", "provider", name, "group", template.GroupName, "panic", r)
			out.Outcome = nil
			out.Err = compute.NewCreationError(name, fmt.Errorf("adapter panic: %v", r))
		}
		status, created := compute.ErrorCode(out.Err), 0
		if out.Err != nil && status == "" {
			status = compute.ErrCodeCreation
		}
		if out.Outcome != nil {
			status, created = string(out.Outcome.Status), out.Outcome.Count
		}
		s.metrics.ObserveProvision(name, status, created, time.Since(start))
	}()

	out.Outcome, out.Err = adapter.Create(ctx, template)
	if out.Err != nil {
		out.Outcome = nil
	}
	return out
}

// route returns the provider a template is dispatched to. A template without a
// provider goes to the only registered provider, if there is exactly one.
func (s *ComputeService) route(template compute.InstanceTemplate) string {
	if name := strings.TrimSpace(template.CloudProvider); name != "" {
		return name
	}
	if names := s.registry.Names(); len(names) == 1 {
		return names[0]
	}
	return ""
}

func validateTemplate(providerName string, template compute.InstanceTemplate) error {
	if providerName == "" {
		return compute.NewValidationError("", "cloudProvider", "cloudProvider is required when several providers are registered")
	}
	for _, f := range []struct{ name, value string }{
		{"imageId", template.ImageID},
		{"locationId", template.LocationID},
		{"hardwareId", template.HardwareID},
		{"groupName", template.GroupName},
	} {
		if strings.TrimSpace(f.value) == "" {
			return compute.NewValidationError(providerName, f.name, f.name+" is required")
		}
	}
	if template.InstanceCount < 1 {
		return compute.NewValidationError(providerName, "instanceCount", "instanceCount must be at least 1")
	}
	if template.InstanceCount > compute.MaxInstanceCount {
		return compute.NewValidationError(providerName, "instanceCount",
			fmt.Sprintf("instanceCount must be at most %d", compute.MaxInstanceCount))
	}
	return nil
}
