package handlers

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/dcm-project/compute-provisioner/internal/api/server"
	"github.com/dcm-project/compute-provisioner/internal/compute"
	"github.com/dcm-project/compute-provisioner/internal/service"
)

// ComputeService is the orchestration the handlers dispatch to.
type ComputeService interface {
	DiscoverAll(ctx context.Context, providerNames []string, criteria compute.SearchCriteria) ([]service.DiscoveryOutcome, error)
	CreateAll(ctx context.Context, templates []compute.InstanceTemplate) ([]service.CreateResult, error)
}

// Handler implements the generated StrictServerInterface for the compute API.
type Handler struct {
	computeService ComputeService
	logger         log.Logger
}

// NewHandler creates a new Handler with the given compute service.
func NewHandler(computeService ComputeService, logger log.Logger) *Handler {
	return &Handler{computeService: computeService, logger: logger}
}

// Ensure Handler implements StrictServerInterface
var _ server.StrictServerInterface = (*Handler)(nil)

func (h *Handler) GetHealth(ctx context.Context, request server.GetHealthRequestObject) (server.GetHealthResponseObject, error) {
	status := "ok"
	path := "health"
	return server.GetHealth200JSONResponse{Status: &status, Path: &path}, nil
}

func (h *Handler) ListInstances(ctx context.Context, request server.ListInstancesRequestObject) (server.ListInstancesResponseObject, error) {
	results, err := h.discover(ctx, nil, nil)
	if err != nil {
		problem := handleServiceError(err, "Failed to list instances")
		switch *problem.Status {
		case http.StatusBadRequest:
			return server.ListInstances400ApplicationProblemPlusJSONResponse(problem), nil
		case http.StatusNotFound:
			return server.ListInstances404ApplicationProblemPlusJSONResponse(problem), nil
		}
		return server.ListInstances500ApplicationProblemPlusJSONResponse(problem), nil
	}
	return server.ListInstances200JSONResponse(results), nil
}

func (h *Handler) ListInstancesByProvider(ctx context.Context, request server.ListInstancesByProviderRequestObject) (server.ListInstancesByProviderResponseObject, error) {
	results, err := h.discover(ctx, request.CloudProviders, nil)
	if err != nil {
		problem := handleServiceError(err, "Failed to list instances")
		switch *problem.Status {
		case http.StatusBadRequest:
			return server.ListInstancesByProvider400ApplicationProblemPlusJSONResponse(problem), nil
		case http.StatusNotFound:
			return server.ListInstancesByProvider404ApplicationProblemPlusJSONResponse(problem), nil
		}
		return server.ListInstancesByProvider500ApplicationProblemPlusJSONResponse(problem), nil
	}
	return server.ListInstancesByProvider200JSONResponse(results), nil
}

func (h *Handler) ListInstancesByRegion(ctx context.Context, request server.ListInstancesByRegionRequestObject) (server.ListInstancesByRegionResponseObject, error) {
	results, err := h.discover(ctx, nil, request.Regions)
	if err != nil {
		problem := handleServiceError(err, "Failed to list instances")
		switch *problem.Status {
		case http.StatusBadRequest:
			return server.ListInstancesByRegion400ApplicationProblemPlusJSONResponse(problem), nil
		case http.StatusNotFound:
			return server.ListInstancesByRegion404ApplicationProblemPlusJSONResponse(problem), nil
		}
		return server.ListInstancesByRegion500ApplicationProblemPlusJSONResponse(problem), nil
	}
	return server.ListInstancesByRegion200JSONResponse(results), nil
}

func (h *Handler) ListInstancesByProviderAndRegion(ctx context.Context, request server.ListInstancesByProviderAndRegionRequestObject) (server.ListInstancesByProviderAndRegionResponseObject, error) {
	results, err := h.discover(ctx, request.CloudProviders, request.Regions)
	if err != nil {
		problem := handleServiceError(err, "Failed to list instances")
		switch *problem.Status {
		case http.StatusBadRequest:
			return server.ListInstancesByProviderAndRegion400ApplicationProblemPlusJSONResponse(problem), nil
		case http.StatusNotFound:
			return server.ListInstancesByProviderAndRegion404ApplicationProblemPlusJSONResponse(problem), nil
		}
		return server.ListInstancesByProviderAndRegion500ApplicationProblemPlusJSONResponse(problem), nil
	}
	return server.ListInstancesByProviderAndRegion200JSONResponse(results), nil
}

func (h *Handler) CreateInstances(ctx context.Context, request server.CreateInstancesRequestObject) (server.CreateInstancesResponseObject, error) {
	var body server.CreateInstancesJSONBody
	if request.Body != nil {
		body = *request.Body
	}

	templates := make([]compute.InstanceTemplate, len(body))
	for i, t := range body {
		templates[i] = toTemplate(t)
	}

	results, err := h.computeService.CreateAll(ctx, templates)
	if err != nil {
		level.Warn(h.logger).Log("msg", "instance creation rejected", "err", err)
		problem := handleServiceError(err, "Failed to create instances")
		if *problem.Status == http.StatusBadRequest {
			return server.CreateInstances400ApplicationProblemPlusJSONResponse(problem), nil
		}
		return server.CreateInstances500ApplicationProblemPlusJSONResponse(problem), nil
	}

	resp := make(server.CreateInstances200JSONResponse, 0, len(results))
	for i, res := range results {
		resp = append(resp, server.CreateResult{
			Template: body[i],
			Outcome:  fromOutcome(res.Outcome, body[i]),
			Error:    toUnitError(res.Err, compute.ErrCodeCreation),
		})
	}
	return resp, nil
}

func (h *Handler) discover(ctx context.Context, providers, regions []string) ([]server.DiscoveryResult, error) {
	outcomes, err := h.computeService.DiscoverAll(ctx, providers, compute.SearchCriteria{Regions: regions})
	if err != nil {
		level.Warn(h.logger).Log("msg", "instance discovery rejected", "err", err)
		return nil, err
	}

	results := make([]server.DiscoveryResult, 0, len(outcomes))
	for _, o := range outcomes {
		results = append(results, server.DiscoveryResult{
			CloudProvider: o.Provider,
			Instances:     fromRecords(o.Instances),
			Error:         toUnitError(o.Err, compute.ErrCodeDiscovery),
		})
	}
	return results, nil
}
