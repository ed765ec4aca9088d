package gcp

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// Labels set on every instance launched by CreateNodes.
const (
	GroupLabelKey       = "compute-provisioner-group"
	BulkRequestLabelKey = "compute-provisioner-request"
)

const (
	maxPollInterval = 30 * time.Second
	maxPollExponent = 10
)

// Options configures a RESTBackend.
type Options struct {
	Endpoint      string
	Project       string
	AccessToken   string
	ImageProjects []string
	Network       string
	Timeout       time.Duration
	RetryCount    int
	OperationPoll time.Duration
}

// RESTBackend implements compute.Backend against the Compute Engine v1 REST
// API of one project.
type RESTBackend struct {
	client        *resty.Client
	project       string
	imageProjects []string
	network       string
	pollInterval  time.Duration
}

var _ compute.Backend = (*RESTBackend)(nil)

// NewRESTBackend creates a backend. Only idempotent reads are retried.
func NewRESTBackend(opts Options) *RESTBackend {
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.Endpoint, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
				return false
			}
			return resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500
		})
	if opts.AccessToken != "" {
		client.SetAuthToken(opts.AccessToken)
	}

	return &RESTBackend{
		client:        client,
		project:       opts.Project,
		imageProjects: opts.ImageProjects,
		network:       opts.Network,
		pollInterval:  opts.OperationPoll,
	}
}

func (b *RESTBackend) request(ctx context.Context) *resty.Request {
	return b.client.R().
		SetContext(ctx).
		SetError(&errorResponse{}).
		SetPathParam("project", b.project)
}

func (b *RESTBackend) ListAllNodes(ctx context.Context) ([]compute.Node, error) {
	return b.listAggregated(ctx, func(compute.Node) bool { return true })
}

// ListNodesInRegion accepts a region ("us-central1") or a zone
// ("us-central1-a").
func (b *RESTBackend) ListNodesInRegion(ctx context.Context, regionID string) ([]compute.Node, error) {
	if isZone(regionID) {
		return b.listZone(ctx, regionID, "")
	}
	return b.listAggregated(ctx, func(n compute.Node) bool {
		return n.Location != nil && n.Location.Parent != nil && n.Location.Parent.ID == regionID
	})
}

// ListHardwareProfiles returns one profile per machine type and zone.
func (b *RESTBackend) ListHardwareProfiles(ctx context.Context) ([]compute.Hardware, error) {
	var profiles []compute.Hardware
	pageToken := ""
	for {
		var page aggregatedMachineTypeList
		resp, err := b.request(ctx).
			SetQueryParams(pageQuery(pageToken)).
			SetResult(&page).
			Get("/projects/{project}/aggregated/machineTypes")
		if err := checkResponse(resp, err); err != nil {
			return nil, fmt.Errorf("error querying GCE machine types: %w", err)
		}

		for _, scope := range sortedKeys(page.Items) {
			for _, mt := range page.Items[scope].MachineTypes {
				profiles = append(profiles, compute.Hardware{
					ID:       mt.SelfLink,
					Name:     mt.Name,
					Type:     compute.ComputeTypeHardware,
					Location: zoneLocation(lastSegment(mt.Zone)),
				})
			}
		}

		if page.NextPageToken == "" {
			return profiles, nil
		}
		pageToken = page.NextPageToken
	}
}

// ListImages returns the images of the configured public image projects
// followed by the project's own images.
func (b *RESTBackend) ListImages(ctx context.Context) ([]compute.Image, error) {
	var images []compute.Image
	for _, project := range append(append([]string(nil), b.imageProjects...), b.project) {
		pageToken := ""
		for {
			var page imageList
			resp, err := b.request(ctx).
				SetPathParam("imageProject", project).
				SetQueryParams(pageQuery(pageToken)).
				SetResult(&page).
				Get("/projects/{imageProject}/global/images")
			if err := checkResponse(resp, err); err != nil {
				return nil, fmt.Errorf("error querying GCE images in %s: %w", project, err)
			}

			for _, img := range page.Items {
				images = append(images, compute.Image{ID: img.SelfLink, Name: img.Name})
			}

			if page.NextPageToken == "" {
				break
			}
			pageToken = page.NextPageToken
		}
	}
	return images, nil
}

// CreateNodes launches up to count instances with a single bulk insert and
// waits for the operation. The created instances are found through a label
// unique to the request, so a partially failed operation still reports the
// instances that came up.
func (b *RESTBackend) CreateNodes(ctx context.Context, groupName string, count int, spec compute.NodeSpec) ([]compute.Node, error) {
	zone := lastSegment(spec.LocationID)
	if !isZone(zone) {
		return nil, fmt.Errorf("a zone is required to create GCE instances, got %q", spec.LocationID)
	}

	requestID := uuid.NewString()
	body := b.bulkInsertBody(groupName, count, requestID, spec)

	var op operation
	resp, err := b.request(ctx).
		SetPathParam("zone", zone).
		SetQueryParam("requestId", requestID).
		SetBody(body).
		SetResult(&op).
		Post("/projects/{project}/zones/{zone}/instances/bulkInsert")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("error inserting GCE instances in %s: %w", zone, err)
	}

	op, err = b.waitOperation(ctx, zone, op)
	if err != nil {
		return nil, err
	}

	nodes, err := b.listZone(ctx, zone, fmt.Sprintf("labels.%s=%s", BulkRequestLabelKey, requestID))
	if err != nil {
		return nil, err
	}
	if op.Error != nil && len(nodes) == 0 {
		return nil, fmt.Errorf("GCE bulk insert in %s failed: %s", zone, op.Error)
	}
	return nodes, nil
}

func (b *RESTBackend) bulkInsertBody(groupName string, count int, requestID string, spec compute.NodeSpec) bulkInsertRequest {
	group := labelValue(groupName)
	props := instanceProperties{
		MachineType: lastSegment(spec.HardwareID),
		Disks: []attachedDisk{{
			Boot:             true,
			AutoDelete:       true,
			InitializeParams: &diskInitParams{SourceImage: spec.ImageID},
		}},
		NetworkInterfaces: []networkInterface{{
			Network:       b.network,
			AccessConfigs: []accessConfig{{Type: "ONE_TO_ONE_NAT", Name: "External NAT"}},
		}},
		Labels: map[string]string{
			GroupLabelKey:       group,
			BulkRequestLabelKey: requestID,
		},
	}
	if spec.AuthorizedPublicKey != "" {
		props.Metadata = &metadata{Items: []metadataItem{{Key: "ssh-keys", Value: spec.AuthorizedPublicKey}}}
	}
	if len(spec.NetworkTags) > 0 {
		props.Tags = &tags{Items: spec.NetworkTags}
	}

	return bulkInsertRequest{
		Count:              int64(count),
		MinCount:           1,
		NamePattern:        group + "-####",
		InstanceProperties: props,
	}
}

// waitOperation blocks until op is DONE. The wait call returns early on the
// server side, so repeated calls back off exponentially.
func (b *RESTBackend) waitOperation(ctx context.Context, zone string, op operation) (operation, error) {
	for attempt := 0; op.Status != "DONE"; attempt++ {
		if op.Name == "" {
			return op, fmt.Errorf("GCE returned an operation without a name")
		}

		var next operation
		resp, err := b.request(ctx).
			SetPathParams(map[string]string{"zone": zone, "operation": op.Name}).
			SetResult(&next).
			Post("/projects/{project}/zones/{zone}/operations/{operation}/wait")
		if err := checkResponse(resp, err); err != nil {
			return op, fmt.Errorf("error waiting for GCE operation %s: %w", op.Name, err)
		}
		op = next
		if op.Status == "DONE" {
			break
		}

		select {
		case <-ctx.Done():
			return op, ctx.Err()
		case <-time.After(PollBackoff(b.pollInterval, attempt)):
		}
	}
	return op, nil
}

// PollBackoff returns min(maxPollInterval, base * 2^attempt).
func PollBackoff(base time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > maxPollExponent {
		attempt = maxPollExponent
	}
	backoff := base << attempt
	if backoff > maxPollInterval {
		backoff = maxPollInterval
	}
	return backoff
}

func (b *RESTBackend) listAggregated(ctx context.Context, keep func(compute.Node) bool) ([]compute.Node, error) {
	var nodes []compute.Node
	pageToken := ""
	for {
		var page aggregatedInstanceList
		resp, err := b.request(ctx).
			SetQueryParams(pageQuery(pageToken)).
			SetResult(&page).
			Get("/projects/{project}/aggregated/instances")
		if err := checkResponse(resp, err); err != nil {
			return nil, fmt.Errorf("error querying GCE instances: %w", err)
		}

		for _, scope := range sortedKeys(page.Items) {
			for _, inst := range page.Items[scope].Instances {
				if node := toNode(inst); keep(node) {
					nodes = append(nodes, node)
				}
			}
		}

		if page.NextPageToken == "" {
			return nodes, nil
		}
		pageToken = page.NextPageToken
	}
}

func (b *RESTBackend) listZone(ctx context.Context, zone, filter string) ([]compute.Node, error) {
	var nodes []compute.Node
	pageToken := ""
	for {
		var page instanceList
		req := b.request(ctx).
			SetPathParam("zone", zone).
			SetQueryParams(pageQuery(pageToken)).
			SetResult(&page)
		if filter != "" {
			req.SetQueryParam("filter", filter)
		}
		resp, err := req.Get("/projects/{project}/zones/{zone}/instances")
		if err := checkResponse(resp, err); err != nil {
			return nil, fmt.Errorf("error querying GCE instances in %s: %w", zone, err)
		}

		for _, inst := range page.Items {
			nodes = append(nodes, toNode(inst))
		}

		if page.NextPageToken == "" {
			return nodes, nil
		}
		pageToken = page.NextPageToken
	}
}

func pageQuery(pageToken string) map[string]string {
	if pageToken == "" {
		return nil
	}
	return map[string]string{"pageToken": pageToken}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// labelValue lowercases s and replaces characters GCE rejects in label values
// and instance names.
func labelValue(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteRune('-')
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" || out[0] < 'a' || out[0] > 'z' {
		out = "node-" + out
	}
	if len(out) > 58 {
		out = out[:58]
	}
	return strings.TrimRight(out, "-")
}
