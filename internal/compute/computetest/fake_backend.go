// Package computetest provides an in-memory compute.Backend for tests.
package computetest

import (
	"context"
	"sync"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// CreateCall records one CreateNodes invocation.
type CreateCall struct {
	GroupName string
	Count     int
	Spec      compute.NodeSpec
}

// FakeBackend serves nodes from memory. Nodes match a region when their
// location or any of its parents has the region's ID.
type FakeBackend struct {
	mu sync.Mutex

	Nodes    []compute.Node
	Hardware []compute.Hardware
	Images   []compute.Image

	ListErr     error
	HardwareErr error
	ImagesErr   error
	CreateErr   error

	// CreateLimit caps the nodes returned by CreateNodes. Negative means no cap.
	CreateLimit int

	CreateCalls []CreateCall
}

// NewFakeBackend returns a FakeBackend with no creation cap.
func NewFakeBackend(nodes ...compute.Node) *FakeBackend {
	return &FakeBackend{Nodes: nodes, CreateLimit: -1}
}

func (f *FakeBackend) ListAllNodes(ctx context.Context) ([]compute.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]compute.Node(nil), f.Nodes...), nil
}

func (f *FakeBackend) ListNodesInRegion(ctx context.Context, regionID string) ([]compute.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	var out []compute.Node
	for _, n := range f.Nodes {
		for loc := n.Location; loc != nil; loc = loc.Parent {
			if loc.ID == regionID {
				out = append(out, n)
				break
			}
		}
	}
	return out, nil
}

func (f *FakeBackend) ListHardwareProfiles(ctx context.Context) ([]compute.Hardware, error) {
	if f.HardwareErr != nil {
		return nil, f.HardwareErr
	}
	return f.Hardware, nil
}

func (f *FakeBackend) ListImages(ctx context.Context) ([]compute.Image, error) {
	if f.ImagesErr != nil {
		return nil, f.ImagesErr
	}
	return f.Images, nil
}

func (f *FakeBackend) CreateNodes(ctx context.Context, groupName string, count int, spec compute.NodeSpec) ([]compute.Node, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateCalls = append(f.CreateCalls, CreateCall{GroupName: groupName, Count: count, Spec: spec})
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	n := count
	if f.CreateLimit >= 0 && f.CreateLimit < n {
		n = f.CreateLimit
	}
	nodes := make([]compute.Node, 0, n)
	for i := 0; i < n; i++ {
		nodes = append(nodes, NewNode(groupName, i, spec.LocationID))
	}
	return nodes, nil
}

// NewNode builds a running node in zone, named after its group.
func NewNode(group string, index int, zone string) compute.Node {
	id := group + "-" + string(rune('a'+index%26))
	return compute.Node{
		ID:            id,
		Name:          id,
		Type:          compute.ComputeTypeNode,
		ProviderID:    id,
		Location:      Zone(zone),
		Status:        compute.NodeStatusRunning,
		BackendStatus: "running",
	}
}

// Zone returns a zone location whose region is the zone ID without its last
// dash- or letter-suffix ("us-east-1a" -> "us-east-1", "europe-west1-b" ->
// "europe-west1").
func Zone(id string) *compute.Location {
	if id == "" {
		return nil
	}
	last := id[len(id)-1]
	if last < 'a' || last > 'z' {
		return &compute.Location{ID: id}
	}
	region := id[:len(id)-1]
	if i := lastDash(id); i > 0 && len(id)-i == 2 {
		region = id[:i]
	}
	return &compute.Location{ID: id, Parent: &compute.Location{ID: region}}
}

func lastDash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '-' {
			return i
		}
	}
	return -1
}
