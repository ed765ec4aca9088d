package compute

import (
	"context"
	"fmt"
)

// CollectNodes enumerates backend nodes for criteria. With no regions every
// visible node is listed; otherwise each region is listed in the given order
// and the results appended without deduplication. The first error aborts.
func CollectNodes(ctx context.Context, backend Backend, criteria SearchCriteria) ([]Node, error) {
	if len(criteria.Regions) == 0 {
		nodes, err := backend.ListAllNodes(ctx)
		if err != nil {
			return nil, fmt.Errorf("list all nodes: %w", err)
		}
		return nodes, nil
	}

	var nodes []Node
	for _, region := range criteria.Regions {
		regionNodes, err := backend.ListNodesInRegion(ctx, region)
		if err != nil {
			return nil, fmt.Errorf("list nodes in region %s: %w", region, err)
		}
		nodes = append(nodes, regionNodes...)
	}
	return nodes, nil
}
