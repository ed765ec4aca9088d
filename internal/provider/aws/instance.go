package aws

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// toNode converts an EC2 instance observed in region to a backend node.
func toNode(inst types.Instance, region string) compute.Node {
	id := aws.ToString(inst.InstanceId)
	node := compute.Node{
		ID:               id,
		Name:             nameTag(inst.Tags),
		Type:             compute.ComputeTypeNode,
		ProviderID:       id,
		ImageID:          aws.ToString(inst.ImageId),
		PrivateAddresses: privateAddresses(inst),
		PublicAddresses:  publicAddresses(inst),
	}

	regionLoc := &compute.Location{ID: region}
	if inst.Placement != nil && aws.ToString(inst.Placement.AvailabilityZone) != "" {
		node.Location = &compute.Location{
			ID:     aws.ToString(inst.Placement.AvailabilityZone),
			Parent: regionLoc,
		}
	}

	if inst.State != nil {
		node.BackendStatus = string(inst.State.Name)
		node.Status = nodeStatus(inst.State.Name)
	} else {
		node.Status = compute.NodeStatusUnrecognized
	}

	if details := aws.ToString(inst.PlatformDetails); details != "" {
		node.OperatingSystem = &compute.OperatingSystem{
			Family:      osFamily(inst.Platform, details),
			Description: details,
			Is64Bit:     is64Bit(inst.Architecture),
		}
	}

	if inst.InstanceType != "" {
		node.Hardware = &compute.Hardware{
			ID:       string(inst.InstanceType),
			Name:     string(inst.InstanceType),
			Type:     compute.ComputeTypeHardware,
			Location: regionLoc,
		}
	}

	return node
}

func nameTag(tags []types.Tag) string {
	for _, tag := range tags {
		if aws.ToString(tag.Key) == "Name" {
			return aws.ToString(tag.Value)
		}
	}
	return ""
}

func nodeStatus(state types.InstanceStateName) string {
	switch state {
	case types.InstanceStateNamePending:
		return compute.NodeStatusPending
	case types.InstanceStateNameRunning:
		return compute.NodeStatusRunning
	case types.InstanceStateNameStopping, types.InstanceStateNameStopped:
		return compute.NodeStatusSuspended
	case types.InstanceStateNameShuttingDown, types.InstanceStateNameTerminated:
		return compute.NodeStatusTerminated
	default:
		return compute.NodeStatusUnrecognized
	}
}

func osFamily(platform types.PlatformValues, details string) string {
	if platform == types.PlatformValuesWindows {
		return "WINDOWS"
	}
	d := strings.ToLower(details)
	switch {
	case strings.Contains(d, "windows"):
		return "WINDOWS"
	case strings.Contains(d, "red hat"):
		return "RHEL"
	case strings.Contains(d, "suse"):
		return "SUSE"
	case strings.Contains(d, "ubuntu"):
		return "UBUNTU"
	default:
		return "LINUX"
	}
}

func is64Bit(arch types.ArchitectureValues) bool {
	switch arch {
	case types.ArchitectureValuesX8664, types.ArchitectureValuesArm64,
		types.ArchitectureValuesX8664Mac, types.ArchitectureValuesArm64Mac:
		return true
	}
	return false
}

// privateAddresses lists interface addresses in the order EC2 reports them,
// falling back to the primary private address.
func privateAddresses(inst types.Instance) []string {
	var addrs []string
	for _, ni := range inst.NetworkInterfaces {
		for _, pip := range ni.PrivateIpAddresses {
			if addr := aws.ToString(pip.PrivateIpAddress); addr != "" {
				addrs = append(addrs, addr)
			}
		}
	}
	if len(addrs) == 0 && aws.ToString(inst.PrivateIpAddress) != "" {
		addrs = append(addrs, aws.ToString(inst.PrivateIpAddress))
	}
	return addrs
}

func publicAddresses(inst types.Instance) []string {
	if addr := aws.ToString(inst.PublicIpAddress); addr != "" {
		return []string{addr}
	}
	return nil
}
