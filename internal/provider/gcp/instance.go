package gcp

import (
	"strings"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// toNode converts a Compute Engine instance to a backend node.
func toNode(inst instance) compute.Node {
	zone := lastSegment(inst.Zone)
	id := inst.SelfLink
	if id == "" {
		id = zone + "/" + inst.Name
	}

	node := compute.Node{
		ID:               id,
		Name:             inst.Name,
		Type:             compute.ComputeTypeNode,
		ProviderID:       inst.ID,
		Location:         zoneLocation(zone),
		Status:           nodeStatus(inst.Status),
		BackendStatus:    inst.Status,
		PrivateAddresses: privateAddresses(inst.NetworkInterfaces),
		PublicAddresses:  publicAddresses(inst.NetworkInterfaces),
		OperatingSystem:  operatingSystem(inst.Disks),
	}

	if name := lastSegment(inst.MachineType); name != "" {
		node.Hardware = &compute.Hardware{
			ID:       inst.MachineType,
			Name:     name,
			Type:     compute.ComputeTypeHardware,
			Location: node.Location,
		}
	}
	return node
}

func nodeStatus(status string) string {
	switch status {
	case "PROVISIONING", "STAGING":
		return compute.NodeStatusPending
	case "RUNNING":
		return compute.NodeStatusRunning
	case "STOPPING", "SUSPENDING", "SUSPENDED", "TERMINATED":
		return compute.NodeStatusSuspended
	case "REPAIRING":
		return compute.NodeStatusError
	default:
		return compute.NodeStatusUnrecognized
	}
}

// operatingSystem derives the OS from the boot disk licenses. Instances whose
// boot disk carries no license report no OS.
func operatingSystem(disks []attachedDisk) *compute.OperatingSystem {
	for _, d := range disks {
		if !d.Boot || len(d.Licenses) == 0 {
			continue
		}
		license := lastSegment(d.Licenses[0])
		return &compute.OperatingSystem{
			Family:      osFamily(license),
			Description: license,
			Is64Bit:     d.Architecture == "" || d.Architecture == "X86_64" || d.Architecture == "ARM64",
		}
	}
	return nil
}

func osFamily(license string) string {
	switch {
	case strings.HasPrefix(license, "windows"):
		return "WINDOWS"
	case strings.HasPrefix(license, "ubuntu"):
		return "UBUNTU"
	case strings.HasPrefix(license, "debian"):
		return "DEBIAN"
	case strings.HasPrefix(license, "rhel"):
		return "RHEL"
	case strings.HasPrefix(license, "sles"):
		return "SUSE"
	case strings.HasPrefix(license, "centos"):
		return "CENTOS"
	default:
		return "LINUX"
	}
}

func privateAddresses(nics []networkInterface) []string {
	var addrs []string
	for _, nic := range nics {
		if nic.NetworkIP != "" {
			addrs = append(addrs, nic.NetworkIP)
		}
	}
	return addrs
}

func publicAddresses(nics []networkInterface) []string {
	var addrs []string
	for _, nic := range nics {
		for _, ac := range nic.AccessConfigs {
			if ac.NatIP != "" {
				addrs = append(addrs, ac.NatIP)
			}
		}
	}
	return addrs
}

// zoneLocation returns the zone with its region as parent
// ("us-central1-a" -> "us-central1").
func zoneLocation(zone string) *compute.Location {
	if zone == "" {
		return nil
	}
	loc := &compute.Location{ID: zone}
	if i := strings.LastIndex(zone, "-"); i > 0 {
		loc.Parent = &compute.Location{ID: zone[:i]}
	}
	return loc
}

// isZone reports whether id names a zone rather than a region.
func isZone(id string) bool {
	i := strings.LastIndex(id, "-")
	if i < 0 || len(id)-i != 2 {
		return false
	}
	last := id[len(id)-1]
	return last >= 'a' && last <= 'z'
}

// lastSegment returns the final path element of a resource URL, or s itself.
func lastSegment(s string) string {
	return s[strings.LastIndex(s, "/")+1:]
}
