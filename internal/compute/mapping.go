package compute

// ToInstanceRecord maps a backend node to its canonical record. Missing
// location, operating system or hardware leave the related fields unset.
func ToInstanceRecord(node Node) InstanceRecord {
	record := InstanceRecord{
		ID:               node.ID,
		Name:             node.Name,
		InstanceType:     node.Type,
		ProviderID:       node.ProviderID,
		Status:           node.Status,
		BackendStatus:    node.BackendStatus,
		PrivateAddresses: copyAddresses(node.PrivateAddresses),
		PublicAddresses:  copyAddresses(node.PublicAddresses),
		ImageID:          node.ImageID,
	}

	if loc := node.Location; loc != nil {
		record.Zone = loc.ID
		if loc.Parent != nil {
			record.Region = loc.Parent.ID
		}
	}

	if os := node.OperatingSystem; os != nil {
		is64Bit := os.Is64Bit
		record.OSFamily = os.Family
		record.OSDescription = os.Description
		record.OS64Bit = &is64Bit
	}

	if node.Hardware != nil {
		record.HardwareType = node.Hardware.Type
	}

	return record
}

// ToInstanceRecords maps nodes in order.
func ToInstanceRecords(nodes []Node) []InstanceRecord {
	records := make([]InstanceRecord, 0, len(nodes))
	for _, n := range nodes {
		records = append(records, ToInstanceRecord(n))
	}
	return records
}

func copyAddresses(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
