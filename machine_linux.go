package gxid

// Reading product_uuid usually requires root; unprivileged processes fall
// through to the host name.
func platformProbes() []MachineProbe {
	return []MachineProbe{
		FileProbe{Path: "/sys/class/dmi/id/product_uuid", Validate: validUUID},
	}
}
