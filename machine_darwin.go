package gxid

func platformProbes() []MachineProbe {
	return []MachineProbe{sysctlProbe("kern.uuid")}
}
