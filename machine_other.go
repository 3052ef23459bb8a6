//go:build !linux && !darwin && !freebsd && !windows

package gxid

func platformProbes() []MachineProbe {
	return nil
}
