//go:build darwin || freebsd

package gxid

import "golang.org/x/sys/unix"

func sysctlProbe(name string) MachineProbe {
	return NewProbe("sysctl:"+name, func() (string, error) {
		s, err := unix.Sysctl(name)
		if err != nil {
			return "", err
		}
		if err := validUUID(s); err != nil {
			return "", err
		}
		return s, nil
	})
}
