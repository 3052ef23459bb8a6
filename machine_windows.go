package gxid

import "golang.org/x/sys/windows/registry"

func platformProbes() []MachineProbe {
	return []MachineProbe{NewProbe("registry:MachineGuid", machineGUID)}
}

func machineGUID() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Cryptography`, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return "", err
	}
	defer k.Close()

	s, _, err := k.GetStringValue("MachineGuid")
	if err != nil {
		return "", err
	}
	if err := validUUID(s); err != nil {
		return "", err
	}
	return s, nil
}
