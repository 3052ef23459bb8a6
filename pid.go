package gxid

import (
	"hash/crc32"
	"log/slog"
	"os"
)

// readPid mixes the cgroup cpuset of the process into pid. Containers sharing
// a host each see small pids, often 1; the checksum of their cpuset keeps
// them apart. An unreadable marker leaves pid as is.
func readPid(pid int, cgroupPath string, logger *slog.Logger) uint32 {
	p := uint32(pid)
	b, err := os.ReadFile(cgroupPath)
	if err != nil || len(b) == 0 {
		if logger != nil {
			logger.Debug("cgroup marker unavailable, using raw pid",
				slog.String("path", cgroupPath), slog.Any("error", err))
		}
		return p
	}
	return p ^ crc32.ChecksumIEEE(b)
}
