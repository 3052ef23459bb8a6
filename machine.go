package gxid

import (
	"crypto/md5"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// MachineProbe produces a string that is stable for the host it runs on.
// A probe fails by returning an error or an empty string.
type MachineProbe interface {
	Name() string
	Probe() (string, error)
}

type probeFunc struct {
	name string
	fn   func() (string, error)
}

func (p probeFunc) Name() string           { return p.name }
func (p probeFunc) Probe() (string, error) { return p.fn() }

// NewProbe wraps fn as a MachineProbe
func NewProbe(name string, fn func() (string, error)) MachineProbe {
	return probeFunc{name: name, fn: fn}
}

// FileProbe reads a machine identifier from a file.
// The contents are returned as read; Validate sees them trimmed.
type FileProbe struct {
	Path     string
	Validate func(string) error
}

func (p FileProbe) Name() string { return "file:" + p.Path }

func (p FileProbe) Probe() (string, error) {
	b, err := os.ReadFile(p.Path)
	if err != nil {
		return "", err
	}
	s := string(b)
	if strings.TrimSpace(s) == "" {
		return "", ErrEmptyProbe
	}
	if p.Validate != nil {
		if err := p.Validate(strings.TrimSpace(s)); err != nil {
			return "", fmt.Errorf("%s: %w", p.Path, err)
		}
	}
	return s, nil
}

// HostnameProbe returns the host name reported by the kernel
type HostnameProbe struct{}

func (HostnameProbe) Name() string { return "hostname" }

func (HostnameProbe) Probe() (string, error) {
	return os.Hostname()
}

// DefaultProbes returns the platform hardware probes followed by the host name
func DefaultProbes() []MachineProbe {
	return append(platformProbes(), HostnameProbe{})
}

// validUUID rejects strings that are not UUIDs, and the all-zero UUID some
// firmware reports for unset product ids.
func validUUID(s string) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	if u == uuid.Nil {
		return ErrEmptyProbe
	}
	return nil
}

// readMachineID hashes the first non-empty probe result with md5 and keeps
// 3 bytes of the digest. With no usable probe it falls back to random bytes.
func readMachineID(probes []MachineProbe, r io.Reader, logger *slog.Logger) [3]byte {
	var id [3]byte
	for _, p := range probes {
		s, err := p.Probe()
		if err == nil && s == "" {
			err = ErrEmptyProbe
		}
		if err != nil {
			if logger != nil {
				logger.Debug("machine probe failed", slog.String("probe", p.Name()), slog.Any("error", err))
			}
			continue
		}
		sum := md5.Sum([]byte(s))
		copy(id[:], sum[:3])
		return id
	}
	if logger != nil {
		logger.Debug("no machine probe succeeded, using random machine id")
	}
	mustReadRandom(r, id[:])
	return id
}
