package gxid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"
)

const (
	counterMask = 1<<24 - 1

	defaultCgroupPath = "/proc/self/cpuset"
)

// Config controls how a Generator derives its fixed fields.
// The zero value of every field selects the default.
type Config struct {
	// Rand seeds the counter and backs the last resort machine id.
	Rand io.Reader
	// Probes are tried in order to find a stable machine string.
	Probes []MachineProbe
	// CgroupPath is the container identity marker folded into the pid.
	CgroupPath string
	// Pid overrides the OS process id.
	Pid int
	// Now is the clock used by Generator.New.
	Now func() time.Time
	// Logger receives debug records about environment fallbacks. Nil disables them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by NewGenerator
func DefaultConfig() Config {
	return Config{
		Rand:       rand.Reader,
		Probes:     DefaultProbes(),
		CgroupPath: defaultCgroupPath,
		Pid:        os.Getpid(),
		Now:        time.Now,
	}
}

// Generator produces IDs from a fixed machine id and pid and a lock-free
// counter. It is safe for concurrent use and must not be copied.
type Generator struct {
	counter   atomic.Uint32
	machineID [3]byte
	pid       uint32
	now       func() time.Time
}

// NewGenerator creates a generator using the default configuration.
// Construction reads the environment once; keep the generator for the
// lifetime of the process.
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(DefaultConfig())
}

// NewGeneratorWithConfig creates a generator from cfg. It never fails on
// environment errors; it panics only if the random source is broken.
func NewGeneratorWithConfig(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Rand == nil {
		cfg.Rand = def.Rand
	}
	if cfg.Probes == nil {
		cfg.Probes = def.Probes
	}
	if cfg.CgroupPath == "" {
		cfg.CgroupPath = def.CgroupPath
	}
	if cfg.Pid == 0 {
		cfg.Pid = def.Pid
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	logger := cfg.Logger
	if logger != nil {
		logger = logger.With(slog.String("component", "gxid"))
	}

	g := &Generator{
		machineID: readMachineID(cfg.Probes, cfg.Rand, logger),
		pid:       readPid(cfg.Pid, cfg.CgroupPath, logger),
		now:       cfg.Now,
	}
	g.counter.Store(randUint24(cfg.Rand))
	return g
}

// New generates an ID for the current time
func (g *Generator) New() (ID, error) {
	return g.NewWithTime(g.now())
}

// NewWithTime generates an ID for t. It fails only when t is before the Unix epoch.
func (g *Generator) NewWithTime(t time.Time) (ID, error) {
	sec := t.Unix()
	if sec < 0 {
		return Nil, ErrClockBeforeEpoch
	}
	return g.Generate(uint64(sec)), nil
}

// Generate builds an ID for ts seconds since the Unix epoch. Timestamps past
// 2106 wrap to 32 bits and the counter wraps at 24 bits, both silently.
func (g *Generator) Generate(ts uint64) ID {
	var id ID
	binary.BigEndian.PutUint32(id[0:4], uint32(ts))
	copy(id[4:7], g.machineID[:])
	binary.BigEndian.PutUint16(id[7:9], uint16(g.pid))

	i := g.counter.Add(1) & counterMask
	id[9] = byte(i >> 16)
	id[10] = byte(i >> 8)
	id[11] = byte(i)
	return id
}

// Machine returns the 3 byte machine id stamped on every ID
func (g *Generator) Machine() []byte {
	return []byte{g.machineID[0], g.machineID[1], g.machineID[2]}
}

// Pid returns the process id, possibly mixed with the container marker.
// Only the low 16 bits are stored in IDs.
func (g *Generator) Pid() uint32 {
	return g.pid
}

func randUint24(r io.Reader) uint32 {
	var b [3]byte
	mustReadRandom(r, b[:])
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func mustReadRandom(r io.Reader, b []byte) {
	if _, err := io.ReadFull(r, b); err != nil {
		panic(fmt.Errorf("gxid: cannot read random bytes: %w", err))
	}
}
