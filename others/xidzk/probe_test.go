package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-zookeeper/zk"
)

// fakeRegistry is an in-memory stand-in for a ZooKeeper connection
type fakeRegistry struct {
	mu    sync.Mutex
	nodes map[string][]byte
	down  bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{nodes: map[string][]byte{}}
}

func (f *fakeRegistry) Exists(p string) (bool, *zk.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return false, nil, zk.ErrNoServer
	}
	_, ok := f.nodes[p]
	return ok, &zk.Stat{}, nil
}

func (f *fakeRegistry) Get(p string) ([]byte, *zk.Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return nil, nil, zk.ErrNoServer
	}
	data, ok := f.nodes[p]
	if !ok {
		return nil, nil, zk.ErrNoNode
	}
	return data, &zk.Stat{}, nil
}

func (f *fakeRegistry) Create(p string, data []byte, flags int32, acl []zk.ACL) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return "", zk.ErrNoServer
	}
	if _, ok := f.nodes[p]; ok {
		return "", zk.ErrNodeExists
	}
	f.nodes[p] = data
	return p, nil
}

func TestZKProbe_RegistersOnce(t *testing.T) {
	reg := newFakeRegistry()
	cache := filepath.Join(t.TempDir(), "cache")

	first, err := NewZKProbe(reg, "orders", "host-a:8080", cache).Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if first == "" {
		t.Fatal("Probe() returned an empty token")
	}
	for _, p := range []string{"/gxid", "/gxid/orders", "/gxid/orders/host-a:8080"} {
		if _, ok := reg.nodes[p]; !ok {
			t.Errorf("node %s was not created", p)
		}
	}

	// a restart with a fresh cache recovers the token from ZooKeeper
	again, err := NewZKProbe(reg, "orders", "host-a:8080", filepath.Join(t.TempDir(), "cache")).Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if again != first {
		t.Errorf("Probe() = %q after restart, want %q", again, first)
	}

	other, err := NewZKProbe(reg, "orders", "host-b:8080", filepath.Join(t.TempDir(), "cache")).Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if other == first {
		t.Error("two nodes received the same token")
	}
}

func TestZKProbe_FallsBackToCache(t *testing.T) {
	reg := newFakeRegistry()
	cache := filepath.Join(t.TempDir(), "cache")
	probe := NewZKProbe(reg, "orders", "host-a:8080", cache)

	token, err := probe.Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	reg.down = true
	cached, err := probe.Probe()
	if err != nil {
		t.Fatalf("Probe() with ZooKeeper down error = %v", err)
	}
	if cached != token {
		t.Errorf("Probe() = %q from cache, want %q", cached, token)
	}
}

func TestZKProbe_UnwritableCache(t *testing.T) {
	reg := newFakeRegistry()
	var buf bytes.Buffer
	probe := NewZKProbe(reg, "orders", "host-a:8080", filepath.Join(t.TempDir(), "nodir", "cache"))
	probe.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	token, err := probe.Probe()
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}
	if token == "" {
		t.Fatal("Probe() returned an empty token")
	}

	var stored NodeInfo
	if err := json.Unmarshal(reg.nodes["/gxid/orders/host-a:8080"], &stored); err != nil {
		t.Fatalf("registered node data: %v", err)
	}
	if stored.Token != token {
		t.Errorf("Probe() = %q, registered token %q", token, stored.Token)
	}
	if !strings.Contains(buf.String(), "cannot write node cache") {
		t.Errorf("log output missing cache warning:\n%s", buf.String())
	}
}

func TestZKProbe_NoZooKeeperNoCache(t *testing.T) {
	reg := newFakeRegistry()
	reg.down = true

	_, err := NewZKProbe(reg, "orders", "host-a:8080", filepath.Join(t.TempDir(), "cache")).Probe()
	if !errors.Is(err, zk.ErrNoServer) {
		t.Errorf("Probe() error = %v, want %v", err, zk.ErrNoServer)
	}
}

func TestZKProbe_NodeNameSanitized(t *testing.T) {
	probe := NewZKProbe(newFakeRegistry(), "orders", "10.0.0.1/24", "")
	if got, want := probe.Name(), "zookeeper:/gxid/orders/10.0.0.1_24"; got != want {
		t.Errorf("Name() = %s, want %s", got, want)
	}
}
