package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/go-zookeeper/zk"
	"github.com/google/uuid"
)

// RootPath is the ZooKeeper parent of all service nodes
const RootPath = "/gxid"

// registry is the part of *zk.Conn the probe needs
type registry interface {
	Exists(path string) (bool, *zk.Stat, error)
	Get(path string) ([]byte, *zk.Stat, error)
	Create(path string, data []byte, flags int32, acl []zk.ACL) (string, error)
}

// NodeInfo is stored both in ZooKeeper and in the local cache file
type NodeInfo struct {
	Token      string `json:"token"`
	CreateTime int64  `json:"create_time"`
}

// ZKProbe gives each service node a token that survives restarts and host
// renames. The token is created once under /gxid/<service>/<node> and
// hashed by the generator like any other machine string.
type ZKProbe struct {
	// Logger receives a warning when the local cache cannot be written. Nil disables it.
	Logger *slog.Logger

	reg       registry
	service   string
	node      string
	cacheFile string
}

// NewZKProbe creates a probe for node (for example host:port) of service
func NewZKProbe(reg registry, service, node, cacheFile string) *ZKProbe {
	return &ZKProbe{reg: reg, service: service, node: node, cacheFile: cacheFile}
}

func (p *ZKProbe) Name() string { return "zookeeper:" + p.nodePath() }

func (p *ZKProbe) nodePath() string {
	return path.Join(RootPath, p.service, strings.ReplaceAll(p.node, "/", "_"))
}

// Probe returns the node token from ZooKeeper, registering one if needed.
// When ZooKeeper is unreachable the locally cached token is used.
func (p *ZKProbe) Probe() (string, error) {
	info, err := p.registerOrRecover()
	if err != nil {
		cached, cacheErr := p.loadLocalCache()
		if cacheErr != nil {
			return "", fmt.Errorf("zookeeper: %w; cache: %v", err, cacheErr)
		}
		return cached.Token, nil
	}
	// the cache only helps a later start without ZooKeeper
	if err := p.saveLocalCache(info); err != nil && p.Logger != nil {
		p.Logger.Warn("cannot write node cache",
			slog.String("file", p.cacheFile), slog.Any("error", err))
	}
	return info.Token, nil
}

func (p *ZKProbe) registerOrRecover() (NodeInfo, error) {
	nodePath := p.nodePath()
	if err := p.ensurePath(path.Dir(nodePath)); err != nil {
		return NodeInfo{}, err
	}

	exists, _, err := p.reg.Exists(nodePath)
	if err != nil {
		return NodeInfo{}, fmt.Errorf("check node existence: %w", err)
	}
	if exists {
		return p.readNode(nodePath)
	}

	// reuse a cached token so a node keeps its identity if ZooKeeper lost it
	info, err := p.loadLocalCache()
	if err != nil || info.Token == "" {
		info = NodeInfo{Token: uuid.NewString(), CreateTime: time.Now().UnixMilli()}
	}
	data, err := json.Marshal(info)
	if err != nil {
		return NodeInfo{}, err
	}
	_, err = p.reg.Create(nodePath, data, 0, zk.WorldACL(zk.PermAll))
	if errors.Is(err, zk.ErrNodeExists) {
		// another process registered the node first
		return p.readNode(nodePath)
	}
	if err != nil {
		return NodeInfo{}, fmt.Errorf("register node: %w", err)
	}
	return info, nil
}

func (p *ZKProbe) readNode(nodePath string) (NodeInfo, error) {
	data, _, err := p.reg.Get(nodePath)
	if err != nil {
		return NodeInfo{}, fmt.Errorf("get node info: %w", err)
	}
	var info NodeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return NodeInfo{}, fmt.Errorf("decode node info: %w", err)
	}
	if info.Token == "" {
		return NodeInfo{}, fmt.Errorf("node %s has no token", nodePath)
	}
	return info, nil
}

// ensurePath creates every missing component of p
func (p *ZKProbe) ensurePath(full string) error {
	cur := ""
	for _, part := range strings.Split(strings.Trim(full, "/"), "/") {
		cur += "/" + part
		exists, _, err := p.reg.Exists(cur)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = p.reg.Create(cur, []byte{}, 0, zk.WorldACL(zk.PermAll))
		if err != nil && !errors.Is(err, zk.ErrNodeExists) {
			return err
		}
	}
	return nil
}

func (p *ZKProbe) saveLocalCache(info NodeInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(p.cacheFile, data, 0o644)
}

func (p *ZKProbe) loadLocalCache() (NodeInfo, error) {
	data, err := os.ReadFile(p.cacheFile)
	if err != nil {
		return NodeInfo{}, err
	}
	var info NodeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return NodeInfo{}, err
	}
	if info.Token == "" {
		return NodeInfo{}, errors.New("cached node info has no token")
	}
	return info, nil
}
