package cluster

import (
	"fmt"
	"time"
)

// NodeID identifies a cluster member by its node name.
type NodeID string

// ShardKey is the identity of a shard replica inside one snapshot.
type ShardKey struct {
	Node  NodeID
	Index string
	Shard int
}

func (k ShardKey) String() string {
	return fmt.Sprintf("%s/%s[%d]", k.Node, k.Index, k.Shard)
}

// ShardReplica is one started copy of an index shard.
type ShardReplica struct {
	Index   string `json:"index"`
	Shard   int    `json:"shard"`
	Primary bool   `json:"primary"`
	Node    NodeID `json:"node"`
	Docs    int64  `json:"docs"`
	Bytes   int64  `json:"bytes"`
}

// Key returns the identity key of the replica.
func (r ShardReplica) Key() ShardKey {
	return ShardKey{Node: r.Node, Index: r.Index, Shard: r.Shard}
}

// NodeAttributes contains the node level readings used for placement.
type NodeAttributes struct {
	Node      NodeID  `json:"node"`
	Load      float64 `json:"load"`
	HoldsData bool    `json:"holdsData"`
	Zone      string  `json:"zone"`
	Roles     string  `json:"roles"`
}

// Snapshot is the result of one pass over both status endpoints.
type Snapshot struct {
	Shards    []ShardReplica
	Nodes     []NodeAttributes
	FetchedAt time.Time
}
