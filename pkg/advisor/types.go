package advisor

import (
	"fmt"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/cluster"
)

// MoveSuggestion proposes relocating one shard replica. It never mutates the
// utilization it was derived from.
type MoveSuggestion struct {
	Index    string         `json:"index"`
	Shard    int            `json:"shard"`
	FromNode cluster.NodeID `json:"fromNode"`
	ToNode   cluster.NodeID `json:"toNode"`
}

func (m MoveSuggestion) String() string {
	return fmt.Sprintf("Move index %s, shard %d from %s to %s", m.Index, m.Shard, m.FromNode, m.ToNode)
}

// Duplicate reports a node carrying more replicas of an index than allowed.
type Duplicate struct {
	Node  cluster.NodeID `json:"node"`
	Index string         `json:"index"`
	Count int            `json:"count"`
}

// Result is the outcome of one strategy run.
type Result struct {
	Method      Method                    `json:"method"`
	Suggestions []MoveSuggestion          `json:"suggestions"`
	Skipped     []NoDestinationFoundError `json:"skipped"`
	Duplicates  []Duplicate               `json:"duplicates"`
}

func newResult(method Method) Result {
	return Result{
		Method:      method,
		Suggestions: []MoveSuggestion{},
		Skipped:     []NoDestinationFoundError{},
		Duplicates:  []Duplicate{},
	}
}

// Options configures the destination qualification rule.
type Options struct {
	// Exclude contains nodes that are never picked as destination.
	Exclude map[cluster.NodeID]bool
	// PerNodeLimit is the number of replicas of one index a destination may
	// already carry before it stops qualifying.
	PerNodeLimit int
}

// NewOptions creates Options from the CLI values. A non positive per node
// limit falls back to the default.
func NewOptions(exclude []string, perNodeLimit int) Options {
	if perNodeLimit <= 0 {
		perNodeLimit = pkg.DefaultPerNodeLimit
	}
	ex := map[cluster.NodeID]bool{}
	for _, node := range exclude {
		if node != "" {
			ex[cluster.NodeID(node)] = true
		}
	}
	return Options{Exclude: ex, PerNodeLimit: perNodeLimit}
}
