package advisor

import (
	"fmt"

	"github.com/eirsyl/shardadvisor/pkg/usage"
	log "github.com/sirupsen/logrus"
)

// Method selects the move determination strategy.
type Method string

const (
	// MethodLoad moves the hottest shards off the busiest nodes.
	MethodLoad Method = "load"
	// MethodDedup reports indices with too many replicas on one node.
	MethodDedup Method = "dedup"
)

// Methods lists the supported strategies.
var Methods = []Method{MethodLoad, MethodDedup}

// ParseMethod validates a method name.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case MethodLoad, MethodDedup:
		return Method(name), nil
	case "":
		return MethodLoad, nil
	default:
		return "", fmt.Errorf("Unknown method %q, expected one of %v", name, Methods)
	}
}

// Advise runs the selected strategy. For the load strategy limit is the
// maximum number of suggestions; for the dedup strategy the per node limit of
// the options decides what counts as duplicated placement. A limit of 0
// returns an empty result for both.
func Advise(method Method, u *usage.Utilization, limit int, opts Options) Result {
	switch method {
	case MethodDedup:
		if limit <= 0 {
			return newResult(MethodDedup)
		}
		log.WithField("perNode", opts.PerNodeLimit).Infof(
			"Reporting indices with more than %d replicas on one node, --limit only enables the check", opts.PerNodeLimit)
		return SuggestByDedup(u, opts.PerNodeLimit)
	default:
		return SuggestByLoad(u, limit, opts)
	}
}
