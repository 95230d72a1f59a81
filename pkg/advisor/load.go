package advisor

import (
	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/usage"
	log "github.com/sirupsen/logrus"
)

// SuggestByLoad moves the most actively written shards off the nodes with the
// highest load. The node ranking is computed once, suggestions do not change
// it, so the busiest node stays the source until its shards are exhausted or
// the limit is reached.
func SuggestByLoad(u *usage.Utilization, limit int, opts Options) Result {
	res := newResult(MethodLoad)
	if limit <= 0 {
		return res
	}
	if opts.PerNodeLimit <= 0 {
		opts.PerNodeLimit = pkg.DefaultPerNodeLimit
	}

	sources := rankByLoad(u, true)
	destinations := rankByLoad(u, false)
	remaining := limit

	for _, source := range sources {
		if remaining == 0 {
			break
		}

		for _, shard := range hottestFirst(source.Shards) {
			if remaining == 0 {
				break
			}

			dest, ok := findDestination(shard, destinations, u, opts)
			if !ok {
				skipped := NoDestinationFoundError{Index: shard.Index, Shard: shard.Shard, FromNode: source.Node}
				log.Warn(skipped.Error())
				res.Skipped = append(res.Skipped, skipped)
				continue
			}

			move := MoveSuggestion{
				Index:    shard.Index,
				Shard:    shard.Shard,
				FromNode: source.Node,
				ToNode:   dest,
			}
			log.WithField("writeDelta", shard.WriteDelta).Info(move.String())
			res.Suggestions = append(res.Suggestions, move)
			remaining--
		}
	}

	return res
}
