package advisor

import (
	"testing"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var threeNodes = map[string]float64{"n1": 2.0, "n2": 0.5, "n3": 1.0}

func TestSuggestByLoadMovesHottestShardToIdleNode(t *testing.T) {
	u := utilization(threeNodes,
		record("n1", "logs", 0, 10),
		record("n1", "orders", 0, 50),
		record("n3", "metrics", 0, 30),
	)

	res := SuggestByLoad(u, 1, options(1))

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, MoveSuggestion{Index: "orders", Shard: 0, FromNode: "n1", ToNode: "n2"}, res.Suggestions[0])
	assert.Equal(t, "Move index orders, shard 0 from n1 to n2", res.Suggestions[0].String())
	assert.Equal(t, MethodLoad, res.Method)
	assert.Empty(t, res.Skipped)
}

func TestSuggestByLoadIsDeterministic(t *testing.T) {
	loads := map[string]float64{"n1": 1.0, "n2": 1.0, "n3": 0.2, "n4": 0.2}
	build := func() Result {
		u := utilization(loads,
			record("n1", "a", 0, 5),
			record("n1", "b", 0, 5),
			record("n2", "a", 1, 5),
			record("n2", "c", 0, 1),
		)
		return SuggestByLoad(u, 10, options(1))
	}

	first := build()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, build())
	}

	require.NotEmpty(t, first.Suggestions)
	assert.Equal(t, cluster.NodeID("n1"), first.Suggestions[0].FromNode)
	assert.Equal(t, "a", first.Suggestions[0].Index)
	assert.Equal(t, cluster.NodeID("n3"), first.Suggestions[0].ToNode)
}

func TestSuggestByLoadRespectsLimit(t *testing.T) {
	u := utilization(threeNodes,
		record("n1", "a", 0, 3),
		record("n1", "b", 0, 2),
		record("n1", "c", 0, 1),
	)

	for limit := 0; limit <= 4; limit++ {
		res := SuggestByLoad(u, limit, options(1))
		expected := limit
		if expected > 3 {
			expected = 3
		}
		assert.Len(t, res.Suggestions, expected, "limit %d", limit)
	}

	res := SuggestByLoad(u, -1, options(1))
	assert.Empty(t, res.Suggestions)
	assert.NotNil(t, res.Suggestions)
}

func TestSuggestByLoadHonoursExclusion(t *testing.T) {
	u := utilization(threeNodes, record("n1", "orders", 0, 50))

	res := SuggestByLoad(u, 1, options(1, "n2"))

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, cluster.NodeID("n3"), res.Suggestions[0].ToNode)
}

func TestSuggestByLoadAvoidsDuplicatePlacement(t *testing.T) {
	u := utilization(threeNodes,
		record("n1", "orders", 0, 50),
		record("n2", "orders", 1, 1),
	)

	res := SuggestByLoad(u, 5, options(1))

	require.NotEmpty(t, res.Suggestions)
	for _, move := range res.Suggestions {
		assert.NotEqual(t, move.FromNode, move.ToNode)
		if move.Index == "orders" {
			assert.NotEqual(t, cluster.NodeID("n2"), move.ToNode)
		}
	}
	assert.Equal(t, cluster.NodeID("n3"), res.Suggestions[0].ToNode)
}

func TestSuggestByLoadSkipsShardsWithoutDestination(t *testing.T) {
	u := utilization(threeNodes,
		record("n1", "orders", 0, 50),
		record("n1", "logs", 0, 5),
		record("n2", "orders", 1, 1),
		record("n3", "orders", 2, 1),
	)

	res := SuggestByLoad(u, 1, options(1))

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, NoDestinationFoundError{Index: "orders", Shard: 0, FromNode: "n1"}, res.Skipped[0])
	assert.Contains(t, res.Skipped[0].Error(), "orders[0]")
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, MoveSuggestion{Index: "logs", Shard: 0, FromNode: "n1", ToNode: "n2"}, res.Suggestions[0])
}

func TestSuggestByLoadPerNodeLimit(t *testing.T) {
	u := utilization(threeNodes,
		record("n1", "orders", 0, 50),
		record("n2", "orders", 1, 1),
	)

	res := SuggestByLoad(u, 1, options(2))

	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, cluster.NodeID("n2"), res.Suggestions[0].ToNode)
}

func TestSuggestByLoadDoesNotMutateUtilization(t *testing.T) {
	u := utilization(threeNodes, record("n1", "orders", 0, 50), record("n1", "logs", 0, 5))
	before := *u.Nodes["n1"]

	SuggestByLoad(u, 5, options(1))

	assert.Equal(t, before.ShardCount, u.Nodes["n1"].ShardCount)
	assert.Equal(t, "logs", u.Nodes["n1"].Shards[1].Index)
	assert.Equal(t, 0, u.Nodes["n2"].ShardCount)
}

func TestSuggestByLoadEmptyCluster(t *testing.T) {
	res := SuggestByLoad(utilization(map[string]float64{}), 5, options(1))
	assert.Empty(t, res.Suggestions)
	assert.Empty(t, res.Skipped)
}
