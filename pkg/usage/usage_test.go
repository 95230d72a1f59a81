package usage

import (
	"strings"
	"testing"

	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(node, index string, shard int, docs, bytes, delta int64) sampler.ActivityRecord {
	return sampler.ActivityRecord{
		ShardReplica: cluster.ShardReplica{Node: cluster.NodeID(node), Index: index, Shard: shard, Docs: docs, Bytes: bytes},
		WriteDelta:   delta,
	}
}

func fixtureNodes() []cluster.NodeAttributes {
	return []cluster.NodeAttributes{
		{Node: "n1", Load: 2.0, HoldsData: true, Zone: "a"},
		{Node: "n2", Load: 0.5, HoldsData: true, Zone: "b"},
		{Node: "n3", Load: 1.0, HoldsData: true, Zone: "c"},
		{Node: "master", Load: 0.1, HoldsData: false},
	}
}

func fixtureRecords() []sampler.ActivityRecord {
	return []sampler.ActivityRecord{
		record("n1", "orders", 0, 1000, 4096, 50),
		record("n1", "logs", 0, 3000, 8192, 10),
		record("n2", "orders", 1, 900, 4000, 5),
		record("n1", "metrics", 2, 10, 100, 0),
	}
}

func TestAggregateConservation(t *testing.T) {
	records := fixtureRecords()
	u := Aggregate(records, fixtureNodes())

	var docs, bytes int64
	for _, r := range records {
		docs += r.Docs
		bytes += r.Bytes
	}

	var nodeDocs, nodeBytes int64
	var nodeShards int
	for _, nu := range u.Nodes {
		nodeDocs += nu.TotalDocs
		nodeBytes += nu.TotalBytes
		nodeShards += nu.ShardCount
		assert.Len(t, nu.Shards, nu.ShardCount)
	}

	assert.Equal(t, docs, nodeDocs)
	assert.Equal(t, bytes, nodeBytes)
	assert.Equal(t, len(records), nodeShards)
	assert.Equal(t, Totals{Docs: docs, Bytes: bytes, Shards: len(records)}, u.Totals)
	assert.Equal(t, 0, u.Dropped)
}

func TestAggregateEntries(t *testing.T) {
	u := Aggregate(fixtureRecords(), fixtureNodes())

	require.Len(t, u.Nodes, 3)
	assert.NotContains(t, u.Nodes, cluster.NodeID("master"))

	n3 := u.Nodes["n3"]
	require.NotNil(t, n3)
	assert.Equal(t, 0, n3.ShardCount)
	assert.Empty(t, n3.Shards)
	assert.Equal(t, 1.0, n3.Load)
	assert.Equal(t, "c", n3.Zone)

	n1 := u.Nodes["n1"]
	assert.Equal(t, int64(4010), n1.TotalDocs)
	assert.Equal(t, int64(60), n1.WriteDelta)
	assert.Equal(t, 3, n1.ShardCount)
	assert.Equal(t, 1, u.IndexCount("n1", "orders"))
	assert.Equal(t, 0, u.IndexCount("n3", "orders"))
	assert.Equal(t, 0, u.IndexCount("gone", "orders"))
}

func TestAggregateDropsUnknownNodes(t *testing.T) {
	records := append(fixtureRecords(), record("gone", "orders", 3, 77, 77, 1), record("master", "logs", 1, 5, 5, 0))
	u := Aggregate(records, fixtureNodes())

	assert.Equal(t, 2, u.Dropped)
	assert.Equal(t, 4, u.Totals.Shards)
	assert.Equal(t, int64(4910), u.Totals.Docs)
}

func TestPercent(t *testing.T) {
	u := Aggregate(fixtureRecords(), fixtureNodes())

	p := u.Percent("n2")
	assert.InDelta(t, 900*100/4910.0, p.Docs, 0.0001)
	assert.InDelta(t, 25.0, p.Shards, 0.0001)
	assert.InDelta(t, 4000*100/16388.0, p.Disk, 0.0001)

	assert.Equal(t, Percent{}, u.Percent("n3"))
	assert.Equal(t, Percent{}, u.Percent("unknown"))

	empty := Aggregate(nil, fixtureNodes())
	assert.Equal(t, Percent{}, empty.Percent("n1"))
}

func TestSortedNodes(t *testing.T) {
	u := Aggregate(nil, fixtureNodes())
	assert.Equal(t, []cluster.NodeID{"n1", "n2", "n3"}, u.SortedNodes())
}

func TestWriteReport(t *testing.T) {
	u := Aggregate(fixtureRecords(), fixtureNodes())

	var b strings.Builder
	require.NoError(t, WriteReport(&b, u))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Node"))
	assert.True(t, strings.HasPrefix(lines[1], "n1"))
	assert.Contains(t, lines[2], "25.00%")
	assert.True(t, strings.HasPrefix(lines[4], "Totals"))
	assert.Contains(t, lines[4], "4910")
}
