package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

/**
 * This file contains the prometheus collectors describing the advisor runs.
 * The node gauges are reset on every run so nodes that left the cluster
 * disappear from the export.
 */

var (
	// MalformedRecords counts status rows skipped by the parsers.
	MalformedRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shardadvisor_malformed_records_total",
		Help: "Total number of status records that could not be parsed",
	}, []string{"kind"})

	// Runs counts finished advisor runs by result.
	Runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shardadvisor_runs_total",
		Help: "Total number of advisor runs",
	}, []string{"result"})

	// Suggestions counts emitted relocation suggestions by method.
	Suggestions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shardadvisor_suggestions_total",
		Help: "Total number of relocation suggestions",
	}, []string{"method"})

	// SkippedShards counts shards without a qualifying destination.
	SkippedShards = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shardadvisor_skipped_shards_total",
		Help: "Total number of shards where no destination qualified",
	})

	// RunDuration is the duration of the last run including the sample wait.
	RunDuration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shardadvisor_last_run_duration_seconds",
		Help: "Duration of the last advisor run",
	})

	// DroppedRecords is the number of records that referenced an unknown node
	// in the last run.
	DroppedRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shardadvisor_last_run_dropped_records",
		Help: "Activity records dropped during aggregation in the last run",
	})

	// DuplicatePlacements is the number of node/index pairs above the per node
	// limit in the last dedup run.
	DuplicatePlacements = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shardadvisor_duplicate_placements",
		Help: "Node and index pairs above the per node replica limit",
	})

	nodeLoad = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shardadvisor_node_load",
		Help: "Load average of the data node",
	}, []string{"node", "zone"})
	nodeDocs = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shardadvisor_node_docs",
		Help: "Documents stored on the data node",
	}, []string{"node", "zone"})
	nodeBytes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shardadvisor_node_bytes",
		Help: "Bytes stored on the data node",
	}, []string{"node", "zone"})
	nodeShards = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shardadvisor_node_shards",
		Help: "Started shard replicas on the data node",
	}, []string{"node", "zone"})
	nodeWriteDelta = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "shardadvisor_node_write_delta",
		Help: "Documents written to the data node during the last sample interval",
	}, []string{"node", "zone"})
)

func init() {
	prometheus.MustRegister(MalformedRecords)
	prometheus.MustRegister(Runs)
	prometheus.MustRegister(Suggestions)
	prometheus.MustRegister(SkippedShards)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(DroppedRecords)
	prometheus.MustRegister(DuplicatePlacements)

	prometheus.MustRegister(nodeLoad)
	prometheus.MustRegister(nodeDocs)
	prometheus.MustRegister(nodeBytes)
	prometheus.MustRegister(nodeShards)
	prometheus.MustRegister(nodeWriteDelta)
}

// NodeReading is the per node state exported after a run.
type NodeReading struct {
	Node       string
	Zone       string
	Load       float64
	Docs       int64
	Bytes      int64
	Shards     int
	WriteDelta int64
}

// ReportNodes replaces the exported node gauges with the given readings.
func ReportNodes(readings []NodeReading) {
	nodeLoad.Reset()
	nodeDocs.Reset()
	nodeBytes.Reset()
	nodeShards.Reset()
	nodeWriteDelta.Reset()

	for _, r := range readings {
		labels := prometheus.Labels{"node": r.Node, "zone": r.Zone}
		nodeLoad.With(labels).Set(r.Load)
		nodeDocs.With(labels).Set(float64(r.Docs))
		nodeBytes.With(labels).Set(float64(r.Bytes))
		nodeShards.With(labels).Set(float64(r.Shards))
		nodeWriteDelta.With(labels).Set(float64(r.WriteDelta))
	}
}
