package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/advisor"
	"github.com/eirsyl/shardadvisor/pkg/cache"
	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/metrics"
	"github.com/eirsyl/shardadvisor/pkg/reroute"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/eirsyl/shardadvisor/pkg/usage"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// Config describes one advisor run.
type Config struct {
	// Cluster is a label printed with the report.
	Cluster  string
	Interval time.Duration
	// NoGather replaces the two pass sample with a single inventory snapshot.
	NoGather bool
	// Cached reuses the sample stored by a previous run.
	Cached  bool
	Limit   int
	Method  advisor.Method
	Options advisor.Options
	// TargetHost and TargetPort are addressed by the rendered commands.
	TargetHost string
	TargetPort int
}

// Report is the structured outcome of a run.
type Report struct {
	RunID       uuid.UUID                         `json:"runId"`
	SampleID    uuid.UUID                         `json:"sampleId"`
	Cluster     string                            `json:"cluster"`
	Method      advisor.Method                    `json:"method"`
	Gathered    bool                              `json:"gathered"`
	SampledAt   time.Time                         `json:"sampledAt"`
	Nodes       []*usage.NodeUsage                `json:"nodes"`
	Totals      usage.Totals                      `json:"totals"`
	Dropped     int                               `json:"dropped"`
	Suggestions []advisor.MoveSuggestion          `json:"suggestions"`
	Duplicates  []advisor.Duplicate               `json:"duplicates"`
	Skipped     []advisor.NoDestinationFoundError `json:"skipped"`
	Commands    []string                          `json:"commands"`
	Duration    time.Duration                     `json:"duration"`
}

// Runner wires the sampler, aggregator, advisor and formatter.
type Runner struct {
	cfg       Config
	sampler   *sampler.Sampler
	store     cache.Store
	formatter *reroute.Formatter
}

// NewRunner returns a runner reading from reader. store may be nil.
func NewRunner(reader cluster.StateReader, store cache.Store, cfg Config, opts ...sampler.Option) (*Runner, error) {
	if reader == nil {
		return nil, errors.New("The cluster reader cannot be nil")
	}
	if cfg.Cached && store == nil {
		return nil, errors.New("Reusing a stored sample requires a cache")
	}
	if cfg.Method == "" {
		cfg.Method = advisor.MethodLoad
	}
	if cfg.Interval <= 0 {
		cfg.Interval = pkg.DefaultSampleInterval
	}
	if cfg.Options.PerNodeLimit <= 0 {
		cfg.Options.PerNodeLimit = pkg.DefaultPerNodeLimit
	}

	return &Runner{
		cfg:       cfg,
		sampler:   sampler.New(reader, opts...),
		store:     store,
		formatter: reroute.NewFormatter(cfg.TargetHost, cfg.TargetPort),
	}, nil
}

func (r *Runner) sample(ctx context.Context) (*sampler.Sample, error) {
	if r.cfg.Cached {
		log.Info("Using stored shard activity data")
		sample, err := r.store.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not load stored sample: %w", err)
		}
		return sample, nil
	}

	var sample *sampler.Sample
	var err error
	if r.cfg.NoGather {
		sample, err = r.sampler.Inventory(ctx)
	} else {
		sample, err = r.sampler.Sample(ctx, r.cfg.Interval)
	}
	if err != nil {
		return nil, err
	}

	if r.store != nil {
		if err := r.store.Save(ctx, sample); err != nil {
			log.Warnf("Could not store sample %s: %v", sample.ID, err)
		}
	}
	return sample, nil
}

// Run performs one advisor run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.NewV4()
	logger := log.WithField("run", runID.String())

	sample, err := r.sample(ctx)
	if err != nil {
		metrics.Runs.WithLabelValues("failed").Inc()
		return nil, err
	}

	u := usage.Aggregate(sample.Records, sample.Nodes)
	r.logUtilization(u)

	if r.cfg.Limit > 0 {
		logger.Infof("Determining which shards to move using the %s method", r.cfg.Method)
	}
	result := advisor.Advise(r.cfg.Method, u, r.cfg.Limit, r.cfg.Options)

	commands := r.formatter.FormatAll(result.Suggestions)
	for _, command := range commands {
		logger.Infof("Move Command:\n\t%s", command)
	}

	report := &Report{
		RunID:       runID,
		SampleID:    sample.ID,
		Cluster:     r.cfg.Cluster,
		Method:      result.Method,
		Gathered:    sample.Gathered,
		SampledAt:   sample.TakenAt,
		Nodes:       make([]*usage.NodeUsage, 0, len(u.Nodes)),
		Totals:      u.Totals,
		Dropped:     u.Dropped,
		Suggestions: result.Suggestions,
		Duplicates:  result.Duplicates,
		Skipped:     result.Skipped,
		Commands:    commands,
		Duration:    time.Since(start),
	}
	for _, id := range u.SortedNodes() {
		report.Nodes = append(report.Nodes, u.Nodes[id])
	}

	r.reportMetrics(u, report)
	return report, nil
}

func (r *Runner) logUtilization(u *usage.Utilization) {
	table, err := u.Table()
	if err != nil {
		log.Warnf("Could not render node utilization: %v", err)
		return
	}

	if r.cfg.Cluster != "" {
		log.Infof("%s node utilization", r.cfg.Cluster)
	}
	scanner := bufio.NewScanner(strings.NewReader(table))
	for scanner.Scan() {
		log.Info(scanner.Text())
	}
	if u.Dropped > 0 {
		log.Warnf("%d shard records referenced unknown data nodes", u.Dropped)
	}
}

func (r *Runner) reportMetrics(u *usage.Utilization, report *Report) {
	readings := make([]metrics.NodeReading, 0, len(u.Nodes))
	for _, id := range u.SortedNodes() {
		nu := u.Nodes[id]
		readings = append(readings, metrics.NodeReading{
			Node:       string(nu.Node),
			Zone:       nu.Zone,
			Load:       nu.Load,
			Docs:       nu.TotalDocs,
			Bytes:      nu.TotalBytes,
			Shards:     nu.ShardCount,
			WriteDelta: nu.WriteDelta,
		})
	}
	metrics.ReportNodes(readings)

	metrics.Runs.WithLabelValues("ok").Inc()
	metrics.Suggestions.WithLabelValues(string(report.Method)).Add(float64(len(report.Suggestions)))
	metrics.SkippedShards.Add(float64(len(report.Skipped)))
	metrics.DroppedRecords.Set(float64(report.Dropped))
	metrics.DuplicatePlacements.Set(float64(len(report.Duplicates)))
	metrics.RunDuration.Set(report.Duration.Seconds())
}
