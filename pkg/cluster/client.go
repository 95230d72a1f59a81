package cluster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	shardsPath = "/_cat/shards"
	nodesPath  = "/_cat/nodes"
)

// ShardReader returns the started shard replicas of the cluster.
type ShardReader interface {
	FetchActiveShards(ctx context.Context) ([]ShardReplica, error)
}

// NodeReader returns the node attributes of the cluster.
type NodeReader interface {
	FetchNodeAttributes(ctx context.Context) ([]NodeAttributes, error)
}

// StateReader combines both status reads.
type StateReader interface {
	ShardReader
	NodeReader
}

// Client exposes a set of methods used to read the cluster state.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a new client that reads the status endpoints on host:port.
func NewClient(host string, port int, timeout time.Duration) (*Client, error) {
	if host == "" {
		return nil, errors.New("The cluster host cannot be empty")
	}
	if port <= 0 {
		port = pkg.DefaultClusterPort
	}
	if timeout <= 0 {
		timeout = pkg.DefaultRequestTimeout
	}

	base, err := url.Parse("http://" + net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("Invalid cluster address: %v", err)
	}

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// Addr returns the address of the status API.
func (c *Client) Addr() string {
	return c.base.Host
}

func (c *Client) get(ctx context.Context, path string, query url.Values, decode func(io.Reader) error) error {
	u := *c.base
	u.Path = path
	u.RawQuery = query.Encode()
	endpoint := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewUnavailableError(endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("Requesting %s", endpoint)
	res, err := c.http.Do(req)
	if err != nil {
		return NewUnavailableError(endpoint, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			log.Debugf("Could not close response body: %v", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &UnavailableError{Endpoint: endpoint, Status: res.StatusCode}
	}

	if err := decode(res.Body); err != nil {
		return NewUnavailableError(endpoint, err)
	}
	return nil
}

// FetchActiveShards returns every started shard replica in the cluster.
func (c *Client) FetchActiveShards(ctx context.Context) ([]ShardReplica, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("bytes", "b")
	query.Set("h", "index,shard,prirep,state,docs,store,node")

	var shards []ShardReplica
	err := c.get(ctx, shardsPath, query, func(body io.Reader) error {
		var malformed []error
		var err error
		shards, malformed, err = parseShards(body)
		metrics.MalformedRecords.WithLabelValues("shard").Add(float64(len(malformed)))
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d started shards", len(shards))
	return shards, nil
}

// FetchNodeAttributes returns the load and role of every cluster member.
func (c *Client) FetchNodeAttributes(ctx context.Context) ([]NodeAttributes, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("h", "name,load_1m,node.role")

	var nodes []NodeAttributes
	err := c.get(ctx, nodesPath, query, func(body io.Reader) error {
		var malformed []error
		var err error
		nodes, malformed, err = parseNodes(body)
		metrics.MalformedRecords.WithLabelValues("node").Add(float64(len(malformed)))
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Fetched %d nodes", len(nodes))
	return nodes, nil
}

// TakeSnapshot reads shards and nodes in parallel. A failure of either read
// fails the whole snapshot.
func TakeSnapshot(ctx context.Context, reader StateReader) (*Snapshot, error) {
	var snapshot Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		shards, err := reader.FetchActiveShards(gctx)
		snapshot.Shards = shards
		return err
	})
	g.Go(func() error {
		nodes, err := reader.FetchNodeAttributes(gctx)
		snapshot.Nodes = nodes
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snapshot.FetchedAt = time.Now().UTC()
	return &snapshot, nil
}
