package cluster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

/**
 * This file contains the decoders for the _cat endpoints. The cat API
 * returns every column as a string (or null), the values are converted to
 * typed records here so the rest of the advisor never sees the wire format.
 */

const shardStarted = "STARTED"

// dataRoles contains the role letters reported by _cat/nodes for nodes that
// store shards (data, hot, warm, cold, frozen, content).
const dataRoles = "dhwcfs"

var errMissing = errors.New("missing value")

type catShard struct {
	Index  string  `json:"index"`
	Shard  string  `json:"shard"`
	Prirep string  `json:"prirep"`
	State  string  `json:"state"`
	Docs   *string `json:"docs"`
	Store  *string `json:"store"`
	Node   *string `json:"node"`
}

type catNode struct {
	Name   string  `json:"name"`
	Load1m *string `json:"load_1m"`
	Load   *string `json:"load"`
	Role   string  `json:"node.role"`
}

func parseCount(record, field string, value *string) (int64, error) {
	if value == nil || *value == "" {
		return 0, &MalformedRecordError{Record: record, Field: field, Err: errMissing}
	}
	v, err := strconv.ParseInt(*value, 10, 64)
	if err != nil {
		return 0, &MalformedRecordError{Record: record, Field: field, Err: err}
	}
	if v < 0 {
		return 0, &MalformedRecordError{Record: record, Field: field, Err: fmt.Errorf("negative value %d", v)}
	}
	return v, nil
}

func parseShardRow(row catShard) (ShardReplica, error) {
	record := fmt.Sprintf("%s[%s]", row.Index, row.Shard)

	if row.Index == "" {
		return ShardReplica{}, &MalformedRecordError{Record: record, Field: "index", Err: errMissing}
	}
	shard, err := strconv.Atoi(row.Shard)
	if err != nil || shard < 0 {
		return ShardReplica{}, &MalformedRecordError{Record: record, Field: "shard", Err: err}
	}
	if row.Node == nil || *row.Node == "" {
		return ShardReplica{}, &MalformedRecordError{Record: record, Field: "node", Err: errMissing}
	}
	docs, err := parseCount(record, "docs", row.Docs)
	if err != nil {
		return ShardReplica{}, err
	}
	bytes, err := parseCount(record, "store", row.Store)
	if err != nil {
		return ShardReplica{}, err
	}

	return ShardReplica{
		Index:   row.Index,
		Shard:   shard,
		Primary: row.Prirep == "p",
		Node:    NodeID(*row.Node),
		Docs:    docs,
		Bytes:   bytes,
	}, nil
}

// parseShards decodes a _cat/shards response. Only started replicas are
// returned, malformed rows are logged and skipped.
func parseShards(body io.Reader) ([]ShardReplica, []error, error) {
	var rows []catShard
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		return nil, nil, fmt.Errorf("could not decode shard list: %w", err)
	}

	var shards []ShardReplica
	var malformed []error
	for _, row := range rows {
		if row.State != shardStarted {
			continue
		}
		shard, err := parseShardRow(row)
		if err != nil {
			log.Warnf("Skipping shard record: %v", err)
			malformed = append(malformed, err)
			continue
		}
		shards = append(shards, shard)
	}
	return shards, malformed, nil
}

func holdsData(roles string) bool {
	return strings.ContainsAny(roles, dataRoles)
}

// zoneFromName derives the topology zone from node names shaped like
// "es-prod-2a", where the last character of the third segment is the zone.
func zoneFromName(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) < 3 || parts[2] == "" {
		return ""
	}
	return parts[2][len(parts[2])-1:]
}

func parseNodeRow(row catNode) (NodeAttributes, error) {
	if row.Name == "" {
		return NodeAttributes{}, &MalformedRecordError{Record: "node", Field: "name", Err: errMissing}
	}

	load := row.Load1m
	if load == nil {
		load = row.Load
	}
	var loadAvg float64
	if load != nil && *load != "" {
		v, err := strconv.ParseFloat(*load, 64)
		if err != nil || v < 0 {
			return NodeAttributes{}, &MalformedRecordError{Record: row.Name, Field: "load", Err: err}
		}
		loadAvg = v
	}

	return NodeAttributes{
		Node:      NodeID(row.Name),
		Load:      loadAvg,
		HoldsData: holdsData(row.Role),
		Zone:      zoneFromName(row.Name),
		Roles:     row.Role,
	}, nil
}

// parseNodes decodes a _cat/nodes response.
func parseNodes(body io.Reader) ([]NodeAttributes, []error, error) {
	var rows []catNode
	if err := json.NewDecoder(body).Decode(&rows); err != nil {
		return nil, nil, fmt.Errorf("could not decode node list: %w", err)
	}

	var nodes []NodeAttributes
	var malformed []error
	for _, row := range rows {
		node, err := parseNodeRow(row)
		if err != nil {
			log.Warnf("Skipping node record: %v", err)
			malformed = append(malformed, err)
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes, malformed, nil
}
