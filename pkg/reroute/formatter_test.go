package reroute

import (
	"encoding/json"
	"testing"

	"github.com/eirsyl/shardadvisor/pkg/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orders = advisor.MoveSuggestion{Index: "orders", Shard: 3, FromNode: "es-data-1a", ToNode: "es-data-2b"}

func TestFormat(t *testing.T) {
	f := NewFormatter("es.example.com", 9200)

	expected := `curl -XPOST 'es.example.com:9200/_cluster/reroute' -H 'Content-Type: application/json' ` +
		`-d '{"commands":[{"move":{"index":"orders","shard":3,"from_node":"es-data-1a","to_node":"es-data-2b"}}]}'`
	assert.Equal(t, expected, f.Format(orders))
	assert.Equal(t, f.Format(orders), f.Format(orders))
}

func TestFormatWithoutHost(t *testing.T) {
	f := NewFormatter("", 0)

	assert.Contains(t, f.Format(orders), "'es-data-2b:9200/_cluster/reroute'")
}

func TestFormatIPv6Host(t *testing.T) {
	f := NewFormatter("::1", 9200)

	assert.Contains(t, f.Format(orders), "curl -XPOST '[::1]:9200/_cluster/reroute'")
}

func TestFormatAll(t *testing.T) {
	f := NewFormatter("localhost", 9201)
	logs := advisor.MoveSuggestion{Index: "logs", Shard: 0, FromNode: "a", ToNode: "b"}

	commands := f.FormatAll([]advisor.MoveSuggestion{orders, logs})

	require.Len(t, commands, 2)
	assert.Equal(t, f.Format(orders), commands[0])
	assert.Equal(t, f.Format(logs), commands[1])
	assert.Empty(t, f.FormatAll(nil))
}

func TestBody(t *testing.T) {
	logs := advisor.MoveSuggestion{Index: "logs", Shard: 0, FromNode: "a", ToNode: "b"}

	buf, err := Body(orders, logs)
	require.NoError(t, err)

	var decoded request
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Len(t, decoded.Commands, 2)
	assert.Equal(t, move{Index: "logs", Shard: 0, FromNode: "a", ToNode: "b"}, decoded.Commands[1].Move)

	empty, err := Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"commands":[]}`, string(empty))
}
