package reroute

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/advisor"
)

// move is the body of one reroute move command.
type move struct {
	Index    string `json:"index"`
	Shard    int    `json:"shard"`
	FromNode string `json:"from_node"`
	ToNode   string `json:"to_node"`
}

type command struct {
	Move move `json:"move"`
}

type request struct {
	Commands []command `json:"commands"`
}

// Formatter renders suggestions as reroute commands for an operator to run.
// It performs no I/O.
type Formatter struct {
	host string
	port int
}

// NewFormatter returns a formatter addressing host:port. An empty host makes
// every command address the destination node of the move.
func NewFormatter(host string, port int) *Formatter {
	if port <= 0 {
		port = pkg.DefaultClusterPort
	}
	return &Formatter{host: host, port: port}
}

// Body returns the reroute request body moving every given shard.
func Body(suggestions ...advisor.MoveSuggestion) ([]byte, error) {
	req := request{Commands: make([]command, 0, len(suggestions))}
	for _, s := range suggestions {
		req.Commands = append(req.Commands, command{Move: move{
			Index:    s.Index,
			Shard:    s.Shard,
			FromNode: string(s.FromNode),
			ToNode:   string(s.ToNode),
		}})
	}
	return json.Marshal(req)
}

func (f *Formatter) target(s advisor.MoveSuggestion) string {
	host := f.host
	if host == "" {
		host = string(s.ToNode)
	}
	return net.JoinHostPort(host, strconv.Itoa(f.port))
}

// Format renders one suggestion as a curl command.
func (f *Formatter) Format(s advisor.MoveSuggestion) string {
	// Marshal cannot fail, the request only holds strings and ints.
	body, _ := Body(s)
	return fmt.Sprintf("curl -XPOST '%s/_cluster/reroute' -H 'Content-Type: application/json' -d '%s'", f.target(s), body)
}

// FormatAll renders every suggestion in order.
func (f *Formatter) FormatAll(suggestions []advisor.MoveSuggestion) []string {
	commands := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		commands = append(commands, f.Format(s))
	}
	return commands
}
