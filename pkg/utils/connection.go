package utils

import (
	"net"
	"strconv"
	"strings"

	"github.com/eirsyl/shardadvisor/pkg"
	log "github.com/sirupsen/logrus"
)

// GetHostPort splits a cluster address. The port falls back to
// defaultPort, or the status API port when defaultPort is 0.
func GetHostPort(addr string, defaultPort int) (string, int) {
	if defaultPort <= 0 {
		defaultPort = pkg.DefaultClusterPort
	}
	if addr == "" {
		return "localhost", defaultPort
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// No port in the address, IPv6 literals may still be bracketed
		return strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]"), defaultPort
	}
	if host == "" {
		host = "localhost"
	}

	p, err := strconv.Atoi(port)
	if err != nil {
		log.Warnf("Could not parse address port: %v", err)
		p = defaultPort
	}
	return host, p
}
