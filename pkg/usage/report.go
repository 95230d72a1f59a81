package usage

import (
	"fmt"
	"io"

	tm "github.com/buger/goterm"
	"github.com/eirsyl/shardadvisor/pkg"
)

// Table renders the node utilization table.
func (u *Utilization) Table() (string, error) {
	table := tm.NewTable(0, 10, 2, ' ', 0)
	if _, err := fmt.Fprintf(table, "Node\tZone\tLoad\tDocs\tShards\tSpace\tDocs%%\tShards%%\tSpace%%\n"); err != nil {
		return "", err
	}

	for _, id := range u.SortedNodes() {
		nu := u.Nodes[id]
		p := u.Percent(id)
		if _, err := fmt.Fprintf(table, "%s\t%s\t%.2f\t%d\t%d\t%.2f gb\t%.2f%%\t%.2f%%\t%.2f%%\n",
			nu.Node, nu.Zone, nu.Load, nu.TotalDocs, nu.ShardCount,
			float64(nu.TotalBytes)/pkg.GiB, p.Docs, p.Shards, p.Disk); err != nil {
			return "", err
		}
	}

	if _, err := fmt.Fprintf(table, "Totals\t\t\t%d\t%d\t%.2f gb\t\t\t\n",
		u.Totals.Docs, u.Totals.Shards, float64(u.Totals.Bytes)/pkg.GiB); err != nil {
		return "", err
	}

	return table.String(), nil
}

// WriteReport writes the utilization table to w.
func WriteReport(w io.Writer, u *Utilization) error {
	table, err := u.Table()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, table)
	return err
}
