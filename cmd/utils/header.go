package utils

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

// PrintHeader writes the CLI header to w
func PrintHeader(w io.Writer, description string) {
	logo := figure.NewFigure("shardadvisor", "", true)
	fmt.Fprintf(w, "%s\n %s\n\n", logo.String(), description)
}
