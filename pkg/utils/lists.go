package utils

import (
	"sort"
	"strings"
)

// SplitList flattens comma separated list values and drops empty and
// repeated entries. Repeated flags and "a,b" style values are both accepted.
func SplitList(values []string) []string {
	var res []string
	seen := map[string]bool{}
	for _, value := range values {
		for _, element := range strings.Split(value, ",") {
			element = strings.TrimSpace(element)
			if element == "" || seen[element] {
				continue
			}
			seen[element] = true
			res = append(res, element)
		}
	}
	sort.Strings(res)
	return res
}
