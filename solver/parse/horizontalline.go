// Package parse ingests the three text file formats the solver consumes
// (spec §6): per-site stats files, the combined reuse-segment/switch-count
// file, and CTS/SCA decision files.
package parse

import "strings"

// HorizontalLine is the section-separator token. The original scans for it
// with a substring match on each line rather than requiring an exact match
// (CostSolver.cpp's ParseStats/ParseReuse both use `line.find(HORIZONTAL_LINE)`),
// so Go does the same here.
const HorizontalLine = "===================================================================="

func isHorizontalLine(line string) bool {
	return strings.Contains(line, HorizontalLine)
}
