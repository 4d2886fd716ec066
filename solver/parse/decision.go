package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pimprof/solver"
)

// Decision ingests a CTS or SCA decision file (spec §4.9, §6 "Decision
// files"): each line is "<hash_hi(hex)> <hash_lo(hex)> {CPU|PIM|Follower}
// [<cycles>]". The trailing cycles field, when present, is accepted but
// unused by the solver. Any other site token is fatal.
func Decision(r io.Reader) (solver.DecisionFromFile, error) {
	out := make(solver.DecisionFromFile)
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("decision: malformed row %q", line)
		}

		hi, err := strconv.ParseUint(fields[0], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("decision: malformed hash_hi %q: %w", fields[0], err)
		}
		lo, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			return nil, fmt.Errorf("decision: malformed hash_lo %q: %w", fields[1], err)
		}

		var site solver.CostSite
		if err := site.UnmarshalText([]byte(fields[2])); err != nil {
			return nil, fmt.Errorf("decision: %w", err)
		}
		if site != solver.CPU && site != solver.PIM && site != solver.Follower {
			return nil, fmt.Errorf("decision: site token %q is not valid in a decision file", fields[2])
		}

		out[solver.BblHash{Hi: hi, Lo: lo}] = site
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("decision: %w", err)
	}
	return out, nil
}
