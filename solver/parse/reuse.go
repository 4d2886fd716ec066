package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/trie"
)

// Reuse ingests the combined reuse-segment/switch-count file (spec §4.2,
// §6 "Reuse file format"): two horizontal-rule-separated sections labeled
// "ReuseSegment" and "BBLSwitchCount" on the line following each rule. It
// returns the populated trie, the switch-count table, and the two inter-BBL
// data-movement maps populated as a side effect of parsing (spec §3
// "InterBB data-movement maps").
func Reuse(r io.Reader) (*trie.Trie, *solver.SwitchTable, solver.InterBBTraffic, solver.InterBBTraffic, error) {
	tr := trie.New()
	st := solver.NewSwitchTable()
	cl := solver.InterBBTraffic{}
	reg := solver.InterBBTraffic{}

	sc := bufio.NewScanner(r)
	section := ""
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isHorizontalLine(line) {
			if !sc.Scan() {
				return nil, nil, nil, nil, fmt.Errorf("reuse: section label missing after horizontal rule")
			}
			section = strings.TrimSpace(sc.Text())
			continue
		}

		switch section {
		case "ReuseSegment":
			seg, err := parseReuseRow(line)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			tr.Insert(seg)
			cl.AddSegmentAdjacent(seg.Members, seg.Count)
		case "BBLSwitchCount":
			from, pairs, err := parseSwitchRow(line)
			if err != nil {
				return nil, nil, nil, nil, err
			}
			for _, p := range pairs {
				st.Add(from, p.to, p.count)
				reg.Add(from, p.to, p.count)
			}
		default:
			return nil, nil, nil, nil, fmt.Errorf("reuse: data row %q seen before any section label", line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("reuse: %w", err)
	}
	st.Finalize()
	return tr, st, cl, reg, nil
}

// parseReuseRow parses "head = <bblid>, count = <N> | <bblid>+" (spec §6).
// Tokens are loose per spec, mirroring the original's token-by-token scan
// (CostSolver.cpp ParseReuse): head comes from the third whitespace token
// with its trailing comma stripped, count from the token after "count =",
// and every token after the "|" is a segment member.
func parseReuseRow(line string) (trie.Segment, error) {
	fields := strings.Fields(line)
	if len(fields) < 7 || fields[0] != "head" || fields[1] != "=" ||
		fields[3] != "count" || fields[4] != "=" || fields[6] != "|" {
		return trie.Segment{}, fmt.Errorf("reuse: malformed ReuseSegment row %q", line)
	}

	headTok := strings.TrimSuffix(fields[2], ",")
	head, err := strconv.ParseUint(headTok, 10, 64)
	if err != nil {
		return trie.Segment{}, fmt.Errorf("reuse: malformed head %q: %w", fields[2], err)
	}
	count, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return trie.Segment{}, fmt.Errorf("reuse: malformed count %q: %w", fields[5], err)
	}
	if count < 0 {
		return trie.Segment{}, fmt.Errorf("reuse: negative count %d", count)
	}

	members := make([]solver.BblId, 0, len(fields)-6)
	members = append(members, solver.BblId(head))
	for _, tok := range fields[7:] {
		id, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return trie.Segment{}, fmt.Errorf("reuse: malformed member bblid %q: %w", tok, err)
		}
		members = append(members, solver.BblId(id))
	}
	return trie.NewSegment(members, count), nil
}

type switchPair struct {
	to    solver.BblId
	count int64
}

// parseSwitchRow parses "from <bblid> : <to>:<count>*" (spec §6).
func parseSwitchRow(line string) (solver.BblId, []switchPair, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 || fields[0] != "from" || fields[2] != ":" {
		return 0, nil, fmt.Errorf("reuse: malformed BBLSwitchCount row %q", line)
	}
	from, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("reuse: malformed from-bblid %q: %w", fields[1], err)
	}

	pairs := make([]switchPair, 0, len(fields)-3)
	for _, tok := range fields[3:] {
		parts := strings.SplitN(tok, ":", 2)
		if len(parts) != 2 {
			return 0, nil, fmt.Errorf("reuse: malformed to:count pair %q", tok)
		}
		to, err := strconv.ParseUint(parts[0], 10, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("reuse: malformed to-bblid %q: %w", parts[0], err)
		}
		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("reuse: malformed switch count %q: %w", parts[1], err)
		}
		if count < 0 {
			return 0, nil, fmt.Errorf("reuse: negative switch count %d", count)
		}
		pairs = append(pairs, switchPair{to: solver.BblId(to), count: count})
	}
	return solver.BblId(from), pairs, nil
}
