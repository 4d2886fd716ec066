package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pimprof/solver"
)

// Stats ingests one per-site stats file (spec §4.1, §6 "Stats file
// format"): horizontal-rule delimited sections, each headed by a "tid <N>"
// line and a skipped column-header line, followed by data rows
// "bblid elapsed_time instruction_count memory_access hash_hi hash_lo". On
// a recurring BblHash within the file, sightings are merged (spec §4.1
// "on recurrence, merge").
func Stats(r io.Reader) (map[solver.BblHash]*solver.RunStats, error) {
	out := make(map[solver.BblHash]*solver.RunStats)
	sc := bufio.NewScanner(r)
	tid := 0

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isHorizontalLine(line) {
			if !sc.Scan() {
				return nil, fmt.Errorf("stats: section header truncated after horizontal rule")
			}
			fields := strings.Fields(sc.Text())
			if len(fields) != 2 || fields[0] != "tid" {
				return nil, fmt.Errorf("stats: malformed section header %q", sc.Text())
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("stats: malformed tid %q: %w", fields[1], err)
			}
			tid = n
			if !sc.Scan() { // skip the column-header line
				return nil, fmt.Errorf("stats: section missing column-header line")
			}
			continue
		}

		rs, bblid, err := parseStatsRow(line)
		if err != nil {
			return nil, err
		}
		if existing, ok := out[rs.BblHash]; ok {
			if err := existing.Merge(tid, rs.ElapsedTime, rs.InstructionCount, rs.MemoryAccess); err != nil {
				return nil, fmt.Errorf("stats: %w", err)
			}
			continue
		}
		built, err := solver.NewRunStats(rs.BblHash, tid, rs.ElapsedTime, rs.InstructionCount, rs.MemoryAccess)
		if err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
		built.BblId = bblid
		out[rs.BblHash] = built
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return out, nil
}

func parseStatsRow(line string) (solver.RunStats, solver.BblId, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed data row %q", line)
	}

	bblid, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed bblid %q: %w", fields[0], err)
	}
	elapsed, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed elapsed_time %q: %w", fields[1], err)
	}
	if elapsed < 0 {
		return solver.RunStats{}, 0, fmt.Errorf("stats: negative elapsed_time %v", elapsed)
	}
	instr, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed instruction_count %q: %w", fields[2], err)
	}
	mem, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed memory_access %q: %w", fields[3], err)
	}
	hi, err := strconv.ParseUint(fields[4], 16, 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed hash_hi %q: %w", fields[4], err)
	}
	lo, err := strconv.ParseUint(fields[5], 16, 64)
	if err != nil {
		return solver.RunStats{}, 0, fmt.Errorf("stats: malformed hash_lo %q: %w", fields[5], err)
	}

	rs := solver.RunStats{
		BblHash:          solver.BblHash{Hi: hi, Lo: lo},
		ElapsedTime:      solver.Cost(elapsed),
		InstructionCount: instr,
		MemoryAccess:     mem,
	}
	return rs, solver.BblId(bblid), nil
}
