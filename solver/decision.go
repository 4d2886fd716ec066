package solver

import "fmt"

// Decision is an assignment of a CostSite to every BblId, indexed by BblId.
// Invalid slots are only tolerated mid-construction; Validate rejects them
// in a final decision (spec §3 "Decision"). The cost oracle itself accepts
// Invalid slots.
type Decision []CostSite

// NewDecision returns a Decision of length n with every slot set to fill
// (typically Invalid during strategy construction, or CPU/PIM as a seed).
func NewDecision(n int, fill CostSite) Decision {
	d := make(Decision, n)
	for i := range d {
		d[i] = fill
	}
	return d
}

// Clone returns an independent copy.
func (d Decision) Clone() Decision {
	out := make(Decision, len(d))
	copy(out, d)
	return out
}

// HasInvalid reports whether any slot is still Invalid.
func (d Decision) HasInvalid() bool {
	for _, s := range d {
		if s == Invalid {
			return true
		}
	}
	return false
}

// Validate returns an error if d contains Invalid or Follower entries,
// which are forbidden in a final decision (spec §7 "Ambiguous strategy
// output").
func (d Decision) Validate() error {
	for i, s := range d {
		if s == Invalid {
			return fmt.Errorf("bblid %d left unassigned (Invalid) in final decision", i)
		}
		if s == Follower {
			return fmt.Errorf("bblid %d left unresolved (Follower) in final decision", i)
		}
	}
	return nil
}

// FillGreedy assigns CPU/PIM to every Invalid slot by comparing per-site
// max-elapsed-time (spec §4.4 step 3): PIM iff strictly cheaper, CPU on a
// tie or any remaining ambiguity.
func (d Decision) FillGreedy(pool *StatsPool) {
	for i := range d {
		if d[i] != Invalid {
			continue
		}
		id := BblId(i)
		if pool.PIM(id).MaxElapsedTime() < pool.CPU(id).MaxElapsedTime() {
			d[i] = PIM
		} else {
			d[i] = CPU
		}
	}
}

// DecisionFromFile maps a BblHash to a site parsed from a CTS/SCA decision
// file. Follower entries are resolved into a concrete site at ingestion
// time (spec §3 "DecisionFromFile").
type DecisionFromFile map[BblHash]CostSite

// Resolve walks BblIds in order and produces a concrete Decision:
//   - if the file names this BblHash, adopt its site;
//   - Follower inherits the previous BblId's already-resolved site, with
//     PIM as the bootstrap predecessor default (spec §4.9, flagged in §9 as
//     an undocumented-but-preserved behavior);
//   - if the hash is HashMain, fall back to the Greedy predicate;
//   - otherwise default to CPU.
func (f DecisionFromFile) Resolve(pool *StatsPool) Decision {
	d := make(Decision, pool.Len())
	prev := PIM
	for i := 0; i < pool.Len(); i++ {
		id := BblId(i)
		h := pool.Hash(id)
		site, ok := f[h]
		switch {
		case ok && site == Follower:
			site = prev
		case ok:
			// use file's site as-is
		case h == HashMain:
			if pool.PIM(id).MaxElapsedTime() < pool.CPU(id).MaxElapsedTime() {
				site = PIM
			} else {
				site = CPU
			}
		default:
			site = CPU
		}
		d[i] = site
		prev = site
	}
	return d
}
