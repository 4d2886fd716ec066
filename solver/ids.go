package solver

import "fmt"

// BblId is a dense, non-negative index assigned to a basic block at
// ingestion time. It is stable only within a single solver run: the CPU and
// PIM stats tables are ingested independently and then aligned (see
// NewStatsPool) so that one BblId refers to the same BblHash in both.
type BblId uint64

// BblHash is the 128-bit content hash that identifies a basic block across
// profiling runs, independent of any single run's BblId assignment.
type BblHash struct {
	Hi uint64
	Lo uint64
}

// Less orders hashes lexicographically on (Hi, Lo), matching the ordering
// used to assign BblIds during alignment (spec §4.1).
func (h BblHash) Less(o BblHash) bool {
	if h.Hi != o.Hi {
		return h.Hi < o.Hi
	}
	return h.Lo < o.Lo
}

func (h BblHash) String() string {
	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}

// HashGlobal is the sentinel hash for code outside any annotated BBL.
var HashGlobal = BblHash{Hi: 0, Lo: 0}

// HashMain is the sentinel hash for the program's top-level basic block.
var HashMain = BblHash{Hi: ^uint64(0), Lo: ^uint64(0)}

// CostSite names where a basic block's instructions execute.
type CostSite int

const (
	// CPU is conventional-core execution.
	CPU CostSite = iota
	// PIM is processing-in-memory execution.
	PIM
	// Follower means "inherit the predecessor BBL's resolved site"; only
	// valid in a DecisionFromFile before resolution (spec §4.9).
	Follower
	// Invalid marks a Decision slot not yet assigned by a strategy.
	Invalid
)

// NumCostSite bounds the two real execution sites (CPU, PIM) for arrays
// indexed by site, mirroring the original MAX_COST_SITE.
const NumCostSite = 2

func (s CostSite) String() string {
	switch s {
	case CPU:
		return "CPU"
	case PIM:
		return "PIM"
	case Follower:
		return "Follower"
	case Invalid:
		return "Invalid"
	default:
		return fmt.Sprintf("CostSite(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler so CostSite has one textual
// representation, the same tokens the decision-file parser reads.
func (s CostSite) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown tokens are
// fatal per spec §7 ("Malformed input").
func (s *CostSite) UnmarshalText(text []byte) error {
	switch string(text) {
	case "CPU":
		*s = CPU
	case "PIM":
		*s = PIM
	case "Follower":
		*s = Follower
	case "Invalid":
		*s = Invalid
	default:
		return fmt.Errorf("unknown cost site token %q", string(text))
	}
	return nil
}

// Other returns the opposite real execution site. Only meaningful for
// CPU/PIM; callers must not pass Follower or Invalid.
func (s CostSite) Other() CostSite {
	if s == CPU {
		return PIM
	}
	return CPU
}

// Cost is a nanosecond-denominated cost value.
type Cost float64
