// Package solver implements PIMProf's CostSolver: an offline optimizer that
// decides, for each basic block (BBL) of a profiled program, whether to run
// it on a conventional CPU or a processing-in-memory (PIM) unit.
//
// # Reading Guide
//
// Start with these files to understand the data model:
//   - ids.go: BblId / BblHash / CostSite, the identifiers everything else keys on
//   - stats.go: RunStats and the StatsPool that owns CPU/PIM measurements
//   - decision.go: Decision, the assignment vector strategies produce
//   - solver/cost/cost.go (separate subpackage): the canonical cost oracle
//     every strategy is checked against
//
// # Architecture
//
// The solver package defines the shared data model; everything that
// consumes it lives in sub-packages:
//   - solver/cost: the canonical cost oracle
//   - solver/trie: the reuse trie (cache-line reuse segments)
//   - solver/unionfind: disjoint-set used by the SCA coalescing strategy
//   - solver/strategy: MPKI, Greedy, Reuse, SCA, CTS site-assignment strategies
//   - solver/parse: stats/reuse/decision file ingestion
//   - solver/report: the decision report writer
//   - solver/annotate: compile-time annotation codegen (external-collaborator artifact)
//   - solver/config: optional YAML cost-constant overlay
//
// # Concurrency
//
// The solver is a single-threaded batch program (see spec §5): it ingests
// four files, runs one strategy, writes a report, and exits. Library code
// reports malformed input through returned errors and never calls os.Exit;
// only cmd/ converts a returned error into a fatal process exit. The one
// deliberate panic is SwitchTable.Add's guard against a negative count,
// which parse.Reuse rejects before calling Add.
package solver
