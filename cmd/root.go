// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pimprof/solver"
	"github.com/pimprof/solver/config"
	"github.com/pimprof/solver/cost"
	"github.com/pimprof/solver/parse"
	"github.com/pimprof/solver/report"
	"github.com/pimprof/solver/strategy"
	"github.com/pimprof/solver/trie"
)

var (
	cpuPath    string
	pimPath    string
	reusePath  string
	outputPath string
	ctsPath    string
	scaPath    string
	dataMove   float64
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "solver",
	Short: "PIMProf offline CPU/PIM site-assignment solver",
}

// Execute runs the command tree; the only caller is main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	for _, c := range []*cobra.Command{mpkiCmd, reuseCmd, debugCmd, paraCmd} {
		c.Flags().StringVarP(&cpuPath, "cpu", "c", "", "CPU stats file (required)")
		c.Flags().StringVarP(&pimPath, "pim", "p", "", "PIM stats file (required)")
		c.Flags().StringVarP(&outputPath, "output", "o", "", "report output file (required)")
		c.Flags().StringVar(&configPath, "config", "", "optional YAML cost-config overlay")
		c.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	}
	for _, c := range []*cobra.Command{reuseCmd, debugCmd} {
		c.Flags().StringVarP(&reusePath, "reuse", "r", "", "reuse+switch file (required)")
		c.Flags().StringVarP(&ctsPath, "cts", "t", "", "CTS decision file")
		c.Flags().StringVarP(&scaPath, "sca", "s", "", "SCA decision file")
		c.Flags().Float64VarP(&dataMove, "data", "d", 0, "data_move_threshold for cache-line-traffic coalescing")
	}

	rootCmd.AddCommand(mpkiCmd, reuseCmd, debugCmd, paraCmd)
}

var mpkiCmd = &cobra.Command{
	Use:   "mpki",
	Short: "Assign sites by the MPKI/parallelism/instruction-count gate (spec §4.5)",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireFlags(cmd, "cpu", "pim", "output") {
			return
		}
		setLogLevel()

		pool, tr, st, err := ingestCommon(cpuPath, pimPath, "")
		fatalIf(err)
		cfg := loadCostConfig()

		in := strategy.Input{Pool: pool, Trie: tr, Switch: st}
		decision, breakdown, err := strategy.MPKI(in, cfg)
		fatalIf(err)

		writeReport(report.Input{
			PrimaryName: "mpki",
			Pool:        pool,
			Primary:     decision,
			PrimaryCost: breakdown,
		})
		logrus.Infof("mpki: total cost %.2f", float64(breakdown.Total()))
	},
}

var reuseCmd = &cobra.Command{
	Use:   "reuse",
	Short: "Assign sites by the batched reuse-trie permutation search (spec §4.4)",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireFlags(cmd, "cpu", "pim", "output", "reuse") {
			return
		}
		setLogLevel()
		runReuseLike(strategy.Reuse)
	},
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Run all three reuse-strategy variants and report the best (spec §9)",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireFlags(cmd, "cpu", "pim", "output", "reuse") {
			return
		}
		setLogLevel()
		runDebug()
	},
}

var paraCmd = &cobra.Command{
	Use:   "para",
	Short: "Reserved for a future parallel-search mode; not implemented",
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Fatal("para mode is reserved and not implemented")
	},
}

func runReuseLike(run func(strategy.Input, solver.CostConfig) (solver.Decision, cost.Breakdown, error)) {
	pool, tr, st, err := ingestCommon(cpuPath, pimPath, reusePath)
	fatalIf(err)
	cfg := loadCostConfig()

	in := strategy.Input{Pool: pool, Trie: tr, Switch: st}
	decision, breakdown, err := run(in, cfg)
	fatalIf(err)

	rin := report.Input{
		PrimaryName: "reuse",
		Pool:        pool,
		Primary:     decision,
		PrimaryCost: breakdown,
	}
	applyDecisionFiles(pool, tr, st, cfg, &rin)
	writeReport(rin)
	logrus.Infof("reuse: total cost %.2f", float64(breakdown.Total()))
}

func runDebug() {
	pool, tr, st, err := ingestCommon(cpuPath, pimPath, reusePath)
	fatalIf(err)
	cfg := loadCostConfig()
	in := strategy.Input{Pool: pool, Trie: tr, Switch: st}

	variants := []struct {
		name string
		run  func(strategy.Input, solver.CostConfig) (solver.Decision, cost.Breakdown, error)
	}{
		{"reuse (production)", strategy.Reuse},
		{"reuse (hierarchical-debug)", strategy.ReuseHierarchicalDebug},
		{"reuse (start-from-unimportant)", strategy.ReuseStartFromUnimportant},
	}

	var bestDecision solver.Decision
	var bestBreakdown cost.Breakdown
	haveBest := false
	for _, v := range variants {
		d, b, err := v.run(in, cfg)
		fatalIf(err)
		logrus.Infof("debug: %s total cost %.2f", v.name, float64(b.Total()))
		if !haveBest || b.Total() < bestBreakdown.Total() {
			bestDecision, bestBreakdown, haveBest = d, b, true
		}
	}

	rin := report.Input{
		PrimaryName: "debug-best",
		Pool:        pool,
		Primary:     bestDecision,
		PrimaryCost: bestBreakdown,
	}
	applyDecisionFiles(pool, tr, st, cfg, &rin)
	writeReport(rin)
}

// applyDecisionFiles resolves the optional CTS/SCA decision files into the
// report.Input diff columns. When both an SCA file and a positive
// data_move_threshold are supplied, the SCA decision is refined through
// the cache-line-traffic coalescing pass (spec §4.8) before being scored.
func applyDecisionFiles(pool *solver.StatsPool, tr *trie.Trie, st *solver.SwitchTable, cfg solver.CostConfig, rin *report.Input) {
	if ctsPath != "" {
		f, err := os.Open(ctsPath)
		fatalIf(err)
		defer f.Close()
		df, err := parse.Decision(f)
		fatalIf(err)
		rin.HasCTS = true
		rin.CTS = df.Resolve(pool)
	}

	if scaPath != "" {
		f, err := os.Open(scaPath)
		fatalIf(err)
		defer f.Close()
		df, err := parse.Decision(f)
		fatalIf(err)
		seed := df.Resolve(pool)

		if dataMove > 0 {
			_, _, cl, reg, err := reparseReuseForTraffic()
			fatalIf(err)
			seed = strategy.RedecideSCAByCLDM(cfg, dataMove, pool.Len(), seed, cl, reg)
		}

		rin.HasSCA = true
		rin.SCA = seed
		b, err := cost.Cost(cfg, pool, seed, tr, st)
		fatalIf(err)
		rin.SCACost = b
	}
}

// reparseReuseForTraffic re-reads the reuse file to recover the CL/REG
// inter-BBL traffic maps parse.Reuse populates as a side effect; the trie
// and switch table it also returns are discarded since ingestCommon's copies
// are already wired into the report.
func reparseReuseForTraffic() (*trie.Trie, *solver.SwitchTable, solver.InterBBTraffic, solver.InterBBTraffic, error) {
	f, err := os.Open(reusePath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer f.Close()
	return parse.Reuse(f)
}

func ingestCommon(cpuPath, pimPath, reusePath string) (*solver.StatsPool, *trie.Trie, *solver.SwitchTable, error) {
	cpuFile, err := os.Open(cpuPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening cpu stats file: %w", err)
	}
	defer cpuFile.Close()
	cpuStats, err := parse.Stats(cpuFile)
	if err != nil {
		return nil, nil, nil, err
	}

	pimFile, err := os.Open(pimPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening pim stats file: %w", err)
	}
	defer pimFile.Close()
	pimStats, err := parse.Stats(pimFile)
	if err != nil {
		return nil, nil, nil, err
	}

	pool := solver.NewStatsPool(cpuStats, pimStats)

	if reusePath == "" {
		return pool, trie.New(), solver.NewSwitchTable(), nil
	}
	reuseFile, err := os.Open(reusePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening reuse file: %w", err)
	}
	defer reuseFile.Close()
	tr, st, _, _, err := parse.Reuse(reuseFile)
	if err != nil {
		return nil, nil, nil, err
	}
	return pool, tr, st, nil
}

func loadCostConfig() solver.CostConfig {
	cfg := solver.DefaultCostConfig()
	if configPath != "" {
		overlay, err := config.Load(configPath)
		fatalIf(err)
		cfg = overlay.Apply(cfg)
	}
	if dataMove > 0 {
		cfg.DataMoveThreshold = dataMove
	}
	return cfg
}

func writeReport(in report.Input) {
	out, err := os.Create(outputPath)
	fatalIf(err)
	defer out.Close()
	fatalIf(report.Write(out, os.Stderr, in))
}

// requireFlags prints usage and exits 0 on the first missing required
// flag (spec §6: "Any missing required option prints usage and exits 0").
func requireFlags(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			cmd.Usage()
			os.Exit(0)
		}
	}
	return true
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func fatalIf(err error) {
	if err != nil {
		logrus.Fatal(err)
	}
}
