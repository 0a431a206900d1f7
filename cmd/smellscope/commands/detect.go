package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/config"
	"github.com/Sumatoshi-tech/smellscope/pkg/export"
	"github.com/Sumatoshi-tech/smellscope/pkg/observability"
	"github.com/Sumatoshi-tech/smellscope/pkg/persist"
	"github.com/Sumatoshi-tech/smellscope/pkg/rules"
)

// exitIssuesFound is the process exit code when --fail-on-issues trips.
const exitIssuesFound = 3

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// DetectCommand holds configuration for the detect command.
type DetectCommand struct {
	global *GlobalOptions
	measureFlags

	rulesFile      string
	corpus         string
	dynamic        bool
	atfdPercentile float64
	wmcPercentile  float64
	failOnIssues   bool
	summary        bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand(global *GlobalOptions) *cobra.Command {
	dc := &DetectCommand{global: global}

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Detect God Class design smells",
		Long: `Measure the inputs and apply the God Class rules to every class.

The fixed rules always run. With --dynamic the percentile rules also run, with
thresholds taken from --corpus (a stored snapshot or a directory of them) or,
without a corpus, from the analyzed classes themselves.`,
		RunE: dc.run,
	}

	dc.register(cmd)

	flags := cmd.Flags()
	flags.StringVar(&dc.rulesFile, "rules", "", "YAML rule set replacing the default God Class rules")
	flags.StringVar(&dc.corpus, "corpus", "", "Stored snapshot file or snapshot directory for dynamic thresholds")
	flags.BoolVar(&dc.dynamic, "dynamic", false, "Also apply the percentile-threshold rules")
	flags.Float64Var(&dc.atfdPercentile, "atfd-percentile", rules.DefaultATFDPercentile, "ATFD percentile of the dynamic rules")
	flags.Float64Var(&dc.wmcPercentile, "wmc-percentile", rules.DefaultWMCPercentile, "WMC percentile of the dynamic rules")
	flags.BoolVar(&dc.failOnIssues, "fail-on-issues", false, "Exit with status 3 when any smell is found")
	flags.BoolVar(&dc.summary, "summary", true, "Print a run summary on stderr")

	return cmd
}

func (dc *DetectCommand) run(cmd *cobra.Command, args []string) (err error) {
	applyColor(dc.global)

	s, err := openSession(dc.global, cmd.ErrOrStderr(), observability.ModeCLI)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, s.Close(cmd.Context())) }()

	dc.apply(cmd, s.cfg)
	dc.applyRules(cmd, s)

	engine, err := buildEngine(s.cfg.Rules)
	if err != nil {
		return err
	}

	start := time.Now()

	set, err := loadInputs(args, cmd.InOrStdin(), discoverOptions(s.cfg.Analysis))
	if err != nil {
		return err
	}

	snap, err := dc.measure(cmd.Context(), cmd, s, set)
	if err != nil {
		return err
	}

	target := dc.filter(s.cfg).Apply(snap)

	var opts []rules.FindOption

	// With no class to score there is no threshold to compute.
	if s.cfg.Rules.Dynamic && engine.HasDynamicRules() && len(target.Classes) > 0 {
		corpus, err := loadCorpus(s.cfg.Rules.Corpus, snap)
		if err != nil {
			return err
		}

		opts = append(opts, rules.WithCorpus(corpus))
	}

	report, err := s.pipeline().Detect(cmd.Context(), target, engine, opts...)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, dc.out, func(w io.Writer) error {
		return export.WriteReport(w, s.cfg.Output.Format, report)
	}); err != nil {
		return err
	}

	if dc.summary {
		export.WriteSummary(cmd.ErrOrStderr(), export.Summary{
			Files:      len(set.sources),
			InputBytes: set.bytes(),
			Classes:    len(target.Classes),
			Members:    target.MemberCount(),
			Smelly:     report.Len(),
			Issues:     report.Count(),
			Elapsed:    time.Since(start),
			Detected:   true,
		})
	}

	if dc.failOnIssues && report.Count() > 0 {
		return &ExitError{Code: exitIssuesFound, Message: fmt.Sprintf("%d design smells found", report.Count())}
	}

	return nil
}

func (dc *DetectCommand) applyRules(cmd *cobra.Command, s *session) {
	flags := cmd.Flags()

	if flags.Changed("rules") {
		s.cfg.Rules.File = dc.rulesFile
	}

	if flags.Changed("corpus") {
		s.cfg.Rules.Corpus = dc.corpus
		s.cfg.Rules.Dynamic = true
	}

	if flags.Changed("dynamic") {
		s.cfg.Rules.Dynamic = dc.dynamic
	}

	if flags.Changed("atfd-percentile") {
		s.cfg.Rules.ATFDPercentile = dc.atfdPercentile
	}

	if flags.Changed("wmc-percentile") {
		s.cfg.Rules.WMCPercentile = dc.wmcPercentile
	}
}

// buildEngine returns the rule file's rules, or the fixed and dynamic God
// Class rules at the configured percentiles.
func buildEngine(cfg config.RulesConfig) (*rules.Engine, error) {
	if cfg.File != "" {
		loaded, err := rules.LoadRuleFile(cfg.File)
		if err != nil {
			return nil, err
		}

		return rules.NewEngine(loaded...), nil
	}

	return rules.NewEngine(append(rules.GodClassRules(),
		rules.DynamicGodClassRules(cfg.ATFDPercentile, cfg.WMCPercentile)...)...), nil
}

// loadCorpus reads the corpus at path: one stored snapshot, or every
// snapshot of a store directory. An empty path uses the analyzed batch.
func loadCorpus(path string, batch *analyze.Snapshot) (rules.Corpus, error) {
	if path == "" {
		return batch.Corpus(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}

	if !info.IsDir() {
		var snap analyze.Snapshot
		if err := persist.Load(path, &snap); err != nil {
			return nil, err
		}

		return snap.Corpus(), nil
	}

	store, err := snapshotStore(path)
	if err != nil {
		return nil, err
	}

	snaps, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	var corpus rules.Corpus
	for _, snap := range snaps {
		corpus = append(corpus, snap.Corpus()...)
	}

	return corpus, nil
}
