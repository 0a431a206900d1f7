package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/smellscope/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/smellscope/pkg/export"
	"github.com/Sumatoshi-tech/smellscope/pkg/observability"
	"github.com/Sumatoshi-tech/smellscope/pkg/persist"
)

// ErrSnapshotsWithPaths is returned when history snapshots and plain inputs are mixed.
var ErrSnapshotsWithPaths = errors.New("--snapshot cannot be combined with input paths")

// AnalyzeCommand holds configuration for the analyze command.
type AnalyzeCommand struct {
	global *GlobalOptions
	measureFlags

	members   bool
	precision int
	kinds     []string
	save      string
	snapshots []string
	store     string
	summary   bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(global *GlobalOptions) *cobra.Command {
	ac := &AnalyzeCommand{global: global}

	cmd := &cobra.Command{
		Use:   "analyze [paths...]",
		Short: "Compute class and member metrics",
		Long: `Build the code model from UAST documents and compute every class and member metric.

Inputs are UAST JSON files, directories (walked with --include/--exclude), or - to
read a stream of documents from stdin. Repeat --snapshot id=path to measure several
versions of a project as one history.`,
		RunE: ac.run,
	}

	ac.register(cmd)

	flags := cmd.Flags()
	flags.BoolVar(&ac.members, "members", false, "Include member rows in csv and table output")
	flags.IntVar(&ac.precision, "precision", 0, "Decimals in csv and table cells (-1 = full precision)")
	flags.StringSliceVar(&ac.kinds, "metrics", nil, "Metric columns for csv and table output (default all)")
	flags.StringVar(&ac.save, "save", "", "Also store the snapshot (.json, .gob, optionally .lz4)")
	flags.StringArrayVar(&ac.snapshots, "snapshot", nil, "History snapshot as id=path (repeatable)")
	flags.StringVar(&ac.store, "store", "", "Directory to store every history snapshot in (lz4-compressed gob)")
	flags.BoolVar(&ac.summary, "summary", true, "Print a run summary on stderr")

	return cmd
}

func (ac *AnalyzeCommand) run(cmd *cobra.Command, args []string) (err error) {
	applyColor(ac.global)

	if len(ac.snapshots) > 0 && len(args) > 0 {
		return ErrSnapshotsWithPaths
	}

	specs, err := parseSnapshotSpecs(ac.snapshots)
	if err != nil {
		return err
	}

	mode := observability.ModeCLI
	if len(specs) > 0 {
		mode = observability.ModeBatch
	}

	s, err := openSession(ac.global, cmd.ErrOrStderr(), mode)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, s.Close(cmd.Context())) }()

	ac.apply(cmd, s.cfg)

	if cmd.Flags().Changed("members") {
		s.cfg.Output.Members = ac.members
	}

	if cmd.Flags().Changed("precision") {
		s.cfg.Output.Precision = ac.precision
	}

	kinds, err := parseKinds(ac.kinds)
	if err != nil {
		return err
	}

	opts := export.Options{Kinds: kinds, Precision: s.cfg.Output.Precision, Members: s.cfg.Output.Members}

	if len(specs) > 0 {
		return ac.runHistory(cmd, s, specs, opts)
	}

	start := time.Now()

	set, err := loadInputs(args, cmd.InOrStdin(), discoverOptions(s.cfg.Analysis))
	if err != nil {
		return err
	}

	snap, err := ac.measure(cmd.Context(), cmd, s, set)
	if err != nil {
		return err
	}

	if ac.save != "" {
		if err := persist.Save(ac.save, snap); err != nil {
			return err
		}

		s.logger.InfoContext(cmd.Context(), "snapshot saved", "path", ac.save)
	}

	if err := writeOutput(cmd, ac.out, func(w io.Writer) error {
		return export.WriteSnapshot(w, s.cfg.Output.Format, ac.filter(s.cfg).Apply(snap), opts)
	}); err != nil {
		return err
	}

	if ac.summary {
		export.WriteSummary(cmd.ErrOrStderr(), export.Summary{
			Files:      len(set.sources),
			InputBytes: set.bytes(),
			Classes:    len(snap.Classes),
			Members:    snap.MemberCount(),
			Elapsed:    time.Since(start),
		})
	}

	return nil
}

func (ac *AnalyzeCommand) runHistory(cmd *cobra.Command, s *session, specs []snapshotSpec, opts export.Options) error {
	start := time.Now()

	snaps, files, size, err := ac.measureHistory(cmd.Context(), cmd, s, specs)
	if err != nil {
		return err
	}

	if ac.store != "" {
		store, err := snapshotStore(ac.store)
		if err != nil {
			return err
		}

		for _, snap := range snaps {
			if err := store.Save(snap.Source, snap); err != nil {
				return fmt.Errorf("store snapshot %s: %w", snap.Source, err)
			}
		}
	}

	filter := ac.filter(s.cfg)

	filtered := make([]*analyze.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		filtered = append(filtered, filter.Apply(snap))
	}

	if err := writeOutput(cmd, ac.out, func(w io.Writer) error {
		return export.WriteSnapshots(w, s.cfg.Output.Format, filtered, opts)
	}); err != nil {
		return err
	}

	if ac.summary {
		var classes, members int
		for _, snap := range snaps {
			classes += len(snap.Classes)
			members += snap.MemberCount()
		}

		export.WriteSummary(cmd.ErrOrStderr(), export.Summary{
			Files:      files,
			InputBytes: size,
			Classes:    classes,
			Members:    members,
			Elapsed:    time.Since(start),
		})
	}

	return nil
}
