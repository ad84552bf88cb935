// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seqmatch/internal/anchor"
	"seqmatch/internal/cli"
	"seqmatch/internal/config"
	"seqmatch/internal/fasta"
	"seqmatch/internal/letter"
	"seqmatch/internal/logging"
	"seqmatch/internal/version"
	"seqmatch/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitNoMatch     = 1 // first-match answers found nothing in any subject
	ExitUsage       = 2
	ExitOutput      = 3
	ExitInterrupted = 130
)

// exitError carries a process exit code. A nil err exits quietly.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit " + strconv.Itoa(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErr(err error) error { return &exitError{code: ExitUsage, err: err} }

// Run executes the seqmatch command line and returns the exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			_, _ = fmt.Fprintln(stderr, "seqmatch:", ee.err)
		}
		return ee.code
	}
	// cobra's own failures: unknown command, bad arguments
	_, _ = fmt.Fprintln(stderr, "seqmatch:", err)
	return ExitUsage
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "seqmatch",
		Short: "seqmatch - anchored approximate pattern matching",
		Long: `seqmatch compares a pattern against subject sequences at given anchor
positions, counting substitutions (and optionally insertions and deletions)
under exact or IUPAC-ambiguity letter matching.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErr(fmt.Errorf("%w\n\n%s", err, cmd.UsageString()))
	})
	root.AddCommand(newAtCommand(stdout, stderr), newVersionCommand(stdout))
	return root
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Fprintf(stdout, "seqmatch version %s\n", version.Version); err != nil && !writers.IsBrokenPipe(err) {
				return &exitError{code: ExitOutput, err: err}
			}
			return nil
		},
	}
}

func newAtCommand(stdout, stderr io.Writer) *cobra.Command {
	var opts cli.Options
	cmd := &cobra.Command{
		Use:   "at [flags] [FASTA...]",
		Short: "Match a pattern against subjects at anchor positions",
		Example: `  seqmatch at -p ACGT -s TTACGTTT --at 3,5 -m 1
  seqmatch at -p ACGTT --at 3 -m 1 --with-indels --answer which refs/*.fa
  zcat refs.fa.gz | seqmatch at -p ACNT --fixed subject --at 1,NA -o jsonl -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAt(cmd, &opts, args, stdout, stderr)
		},
	}
	cli.Bind(cmd.Flags(), &opts, config.Default())
	return cmd
}

type subjectSet struct {
	ids  []string
	seqs [][]byte
}

func runAt(cmd *cobra.Command, opts *cli.Options, args []string, stdout, stderr io.Writer) error {
	ctx := cmd.Context()
	if err := opts.Check(args); err != nil {
		return usageErr(err)
	}

	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return usageErr(err)
		}
	}
	opts.Apply(cmd.Flags(), &cfg)
	if err := cfg.Validate(); err != nil {
		return usageErr(err)
	}
	p, err := cfg.Params()
	if err != nil {
		return usageErr(err)
	}
	alpha, err := letter.ParseAlphabet(cfg.Matching.Alphabet)
	if err != nil {
		return usageErr(err)
	}
	if !alpha.Bitmask() && !p.Fixed.IsFixed() {
		return usageErr(fmt.Errorf("%s matching needs a dna or rna alphabet", p.Fixed))
	}
	anchors, err := anchor.ParseList(opts.At)
	if err != nil {
		return usageErr(err)
	}

	log, err := logging.New(stderr, cfg.Verbose)
	if err != nil {
		return usageErr(err)
	}
	defer func() { _ = log.Sync() }()

	pattern, err := letter.Encode(alpha, []byte(opts.Pattern))
	if err != nil {
		return usageErr(fmt.Errorf("pattern: %w", err))
	}
	subjects, err := loadSubjects(opts, alpha)
	if err != nil {
		return usageErr(err)
	}
	log.Debug("inputs loaded",
		zap.Int("pattern_len", len(pattern)),
		zap.Int("subjects", len(subjects.seqs)),
		zap.Int("anchors", len(anchors)),
		zap.String("alphabet", alpha.String()),
	)

	ev, err := anchor.New(p, anchor.WithLogger(log), anchor.WithWorkers(cfg.Workers))
	if err != nil {
		return usageErr(err)
	}
	tab, err := ev.MatchSet(ctx, pattern, subjects.seqs, anchors)
	if err != nil {
		if ctx.Err() != nil {
			return &exitError{code: ExitInterrupted, err: ctx.Err()}
		}
		return usageErr(err)
	}

	rep := writers.Report{IDs: subjects.ids, Anchors: anchors, Table: tab}
	if err := writers.Write(cfg.Output.Format, stdout, rep, cfg.Output.Header); err != nil {
		return &exitError{code: ExitOutput, err: err}
	}
	if !tab.Answer.PerAnchor() && allNA(tab) {
		return &exitError{code: ExitNoMatch}
	}
	return nil
}

func loadSubjects(opts *cli.Options, alpha letter.Alphabet) (subjectSet, error) {
	var set subjectSet
	add := func(id string, raw []byte) error {
		seq, err := letter.Encode(alpha, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		set.ids = append(set.ids, id)
		set.seqs = append(set.seqs, seq)
		return nil
	}
	for i, s := range opts.Subjects {
		if err := add("subject"+strconv.Itoa(i+1), []byte(s)); err != nil {
			return set, err
		}
	}
	for _, path := range opts.SeqFiles {
		recs, err := fasta.ReadFile(path)
		if err != nil {
			return set, err
		}
		for _, r := range recs {
			if err := add(r.ID, r.Seq); err != nil {
				return set, err
			}
		}
	}
	return set, nil
}

func allNA(t *anchor.Table) bool {
	for _, o := range t.Values {
		if !o.NA {
			return false
		}
	}
	return true
}
