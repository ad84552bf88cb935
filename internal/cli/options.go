// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"seqmatch/internal/config"
)

// Options holds the flags of the `at` command.
type Options struct {
	// Input
	Pattern  string
	Subjects []string // inline subjects
	SeqFiles []string // FASTA files, '-' for stdin
	At       string   // comma list, NA allowed

	// Matching
	AtType      string
	MaxMismatch int
	MinMismatch int
	WithIndels  bool
	Fixed       string
	Answer      string
	Alphabet    string

	// Run / output
	Workers    int
	Output     string
	NoHeader   bool
	ConfigFile string
	Verbose    bool
}

// Bind registers every `at` flag on fs with defaults taken from cfg.
func Bind(fs *pflag.FlagSet, o *Options, cfg config.Config) {
	m := cfg.Matching
	fs.StringVarP(&o.Pattern, "pattern", "p", "", "pattern sequence [*]")
	fs.StringArrayVarP(&o.Subjects, "subject", "s", nil, "inline subject sequence (repeatable)")
	fs.StringArrayVarP(&o.SeqFiles, "sequences", "f", nil, "FASTA file(s) (repeatable, .gz ok) or '-' for STDIN")
	fs.StringVarP(&o.At, "at", "a", "", "1-based anchors, comma separated; NA allowed [*]")

	fs.StringVar(&o.AtType, "at-type", m.AtType, "anchor on the pattern's first or last letter: first|last")
	fs.IntVarP(&o.MaxMismatch, "max-mismatch", "m", m.MaxMismatch, "edit ceiling (inclusive)")
	fs.IntVar(&o.MinMismatch, "min-mismatch", m.MinMismatch, "edit floor (inclusive)")
	fs.BoolVar(&o.WithIndels, "with-indels", m.WithIndels, "count insertions and deletions as edits")
	fs.StringVar(&o.Fixed, "fixed", m.Fixed, "exact letters: true|false|pattern|subject|pattern,subject")
	fs.StringVar(&o.Answer, "answer", m.Answer, "count|logical|which|value")
	fs.StringVar(&o.Alphabet, "alphabet", m.Alphabet, "letter encoding: dna|rna|raw")

	fs.IntVarP(&o.Workers, "workers", "t", cfg.Workers, "subjects scored in parallel (0=all CPUs)")
	fs.StringVarP(&o.Output, "output", "o", cfg.Output.Format, "output format: "+strings.Join(config.Formats, "|"))
	fs.BoolVar(&o.NoHeader, "no-header", !cfg.Output.Header, "suppress the TSV header")
	fs.StringVarP(&o.ConfigFile, "config", "c", "", "YAML config file")
	fs.BoolVarP(&o.Verbose, "verbose", "v", cfg.Verbose, "debug logging to STDERR")
}

// Apply overlays the flags that were set explicitly on cfg, so that
// config-file values survive unless the command line names them.
func (o *Options) Apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	m := &cfg.Matching
	set("at-type", func() { m.AtType = o.AtType })
	set("max-mismatch", func() { m.MaxMismatch = o.MaxMismatch })
	set("min-mismatch", func() { m.MinMismatch = o.MinMismatch })
	set("with-indels", func() { m.WithIndels = o.WithIndels })
	set("fixed", func() { m.Fixed = o.Fixed })
	set("answer", func() { m.Answer = o.Answer })
	set("alphabet", func() { m.Alphabet = o.Alphabet })
	set("workers", func() { cfg.Workers = o.Workers })
	set("output", func() { cfg.Output.Format = o.Output })
	set("no-header", func() { cfg.Output.Header = !o.NoHeader })
	set("verbose", func() { cfg.Verbose = o.Verbose })
}

// Check validates the input flags and folds positionals into SeqFiles.
func (o *Options) Check(args []string) error {
	files, err := ExpandPositionals(args)
	if err != nil {
		return err
	}
	o.SeqFiles = append(o.SeqFiles, files...)

	if o.Pattern == "" {
		return errors.New("missing --pattern")
	}
	if o.At == "" {
		return errors.New("missing --at")
	}
	switch {
	case len(o.Subjects) == 0 && len(o.SeqFiles) == 0:
		return errors.New("need --subject or at least one FASTA file")
	case len(o.Subjects) > 0 && len(o.SeqFiles) > 0:
		return errors.New("--subject and FASTA input are mutually exclusive")
	}
	stdin := 0
	for _, f := range o.SeqFiles {
		if f == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return errors.New("'-' (STDIN) may be given only once")
	}
	return nil
}

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandPositionals expands any globs among path-like positionals.
func ExpandPositionals(posArgs []string) ([]string, error) {
	var out []string
	for _, a := range posArgs {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %v", a, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("no input matched %q", a)
		}
		out = append(out, m...)
	}
	return out, nil
}
