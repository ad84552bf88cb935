// Package config loads matching defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"seqmatch/internal/anchor"
	"seqmatch/internal/letter"
)

// Config holds every knob of a matching run.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Output   OutputConfig   `yaml:"output"`
	Workers  int            `yaml:"workers"` // 0 = GOMAXPROCS
	Verbose  bool           `yaml:"verbose"`
}

// MatchingConfig mirrors anchor.Params in text form.
type MatchingConfig struct {
	MaxMismatch int    `yaml:"max_mismatch"`
	MinMismatch int    `yaml:"min_mismatch"`
	WithIndels  bool   `yaml:"with_indels"`
	Fixed       string `yaml:"fixed"`    // true | false | pattern | subject
	AtType      string `yaml:"at_type"`  // first | last
	Answer      string `yaml:"answer"`   // count | logical | which | value
	Alphabet    string `yaml:"alphabet"` // dna | rna | raw
}

// OutputConfig selects the result format.
type OutputConfig struct {
	Format string `yaml:"format"` // text | json | jsonl
	Header bool   `yaml:"header"`
}

// Default returns the built-in defaults: exact matching on DNA at the
// pattern's first letter, raw counts as TSV.
func Default() Config {
	return Config{
		Matching: MatchingConfig{
			Fixed:    "true",
			AtType:   "first",
			Answer:   "count",
			Alphabet: "dna",
		},
		Output: OutputConfig{Format: "text", Header: true},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Formats lists the accepted output formats.
var Formats = []string{"text", "json", "jsonl"}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if _, e := c.Params(); e != nil {
		err = multierr.Append(err, e)
	}
	if _, e := letter.ParseAlphabet(c.Matching.Alphabet); e != nil {
		err = multierr.Append(err, e)
	}
	if !slices.Contains(Formats, c.Output.Format) {
		err = multierr.Append(err, fmt.Errorf("config: invalid output format %q", c.Output.Format))
	}
	if c.Workers < 0 {
		err = multierr.Append(err, errors.New("config: workers must be >= 0"))
	}
	return err
}

// Params converts the matching section into anchor.Params, collecting all
// parse and combination errors.
func (c Config) Params() (anchor.Params, error) {
	var (
		p   anchor.Params
		err error
		e   error
	)
	m := c.Matching
	p.MaxMismatch, p.MinMismatch, p.WithIndels = m.MaxMismatch, m.MinMismatch, m.WithIndels
	if p.Fixed, e = letter.ParseDiscipline(m.Fixed); e != nil {
		err = multierr.Append(err, e)
	}
	if p.Mode, e = anchor.ParseMode(m.AtType); e != nil {
		err = multierr.Append(err, e)
	}
	if p.Answer, e = anchor.ParseAnswer(m.Answer); e != nil {
		err = multierr.Append(err, e)
	}
	if err != nil {
		return p, err
	}
	return p, p.Validate()
}
