// internal/cli/options_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqmatch/internal/config"
)

func mustParse(t *testing.T, cfg config.Config, args ...string) (*Options, *pflag.FlagSet) {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var o Options
	Bind(fs, &o, cfg)
	require.NoError(t, fs.Parse(args))
	return &o, fs
}

func TestBindDefaultsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Matching.MaxMismatch = 3
	cfg.Output.Header = false
	o, _ := mustParse(t, cfg)
	assert.Equal(t, 3, o.MaxMismatch)
	assert.True(t, o.NoHeader)
	assert.Equal(t, "first", o.AtType)
}

func TestApplyOnlyChangedFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Matching.MaxMismatch = 2
	cfg.Matching.Answer = "logical"

	fileCfg := cfg
	o, fs := mustParse(t, config.Default(), "-p", "ACGT", "--answer", "which", "--no-header", "--with-indels")
	o.Apply(fs, &fileCfg)

	assert.Equal(t, 2, fileCfg.Matching.MaxMismatch, "unset flag keeps the file value")
	assert.Equal(t, "which", fileCfg.Matching.Answer)
	assert.True(t, fileCfg.Matching.WithIndels)
	assert.False(t, fileCfg.Output.Header)
	assert.Equal(t, "text", fileCfg.Output.Format)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		args []string
		pos  []string
		err  string
	}{
		{"inline subject", []string{"-p", "AC", "--at", "1", "-s", "ACGT"}, nil, ""},
		{"positional fasta", []string{"-p", "AC", "--at", "1"}, []string{"ref.fa"}, ""},
		{"missing pattern", []string{"--at", "1", "-s", "AC"}, nil, "missing --pattern"},
		{"missing anchors", []string{"-p", "AC", "-s", "AC"}, nil, "missing --at"},
		{"no subjects", []string{"-p", "AC", "--at", "1"}, nil, "need --subject"},
		{"both inputs", []string{"-p", "AC", "--at", "1", "-s", "AC", "-f", "x.fa"}, nil, "mutually exclusive"},
		{"stdin twice", []string{"-p", "AC", "--at", "1", "-f", "-"}, []string{"-"}, "only once"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, _ := mustParse(t, config.Default(), tc.args...)
			err := o.Check(tc.pos)
			if tc.err == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.err)
		})
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.fa", "b.fa"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(">a\nA\n"), 0o644))
	}
	got, err := ExpandPositionals([]string{filepath.Join(dir, "*.fa"), "-", "plain.fa"})
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Equal(t, []string{"-", "plain.fa"}, got[2:])

	_, err = ExpandPositionals([]string{filepath.Join(dir, "*.fq")})
	assert.ErrorContains(t, err, "no input matched")
}
