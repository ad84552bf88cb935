// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "seqmatch/"

// within reports whether path is pkg itself or one of its subpackages.
func within(path, pkg string) bool {
	return path == pkg || strings.HasPrefix(path, strings.TrimSuffix(pkg, "/")+"/")
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	hosts := []string{
		"seqmatch/internal/config", "seqmatch/internal/writers", "seqmatch/internal/fasta",
		"seqmatch/internal/cli", "seqmatch/internal/app", "seqmatch/internal/appshell",
		"seqmatch/internal/logging", "seqmatch/cmd",
	}
	front := []string{"seqmatch/internal/cli", "seqmatch/internal/app", "seqmatch/internal/appshell", "seqmatch/cmd"}
	bans := map[string][]string{
		// core matching stays free of every host layer
		"seqmatch/internal/letter":   append([]string{"seqmatch/internal/mismatch", "seqmatch/internal/nedit", "seqmatch/internal/anchor"}, hosts...),
		"seqmatch/internal/mismatch": append([]string{"seqmatch/internal/nedit", "seqmatch/internal/anchor"}, hosts...),
		"seqmatch/internal/nedit":    append([]string{"seqmatch/internal/letter", "seqmatch/internal/mismatch", "seqmatch/internal/anchor"}, hosts...),
		"seqmatch/internal/anchor":   hosts,
		"seqmatch/internal/fasta":    {mod},
		"seqmatch/internal/config":   append([]string{"seqmatch/internal/writers"}, front...),
		"seqmatch/internal/writers":  append([]string{"seqmatch/internal/config"}, front...),
		"seqmatch/pkg/api":           {mod},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for owner, forbidden := range bans {
			if !within(imp, owner) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, mod) {
					continue
				}
				for _, ban := range forbidden {
					if within(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
