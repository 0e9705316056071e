/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.

Package txout renders a solver Transaction, or its Problems on failure, in
one of three formats: a colorized table for a terminal, YAML, or JSON.
*/
package txout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/pkgsolve/internal/eyecandy"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/solver"
)

// Mode selects the output encoding.
type Mode int

const (
	Table Mode = iota
	YAML
	JSON
)

// document is the serializable shape used for YAML/JSON output, kept
// separate from solver.Transaction/solver.Problem so those types stay free
// of struct tags.
type document struct {
	Status   string    `yaml:"status" json:"status"`
	Install  []pkgLine `yaml:"install,omitempty" json:"install,omitempty"`
	Remove   []pkgLine `yaml:"remove,omitempty" json:"remove,omitempty"`
	Problems []string  `yaml:"problems,omitempty" json:"problems,omitempty"`
}

type pkgLine struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
}

// Options controls table rendering; NoColor/NoEmoji mirror flags a CLI
// would expose directly to the user.
type Options struct {
	NoColor bool
	NoEmoji bool
}

// FormatTransaction renders tx (the result of a successful Solve) in mode.
func FormatTransaction(tx solver.Transaction, mode Mode, opts Options) string {
	doc := document{Status: "SAT"}
	for _, e := range tx {
		line := pkgLine{Name: e.Package.Name, Version: e.Package.Version}
		if e.Job == request.Install {
			doc.Install = append(doc.Install, line)
		} else {
			doc.Remove = append(doc.Remove, line)
		}
	}
	return format(doc, mode, opts)
}

// FormatProblems renders the problems returned by an unsolvable Solve call.
func FormatProblems(problems []solver.Problem, mode Mode, opts Options) string {
	doc := document{Status: "UNSAT"}
	for _, p := range problems {
		doc.Problems = append(doc.Problems, p.String())
	}
	return format(doc, mode, opts)
}

func format(doc document, mode Mode, opts Options) string {
	switch mode {
	case YAML:
		out, _ := yaml.Marshal(doc)
		return string(out)
	case JSON:
		out, _ := json.MarshalIndent(doc, "", "  ")
		return string(out)
	default:
		return formatTable(doc, opts)
	}
}

func formatTable(doc document, opts Options) string {
	var sb strings.Builder

	if opts.NoColor {
		color.NoColor = true
	}

	if doc.Status == "UNSAT" {
		sb.WriteString(eyecandy.ESPrintf(opts.NoEmoji, ":no_entry: Problems:\n"))
		for _, p := range doc.Problems {
			sb.WriteString(fmt.Sprintf("  - %s\n", color.RedString(p)))
		}
		return sb.String()
	}

	if len(doc.Install) > 0 {
		sb.WriteString(eyecandy.ESPrintf(opts.NoEmoji, ":inbox_tray: Installing:\n"))
		t := uitable.New()
		t.AddRow("NAME", "VERSION")
		for _, l := range doc.Install {
			t.AddRow(l.Name, color.GreenString(l.Version))
		}
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}

	if len(doc.Remove) > 0 {
		sb.WriteString(eyecandy.ESPrintf(opts.NoEmoji, ":outbox_tray: Removing:\n"))
		t := uitable.New()
		t.AddRow("NAME", "VERSION")
		for _, l := range doc.Remove {
			t.AddRow(l.Name, color.RedString(l.Version))
		}
		sb.WriteString(t.String())
		sb.WriteString("\n")
	}

	if len(doc.Install) == 0 && len(doc.Remove) == 0 {
		sb.WriteString(eyecandy.ESPrintf(opts.NoEmoji, ":heavy_check_mark: Nothing to do.\n"))
	}

	return sb.String()
}
