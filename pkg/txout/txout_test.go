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
*/

package txout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/solver"
)

func sampleTransaction() solver.Transaction {
	foo2 := pkgmodel.New("foo", "2.0.0", "main")
	foo1 := pkgmodel.New("foo", "1.0.0", "installed")
	return solver.Transaction{
		{Job: request.Remove, Package: foo1},
		{Job: request.Install, Package: foo2},
	}
}

func TestFormatTransaction(t *testing.T) {
	for _, tcase := range []struct {
		name string
		tx   solver.Transaction
		mode Mode
		opts Options
		want []string
	}{
		{
			name: "table lists installs and removes",
			tx:   sampleTransaction(),
			mode: Table,
			opts: Options{NoColor: true, NoEmoji: true},
			want: []string{"Installing:", "Removing:", "foo", "2.0.0", "1.0.0"},
		},
		{
			name: "empty table says there is nothing to do",
			tx:   nil,
			mode: Table,
			opts: Options{NoColor: true, NoEmoji: true},
			want: []string{"Nothing to do"},
		},
		{
			name: "yaml reports SAT status and package name",
			tx:   sampleTransaction(),
			mode: YAML,
			want: []string{"status: SAT", "name: foo"},
		},
		{
			name: "json reports SAT status and both job kinds",
			tx:   sampleTransaction(),
			mode: JSON,
			want: []string{`"status": "SAT"`, `"install"`, `"remove"`},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			out := FormatTransaction(tcase.tx, tcase.mode, tcase.opts)
			for _, want := range tcase.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestFormatProblems(t *testing.T) {
	prob := solver.Problem{solver.WhyRule(nil)}

	for _, tcase := range []struct {
		name string
		mode Mode
		opts Options
		want string
	}{
		{name: "table lists a Problems section", mode: Table, opts: Options{NoColor: true, NoEmoji: true}, want: "Problems:"},
		{name: "json reports UNSAT status", mode: JSON, want: `"status": "UNSAT"`},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			out := FormatProblems([]solver.Problem{prob}, tcase.mode, tcase.opts)
			assert.Contains(t, out, tcase.want)
		})
	}
}
