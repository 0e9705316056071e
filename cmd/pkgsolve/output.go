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

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

// outputFlag is a pflag.Value adapting txout.Mode to a "table|yaml|json"
// string flag, the way hypper's own cli/output.Format does for its
// --output flag.
type outputFlag struct {
	mode *txout.Mode
}

func (o *outputFlag) String() string {
	switch *o.mode {
	case txout.YAML:
		return "yaml"
	case txout.JSON:
		return "json"
	default:
		return "table"
	}
}

func (o *outputFlag) Set(s string) error {
	switch s {
	case "table", "":
		*o.mode = txout.Table
	case "yaml":
		*o.mode = txout.YAML
	case "json":
		*o.mode = txout.JSON
	default:
		return fmt.Errorf("unknown output format %q, must be table, yaml, or json", s)
	}
	return nil
}

func (o *outputFlag) Type() string { return "format" }

func addOutputFlag(fs *pflag.FlagSet, mode *txout.Mode) {
	fs.VarP(&outputFlag{mode: mode}, "output", "o", "output format: table, yaml, json")
}
