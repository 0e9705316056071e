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

Package cli holds the settings shared across every pkgsolve subcommand:
where to find repository indexes, and how to render output.
*/
package cli

import (
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// EnvSettings is populated from flags on the root command and from
// environment variables, in that precedence order (AddFlags runs after New
// so a flag always wins over the corresponding PKGSOLVE_* variable).
type EnvSettings struct {
	Debug      bool
	NoColor    bool
	NoEmoji    bool
	RepoConfig string
}

// New builds an EnvSettings from the environment, matching the
// PKGSOLVE_DEBUG / PKGSOLVE_NO_COLOR / PKGSOLVE_NO_EMOJI / PKGSOLVE_REPOSITORIES
// variables a user might export instead of passing flags.
func New() *EnvSettings {
	env := &EnvSettings{
		RepoConfig: os.Getenv("PKGSOLVE_REPOSITORIES"),
	}
	env.Debug, _ = strconv.ParseBool(os.Getenv("PKGSOLVE_DEBUG"))
	env.NoColor, _ = strconv.ParseBool(os.Getenv("PKGSOLVE_NO_COLOR"))
	env.NoEmoji, _ = strconv.ParseBool(os.Getenv("PKGSOLVE_NO_EMOJI"))
	return env
}

// AddFlags registers the settings shared by every subcommand on fs, using
// the current field values (populated by New from the environment) as
// defaults so a flag only overrides its matching PKGSOLVE_* variable when
// the user actually passes it.
func (e *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&e.Debug, "debug", e.Debug, "enable verbose logging")
	fs.BoolVar(&e.NoColor, "no-color", e.NoColor, "disable colored output")
	fs.BoolVar(&e.NoEmoji, "no-emoji", e.NoEmoji, "disable emoji in output")
	fs.StringVar(&e.RepoConfig, "repository-config", e.RepoConfig,
		"path to the repositories config file")
}
