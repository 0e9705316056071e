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

package cli

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// RepositoryEntry names one on-disk index file that internal/repoindex can
// load, as recorded in the user's repositories config file.
type RepositoryEntry struct {
	Name  string `mapstructure:"name"`
	Index string `mapstructure:"index"`
}

// RepositoriesConfig is the on-disk shape of e.RepoConfig. Installed points
// at the index file describing what's currently installed, in the same
// format as a regular repository index; it's kept separate from
// Repositories because the solver treats the installed set specially
// (object identity on its Repository decides isInstalled).
type RepositoriesConfig struct {
	Repositories []RepositoryEntry `mapstructure:"repositories"`
	Installed    string            `mapstructure:"installed"`
}

// LoadRepositories reads e.RepoConfig (a YAML file, "repositories.yaml" by
// default) into a RepositoriesConfig using viper, the way elemental-toolkit
// reads its own manifest.yaml. Index paths that are relative are resolved
// against the config file's own directory, so a repositories.yaml can be
// checked into a directory alongside its index files and moved as a unit.
func (e *EnvSettings) LoadRepositories() (*RepositoriesConfig, error) {
	path := e.RepoConfig
	if path == "" {
		path = "repositories.yaml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PKGSOLVE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading repositories config %s", path)
	}

	cfg := &RepositoriesConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing repositories config %s", path)
	}

	dir := filepath.Dir(path)
	for i, r := range cfg.Repositories {
		if !filepath.IsAbs(r.Index) {
			cfg.Repositories[i].Index = filepath.Join(dir, r.Index)
		}
	}
	if cfg.Installed != "" && !filepath.IsAbs(cfg.Installed) {
		cfg.Installed = filepath.Join(dir, cfg.Installed)
	}

	return cfg, nil
}
