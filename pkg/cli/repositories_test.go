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
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRepositories(t *testing.T) {
	for _, tcase := range []struct {
		name  string
		yaml  string
		check func(t *testing.T, dir string, cfg *RepositoriesConfig)
	}{
		{
			name: "relative index paths resolve against the config's directory, absolute ones pass through",
			yaml: `
repositories:
  - name: main
    index: indexes/main.yaml
  - name: extra
    index: /abs/extra.yaml
installed: indexes/installed.yaml
`,
			check: func(t *testing.T, dir string, cfg *RepositoriesConfig) {
				require.Len(t, cfg.Repositories, 2)
				assert.Equal(t, "main", cfg.Repositories[0].Name)
				assert.Equal(t, filepath.Join(dir, "indexes/main.yaml"), cfg.Repositories[0].Index)
				assert.Equal(t, "/abs/extra.yaml", cfg.Repositories[1].Index)
				assert.Equal(t, filepath.Join(dir, "indexes/installed.yaml"), cfg.Installed)
			},
		},
		{
			name: "no installed index leaves Installed empty",
			yaml: `
repositories:
  - name: main
    index: indexes/main.yaml
`,
			check: func(t *testing.T, dir string, cfg *RepositoriesConfig) {
				require.Len(t, cfg.Repositories, 1)
				assert.Empty(t, cfg.Installed)
			},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "repositories.yaml")
			require.NoError(t, ioutil.WriteFile(path, []byte(tcase.yaml), 0o644))

			e := &EnvSettings{RepoConfig: path}
			cfg, err := e.LoadRepositories()
			require.NoError(t, err)
			tcase.check(t, dir, cfg)
		})
	}
}

func TestNewEnvSettingsReadsEnvironment(t *testing.T) {
	for _, tcase := range []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, e *EnvSettings)
	}{
		{
			name: "PKGSOLVE_DEBUG enables Debug",
			env:  map[string]string{"PKGSOLVE_DEBUG": "true"},
			check: func(t *testing.T, e *EnvSettings) {
				assert.True(t, e.Debug)
			},
		},
		{
			name: "PKGSOLVE_NO_COLOR enables NoColor",
			env:  map[string]string{"PKGSOLVE_NO_COLOR": "1"},
			check: func(t *testing.T, e *EnvSettings) {
				assert.True(t, e.NoColor)
			},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			for k, v := range tcase.env {
				t.Setenv(k, v)
			}
			tcase.check(t, New())
		})
	}
}
