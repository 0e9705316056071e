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

package repoindex

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `apiVersion: v1
entries:
  - name: foo
    version: 1.0.0
    requires:
      - name: bar
        constraint: "^1.0"
  - name: bar
    version: 1.2.0
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadIndexFile(t *testing.T) {
	for _, tcase := range []struct {
		name    string
		content string
		wantErr bool
		check   func(t *testing.T, idx *IndexFile)
	}{
		{
			name:    "well-formed index converts to a repository",
			content: fixture,
			check: func(t *testing.T, idx *IndexFile) {
				assert.Equal(t, APIVersionV1, idx.APIVersion)
				require.Len(t, idx.Entries, 2)

				repo := idx.ToRepository("main")
				require.Len(t, repo.Packages(), 2)
				assert.Equal(t, "foo", repo.Packages()[0].Name)
				require.Len(t, repo.Packages()[0].Requires, 1)
				assert.Equal(t, "bar", repo.Packages()[0].Requires[0].Name)
				assert.Equal(t, "^1.0", repo.Packages()[0].Requires[0].Constraint)
			},
		},
		{
			name:    "missing apiVersion is rejected",
			content: "entries: []\n",
			wantErr: true,
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFixture(t, dir, "index.yaml", tcase.content)

			idx, err := LoadIndexFile(path)
			if tcase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tcase.check(t, idx)
		})
	}
}

func TestCacheLoadRepositoryIsIdempotent(t *testing.T) {
	for _, tcase := range []struct {
		name string
	}{
		{name: "loading the same repository twice yields the same package data"},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFixture(t, dir, "index.yaml", fixture)

			c, err := NewCache(filepath.Join(dir, "cache"))
			require.NoError(t, err)

			repo1, err := c.LoadRepository("main", path)
			require.NoError(t, err)
			repo2, err := c.LoadRepository("main", path)
			require.NoError(t, err)

			assert.Equal(t, repo1.Packages()[0].Name, repo2.Packages()[0].Name)
		})
	}
}
