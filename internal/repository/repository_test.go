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

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
)

func TestRepository(t *testing.T) {
	for _, tcase := range []struct {
		name    string
		added   []*pkgmodel.Package
		wantLen int
	}{
		{name: "empty repository has zero length", added: nil, wantLen: 0},
		{
			name: "packages are kept in insertion order",
			added: []*pkgmodel.Package{
				pkgmodel.New("a", "1.0.0", "main"),
				pkgmodel.New("b", "1.0.0", "main"),
			},
			wantLen: 2,
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			r := New("main")
			for _, p := range tcase.added {
				r.Add(p)
			}

			assert.Equal(t, tcase.wantLen, r.Len())
			assert.Equal(t, tcase.added, r.Packages())
			for _, p := range tcase.added {
				assert.True(t, r.Contains(p))
			}
			assert.False(t, r.Contains(pkgmodel.New("ghost", "1.0.0", "main")))
		})
	}
}
