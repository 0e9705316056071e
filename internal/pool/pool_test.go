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

package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/pkgsolve/internal/constraint"
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
)

// TestWhatProvides covers §8 scenario S6 (memoization) alongside the rest
// of WhatProvides' matching rules: provides/replaces aliasing, constraint
// filtering, registration-order determinism and cache invalidation.
func TestWhatProvides(t *testing.T) {
	for _, tcase := range []struct {
		name  string
		build func(p *Pool)
		query string
		c     constraint.Constraint
		check func(t *testing.T, p *Pool, got []*pkgmodel.Package)
	}{
		{
			name: "S6 memoizes across repeated calls",
			build: func(p *Pool) {
				r := repository.New("main")
				r.Add(pkgmodel.New("foo", "1.0.0", "main"))
				p.AddRepository(r)
			},
			query: "foo",
			check: func(t *testing.T, p *Pool, got []*pkgmodel.Package) {
				assert.Len(t, got, 1)
				second := p.WhatProvides("foo", nil)
				assert.Same(t, got[0], second[0])
			},
		},
		{
			name: "order follows repository registration order",
			build: func(p *Pool) {
				r1 := repository.New("r1")
				r1.Add(pkgmodel.New("foo", "1.0.0", "r1"))
				r2 := repository.New("r2")
				r2.Add(pkgmodel.New("foo", "2.0.0", "r2"))
				p.AddRepository(r1)
				p.AddRepository(r2)
			},
			query: "foo",
			check: func(t *testing.T, p *Pool, got []*pkgmodel.Package) {
				wantVersions := []string{"1.0.0", "2.0.0"}
				for i, want := range wantVersions {
					assert.Equal(t, want, got[i].Version)
				}
			},
		},
		{
			name: "matches provides and replaces aliases",
			build: func(p *Pool) {
				r := repository.New("main")
				r.Add(pkgmodel.New("impl", "1.0.0", "main").
					WithProvides(pkgmodel.Link{Name: "virtual"}).
					WithReplaces(pkgmodel.Link{Name: "legacy"}))
				p.AddRepository(r)
			},
			query: "legacy",
			check: func(t *testing.T, p *Pool, got []*pkgmodel.Package) {
				assert.Len(t, got, 1)
				assert.Equal(t, "impl", got[0].Name)
			},
		},
		{
			name: "filters by constraint",
			build: func(p *Pool) {
				r := repository.New("main")
				r.Add(pkgmodel.New("foo", "1.0.0", "main"))
				r.Add(pkgmodel.New("foo", "2.0.0", "main"))
				p.AddRepository(r)
			},
			query: "foo",
			c:     constraint.MustNewRange("^2.0.0"),
			check: func(t *testing.T, p *Pool, got []*pkgmodel.Package) {
				assert.Len(t, got, 1)
				assert.Equal(t, "2.0.0", got[0].Version)
			},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			p := New()
			tcase.build(p)
			got := p.WhatProvides(tcase.query, tcase.c)
			tcase.check(t, p, got)
		})
	}
}

func TestAddRepositoryInvalidatesCache(t *testing.T) {
	for _, tcase := range []struct {
		name      string
		beforeLen int
		afterLen  int
	}{
		{name: "adding a second provider of the same name grows the result", beforeLen: 1, afterLen: 2},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			r1 := repository.New("main")
			r1.Add(pkgmodel.New("foo", "1.0.0", "main"))

			p := New()
			p.AddRepository(r1)
			assert.Len(t, p.WhatProvides("foo", nil), tcase.beforeLen)

			r2 := repository.New("extra")
			r2.Add(pkgmodel.New("foo", "2.0.0", "extra"))
			p.AddRepository(r2)

			assert.Len(t, p.WhatProvides("foo", nil), tcase.afterLen)
		})
	}
}

func TestStableIDAssignment(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		wantID   int
		pkgIndex int
	}{
		{name: "first package registered", wantID: 1, pkgIndex: 0},
		{name: "second package registered", wantID: 2, pkgIndex: 1},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			r := repository.New("main")
			a := pkgmodel.New("a", "1.0.0", "main")
			b := pkgmodel.New("b", "1.0.0", "main")
			r.Add(a)
			r.Add(b)

			p := New()
			p.AddRepository(r)

			pkgs := []*pkgmodel.Package{a, b}
			got := pkgs[tcase.pkgIndex]
			assert.Equal(t, tcase.wantID, got.ID)
			assert.Same(t, got, p.PackageByID(tcase.wantID))
		})
	}
}
