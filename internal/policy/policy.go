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

Package policy provides the pluggable decision points the solver defers to:
whether a package may be installed at all, which packages are candidate
updates for an installed one, and in what preference order the solver
should try candidates.
*/
package policy

import (
	"sort"

	"github.com/rancher-sandbox/pkgsolve/internal/constraint"
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/pool"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
)

// Policy is implemented once per "flavor" of installation the solver is
// asked to perform; hypper's own solver hardcodes an equivalent of this
// under BuildConstraints, this module makes it swappable per spec §4.3.
type Policy interface {
	// Installable reports whether pkg may ever be installed (platform,
	// architecture and similar static filters).
	Installable(pkg *pkgmodel.Package) bool

	// FindUpdatePackages returns, in preference order, the packages that
	// could replace pkg. allowDowngrade includes candidates with a lower
	// version than pkg (used to build the "feature" rule); when false,
	// only same-or-newer candidates are returned (the "update" rule).
	FindUpdatePackages(p *pool.Pool, installed *repository.Repository, pkg *pkgmodel.Package, allowDowngrade bool) []*pkgmodel.Package

	// SelectPreferredPackages orders candidates by preference; the first
	// element is the one the solver should try first, the rest become
	// branch alternatives for later minimization.
	SelectPreferredPackages(candidates []*pkgmodel.Package) []*pkgmodel.Package

	// AllowUninstall reports whether update/feature rules should be
	// registered as weak (silently droppable on conflict) rather than
	// strong.
	AllowUninstall() bool
}

// Default is the policy used when the caller doesn't need custom install
// filters: every package is installable, update candidates are every
// same-named package in the pool ordered newest-first (or, when
// allowDowngrade is true, unrestricted), and uninstalling to satisfy other
// jobs is allowed when built with NewDefault (see UninstallAllowed).
type Default struct {
	// UninstallAllowed backs AllowUninstall. A bare Default{} leaves this
	// false (bool's zero value), disallowing uninstalls; use NewDefault to
	// get the Composer-style default of true, which favors completing the
	// request over preserving every installed package.
	UninstallAllowed bool
}

// NewDefault returns a Default policy that allows uninstalls.
func NewDefault() *Default {
	return &Default{UninstallAllowed: true}
}

func (d *Default) Installable(*pkgmodel.Package) bool { return true }

func (d *Default) FindUpdatePackages(p *pool.Pool, installed *repository.Repository, pkg *pkgmodel.Package, allowDowngrade bool) []*pkgmodel.Package {
	candidates := p.WhatProvides(pkg.Name, nil)
	var out []*pkgmodel.Package
	for _, cand := range candidates {
		if cand == pkg {
			continue
		}
		if !allowDowngrade && constraint.CompareVersions(cand.Version, pkg.Version) < 0 {
			continue
		}
		out = append(out, cand)
	}
	return d.SelectPreferredPackages(out)
}

func (d *Default) SelectPreferredPackages(candidates []*pkgmodel.Package) []*pkgmodel.Package {
	out := make([]*pkgmodel.Package, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return constraint.CompareVersions(out[i].Version, out[j].Version) > 0
	})
	return out
}

func (d *Default) AllowUninstall() bool { return d.UninstallAllowed }
