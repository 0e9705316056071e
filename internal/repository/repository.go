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

Package repository provides the Repository type: a named, ordered collection
of packages. A Pool is the union of one or more repositories.
*/
package repository

import "github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"

// Repository is a named, ordered collection of packages. Order is
// significant: the Pool preserves repository registration order, and each
// repository preserves the order packages were added in, so that
// Pool.WhatProvides results are deterministic.
type Repository struct {
	Name     string
	packages []*pkgmodel.Package
}

// New creates an empty, named repository.
func New(name string) *Repository {
	return &Repository{Name: name}
}

// Add appends a package to the repository. It does not check for
// duplicates: a repository is a flat list, not a set.
func (r *Repository) Add(p *pkgmodel.Package) {
	r.packages = append(r.packages, p)
}

// Packages returns the repository's packages in insertion order. The
// returned slice must not be mutated by callers.
func (r *Repository) Packages() []*pkgmodel.Package {
	return r.packages
}

// Contains reports whether p was added to this repository. It relies on
// pointer identity, matching the spec's package-equality invariant.
func (r *Repository) Contains(p *pkgmodel.Package) bool {
	for _, cand := range r.packages {
		if cand == p {
			return true
		}
	}
	return false
}

// Len returns the number of packages in the repository.
func (r *Repository) Len() int {
	return len(r.packages)
}
