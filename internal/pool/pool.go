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

Package pool provides the union index across repositories that the solver
queries to resolve a dependency link into a list of providing packages.
*/
package pool

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/rancher-sandbox/pkgsolve/internal/constraint"
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
)

// Pool is the union index across repositories. It assigns each package a
// stable, dense, positive id on first registration and memoizes
// WhatProvides results until the next AddRepository call.
type Pool struct {
	repositories []*repository.Repository
	byName       map[string][]*pkgmodel.Package
	byID         map[int]*pkgmodel.Package
	nextID       int

	cache map[string][]*pkgmodel.Package
}

// New creates an empty Pool.
func New() *Pool {
	return &Pool{
		byName: make(map[string][]*pkgmodel.Package),
		byID:   make(map[int]*pkgmodel.Package),
		cache:  make(map[string][]*pkgmodel.Package),
		nextID: 1,
	}
}

// AddRepository registers a repository and assigns ids to any of its
// packages that don't already have one. Registering a repository
// invalidates the WhatProvides memoization cache and the by-name index,
// which is rebuilt lazily on next use.
func (p *Pool) AddRepository(r *repository.Repository) {
	p.repositories = append(p.repositories, r)
	for _, pkg := range r.Packages() {
		if pkg.ID == 0 {
			pkg.ID = p.nextID
			p.nextID++
		}
		p.byID[pkg.ID] = pkg
	}
	p.byName = nil
	p.cache = make(map[string][]*pkgmodel.Package)
}

// PackageByID looks up a package by its Pool-assigned id. Returns nil if
// unknown.
func (p *Pool) PackageByID(id int) *pkgmodel.Package {
	return p.byID[id]
}

// WhatProvides returns every package whose own name, provides, or replaces
// entries match name and whose version satisfies c. Pass nil for c to match
// every version. Results preserve repository registration order, then
// in-repository order, and are memoized by (name, constraint digest).
func (p *Pool) WhatProvides(name string, c constraint.Constraint) []*pkgmodel.Package {
	if c == nil {
		c = constraint.Any{}
	}
	key := name + "\x00" + digest(c.String())
	if cached, ok := p.cache[key]; ok {
		return cached
	}

	p.ensureIndex()

	var result []*pkgmodel.Package
	for _, cand := range p.byName[name] {
		if c.Matches(cand.Version) {
			result = append(result, cand)
		}
	}
	p.cache[key] = result
	return result
}

func (p *Pool) ensureIndex() {
	if p.byName != nil {
		return
	}
	p.byName = make(map[string][]*pkgmodel.Package)
	for _, r := range p.repositories {
		for _, pkg := range r.Packages() {
			for _, provided := range pkg.Provided() {
				p.byName[provided] = append(p.byName[provided], pkg)
			}
		}
	}
}

// Repositories returns the registered repositories in registration order.
func (p *Pool) Repositories() []*repository.Repository {
	return p.repositories
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
