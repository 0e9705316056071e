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

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/pkgsolve/internal/constraint"
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/policy"
	"github.com/rancher-sandbox/pkgsolve/internal/pool"
	"github.com/rancher-sandbox/pkgsolve/internal/repoindex"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/solver"
	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

// world bundles the pool and installed repository every subcommand needs
// to build a Request, loaded once from the repository config named by
// settings.RepoConfig.
type world struct {
	pool      *pool.Pool
	installed *repository.Repository
}

func loadWorld() (*world, error) {
	cfg, err := settings.LoadRepositories()
	if err != nil {
		return nil, err
	}

	cache, err := repoindex.NewCache(cacheDir())
	if err != nil {
		return nil, err
	}

	p := pool.New()
	for _, entry := range cfg.Repositories {
		repo, err := cache.LoadRepository(entry.Name, entry.Index)
		if err != nil {
			return nil, errors.Wrapf(err, "loading repository %s", entry.Name)
		}
		p.AddRepository(repo)
	}

	installed := repository.New("installed")
	if cfg.Installed != "" {
		idx, err := repoindex.LoadIndexFile(cfg.Installed)
		if err != nil {
			return nil, errors.Wrap(err, "loading installed index")
		}
		installed = idx.ToRepository("installed")
	}
	p.AddRepository(installed)

	return &world{pool: p, installed: installed}, nil
}

func cacheDir() string {
	dir := settings.RepoConfig
	if dir == "" {
		return ".pkgsolve-cache"
	}
	return dir + ".cache"
}

// resolveName resolves name (optionally suffixed "name@constraint") against
// the pool, returning the matching candidates in pool order.
func (w *world) resolveName(nameExpr string) (string, []*pkgmodel.Package) {
	name, expr := splitNameConstraint(nameExpr)
	var c constraint.Constraint = constraint.Any{}
	if expr != "" {
		if r, err := constraint.NewRange(expr); err == nil {
			c = r
		}
	}
	return name, w.pool.WhatProvides(name, c)
}

func splitNameConstraint(nameExpr string) (name, constraintExpr string) {
	for i, r := range nameExpr {
		if r == '@' {
			return nameExpr[:i], nameExpr[i+1:]
		}
	}
	return nameExpr, ""
}

// runRequest solves req against w and prints the resulting transaction or
// problems in outputMode.
func runRequest(w *world, req *request.Request, mode txout.Mode) error {
	s := solverFor(w)
	tx, err := s.Solve(req)
	if err != nil {
		log.Debugf("solve failed: %v", err)
		fmt.Print(txout.FormatProblems(s.Problems(), mode, outOptions()))
		return errors.New("request could not be satisfied")
	}
	fmt.Print(txout.FormatTransaction(tx, mode, outOptions()))
	return nil
}

func outOptions() txout.Options {
	return txout.Options{NoColor: settings.NoColor, NoEmoji: settings.NoEmoji}
}

func solverFor(w *world) *solver.Solver {
	return solver.New(w.pool, w.installed, policy.NewDefault(), log.Current)
}
