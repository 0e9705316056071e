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

package solver

import (
	"github.com/rancher-sandbox/pkgsolve/internal/constraint"
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/rule"
)

// parseConstraint turns a Link's raw constraint string into a
// constraint.Constraint. An empty string, or one the semver parser rejects,
// falls back to matching every version: links are best-effort hints, not a
// contract the pool enforces strictly.
func parseConstraint(expr string) constraint.Constraint {
	if expr == "" {
		return constraint.Any{}
	}
	r, err := constraint.NewRange(expr)
	if err != nil {
		return constraint.Any{}
	}
	return r
}

// addRule stores r in the rule set, deduplicating by literal signature, and
// returns the stored rule. addRule is a no-op returning nil for a nil rule
// (the tautology case: a self-require or self-conflict resolves to "no
// rule needed" per spec §4.5).
func (s *Solver) addRule(r *rule.Rule) *rule.Rule {
	if r == nil {
		return nil
	}
	stored, _ := s.rules.Add(r)
	return stored
}

func newRequireRule(p *pkgmodel.Package, providers []*pkgmodel.Package, link pkgmodel.Link) *rule.Rule {
	lits := make([]rule.Literal, 0, 1+len(providers))
	lits = append(lits, rule.New(p, false))
	for _, q := range providers {
		if q == p {
			return nil // tautology: p requires something p itself provides
		}
		lits = append(lits, rule.New(q, true))
	}
	return &rule.Rule{Literals: lits, Type: rule.Package, Reason: rule.ReasonPackageRequires, ReasonData: link}
}

func newConflictRule(a, b *pkgmodel.Package, link pkgmodel.Link) *rule.Rule {
	if a == b {
		return nil // tautology: a package cannot conflict with itself
	}
	return &rule.Rule{
		Literals:   []rule.Literal{rule.New(a, false), rule.New(b, false)},
		Type:       rule.Package,
		Reason:     rule.ReasonPackageConflict,
		ReasonData: link,
	}
}

func newInstallRule(p *pkgmodel.Package) *rule.Rule {
	return &rule.Rule{Literals: []rule.Literal{rule.New(p, true)}}
}

func newRemoveRule(p *pkgmodel.Package) *rule.Rule {
	return &rule.Rule{Literals: []rule.Literal{rule.New(p, false)}}
}

// newInstallOneOfRule builds "at least one of candidates" as a disjunction
// of positive literals. An empty candidate list yields the impossible rule:
// the job can never be satisfied, and downstream problem reporting handles
// it as such.
func newInstallOneOfRule(candidates []*pkgmodel.Package) *rule.Rule {
	if len(candidates) == 0 {
		return &rule.Rule{}
	}
	lits := make([]rule.Literal, len(candidates))
	for i, c := range candidates {
		lits[i] = rule.New(c, true)
	}
	return &rule.Rule{Literals: lits}
}

// newUpdateRule builds "installed OR one of candidates", deduplicating any
// candidate that is also literally installed (FindUpdatePackages already
// excludes installed itself, but callers may pass overlapping lists).
func newUpdateRule(installed *pkgmodel.Package, candidates []*pkgmodel.Package) *rule.Rule {
	lits := make([]rule.Literal, 0, 1+len(candidates))
	lits = append(lits, rule.New(installed, true))
	for _, c := range candidates {
		if c == installed {
			continue
		}
		lits = append(lits, rule.New(c, true))
	}
	return &rule.Rule{Literals: lits, Reason: rule.ReasonInstalledUpdate}
}

// addRulesForPackage performs the breadth-first traversal described in
// spec §4.6: starting from pkg, it walks requires (enqueuing providers),
// conflicts (not enqueued: a conflicting package's own dependencies are
// irrelevant to this package's rule set) and recommends/suggests
// (enqueued, no rule emitted) until the reachable package graph is fully
// covered. Each package is processed at most once.
func (s *Solver) addRulesForPackage(pkg *pkgmodel.Package) {
	queue := []*pkgmodel.Package{pkg}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if s.processed[p.ID] {
			continue
		}
		s.processed[p.ID] = true

		dontFix := s.isInstalled(p) && !s.fixMap[p.ID]

		if !dontFix && !s.Policy.Installable(p) {
			r := newRemoveRule(p)
			r.Type = rule.Package
			r.Reason = rule.ReasonNotInstallable
			s.addRule(r)
			continue
		}

		for _, link := range p.Requires {
			providers := s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint))
			if dontFix && !s.anyInstalled(providers) {
				continue
			}
			s.addRule(newRequireRule(p, providers, link))
			for _, provider := range providers {
				if provider != p && !s.processed[provider.ID] {
					queue = append(queue, provider)
				}
			}
		}

		// Two distinct packages claiming the same name (whether by being
		// that name, providing it, or replacing it) can never both be
		// installed at once. Composer's own resolver generates this
		// "obsoletes" rule alongside explicit conflicts; the distilled
		// spec's §4.6 requires/conflicts/recommends walk omits it, but
		// without it an update job has no way to force the old version
		// out when a newer one is chosen.
		for _, other := range s.Pool.WhatProvides(p.Name, constraint.Any{}) {
			if other == p {
				continue
			}
			s.addRule(newConflictRule(p, other, pkgmodel.Link{Name: p.Name}))
		}

		for _, link := range p.Conflicts {
			candidates := s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint))
			for _, cand := range candidates {
				if dontFix && s.isInstalled(cand) {
					continue
				}
				s.addRule(newConflictRule(p, cand, link))
			}
		}

		for _, link := range p.Recommends {
			for _, cand := range s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint)) {
				if cand != p && !s.processed[cand.ID] {
					queue = append(queue, cand)
				}
			}
		}
		for _, link := range p.Suggests {
			for _, cand := range s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint)) {
				if cand != p && !s.processed[cand.ID] {
					queue = append(queue, cand)
				}
			}
		}
	}
}

// markCleanDeps records, in cleanDepsMap, every installed package that
// removed depends on directly and that nothing else installed still needs.
// Consumed by runSat's installed-packages phase to force a removal decision
// on an orphan instead of silently leaving it in place: without it, a
// dependency pulled in only for a package the user just removed lingers
// forever, since the installed-phase loop otherwise only ever proposes
// updates or leaves a package undecided.
func (s *Solver) markCleanDeps(removed *pkgmodel.Package) {
	for _, link := range removed.Requires {
		for _, dep := range s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint)) {
			if dep == removed || !s.isInstalled(dep) {
				continue
			}
			if s.requiredByOtherInstalled(dep, removed) {
				continue
			}
			s.cleanDepsMap[dep.ID] = true
		}
	}
}

// requiredByOtherInstalled reports whether some installed package other than
// except requires dep.
func (s *Solver) requiredByOtherInstalled(dep, except *pkgmodel.Package) bool {
	for _, ip := range s.Installed.Packages() {
		if ip == except || ip == dep {
			continue
		}
		for _, link := range ip.Requires {
			for _, provider := range s.Pool.WhatProvides(link.Name, parseConstraint(link.Constraint)) {
				if provider == dep {
					return true
				}
			}
		}
	}
	return false
}

func (s *Solver) anyInstalled(pkgs []*pkgmodel.Package) bool {
	for _, p := range pkgs {
		if s.isInstalled(p) {
			return true
		}
	}
	return false
}

// addRulesForRequest emits the per-job rules of spec §4.8. Install/Remove/
// Lock produce JOB rules; Update/Fix (and their -All variants) produce no
// JOB rule: they populate updateMap/fixMap, and Update/Fix also generate the
// package rules of their candidates.
func (s *Solver) addRulesForRequest(req *request.Request) {
	for i := range req.Jobs {
		job := &req.Jobs[i]
		switch job.Cmd {
		case request.Install:
			for _, cand := range job.Packages {
				s.addRulesForPackage(cand)
			}
			r := newInstallOneOfRule(job.Packages)
			r.Type = rule.Job
			r.Reason = rule.ReasonJobInstall
			r.ReasonData = job
			s.addRule(r)

		case request.Remove:
			for _, cand := range job.Packages {
				s.addRulesForPackage(cand)
				r := newRemoveRule(cand)
				r.Type = rule.Job
				r.Reason = rule.ReasonJobRemove
				r.ReasonData = job
				s.addRule(r)
				s.markCleanDeps(cand)
			}

		case request.Lock:
			for _, cand := range job.Packages {
				s.addRulesForPackage(cand)
				var r *rule.Rule
				if s.isInstalled(cand) {
					r = newInstallRule(cand)
				} else {
					r = newRemoveRule(cand)
				}
				r.Type = rule.Job
				r.Reason = rule.ReasonJobLock
				r.ReasonData = job
				s.addRule(r)
			}

		case request.Update:
			for _, ip := range s.Installed.Packages() {
				if ip.Name == job.PackageName {
					s.updateMap[ip.ID] = true
				}
			}
			for _, cand := range job.Packages {
				s.addRulesForPackage(cand)
			}

		case request.UpdateAll:
			for _, p := range s.Installed.Packages() {
				s.updateMap[p.ID] = true
			}

		case request.Fix:
			for _, ip := range s.Installed.Packages() {
				if ip.Name == job.PackageName {
					s.fixMap[ip.ID] = true
				}
			}
			for _, cand := range job.Packages {
				s.addRulesForPackage(cand)
			}

		case request.FixAll:
			for _, p := range s.Installed.Packages() {
				s.fixMap[p.ID] = true
			}
		}
	}
}

// addUpdateAndFeatureRules implements spec §4.7 for every installed
// package not marked in cleanDepsMap (an orphan gets no rule that would keep
// it installed, so runSat's installed-packages phase can remove it): build
// the "feature" rule (installed OR any same-named
// candidate, including downgrades) and the "update" rule (installed OR
// same-or-newer candidates only), then register one or both depending on
// whether they coincide and whether the policy allows uninstalling.
//
// When the two rules differ and the policy does not allow uninstalling,
// only the strong update rule is registered: the feature rule would permit
// a downgrade the policy has no way to later approve, so it is dropped
// rather than weakened.
func (s *Solver) addUpdateAndFeatureRules() {
	for _, p := range s.Installed.Packages() {
		if s.cleanDepsMap[p.ID] {
			continue
		}
		featureCandidates := s.Policy.FindUpdatePackages(s.Pool, s.Installed, p, true)
		updateCandidates := s.Policy.FindUpdatePackages(s.Pool, s.Installed, p, false)

		featureRule := newUpdateRule(p, featureCandidates)
		updateRule := newUpdateRule(p, updateCandidates)
		featureRule.Type, updateRule.Type = rule.Feature, rule.Update

		allowUninstall := s.Policy.AllowUninstall()
		equal := featureRule.Signature() == updateRule.Signature()

		switch {
		case equal:
			if allowUninstall {
				featureRule.Weak = true
				s.packageToFeatureRule[p.ID] = s.addRule(featureRule)
			} else {
				s.packageToUpdateRule[p.ID] = s.addRule(updateRule)
			}
		case allowUninstall:
			featureRule.Weak = true
			updateRule.Weak = true
			s.packageToFeatureRule[p.ID] = s.addRule(featureRule)
			s.packageToUpdateRule[p.ID] = s.addRule(updateRule)
		default:
			s.packageToUpdateRule[p.ID] = s.addRule(updateRule)
		}
	}
}
