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
	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/rule"
)

// undecidedPositiveLiterals returns the literals of r that would satisfy it
// (Wanted true) and whose package has no decision yet.
func (s *Solver) undecidedPositiveLiterals(r *rule.Rule) []rule.Literal {
	var out []rule.Literal
	for _, l := range r.Literals {
		if l.Wanted && s.decisions[l.Package.ID] == 0 {
			out = append(out, l)
		}
	}
	return out
}

// setPropagateLearn implements the innermost loop of spec §4.15: branch on
// lit at a fresh level, propagate, and if that produces a conflict, learn
// from it and backtrack, repeating until propagation is stable. It returns
// the level reached, or 0 if the conflict could not be resolved (the
// request is unsolvable).
func (s *Solver) setPropagateLearn(lit rule.Literal, disableRules bool, cause *rule.Rule) int {
	s.level++
	s.decide(lit, s.level, WhyRule(cause))

	for {
		conflict := s.propagate()
		if conflict == nil {
			return s.level
		}
		if s.level <= 1 {
			if s.analyzeUnsolvable(conflict, disableRules) {
				return s.level
			}
			return 0
		}

		learnedRule, backjump, idx := s.analyze(conflict)
		stored, added := s.rules.Add(learnedRule)
		if added {
			s.learnedWhy[stored.ID] = idx
		} else if _, tracked := s.learnedWhy[stored.ID]; !tracked {
			s.learnedWhy[stored.ID] = idx
		}

		s.backtrack(backjump)
		s.addLearnedWatches(stored)

		if len(stored.Literals) == 0 {
			return 0
		}
		asserting := stored.Literals[0]
		s.decide(asserting, backjump, WhyRule(stored))
	}
}

// selectAndInstall picks the preferred candidate out of queue via the
// policy, records the rest as branch alternatives, and drives it through
// setPropagateLearn.
func (s *Solver) selectAndInstall(queue []rule.Literal, disableRules bool, cause *rule.Rule) int {
	if len(queue) == 0 {
		return s.level
	}
	candidates := make([]*pkgmodel.Package, len(queue))
	for i, l := range queue {
		candidates[i] = l.Package
	}
	ordered := s.Policy.SelectPreferredPackages(candidates)
	if len(ordered) == 0 {
		return s.level
	}

	for _, alt := range ordered[1:] {
		s.branches = append(s.branches, Branch{Literal: rule.New(alt, true), Level: s.level + 1})
	}

	return s.setPropagateLearn(rule.New(ordered[0], true), disableRules, cause)
}

// runSat implements spec §4.15: an initial propagation, then a fixed-point
// loop over the job phase, the two installed-packages passes (updateMap
// members first, then the rest) and the general phase, restarting a phase
// from its own start whenever a decision inside it backjumps to an earlier
// level. In the installed-packages passes, a package recorded in
// cleanDepsMap (an orphaned dependency of something a Remove job took out)
// is forced out via a negative decision instead of being offered an update
// or left alone. It returns false only when a conflict at level 1 could not
// be explained away by disabling a rule.
func (s *Solver) runSat() bool {
	if conflict := s.propagate(); conflict != nil {
		if !s.analyzeUnsolvable(conflict, true) {
			return false
		}
	}

	const systemLevel = 2

	for {
		progressed := false

		if s.level < systemLevel {
			for _, r := range s.rules.OfType(rule.Job) {
				if r.Disabled || s.ruleSatisfied(r) {
					continue
				}
				queue := s.undecidedPositiveLiterals(r)
				if len(queue) == 0 {
					continue
				}
				before := s.level
				newLevel := s.selectAndInstall(queue, true, r)
				if newLevel == 0 {
					return false
				}
				progressed = true
				if newLevel < before {
					break
				}
			}
		}

		for _, updateOnly := range []bool{true, false} {
			restart := true
			for restart {
				restart = false
				for _, p := range s.Installed.Packages() {
					if s.updateMap[p.ID] != updateOnly {
						continue
					}
					if s.decisions[p.ID] != 0 {
						continue
					}
					if s.cleanDepsMap[p.ID] {
						before := s.level
						newLevel := s.setPropagateLearn(rule.New(p, false), true, nil)
						if newLevel == 0 {
							return false
						}
						progressed = true
						if newLevel < before {
							restart = true
							break
						}
						continue
					}
					r := s.packageToFeatureRule[p.ID]
					if r == nil || r.Disabled {
						r = s.packageToUpdateRule[p.ID]
					}
					if r == nil || r.Disabled || s.ruleSatisfied(r) {
						continue
					}
					queue := s.undecidedPositiveLiterals(r)
					if len(queue) == 0 {
						continue
					}
					before := s.level
					newLevel := s.selectAndInstall(queue, true, r)
					if newLevel == 0 {
						return false
					}
					progressed = true
					if newLevel < before {
						restart = true
						break
					}
				}
			}
		}

		restart := true
		for restart {
			restart = false
			for _, r := range s.rules.All() {
				if r.Disabled || r.IsAssertion() || r.IsImpossible() || r.Type == rule.Update || r.Type == rule.Feature {
					continue
				}
				if s.ruleSatisfied(r) {
					continue
				}
				queue := s.undecidedPositiveLiterals(r)
				if len(queue) < 1 {
					continue
				}
				before := s.level
				newLevel := s.selectAndInstall(queue, true, r)
				if newLevel == 0 {
					return false
				}
				progressed = true
				if newLevel < before {
					restart = true
					break
				}
			}
		}

		if !progressed {
			break
		}
	}
	return true
}
