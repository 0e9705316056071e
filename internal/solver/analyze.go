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
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/rule"
)

// analyze performs 1-UIP conflict analysis (spec §4.12): it resolves the
// conflicting rule back through the reasons on the trail until exactly one
// literal decided at the current level remains, producing a new clause
// that is falsified now but becomes unit once backtracked past the second
// highest level among its literals. It returns the learned rule, the
// level to backtrack to, and the index the rule's ancestry was recorded
// under in learnedPool (for later enable/disable propagation).
func (s *Solver) analyze(conflict *rule.Rule) (*rule.Rule, int, int) {
	seen := make(map[int]bool)
	counter := 0
	var learnt []rule.Literal
	var ancestors []*rule.Rule

	visitClause := func(lits []rule.Literal, exclude int) {
		for _, l := range lits {
			pid := l.Package.ID
			if pid == exclude || seen[pid] {
				continue
			}
			seen[pid] = true
			lvl := abs(s.decisions[pid])
			switch {
			case lvl == s.level:
				counter++
			case lvl > 0:
				learnt = append(learnt, l)
			}
		}
	}

	reasonRule := conflict
	ancestors = append(ancestors, conflict)
	visitClause(reasonRule.Literals, 0)

	trailIdx := len(s.decisionQueue) - 1
	var p rule.Literal
	for {
		for trailIdx >= 0 && !seen[s.decisionQueue[trailIdx].Package.ID] {
			trailIdx--
		}
		if trailIdx < 0 {
			break
		}
		p = s.decisionQueue[trailIdx]
		why := s.decisionQueueWhy[trailIdx]
		seen[p.Package.ID] = false
		counter--
		trailIdx--
		if counter == 0 {
			break
		}
		if why.Rule == nil {
			break
		}
		reasonRule = why.Rule
		ancestors = append(ancestors, reasonRule)
		visitClause(reasonRule.Literals, p.Package.ID)
	}

	learnt = append([]rule.Literal{p.Inverted()}, learnt...)

	backjump := 1
	if len(learnt) > 1 {
		max := 0
		for _, l := range learnt[1:] {
			if lvl := abs(s.decisions[l.Package.ID]); lvl > max {
				max = lvl
			}
		}
		if max > 0 {
			backjump = max
		}
	}

	learned := &rule.Rule{Literals: learnt, Type: rule.Learned, Reason: rule.ReasonLearned}
	idx := len(s.learnedPool)
	s.learnedPool = append(s.learnedPool, ancestors)
	return learned, backjump, idx
}

// backtrack undoes every decision made at a level deeper than toLevel. The
// decision queue is level-monotonic (later entries never have a lower
// level than earlier ones), so the cut point is the first entry exceeding
// toLevel.
func (s *Solver) backtrack(toLevel int) {
	cut := len(s.decisionQueue)
	for i, l := range s.decisionQueue {
		if abs(s.decisions[l.Package.ID]) > toLevel {
			cut = i
			break
		}
	}
	for i := cut; i < len(s.decisionQueue); i++ {
		delete(s.decisions, s.decisionQueue[i].Package.ID)
	}
	s.decisionQueue = s.decisionQueue[:cut]
	s.decisionQueueWhy = s.decisionQueueWhy[:cut]
	if s.propagateIndex > cut {
		s.propagateIndex = cut
	}
	s.level = toLevel
}

// findDecisionRule returns the rule that most recently forced pid's current
// decision, or nil if it was a branch decision or has no rule reason.
func (s *Solver) findDecisionRule(pid int) *rule.Rule {
	for i := len(s.decisionQueue) - 1; i >= 0; i-- {
		if s.decisionQueue[i].Package.ID == pid {
			return s.decisionQueueWhy[i].Rule
		}
	}
	return nil
}

// recordImpossibleConflict handles a JOB rule with zero literals (an
// install job whose candidate list was empty): it can never be satisfied,
// so it becomes its own one-rule problem and is disabled so later phases
// skip it.
func (s *Solver) recordImpossibleConflict(r *rule.Rule) {
	s.problems = append(s.problems, Problem{s.whyFor(r)})
	r.Disable()
}

// whyFor wraps r for problem reporting, keeping the Rule pointer (needed to
// disable it) even when the rule also carries a Job (whose wording problem
// rendering prefers).
func (s *Solver) whyFor(r *rule.Rule) Why {
	if job, ok := r.ReasonData.(*request.Job); ok {
		return Why{Rule: r, Job: job}
	}
	return WhyRule(r)
}

// makeAssertionRuleDecisions implements spec §4.10: walk every enabled,
// non-weak assertion (and impossible) rule in insertion order, deciding
// its single literal at level 1 when the package is still undecided,
// leaving it alone when the existing decision already satisfies it, and
// otherwise recording a problem. A JOB/UPDATE/FEATURE-vs-JOB/UPDATE/FEATURE
// conflict disables every conflicting assertion for that package and
// rewinds the scan to the start (their combined removal can unblock
// earlier rules); a conflict against a PACKAGE-rule-derived decision
// disables only the later rule, since the earlier PACKAGE rule reflects an
// invariant of the package graph itself, not a preference. Weak assertions
// are considered last and yield to any conflict instead of causing one.
func (s *Solver) makeAssertionRuleDecisions() {
	decisionStart := len(s.decisionQueue)

	for i := 0; i < s.rules.Len(); i++ {
		r := s.rules.RuleByID(i + 1)
		if r.Disabled || r.Weak {
			continue
		}
		if r.IsImpossible() {
			s.recordImpossibleConflict(r)
			continue
		}
		if !r.IsAssertion() {
			continue
		}

		lit := r.Literals[0]
		pid := lit.Package.ID
		cur := s.decisions[pid]

		if cur == 0 {
			s.decide(lit, 1, s.whyForDecision(r))
			continue
		}
		if s.literalSatisfied(lit) {
			continue
		}

		if r.Type == rule.Learned {
			r.Disable()
			continue
		}

		priorRule := s.findDecisionRule(pid)
		idx := len(s.learnedPool)
		s.learnedPool = append(s.learnedPool, []*rule.Rule{priorRule, r})
		_ = idx

		if priorRule != nil && priorRule.Type == rule.Package {
			s.problems = append(s.problems, Problem{s.whyFor(r)})
			r.Disable()
			continue
		}

		var problem Problem
		for j := 0; j < s.rules.Len(); j++ {
			other := s.rules.RuleByID(j + 1)
			if other.Disabled || other.Weak || !other.IsAssertion() {
				continue
			}
			if other.Literals[0].Package.ID != pid {
				continue
			}
			if other.Type != rule.Job && other.Type != rule.Update && other.Type != rule.Feature {
				continue
			}
			problem = append(problem, s.whyFor(other))
			other.Disable()
		}
		s.problems = append(s.problems, problem)

		s.decisionQueue = s.decisionQueue[:decisionStart]
		s.decisionQueueWhy = s.decisionQueueWhy[:decisionStart]
		s.decisions = make(map[int]int)
		for _, l := range s.decisionQueue {
			v := 1
			if !l.Wanted {
				v = -1
			}
			s.decisions[l.Package.ID] = v
		}
		i = -1
	}

	for i := 0; i < s.rules.Len(); i++ {
		r := s.rules.RuleByID(i + 1)
		if r.Disabled || !r.Weak || !r.IsAssertion() {
			continue
		}
		lit := r.Literals[0]
		cur := s.decisions[lit.Package.ID]
		if cur == 0 {
			s.decide(lit, 1, s.whyForDecision(r))
			continue
		}
		if !s.literalSatisfied(lit) {
			r.Disable()
		}
	}
}

func (s *Solver) whyForDecision(r *rule.Rule) Why {
	if r.Type == rule.Job {
		return s.whyFor(r)
	}
	return WhyRule(r)
}

// enableDisableLearnedRules re-derives each learned rule's enabled state
// from its ancestry: a learned rule stays enabled only while every rule it
// was derived from is still enabled, per spec §4.14.
func (s *Solver) enableDisableLearnedRules() {
	for _, r := range s.rules.OfType(rule.Learned) {
		idx, ok := s.learnedWhy[r.ID]
		if !ok {
			continue
		}
		enabled := true
		for _, anc := range s.learnedPool[idx] {
			if anc == nil || anc.Disabled {
				enabled = false
				break
			}
		}
		if enabled {
			r.Enable()
		} else {
			r.Disable()
		}
	}
}

// resetSolver implements spec §4.14: drop all decisions and start the
// assertion pass over, now that the rule set may have fewer enabled rules
// than before.
func (s *Solver) resetSolver() {
	s.decisionQueue = nil
	s.decisionQueueWhy = nil
	s.decisions = make(map[int]int)
	s.propagateIndex = 0
	s.branches = nil
	s.level = 1
	s.enableDisableLearnedRules()
	s.makeAssertionRuleDecisions()
}

// analyzeUnsolvable implements spec §4.13: trace the conflicting rule and
// every rule that fed a literal on its trail back to the JOB/UPDATE/
// FEATURE rules ultimately responsible, recursing into a LEARNED rule's own
// ancestry. A weak rule found along the way is preferred as the thing to
// drop (silently, without becoming user-visible in the problem list); only
// when no weak rule was involved does the collected set become a Problem.
// When disableRules is true and a problem (or a weak rule) was found, the
// offending rule(s) are disabled and the solver is reset to retry;
// analyzeUnsolvable returns whether that retry is worth attempting.
func (s *Solver) analyzeUnsolvable(conflict *rule.Rule, disableRules bool) bool {
	seen := make(map[int]bool)
	var problem Problem
	var lastWeakWhy Why

	var visit func(r *rule.Rule)
	visit = func(r *rule.Rule) {
		switch r.Type {
		case rule.Learned:
			if idx, ok := s.learnedWhy[r.ID]; ok {
				for _, anc := range s.learnedPool[idx] {
					if anc != nil {
						visit(anc)
					}
				}
			}
		case rule.Job:
			problem = append(problem, s.whyFor(r))
		case rule.Update, rule.Feature:
			if r.Weak {
				lastWeakWhy = WhyRule(r)
			} else {
				problem = append(problem, WhyRule(r))
			}
		}
	}

	visit(conflict)
	for _, l := range conflict.Literals {
		seen[l.Package.ID] = true
	}

	for idx := len(s.decisionQueue) - 1; idx >= 0; idx-- {
		lit := s.decisionQueue[idx]
		if !seen[lit.Package.ID] {
			continue
		}
		why := s.decisionQueueWhy[idx]
		if why.Rule != nil {
			visit(why.Rule)
			for _, l := range why.Rule.Literals {
				seen[l.Package.ID] = true
			}
		}
	}

	if !lastWeakWhy.IsZero() {
		if !disableRules {
			return false
		}
		lastWeakWhy.Rule.Disable()
		s.resetSolver()
		return true
	}

	if !disableRules {
		s.problems = append(s.problems, problem)
		return false
	}

	for _, why := range problem {
		if why.Rule != nil {
			why.Rule.Disable()
		}
	}
	s.problems = append(s.problems, problem)
	s.resetSolver()
	return true
}
