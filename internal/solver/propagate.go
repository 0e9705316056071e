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

import "github.com/rancher-sandbox/pkgsolve/internal/rule"

// literalByID finds the literal in r.Literals whose id matches, or the zero
// Literal if none does (which cannot happen for a well-formed watch list:
// a rule only appears on litID's list while one of its own literals has
// that id).
func literalByID(r *rule.Rule, id int) rule.Literal {
	for _, l := range r.Literals {
		if l.ID() == id {
			return l
		}
	}
	return rule.Literal{}
}

// propagate implements spec §4.11: process the decision queue from
// propagateIndex forward, and for each newly-falsified literal, walk every
// rule watching it. A rule that already has another satisfied literal, or
// that can be re-pointed at some other non-falsified literal, is left
// alone (rewritten, in the second case). A rule with no such escape and an
// undecided other watch forces that watch true. A rule with no escape and
// a falsified other watch is a conflict, and is returned immediately.
func (s *Solver) propagate() *rule.Rule {
	for s.propagateIndex < len(s.decisionQueue) {
		falsified := s.decisionQueue[s.propagateIndex].Inverted()
		s.propagateIndex++
		litID := falsified.ID()

		var prevRule *rule.Rule
		var prevSlot watchSlot
		curID := s.watches[litID]

		for curID != 0 {
			r := s.rules.RuleByID(curID)
			curSlot := slotOf(r, litID)
			nextID := getNext(r, curSlot)

			if r.Disabled {
				prevRule, prevSlot = r, curSlot
				curID = nextID
				continue
			}

			var otherID int
			if r.Watch1 == litID {
				otherID = r.Watch2
			} else {
				otherID = r.Watch1
			}
			other := literalByID(r, otherID)

			if s.literalSatisfied(other) {
				prevRule, prevSlot = r, curSlot
				curID = nextID
				continue
			}

			replaced := false
			if len(r.Literals) > 2 {
				for _, cand := range r.Literals {
					cid := cand.ID()
					if cid == otherID || cid == litID {
						continue
					}
					if !s.literalFalsified(cand) {
						s.unlink(litID, prevRule, prevSlot, nextID)
						setWatch(r, curSlot, cid)
						s.link(cid, r)
						replaced = true
						break
					}
				}
			}
			if replaced {
				curID = nextID
				continue
			}

			if s.literalFalsified(other) {
				return r
			}

			s.decide(other, s.level, WhyRule(r))
			prevRule, prevSlot = r, curSlot
			curID = nextID
		}
	}
	return nil
}

// unlink removes the rule currently at head of the walk (already known to
// be at literal litID's slot) from that list, splicing prev to nextID. prev
// nil means the removed rule was the list head.
func (s *Solver) unlink(litID int, prev *rule.Rule, prevSlot watchSlot, nextID int) {
	if prev == nil {
		s.watches[litID] = nextID
		return
	}
	setNext(prev, prevSlot, nextID)
}
