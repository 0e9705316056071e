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

Package solver implements the CDCL-style dependency solver: it turns
packages, their requires/conflicts/provides/replaces links, and a Request's
jobs into propositional Rules, searches for a satisfying assignment using
two-literal watches, learned rules and conflict-driven backtracking, and
extracts the resulting install/remove Transaction (or, on failure, the set
of Problems that made the request unsolvable).
*/
package solver

import (
	"fmt"
	"strings"

	"github.com/Masterminds/log-go"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/policy"
	"github.com/rancher-sandbox/pkgsolve/internal/pool"
	"github.com/rancher-sandbox/pkgsolve/internal/repository"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/internal/rule"
)

// Why is a tagged union: the cause of a decision or a problem is either a
// Rule or, when that rule is itself a JOB rule, the originating Job (the
// two ultimately mean the same thing, but callers rendering a problem to a
// user want the Job's wording, not the rule's).
type Why struct {
	Rule *rule.Rule
	Job  *request.Job
}

func WhyRule(r *rule.Rule) Why { return Why{Rule: r} }
func WhyJob(j *request.Job) Why { return Why{Job: j} }

// IsZero reports whether w carries no cause at all.
func (w Why) IsZero() bool { return w.Rule == nil && w.Job == nil }

func (w Why) String() string {
	switch {
	case w.Job != nil:
		return fmt.Sprintf("job %s %s", w.Job.Cmd, w.Job.PackageName)
	case w.Rule != nil:
		return fmt.Sprintf("%s %s", w.Rule.Reason, w.Rule)
	default:
		return "(no cause)"
	}
}

// ErrMinimizationNotAttempted is returned by Solve when runSat finished
// with unexplored branch alternatives recorded (see Branch) but no
// minimization pass exists to try them. Per spec §9 this is the sanctioned
// stand-in for the source's unimplemented minimization branch: rather than
// silently returning a transaction that might not be the shortest one
// available, Solve reports the condition so a caller can retry with a
// stricter policy or accept the transaction as-is.
var ErrMinimizationNotAttempted = errors.New("solver: branch alternatives were recorded but minimization is not implemented")

// Problem is a minimal set of user/update rules whose simultaneous
// enablement caused unsatisfiability.
type Problem []Why

func (p Problem) String() string {
	parts := make([]string, len(p))
	for i, w := range p {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; conflicts with ")
}

// Entry is one line of a Transaction.
type Entry struct {
	Job     request.Cmd // always Install or Remove
	Package *pkgmodel.Package
}

// Transaction is the final ordered list of installs and removes. An empty
// Transaction means "no change required".
type Transaction []Entry

// Branch is a saved alternative decision, recorded when SelectPreferred
// Packages returns more than one candidate, for later minimization. No
// minimization pass consumes these yet: a non-empty branches slice at the
// end of a successful runSat makes Solve return ErrMinimizationNotAttempted
// instead of silently returning a transaction that might not be the
// shortest one available.
type Branch struct {
	Literal rule.Literal
	Level   int
}

// Solver owns rule storage and decision state for a single Solve
// invocation. Per spec §5 it is single-threaded, synchronous, and
// single-use: build one with New per Solve call.
type Solver struct {
	Pool      *pool.Pool
	Installed *repository.Repository
	Policy    policy.Policy
	Logger    log.Logger

	rules *rule.RuleSet

	decisions        map[int]int // package id -> signed level, 0 = undecided
	decisionQueue    []rule.Literal
	decisionQueueWhy []Why
	propagateIndex   int
	level            int

	branches []Branch
	problems []Problem

	learnedPool [][]*rule.Rule
	learnedWhy  map[int]int // learned rule id -> index into learnedPool

	watches map[int]int // literal id -> rule id (0 = end of list)

	fixMap       map[int]bool
	updateMap    map[int]bool
	processed    map[int]bool
	cleanDepsMap map[int]bool

	packageToUpdateRule  map[int]*rule.Rule
	packageToFeatureRule map[int]*rule.Rule
}

// New creates a Solver ready to run a single Solve call against p, using
// installed as the currently-installed repository and pol as the policy.
// A nil logger is replaced with log-go's package-level discard default.
func New(p *pool.Pool, installed *repository.Repository, pol policy.Policy, logger log.Logger) *Solver {
	if logger == nil {
		logger = log.Current
	}
	return &Solver{
		Pool:                 p,
		Installed:            installed,
		Policy:               pol,
		Logger:               logger,
		rules:                rule.NewRuleSet(),
		decisions:            make(map[int]int),
		learnedWhy:           make(map[int]int),
		watches:              make(map[int]int),
		fixMap:               make(map[int]bool),
		updateMap:            make(map[int]bool),
		processed:            make(map[int]bool),
		cleanDepsMap:         make(map[int]bool),
		packageToUpdateRule:  make(map[int]*rule.Rule),
		packageToFeatureRule: make(map[int]*rule.Rule),
		level:                1,
	}
}

// Solve runs the full pipeline described in spec §4.6–§4.16: rule
// generation, watch setup, the initial assertion pass, and the runSat main
// loop, and returns the resulting Transaction. On an unsolvable request it
// returns a nil Transaction and a non-nil error aggregating every recorded
// Problem; call Problems() for the structured form.
func (s *Solver) Solve(req *request.Request) (Transaction, error) {
	s.addRulesForRequest(req)
	for _, p := range s.Installed.Packages() {
		s.addRulesForPackage(p)
	}
	s.addUpdateAndFeatureRules()
	s.addWatches()

	s.Logger.Debugf("solver: %d installed packages, %d rules generated", s.Installed.Len(), s.rules.Len())

	s.makeAssertionRuleDecisions()

	if !s.runSat() {
		return nil, s.problemsError()
	}
	if len(s.problems) > 0 {
		// runSat recovered by disabling the rules recorded in s.problems
		// (dropping a JOB or weak UPDATE/FEATURE rule) rather than failing
		// outright, but a request that can only be solved by silently
		// dropping one of its own jobs is still a failed request.
		return nil, s.problemsError()
	}
	if len(s.branches) > 0 {
		return nil, ErrMinimizationNotAttempted
	}

	tx := s.extractTransaction()
	s.Logger.Debugf("solver: transaction has %d entries", len(tx))
	return tx, nil
}

// Problems returns the structured problem groups recorded during the last
// Solve call, if it failed.
func (s *Solver) Problems() []Problem { return s.problems }

func (s *Solver) problemsError() error {
	if len(s.problems) == 0 {
		return errors.New("request is unsolvable but no problem was recorded (internal error)")
	}
	var merr *multierror.Error
	for i, p := range s.problems {
		merr = multierror.Append(merr, errors.Errorf("problem %d: %s", i+1, p.String()))
	}
	return merr.ErrorOrNil()
}

func (s *Solver) isInstalled(p *pkgmodel.Package) bool {
	return s.Installed != nil && s.Installed.Contains(p)
}

func (s *Solver) decide(lit rule.Literal, level int, why Why) {
	v := level
	if !lit.Wanted {
		v = -level
	}
	s.decisions[lit.Package.ID] = v
	s.decisionQueue = append(s.decisionQueue, lit)
	s.decisionQueueWhy = append(s.decisionQueueWhy, why)
}

func (s *Solver) literalSatisfied(l rule.Literal) bool {
	v := s.decisions[l.Package.ID]
	if v == 0 {
		return false
	}
	if l.Wanted {
		return v > 0
	}
	return v < 0
}

func (s *Solver) literalFalsified(l rule.Literal) bool {
	if s.decisions[l.Package.ID] == 0 {
		return false
	}
	return !s.literalSatisfied(l)
}

func (s *Solver) ruleSatisfied(r *rule.Rule) bool {
	for _, l := range r.Literals {
		if s.literalSatisfied(l) {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// extractTransaction walks the decision queue in order and reverses the
// result, per spec §4.16, so that removes-that-unblock precede
// installs-that-depend.
func (s *Solver) extractTransaction() Transaction {
	var out Transaction
	for _, l := range s.decisionQueue {
		installed := s.isInstalled(l.Package)
		if l.Wanted == installed {
			continue
		}
		cmd := request.Remove
		if l.Wanted {
			cmd = request.Install
		}
		out = append(out, Entry{Job: cmd, Package: l.Package})
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
