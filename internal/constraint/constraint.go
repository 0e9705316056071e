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

// Package constraint provides the version-constraint predicate the pool uses
// to decide whether a candidate package satisfies a dependency link.
package constraint

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Constraint decides whether a version satisfies some predicate. Composable
// via All, which is a plain logical conjunction of its children.
type Constraint interface {
	// Matches reports whether version satisfies the constraint.
	Matches(version string) bool
	// String returns a deterministic, human-readable and digest-stable
	// representation of the constraint.
	String() string
}

// Any matches every version, including unparseable ones. It is the
// constraint used when a dependency link carries no version range.
type Any struct{}

func (Any) Matches(string) bool { return true }
func (Any) String() string      { return "*" }

// Range wraps a Masterminds/semver range expression, e.g. "^1.2.0",
// "~1.0", ">=1.0.0 <2.0.0". A version that fails to parse never matches.
type Range struct {
	raw string
	c   *semver.Constraints
}

// NewRange parses expr as a semver constraint expression.
func NewRange(expr string) (*Range, error) {
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, err
	}
	return &Range{raw: expr, c: c}, nil
}

// MustNewRange is like NewRange but panics on a malformed expression. Meant
// for tests and static fixture construction, not for parsing user input.
func MustNewRange(expr string) *Range {
	r, err := NewRange(expr)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Range) Matches(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.c.Check(v)
}

func (r *Range) String() string { return r.raw }

// All is the conjunction of its children. An empty All matches everything.
type All []Constraint

func (a All) Matches(version string) bool {
	for _, c := range a {
		if !c.Matches(version) {
			return false
		}
	}
	return true
}

func (a All) String() string {
	parts := make([]string, len(a))
	for i, c := range a {
		parts[i] = c.String()
	}
	return strings.Join(parts, " && ")
}

// CompareVersions orders two semver strings; unparseable strings sort after
// parseable ones, and are ordered among themselves by plain string
// comparison. Used by the default
// policy to order update candidates from newest to oldest.
func CompareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return strings.Compare(a, b)
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	default:
		return va.Compare(vb)
	}
}
