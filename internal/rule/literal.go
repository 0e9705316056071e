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

Package rule provides the Literal, Rule and RuleSet types the solver's CDCL
search operates on. The literal encoding follows the signed-integer style
used by real Go SAT engines in this ecosystem (see
crillab/gophersat's Lit/Var), specialized to reference a *pkgmodel.Package
directly instead of an opaque variable index.
*/
package rule

import (
	"fmt"

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
)

// Literal is a signed reference to a package: (package, wanted). wanted
// true means "install this package"; false means "do not install it".
type Literal struct {
	Package *pkgmodel.Package
	Wanted  bool
}

// New builds a literal. Package must already have a non-zero Pool-assigned
// ID.
func New(p *pkgmodel.Package, wanted bool) Literal {
	return Literal{Package: p, Wanted: wanted}
}

// ID returns the canonical signed integer identifying this literal:
// +package.ID when wanted, -package.ID otherwise. Never zero, since
// package ids are assigned starting at 1.
func (l Literal) ID() int {
	if l.Wanted {
		return l.Package.ID
	}
	return -l.Package.ID
}

// Inverted returns the negation of l: same package, opposite polarity.
func (l Literal) Inverted() Literal {
	return Literal{Package: l.Package, Wanted: !l.Wanted}
}

func (l Literal) String() string {
	if l.Wanted {
		return fmt.Sprintf("+%s", l.Package)
	}
	return fmt.Sprintf("-%s", l.Package)
}
