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

package pkgmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvided(t *testing.T) {
	for _, tcase := range []struct {
		name string
		pkg  *Package
		want []string
	}{
		{
			name: "bare package provides only its own name",
			pkg:  New("foo", "1.0.0", "main"),
			want: []string{"foo"},
		},
		{
			name: "provides and replaces are included alongside the name",
			pkg: New("foo", "1.0.0", "main").
				WithProvides(Link{Name: "virtual-foo"}).
				WithReplaces(Link{Name: "old-foo"}),
			want: []string{"foo", "virtual-foo", "old-foo"},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			assert.ElementsMatch(t, tcase.want, tcase.pkg.Provided())
		})
	}
}

func TestEqual(t *testing.T) {
	a := New("foo", "1.0.0", "main")
	b := New("foo", "1.0.0", "main")

	for _, tcase := range []struct {
		name string
		a, b *Package
		want bool
	}{
		{name: "same pointer is equal", a: a, b: a, want: true},
		{name: "distinct pointers with the same fields are not equal", a: a, b: b, want: false},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			assert.Equal(t, tcase.want, Equal(tcase.a, tcase.b))
		})
	}
}

func TestString(t *testing.T) {
	for _, tcase := range []struct {
		name string
		pkg  *Package
		want string
	}{
		{name: "name and version joined by a dash", pkg: New("foo", "1.0.0", "main"), want: "foo-1.0.0"},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			assert.Equal(t, tcase.want, tcase.pkg.String())
		})
	}
}
