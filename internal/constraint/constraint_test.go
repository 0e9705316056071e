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

package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeMatches(t *testing.T) {
	for _, tcase := range []struct {
		name    string
		expr    string
		version string
		want    bool
	}{
		{"caret matches minor bump", "^1.2.0", "1.5.0", true},
		{"caret rejects major bump", "^1.2.0", "2.0.0", false},
		{"tilde matches patch bump", "~0.1.0", "0.1.100", true},
		{"tilde rejects minor bump", "~0.1.0", "0.2.0", false},
		{"unparseable version never matches", "^1.0.0", "not-a-version", false},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			r, err := NewRange(tcase.expr)
			require.NoError(t, err)
			assert.Equal(t, tcase.want, r.Matches(tcase.version))
		})
	}
}

func TestAnyMatchesEverything(t *testing.T) {
	assert.True(t, Any{}.Matches("garbage"))
	assert.True(t, Any{}.Matches("1.0.0"))
}

func TestAllIsConjunction(t *testing.T) {
	a := All{MustNewRange(">=1.0.0"), MustNewRange("<2.0.0")}
	assert.True(t, a.Matches("1.5.0"))
	assert.False(t, a.Matches("2.5.0"))
	assert.False(t, a.Matches("0.5.0"))

	assert.True(t, All{}.Matches("anything"))
}

func TestCompareVersions(t *testing.T) {
	assert.True(t, CompareVersions("2.0.0", "1.0.0") > 0)
	assert.True(t, CompareVersions("1.0.0", "2.0.0") < 0)
	assert.Equal(t, 0, CompareVersions("1.0.0", "1.0.0"))
	assert.True(t, CompareVersions("bogus", "1.0.0") > 0)
	assert.True(t, CompareVersions("1.0.0", "bogus") < 0)
}
