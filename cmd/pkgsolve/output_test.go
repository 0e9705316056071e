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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

func TestOutputFlagSetAndString(t *testing.T) {
	var mode txout.Mode
	f := &outputFlag{mode: &mode}

	require.NoError(t, f.Set("yaml"))
	assert.Equal(t, txout.YAML, mode)
	assert.Equal(t, "yaml", f.String())

	require.NoError(t, f.Set("json"))
	assert.Equal(t, txout.JSON, mode)

	require.NoError(t, f.Set(""))
	assert.Equal(t, txout.Table, mode)

	assert.Error(t, f.Set("xml"))
}

func TestSplitNameConstraint(t *testing.T) {
	name, expr := splitNameConstraint("foo@^1.2")
	assert.Equal(t, "foo", name)
	assert.Equal(t, "^1.2", expr)

	name, expr = splitNameConstraint("foo")
	assert.Equal(t, "foo", name)
	assert.Equal(t, "", expr)
}
