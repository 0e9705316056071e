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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

var lockDesc = `pin one or more packages to their current presence/absence: an
installed candidate is locked in, an available-but-not-installed candidate
is locked out`

func newLockCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "lock NAME...",
		Short: "pin packages to their current installed/absent state",
		Long:  lockDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			for _, arg := range args {
				name, candidates := w.resolveName(arg)
				if len(candidates) == 0 {
					return errors.Errorf("no package satisfies %q", arg)
				}
				req.Lock(name, candidates)
			}

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}
