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

const installDesc = `
This command adds one or more install jobs to a request and solves it.

Each NAME may carry a version constraint: "foo@^1.2" installs foo matching
that range, "foo" installs any version the repositories provide.
`

func newInstallCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "install NAME...",
		Short: "install one or more packages",
		Long:  installDesc,
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
				req.Install(name, candidates)
			}

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}
