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
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

var fixDesc = `re-derive the update/feature rules for one or more installed packages,
allowing the solver to move them even without an explicit update job`

func newFixCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "fix NAME...",
		Short: "let the solver reconsider one or more installed packages",
		Long:  fixDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			for _, arg := range args {
				name, candidates := w.resolveName(arg)
				req.Fix(name, candidates)
			}

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}

var fixAllDesc = `let the solver reconsider every installed package`

func newFixAllCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "fix-all",
		Short: "let the solver reconsider every installed package",
		Long:  fixAllDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			req.FixAll()

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}
