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

var updateDesc = `update one or more installed packages to a newer candidate`

func newUpdateCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "update NAME...",
		Short: "update one or more installed packages",
		Long:  updateDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			for _, arg := range args {
				name, candidates := w.resolveName(arg)
				req.Update(name, candidates)
			}

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}

var updateAllDesc = `update every installed package to its newest available candidate`

func newUpdateAllCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "update-all",
		Short: "update every installed package",
		Long:  updateAllDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			req.UpdateAll()

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}
