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

	"github.com/rancher-sandbox/pkgsolve/internal/pkgmodel"
	"github.com/rancher-sandbox/pkgsolve/internal/request"
	"github.com/rancher-sandbox/pkgsolve/pkg/txout"
)

var removeDesc = `remove one or more installed packages`

func newRemoveCmd() *cobra.Command {
	var mode txout.Mode

	cmd := &cobra.Command{
		Use:   "remove NAME...",
		Short: "remove one or more installed packages",
		Long:  removeDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := loadWorld()
			if err != nil {
				return err
			}

			req := request.New()
			for _, name := range args {
				var candidates []*pkgmodel.Package
				for _, ip := range w.installed.Packages() {
					if ip.Name == name {
						candidates = append(candidates, ip)
					}
				}
				if len(candidates) == 0 {
					return errors.Errorf("package %q is not installed", name)
				}
				req.Remove(name, candidates)
			}

			return runRequest(w, req, mode)
		},
	}
	addOutputFlag(cmd.Flags(), &mode)
	return cmd
}
