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
	"errors"
	"os"

	"github.com/Masterminds/log-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rancher-sandbox/pkgsolve/pkg/cli"
)

var globalUsage = `Usage: pkgsolve command

A CDCL SAT based dependency resolver for a package repository index.
`

func newSettings() *cli.EnvSettings {
	return cli.New()
}

func newRootCmd(args []string) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:          "pkgsolve",
		Short:        "resolve package dependencies against a repository index",
		Long:         globalUsage,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	cmd.AddCommand(
		newInstallCmd(),
		newRemoveCmd(),
		newUpdateCmd(),
		newUpdateAllCmd(),
		newFixCmd(),
		newFixAllCmd(),
		newLockCmd(),
	)

	flags.ParseErrorsWhitelist.UnknownFlags = true
	if err := flags.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		log.Errorf("failed while parsing flags for %s: %s", args, err)
		os.Exit(1)
	}

	if settings.NoColor {
		color.NoColor = true
	}

	return cmd, nil
}
