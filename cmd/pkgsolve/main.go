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
	"os"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
)

var settings = newSettings()

func main() {
	cmd, err := newRootCmd(os.Args[1:])

	logger := log.Current
	if settings.Debug {
		l := logcli.NewStandard()
		l.Level = log.DebugLevel
		log.Current = l
		logger = l
	}

	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	if err := cmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
