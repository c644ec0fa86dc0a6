// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/szeber/yapep-base-sub003/router"
)

func validateCmd(c *cli) *cobra.Command {
	var failOnWarnings bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the route documents and report anomalies",
		Long: `Load every route document, build the router and report shadowed paths
and controller actions served by more than one route.

Anomalies never change routing; with --fail-on-warnings they make the
command exit non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var warnings []router.DiagnosticEvent
			collect := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
				if e.Kind != router.DiagRouteRegistered {
					warnings = append(warnings, e)
				}
			})

			r, err := c.loadRouter(cmd.Context(), router.WithDiagnostics(collect))
			if err != nil {
				return err
			}

			for _, w := range warnings {
				fmt.Fprintf(c.out, "warning: %s: route %v\n", w.Message, w.Fields["route"])
			}
			fmt.Fprintf(c.out, "%d routes, %d warnings\n", r.Len(), len(warnings))

			if failOnWarnings && len(warnings) > 0 {
				return fmt.Errorf("%d warnings", len(warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnWarnings, "fail-on-warnings", false, "exit non-zero when anomalies are found")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skips settings loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) %s %s/%s\n",
				serviceName, version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
