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
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/szeber/yapep-base-sub003/collector"
	"github.com/szeber/yapep-base-sub003/config"
	"github.com/szeber/yapep-base-sub003/logging"
	"github.com/szeber/yapep-base-sub003/router"
)

const serviceName = "yapep-routes"

var errNoRouteFiles = errors.New("no route documents: pass --routes or set routes_files")

// cli holds the persistent flags and the state PersistentPreRunE derives
// from them.
type cli struct {
	configFile string
	routes     []string
	logLevel   string
	strict     bool

	out    io.Writer
	errOut io.Writer

	settings *config.Settings
	logger   *logging.Logger

	noBanner bool
	banner   bannerInfo
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   serviceName,
		Short: "Inspect, query and serve YAPEP route tables",
		Long: `yapep-routes loads route documents (YAML, JSON, TOML or MessagePack) into a router.

Settings come from, in increasing precedence: built-in defaults, the file
given with --config, YAPEP_* environment variables (nested keys joined
with "__", e.g. YAPEP_LOG__LEVEL) and the command line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&c.configFile, "config", "c", "", "settings file (yaml, json or toml)")
	flags.StringArrayVarP(&c.routes, "routes", "r", nil, "route document, repeatable; replaces routes_files")
	flags.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&c.strict, "strict", false, "validate parameter values during URL generation")

	cmd.AddCommand(
		listCmd(c),
		matchCmd(c),
		urlCmd(c),
		validateCmd(c),
		serveCmd(c),
		versionCmd(),
	)

	return cmd
}

func (c *cli) load(cmd *cobra.Command) error {
	var opts []config.Option
	if c.configFile != "" {
		opts = append(opts, config.WithFile(c.configFile))
	}

	overrides := make(map[string]any)
	if len(c.routes) > 0 {
		overrides["routes_files"] = c.routes
	}
	if cmd.Flags().Changed("log-level") {
		overrides["log.level"] = c.logLevel
	}
	if c.strict {
		overrides["strict"] = true
	}
	opts = append(opts, config.WithOverrides(overrides))

	settings, err := config.Load(cmd.Context(), opts...)
	if err != nil {
		return err
	}
	logger, err := settings.NewLogger(c.errOut, logging.WithServiceName(serviceName), logging.WithServiceVersion(version))
	if err != nil {
		return err
	}

	c.settings = settings
	c.logger = logger

	return nil
}

// loadRouter builds the router from the configured route documents.
func (c *cli) loadRouter(ctx context.Context, opts ...router.Option) (*router.Router, error) {
	if len(c.settings.RoutesFiles) == 0 {
		return nil, errNoRouteFiles
	}
	if c.settings.Strict {
		opts = append(opts, router.WithStrictGeneration())
	}

	return collector.LoadRouter(ctx,
		collector.WithFiles(c.settings.RoutesFiles...),
		collector.WithLogger(c.logger),
		collector.WithRouterOptions(opts...),
	)
}
