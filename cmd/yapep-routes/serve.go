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
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/szeber/yapep-base-sub003/dispatch"
	"github.com/szeber/yapep-base-sub003/metrics"
	"github.com/szeber/yapep-base-sub003/middleware"
	"github.com/szeber/yapep-base-sub003/middleware/accesslog"
	"github.com/szeber/yapep-base-sub003/middleware/compression"
	"github.com/szeber/yapep-base-sub003/middleware/recovery"
	"github.com/szeber/yapep-base-sub003/middleware/requestid"
	"github.com/szeber/yapep-base-sub003/router"
	"github.com/szeber/yapep-base-sub003/tracing"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
)

func serveCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route table over HTTP",
		Long: `Serve the route table with an echo action behind every route.

Each matched request answers with the controller action it resolved to,
as JSON. Unmatched requests answer 404 in the configured error format.
Prometheus metrics are served on /metrics when the prometheus provider is
selected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.settings.ListenAddr = addr
			}
			return c.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides listen_addr")
	cmd.Flags().BoolVar(&c.noBanner, "no-banner", false, "do not print the startup banner on a terminal")

	return cmd
}

func (c *cli) serve(ctx context.Context) error {
	srv, cleanup, err := c.newServer(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	if _, ok := terminal(c.errOut); ok && !c.noBanner {
		banner := c.banner
		banner.Addr = ln.Addr().String()
		printBanner(c.errOut, banner, true)
	}
	c.logger.Info("server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	c.logger.Info("server shutting down")

	return srv.Shutdown(shutdownCtx)
}

// newServer wires the route table, observability and middleware into an
// unstarted server. cleanup flushes the exporters.
func (c *cli) newServer(ctx context.Context) (*http.Server, func(), error) {
	r, err := c.loadRouter(ctx)
	if err != nil {
		return nil, nil, err
	}
	formatter, err := c.settings.ErrorFormatter()
	if err != nil {
		return nil, nil, err
	}
	recorder, err := c.settings.NewRecorder(c.logger, c.errOut, metrics.WithServiceName(serviceName), metrics.WithServiceVersion(version))
	if err != nil {
		return nil, nil, err
	}
	tracer, err := c.settings.NewTracer(c.logger, c.errOut, tracing.WithServiceName(serviceName), tracing.WithServiceVersion(version))
	if err != nil {
		_ = recorder.Shutdown(ctx)
		return nil, nil, err
	}
	cleanup := func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(flushCtx); err != nil {
			c.logger.LogError(err, "tracer shutdown failed")
		}
		if err := recorder.Shutdown(flushCtx); err != nil {
			c.logger.LogError(err, "metrics shutdown failed")
		}
	}

	controllers := echoControllers(r)
	handler, err := dispatch.New(r, controllers,
		dispatch.WithFormatter(formatter),
		dispatch.WithLogger(c.logger),
		dispatch.WithMetrics(recorder),
		dispatch.WithTracer(tracer),
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	mux := http.NewServeMux()
	if recorder.Provider() == metrics.PrometheusProvider {
		mux.Handle(metricsPath, recorder.Handler())
	}
	mux.Handle("/", handler)

	var compress middleware.Middleware
	if c.settings.Compression.Enabled {
		compress = compression.New(
			compression.WithMinSize(c.settings.Compression.MinSize),
			compression.WithExcludePaths(metricsPath),
			compression.WithLogger(c.logger),
		)
	}

	c.banner = bannerInfo{
		Addr:        c.settings.ListenAddr,
		Routes:      r.Len(),
		Tracing:     string(tracer.Provider()),
		Compression: c.settings.Compression.Enabled,
		Strict:      r.Strict(),
	}
	if recorder.Provider() == metrics.PrometheusProvider {
		c.banner.Metrics = string(recorder.Provider())
	}

	srv := &http.Server{
		Addr: c.settings.ListenAddr,
		Handler: middleware.Chain(mux,
			requestid.New(),
			accesslog.New(accesslog.WithLogger(c.logger), accesslog.WithExcludePaths(metricsPath)),
			recovery.New(recovery.WithLogger(c.logger), recovery.WithFormatter(formatter)),
			compress,
		),
		ReadHeaderTimeout: c.settings.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	return srv, cleanup, nil
}

// echoControllers registers an action for every controller action of r
// that answers with the resolved lookup.
func echoControllers(r *router.Router) *dispatch.Controllers {
	controllers := dispatch.NewControllers()
	for _, info := range r.Routes() {
		// Duplicate controller actions share one registration.
		_ = controllers.Register(info.Controller, info.Action, echo)
	}

	return controllers
}

func echo(w http.ResponseWriter, r *http.Request, ca router.ControllerAction) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	err := json.NewEncoder(w).Encode(map[string]any{
		"controller": ca.Controller,
		"action":     ca.Action,
		"route":      ca.Route,
		"params":     ca.Params,
		"request_id": requestid.Get(r.Context()),
	})
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	return nil
}
