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
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/szeber/yapep-base-sub003/config/codec"
	"github.com/szeber/yapep-base-sub003/router/route"
)

const formatTable = "table"

func listCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the routes in registration order",
		Long: `List every route with its methods, controller action and paths.

Formats:
  table    a bordered table, one row per path (default)
  json     the route table as JSON
  yaml     the route table as YAML
  toml     the route table as TOML
  msgpack  the route table as MessagePack`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := c.loadRouter(cmd.Context())
			if err != nil {
				return err
			}
			infos := r.Routes()

			if format == formatTable {
				return writeTable(c, infos)
			}
			enc, err := codec.GetEncoder(codec.Type(format))
			if err != nil {
				return fmt.Errorf("output format %q: %w", format, err)
			}
			data, err := enc.Encode(map[string]any{"routes": routeViews(infos)})
			if err != nil {
				return err
			}
			if codec.Type(format) != codec.TypeMsgPack {
				data = append(data, '\n')
			}
			_, err = c.out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatTable, "output format: table, json, yaml, toml or msgpack")

	return cmd
}

// methodStyles colors the methods column on terminals.
var methodStyles = map[string]lipgloss.Style{
	"GET":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	"POST":   lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	"PUT":    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	"DELETE": lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	"PATCH":  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	"HEAD":   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
}

// writeTable renders one row per path; continuation rows leave the route
// columns empty. On a terminal the table is colored and narrowed to the
// terminal width when it would not fit.
func writeTable(c *cli, infos []route.Info) error {
	file, useColors := terminal(c.out)

	var rows [][]string
	widths := []int{len("NAME"), len("METHODS"), len("ACTION"), len("PATH")}
	for _, info := range infos {
		methods := "*"
		if len(info.Methods) > 0 {
			methods = strings.Join(info.Methods, ",")
		}
		action := info.Controller + "#" + info.Action
		for i, p := range info.Paths {
			row := []string{info.Name, methods, action, p.Pattern}
			if i > 0 {
				row = []string{"", "", "", p.Pattern}
			}
			for col, cell := range row {
				widths[col] = max(widths[col], len(cell))
			}
			if useColors && row[1] != "" {
				row[1] = colorMethods(info.Methods, methods)
			}
			rows = append(rows, row)
		}
	}

	border := lipgloss.NewStyle()
	if useColors {
		border = border.Foreground(lipgloss.Color("240"))
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow && useColors {
				style = style.Bold(true).Foreground(lipgloss.Color("230"))
			}
			return style
		}).
		Headers("NAME", "METHODS", "ACTION", "PATH").
		Rows(rows...)

	// Borders, separators and one cell of padding either side.
	natural := 2 + (len(widths) - 1) + 2*len(widths)
	for _, w := range widths {
		natural += w
	}
	if useColors {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 && width < natural {
			t = t.Width(width)
		}
	}

	var out io.Writer = c.out
	if useColors {
		out = colorprofile.NewWriter(c.out, os.Environ())
	}
	_, err := fmt.Fprintln(out, t.Render())

	return err
}

func colorMethods(methods []string, fallback string) string {
	if len(methods) == 0 {
		return fallback
	}
	colored := make([]string, 0, len(methods))
	for _, m := range methods {
		if style, ok := methodStyles[m]; ok {
			m = style.Render(m)
		}
		colored = append(colored, m)
	}

	return strings.Join(colored, ",")
}

// routeViews flattens infos into plain maps every codec can encode.
func routeViews(infos []route.Info) []map[string]any {
	views := make([]map[string]any, 0, len(infos))
	for _, info := range infos {
		paths := make([]map[string]any, 0, len(info.Paths))
		for _, p := range info.Paths {
			params := make(map[string]any, len(p.Params))
			for name, kind := range p.Params {
				params[name] = kind
			}
			paths = append(paths, map[string]any{
				"pattern": p.Pattern,
				"regexp":  p.Regexp,
				"params":  params,
			})
		}
		methods := append([]string{}, info.Methods...)
		views = append(views, map[string]any{
			"name":       info.Name,
			"controller": info.Controller,
			"action":     info.Action,
			"methods":    methods,
			"paths":      paths,
		})
	}

	return views
}

func matchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "match METHOD PATH",
		Short: "Resolve a request to its controller action",
		Example: `  yapep-routes match GET /bar/num/7 -r routes.yaml
  Bar#index route=bar
    id=7`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := c.loadRouter(cmd.Context())
			if err != nil {
				return err
			}
			ca, err := r.ControllerActionByMethodAndPath(strings.ToUpper(args[0]), args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(c.out, "%s route=%s\n", ca, ca.Route)
			names := make([]string, 0, len(ca.Params))
			for name := range ca.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(c.out, "  %s=%s\n", name, ca.Params[name])
			}
			return nil
		},
	}
}

func urlCmd(c *cli) *cobra.Command {
	var controller, action string

	cmd := &cobra.Command{
		Use:   "url [NAME] [KEY=VALUE...]",
		Short: "Generate a path from a route name or a controller action",
		Example: `  yapep-routes url bar id=7 -r routes.yaml
  yapep-routes url --controller Bar --action index id=7 -r routes.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			byAction := controller != "" || action != ""
			if !byAction && len(args) == 0 {
				return fmt.Errorf("url needs a route name or --controller and --action")
			}

			pairs := args
			if !byAction {
				pairs = args[1:]
			}
			params, err := parsePairs(pairs)
			if err != nil {
				return err
			}

			r, err := c.loadRouter(cmd.Context())
			if err != nil {
				return err
			}

			var path string
			if byAction {
				path, err = r.PathByControllerAndAction(controller, action, params)
			} else {
				path, err = r.PathByName(args[0], params)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(c.out, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&controller, "controller", "", "controller of the route")
	cmd.Flags().StringVar(&action, "action", "", "action of the route")
	cmd.MarkFlagsRequiredTogether("controller", "action")

	return cmd
}

func parsePairs(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q: want KEY=VALUE", arg)
		}
		params[name] = value
	}

	return params, nil
}
