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
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"
)

// terminal returns w as a file when it is attached to a terminal.
func terminal(w io.Writer) (*os.File, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}

	return f, true
}

// bannerInfo is what the startup banner shows about a server.
type bannerInfo struct {
	Addr        string
	Routes      int
	Metrics     string // provider, empty when not served
	Tracing     string
	Compression bool
	Strict      bool
}

// printBanner writes the service name as ASCII art followed by the server
// settings. Styles are applied only with useColors.
func printBanner(w io.Writer, info bannerInfo, useColors bool) {
	style := func(color string) lipgloss.Style {
		if !useColors {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}

	var art strings.Builder
	gradient := []string{"12", "14", "10", "11"}
	for _, line := range figure.NewFigure(serviceName, "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !useColors {
			art.WriteString(line + "\n")
			continue
		}
		for i, ch := range line {
			art.WriteString(style(gradient[i%len(gradient)]).Render(string(ch)))
		}
		art.WriteString("\n")
	}

	label := lipgloss.NewStyle().Width(14).PaddingLeft(2)
	if useColors {
		label = label.Foreground(lipgloss.Color("240"))
	}
	row := func(name, value, color string) string {
		return label.Render(name+":") + "  " + style(color).Render(value) + "\n"
	}

	addr := info.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "0.0.0.0" + addr
	}
	metrics := "disabled"
	if info.Metrics != "" {
		metrics = fmt.Sprintf("http://%s%s [%s]", addr, metricsPath, info.Metrics)
	}
	enabled := map[bool]string{true: "enabled", false: "disabled"}

	var out strings.Builder
	out.WriteString(row("Version", version, "14"))
	out.WriteString(row("Address", "http://"+addr, "10"))
	out.WriteString(row("Routes", fmt.Sprint(info.Routes), "15"))
	out.WriteString(row("Strict URLs", enabled[info.Strict], "15"))
	out.WriteString(row("Compression", enabled[info.Compression], "15"))
	out.WriteString(row("Metrics", metrics, "13"))
	out.WriteString(row("Tracing", info.Tracing, "12"))

	if useColors {
		w = colorprofile.NewWriter(w, os.Environ())
	}
	fmt.Fprintf(w, "\n%s\n%s\n", art.String(), out.String())
}
