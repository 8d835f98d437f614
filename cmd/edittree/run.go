/*
 * Copyright 2026 The Yorkie Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/edittree/internal/config"
	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/internal/metrics/prometheus"
	"github.com/yorkie-team/edittree/internal/script"
	"github.com/yorkie-team/edittree/pkg/buffer"
	"github.com/yorkie-team/edittree/pkg/edittree"
)

var showStructure bool

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [script.yaml]...",
		Short: "Run edit scripts and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := prometheus.NewMetrics()
			if err != nil {
				return err
			}

			opts := script.Options{
				VerifyModel:    conf.Runner.VerifyModel,
				CheckIntegrity: conf.Runner.CheckIntegrity,
			}

			var reports []*script.Report
			failed := 0
			for _, path := range args {
				report, structure, err := runScript(cmd, path, metrics, opts)
				if err != nil {
					logging.DefaultLogger().Errorf("%s: %v", path, err)
					failed++
					continue
				}
				reports = append(reports, report)

				if showStructure {
					printStructure(cmd.OutOrStdout(), report.Name, structure)
				}
			}

			if err := printReports(cmd.OutOrStdout(), conf.Runner.Output, reports); err != nil {
				return err
			}
			if err := writeMetrics(metrics); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d scripts failed", failed, len(args))
			}
			return nil
		},
	}
}

// runScript runs the script at path on a new buffer and returns the report
// and the final structure of the buffer.
func runScript(
	cmd *cobra.Command,
	path string,
	metrics *prometheus.Metrics,
	opts script.Options,
) (*script.Report, []edittree.NodeInfo, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New("run", logging.NewField("script", s.Name))
	buf := buffer.New(buffer.WithRecorder(metrics), buffer.WithLogger(logger))

	report, err := script.Run(logging.With(cmd.Context(), logger), buf, s, opts)
	if err != nil {
		return nil, nil, err
	}

	logger.Infof("passed %d steps in %s", report.Steps, report.Elapsed)
	return report, buf.DebugStructure(), nil
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	return tw
}

func printReports(w io.Writer, output string, reports []*script.Report) error {
	switch output {
	case "yaml":
		marshalled, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("marshal reports: %w", err)
		}
		fmt.Fprint(w, string(marshalled))
	case "json":
		marshalled, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal reports: %w", err)
		}
		fmt.Fprintln(w, string(marshalled))
	default:
		tw := newTableWriter()
		tw.AppendHeader(table.Row{"NAME", "STEPS", "LEN", "HEIGHT", "ROTATIONS", "ELAPSED"})
		for _, r := range reports {
			tw.AppendRow(table.Row{r.Name, r.Steps, r.Len, r.Height, r.Rotations, r.Elapsed})
		}
		fmt.Fprintf(w, "%s\n", tw.Render())
	}

	return nil
}

func printStructure(w io.Writer, name string, structure []edittree.NodeInfo) {
	tw := newTableWriter()
	tw.SetTitle(name)
	tw.AppendHeader(table.Row{"#", "ELEMENT", "RANK", "BALANCE"})
	for i, info := range structure {
		tw.AppendRow(table.Row{i, string(info.Element), info.Rank, info.Balance.String()})
	}
	fmt.Fprintf(w, "%s\n\n", tw.Render())
}

func init() {
	cmd := newRunCmd()
	cmd.Flags().Bool(
		"verify",
		config.DefaultVerifyModel,
		"Compare buffers with a reference sequence after every step",
	)
	cmd.Flags().Bool(
		"integrity",
		config.DefaultCheckIntegrity,
		"Verify tree invariants after every step",
	)
	cmd.Flags().BoolVar(&showStructure, "structure", false, "Print the final structure of every buffer")
	cmd.Flags().StringP("output", "o", config.DefaultOutput, "One of 'table', 'yaml' or 'json'")
	cmd.Flags().String("metrics-file", "", "Write metrics to this file in the textfile format")
	rootCmd.AddCommand(cmd)
}
