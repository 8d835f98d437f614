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
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/yorkie-team/edittree/internal/config"
	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/internal/metrics/prometheus"
	"github.com/yorkie-team/edittree/internal/script"
	"github.com/yorkie-team/edittree/internal/workload"
	"github.com/yorkie-team/edittree/pkg/buffer"
	"github.com/yorkie-team/edittree/pkg/edittree"
)

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Apply a random workload to a buffer and report its shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics, err := prometheus.NewMetrics()
			if err != nil {
				return err
			}

			cfg := conf.Simulation
			s, err := workload.Script(fmt.Sprintf("simulate-%d", cfg.Seed), cfg)
			if err != nil {
				return err
			}

			logger := logging.New("simulate", logging.NewField("seed", fmt.Sprint(cfg.Seed)))
			buf := buffer.New(buffer.WithRecorder(metrics), buffer.WithLogger(logger))
			logger.Infof("applying %s operations", humanize.Comma(int64(cfg.Operations)))

			report, err := script.Run(logging.With(cmd.Context(), logger), buf, s, script.Options{
				VerifyModel:    conf.Runner.VerifyModel,
				CheckIntegrity: conf.Runner.CheckIntegrity,
			})
			if err != nil {
				return err
			}

			printSimulation(cmd, cfg, report)
			return writeMetrics(metrics)
		},
	}
}

func printSimulation(cmd *cobra.Command, cfg workload.Config, report *script.Report) {
	throughput := "-"
	if seconds := report.Elapsed.Seconds(); seconds > 0 {
		throughput = humanize.SIWithDigits(float64(report.Steps)/seconds, 1, "ops/s")
	}

	tw := newTableWriter()
	tw.AppendRows([]table.Row{
		{"SEED", cfg.Seed},
		{"OPERATIONS", humanize.Comma(int64(report.Steps))},
		{"LEN", humanize.Comma(int64(report.Len))},
		{"HEIGHT", report.Height},
		{"HEIGHT BOUND", fmt.Sprintf("%.2f", edittree.HeightBound(report.Len))},
		{"ROTATIONS", humanize.Comma(int64(report.Rotations))},
		{"ELAPSED", report.Elapsed.Round(time.Microsecond)},
		{"THROUGHPUT", throughput},
	})
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", tw.Render())
}

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().Int("ops", config.DefaultSimulationOperations, "Number of operations")
	cmd.Flags().Int64("seed", config.DefaultSimulationSeed, "Seed of the random source")
	cmd.Flags().Float64(
		"insert-ratio",
		config.DefaultSimulationInsertRatio,
		"Probability of an operation being an insertion",
	)
	cmd.Flags().String("alphabet", config.DefaultSimulationAlphabet, "Characters to insert")
	cmd.Flags().String("metrics-file", "", "Write metrics to this file in the textfile format")
	rootCmd.AddCommand(cmd)
}
