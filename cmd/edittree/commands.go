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

// Package main is the entry point of the edittree CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yorkie-team/edittree/internal/config"
	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/internal/metrics/prometheus"
)

const envPrefix = "EDITTREE"

// conf is the configuration of the running command, loaded before it runs.
var conf *config.Config

var rootCmd = &cobra.Command{
	Use:           "edittree [command]",
	Short:         "Position-addressed text buffers backed by a rank-augmented AVL tree",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		conf = loaded

		return logging.SetLogLevel(conf.Log.Level)
	},
}

// Run executes CLI.
func Run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	return 0
}

// loadConfig reads the config file, then applies the environment variables
// and the flags set on the command line, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	c := config.NewConfig()
	if path := v.GetString("config"); path != "" {
		loaded, err := config.NewConfigFromFile(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if v.IsSet("log-level") {
		c.Log.Level = v.GetString("log-level")
	}
	if v.IsSet("verify") {
		c.Runner.VerifyModel = v.GetBool("verify")
	}
	if v.IsSet("integrity") {
		c.Runner.CheckIntegrity = v.GetBool("integrity")
	}
	if v.IsSet("output") {
		c.Runner.Output = v.GetString("output")
	}
	if v.IsSet("ops") {
		c.Simulation.Operations = v.GetInt("ops")
	}
	if v.IsSet("seed") {
		c.Simulation.Seed = v.GetInt64("seed")
	}
	if v.IsSet("insert-ratio") {
		c.Simulation.InsertRatio = v.GetFloat64("insert-ratio")
	}
	if v.IsSet("alphabet") {
		c.Simulation.Alphabet = v.GetString("alphabet")
	}
	if v.IsSet("metrics-file") {
		c.Metrics.TextfilePath = v.GetString("metrics-file")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// writeMetrics writes the metrics to the configured textfile, if any.
func writeMetrics(metrics *prometheus.Metrics) error {
	if conf.Metrics.TextfilePath == "" {
		return nil
	}
	if err := metrics.WriteToTextfile(conf.Metrics.TextfilePath); err != nil {
		return err
	}

	logging.DefaultLogger().Infof("metrics written to %s", conf.Metrics.TextfilePath)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config path")
	rootCmd.PersistentFlags().StringP("log-level", "l", config.DefaultLogLevel,
		"Log level: debug, info, warn, error, panic, fatal")
}
