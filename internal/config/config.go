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

// Package config provides the configuration of the edittree command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/edittree/internal/validation"
	"github.com/yorkie-team/edittree/internal/workload"
	"github.com/yorkie-team/edittree/pkg/errors"
)

// Below are the values of the default values of edittree config.
const (
	DefaultLogLevel = "info"

	DefaultVerifyModel    = true
	DefaultCheckIntegrity = true
	DefaultOutput         = "table"

	DefaultSimulationSeed        = 1
	DefaultSimulationOperations  = 10000
	DefaultSimulationInsertRatio = 0.6
	DefaultSimulationAlphabet    = "abcdefghijklmnopqrstuvwxyz"

	DefaultMetricsTextfilePath = ""
)

// ErrInvalidConfig is returned when the configuration does not pass
// validation.
var ErrInvalidConfig = errors.InvalidArgument("invalid config")

// Log is the configuration of logging.
type Log struct {
	// Level is the minimum level of the logs to print.
	Level string `yaml:"Level" validate:"oneof=debug info warn error panic fatal"`
}

// Runner is the configuration of the script runner.
type Runner struct {
	// VerifyModel compares buffers with a reference sequence after every step.
	VerifyModel bool `yaml:"VerifyModel"`

	// CheckIntegrity verifies tree invariants after every step.
	CheckIntegrity bool `yaml:"CheckIntegrity"`

	// Output is the format of run reports.
	Output string `yaml:"Output" validate:"oneof=table yaml json"`
}

// Metrics is the configuration of metrics export.
type Metrics struct {
	// TextfilePath is where metrics are written after a command. Metrics are
	// not written when it is empty.
	TextfilePath string `yaml:"TextfilePath"`
}

// Config is the configuration of the edittree command.
type Config struct {
	Log        Log             `yaml:"Log"`
	Runner     Runner          `yaml:"Runner"`
	Simulation workload.Config `yaml:"Simulation"`
	Metrics    Metrics         `yaml:"Metrics"`
}

// NewConfig returns a Config struct that contains reasonable defaults
// for most of the configurations.
func NewConfig() *Config {
	return &Config{
		Log: Log{
			Level: DefaultLogLevel,
		},
		Runner: Runner{
			VerifyModel:    DefaultVerifyModel,
			CheckIntegrity: DefaultCheckIntegrity,
			Output:         DefaultOutput,
		},
		Simulation: workload.Config{
			Seed:        DefaultSimulationSeed,
			Operations:  DefaultSimulationOperations,
			InsertRatio: DefaultSimulationInsertRatio,
			Alphabet:    DefaultSimulationAlphabet,
		},
		Metrics: Metrics{
			TextfilePath: DefaultMetricsTextfilePath,
		},
	}
}

// NewConfigFromFile returns a Config struct for the given conf file. Fields
// omitted from the file keep their default values.
func NewConfigFromFile(path string) (*Config, error) {
	conf := NewConfig()
	bytes, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err = yaml.Unmarshal(bytes, conf); err != nil {
		return nil, fmt.Errorf("unmarshal config file: %w: %w", ErrInvalidConfig, err)
	}

	conf.ensureDefaultValue()
	return conf, nil
}

// Validate returns an error if the provided Config is invalidated.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// ensureDefaultValue sets the value of the option to which the default value
// should be applied when the user does not input it.
func (c *Config) ensureDefaultValue() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Runner.Output == "" {
		c.Runner.Output = DefaultOutput
	}
	if c.Simulation.Alphabet == "" {
		c.Simulation.Alphabet = DefaultSimulationAlphabet
	}
}
