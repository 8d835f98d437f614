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

// Package workload generates random edit scripts.
package workload

import (
	"fmt"
	"math/rand"

	"github.com/yorkie-team/edittree/internal/script"
	"github.com/yorkie-team/edittree/internal/validation"
	"github.com/yorkie-team/edittree/pkg/errors"
)

// ErrInvalidConfig is returned when the workload configuration is invalid.
var ErrInvalidConfig = errors.InvalidArgument("invalid workload config")

// Config is the configuration of a workload.
type Config struct {
	Seed        int64   `yaml:"Seed"`
	Operations  int     `yaml:"Operations" validate:"gte=0"`
	InsertRatio float64 `yaml:"InsertRatio" validate:"gte=0,lte=1"`
	Alphabet    string  `yaml:"Alphabet" validate:"distinct_runes"`
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Generate returns the steps of a random workload. Every step is in range
// for the length the buffer has when the step runs, assuming the buffer
// starts empty: a delete drawn while the buffer is empty becomes an insert.
// The same configuration always yields the same steps.
func Generate(cfg Config) ([]script.Step, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(cfg.Seed))
	alphabet := []rune(cfg.Alphabet)

	steps := make([]script.Step, 0, cfg.Operations)
	size := 0
	for i := 0; i < cfg.Operations; i++ {
		if size == 0 || r.Float64() < cfg.InsertRatio {
			ch := string(alphabet[r.Intn(len(alphabet))])
			pos := r.Intn(size + 1)
			if pos == size {
				steps = append(steps, script.Step{Op: script.OpAppend, Char: ch})
			} else {
				steps = append(steps, script.Step{Op: script.OpInsert, Pos: pos, Char: ch})
			}
			size++
			continue
		}

		steps = append(steps, script.Step{Op: script.OpDelete, Pos: r.Intn(size)})
		size--
	}

	return steps, nil
}

// Script returns a named script holding the steps of a random workload.
func Script(name string, cfg Config) (*script.Script, error) {
	steps, err := Generate(cfg)
	if err != nil {
		return nil, err
	}

	return &script.Script{Name: name, Steps: steps}, nil
}
