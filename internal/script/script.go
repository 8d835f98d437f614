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

// Package script provides edit scripts, YAML documents listing operations to
// apply to a buffer together with the results they are expected to produce.
package script

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/yorkie-team/edittree/internal/validation"
	"github.com/yorkie-team/edittree/pkg/errors"
)

// Op is the kind of a step.
type Op string

// The kinds of steps.
const (
	OpInsert Op = "insert"
	OpAppend Op = "append"
	OpDelete Op = "delete"
	OpGet    Op = "get"
	OpCheck  Op = "check"
)

var (
	// ErrInvalidScript is returned when a script cannot be parsed or does not
	// pass validation.
	ErrInvalidScript = errors.InvalidArgument("invalid script")

	// ErrScriptNotFound is returned when a script file does not exist.
	ErrScriptNotFound = errors.NotFound("script not found")
)

// Step is a single operation of a script.
type Step struct {
	Op   Op     `yaml:"op" json:"op" validate:"required,oneof=insert append delete get check"`
	Pos  int    `yaml:"pos,omitempty" json:"pos,omitempty"`
	Char string `yaml:"char,omitempty" json:"char,omitempty" validate:"omitempty,single_rune"`

	// Expect is the character a delete or a get must return.
	Expect string `yaml:"expect,omitempty" json:"expect,omitempty" validate:"omitempty,single_rune"`

	// Error is the name of the status the step must fail with.
	Error string `yaml:"error,omitempty" json:"error,omitempty" validate:"omitempty,status_name"`

	// The assertions of a check step. Omitted ones are not checked.
	Text      *string `yaml:"text,omitempty" json:"text,omitempty"`
	Len       *int    `yaml:"len,omitempty" json:"len,omitempty"`
	Height    *int    `yaml:"height,omitempty" json:"height,omitempty"`
	Rotations *int    `yaml:"rotations,omitempty" json:"rotations,omitempty"`
	Structure *string `yaml:"structure,omitempty" json:"structure,omitempty"`
}

// Rune returns the character of an insert or an append.
func (s Step) Rune() rune {
	return []rune(s.Char)[0]
}

// String returns a short description of the step.
func (s Step) String() string {
	switch s.Op {
	case OpInsert:
		return fmt.Sprintf("insert(%d, %q)", s.Pos, s.Char)
	case OpAppend:
		return fmt.Sprintf("append(%q)", s.Char)
	case OpDelete, OpGet:
		return fmt.Sprintf("%s(%d)", s.Op, s.Pos)
	default:
		return string(s.Op)
	}
}

func (s Step) hasAssertion() bool {
	return s.Text != nil || s.Len != nil || s.Height != nil ||
		s.Rotations != nil || s.Structure != nil
}

// validate checks the constraints that depend on the kind of the step.
func (s Step) validate() error {
	switch s.Op {
	case OpInsert, OpAppend:
		if s.Char == "" {
			return fmt.Errorf("%s requires char", s.Op)
		}
		if s.Expect != "" {
			return fmt.Errorf("%s does not return a character", s.Op)
		}
	case OpDelete, OpGet:
		if s.Char != "" {
			return fmt.Errorf("%s does not take char", s.Op)
		}
		if s.Expect != "" && s.Error != "" {
			return fmt.Errorf("%s cannot both expect a character and an error", s.Op)
		}
	case OpCheck:
		if !s.hasAssertion() {
			return goerrors.New("check requires at least one of text, len, height, rotations, structure")
		}
	}

	if s.Op == OpAppend || s.Op == OpCheck {
		if s.Error != "" {
			return fmt.Errorf("%s cannot fail", s.Op)
		}
	}
	if s.Op != OpCheck && s.hasAssertion() {
		return fmt.Errorf("%s does not take check fields", s.Op)
	}

	return nil
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name" json:"name" validate:"required"`
	Steps []Step `yaml:"steps" json:"steps" validate:"required,min=1,dive"`
}

// Validate validates the script.
func (s *Script) Validate() error {
	if err := validation.ValidateStruct(s); err != nil {
		return fmt.Errorf("%s: %w: %w", s.Name, ErrInvalidScript, err)
	}

	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return errors.WithMetadata(
				fmt.Errorf("%s: step %d: %w: %w", s.Name, i, ErrInvalidScript, err),
				map[string]string{"step": strconv.Itoa(i), "op": string(step.Op)},
			)
		}
	}

	return nil
}

// Parse parses and validates a script from YAML. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	s, err := decode(data)
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func decode(data []byte) (*Script, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	s := &Script{}
	if err := decoder.Decode(s); err != nil {
		if goerrors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document: %w", ErrInvalidScript)
		}
		return nil, fmt.Errorf("parse script: %w: %w", ErrInvalidScript, err)
	}

	return s, nil
}

// Load reads and parses the script at the given path. A script without a
// name is named after its path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if goerrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrScriptNotFound)
		}
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}

	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}
