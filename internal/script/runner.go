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

package script

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/pkg/buffer"
	"github.com/yorkie-team/edittree/pkg/errors"
)

// ErrStepFailed is returned when a step does not produce the expected result.
var ErrStepFailed = errors.FailedPrecond("step failed")

// Options configures a run.
type Options struct {
	// VerifyModel compares the buffer with a plain slice after every step.
	VerifyModel bool

	// CheckIntegrity verifies the invariants of the tree after every step.
	CheckIntegrity bool
}

// Report summarizes a successful run.
type Report struct {
	Name      string        `json:"name" yaml:"name"`
	Steps     int           `json:"steps" yaml:"steps"`
	Text      string        `json:"text" yaml:"text"`
	Len       int           `json:"len" yaml:"len"`
	Height    int           `json:"height" yaml:"height"`
	Rotations int           `json:"rotations" yaml:"rotations"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// runner applies the steps of a script to a buffer.
type runner struct {
	buf    *buffer.Buffer
	opts   Options
	logger logging.Logger

	// model is the reference sequence the buffer must match.
	model []rune
}

// Run applies the steps of the given script to buf and checks every
// expectation. It stops at the first failing step.
func Run(ctx context.Context, buf *buffer.Buffer, s *Script, opts Options) (*Report, error) {
	r := &runner{
		buf:    buf,
		opts:   opts,
		logger: logging.From(ctx),
		model:  []rune(buf.String()),
	}

	start := time.Now()
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", s.Name, i, err)
		}

		if err := r.apply(step); err != nil {
			r.logger.Warnf("%s: step %d %s failed: %v", s.Name, i, step, err)
			return nil, errors.WithMetadata(
				fmt.Errorf("%s: step %d %s: %w", s.Name, i, step, err),
				map[string]string{"script": s.Name, "step": strconv.Itoa(i), "op": string(step.Op)},
			)
		}
		r.logger.Debugf("%s: step %d %s", s.Name, i, step)
	}

	stats := buf.Stats()
	return &Report{
		Name:      s.Name,
		Steps:     len(s.Steps),
		Text:      buf.String(),
		Len:       stats.Len,
		Height:    stats.Height,
		Rotations: buf.RotationCount(),
		Elapsed:   time.Since(start),
	}, nil
}

func (r *runner) apply(step Step) error {
	var err error
	switch step.Op {
	case OpInsert:
		err = r.insert(step)
	case OpAppend:
		r.buf.Append(step.Rune())
		r.model = append(r.model, step.Rune())
	case OpDelete:
		err = r.delete(step)
	case OpGet:
		err = r.get(step)
	case OpCheck:
		err = r.check(step)
	default:
		err = fmt.Errorf("unknown op %q: %w", step.Op, ErrInvalidScript)
	}
	if err != nil {
		return err
	}

	if r.opts.VerifyModel {
		if got := r.buf.String(); got != string(r.model) {
			return fmt.Errorf("%w: buffer diverged from model: %s", ErrStepFailed, Diff(string(r.model), got))
		}
	}
	if r.opts.CheckIntegrity {
		if err := r.buf.CheckIntegrity(); err != nil {
			return err
		}
	}

	return nil
}

func (r *runner) insert(step Step) error {
	err := r.buf.Insert(step.Pos, step.Rune())
	if failure := expectError(step, err); failure != nil {
		return failure
	}
	if err == nil {
		r.model = slices.Insert(r.model, step.Pos, step.Rune())
	}
	return nil
}

func (r *runner) delete(step Step) error {
	ch, err := r.buf.Delete(step.Pos)
	if failure := expectError(step, err); failure != nil {
		return failure
	}
	if err != nil {
		return nil
	}

	r.model = slices.Delete(r.model, step.Pos, step.Pos+1)
	return expectRune(step, ch)
}

func (r *runner) get(step Step) error {
	ch, err := r.buf.Get(step.Pos)
	if failure := expectError(step, err); failure != nil {
		return failure
	}
	if err != nil {
		return nil
	}

	return expectRune(step, ch)
}

func (r *runner) check(step Step) error {
	if step.Text != nil {
		if got := r.buf.String(); got != *step.Text {
			return fmt.Errorf("%w: text: %s", ErrStepFailed, Diff(*step.Text, got))
		}
	}
	if step.Len != nil {
		if got := r.buf.Len(); got != *step.Len {
			return fmt.Errorf("%w: len: want %d, got %d", ErrStepFailed, *step.Len, got)
		}
	}
	if step.Height != nil {
		if got := r.buf.Height(); got != *step.Height {
			return fmt.Errorf("%w: height: want %d, got %d", ErrStepFailed, *step.Height, got)
		}
	}
	if step.Rotations != nil {
		if got := r.buf.RotationCount(); got != *step.Rotations {
			return fmt.Errorf("%w: rotations: want %d, got %d", ErrStepFailed, *step.Rotations, got)
		}
	}
	if step.Structure != nil {
		if got := r.buf.ToTestString(); got != *step.Structure {
			return fmt.Errorf("%w: structure: want %s, got %s", ErrStepFailed, *step.Structure, got)
		}
	}
	return nil
}

// expectError checks err against the error named by the step.
func expectError(step Step, err error) error {
	if step.Error == "" {
		if err != nil {
			return fmt.Errorf("%w: unexpected error: %w", ErrStepFailed, err)
		}
		return nil
	}

	if err == nil {
		return fmt.Errorf("%w: want %s error, got none", ErrStepFailed, step.Error)
	}
	if got := errors.StatusOf(err).String(); got != step.Error {
		return fmt.Errorf("%w: want %s error, got %s: %w", ErrStepFailed, step.Error, got, err)
	}
	return nil
}

func expectRune(step Step, ch rune) error {
	if step.Expect != "" && string(ch) != step.Expect {
		return fmt.Errorf("%w: want %q, got %q", ErrStepFailed, step.Expect, string(ch))
	}
	return nil
}
