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

package script_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorkie-team/edittree/internal/script"
	"github.com/yorkie-team/edittree/pkg/errors"
)

func TestParse(t *testing.T) {
	t.Run("valid script test", func(t *testing.T) {
		s, err := script.Parse([]byte(`
name: basic
steps:
  - {op: insert, pos: 0, char: a}
  - {op: delete, pos: 0, expect: a}
  - {op: check, len: 0}
`))
		require.NoError(t, err)
		assert.Equal(t, "basic", s.Name)
		assert.Len(t, s.Steps, 3)
		assert.Equal(t, script.OpInsert, s.Steps[0].Op)
		assert.Equal(t, 'a', s.Steps[0].Rune())
		assert.Equal(t, "insert(0, \"a\")", s.Steps[0].String())
		assert.Equal(t, "delete(0)", s.Steps[1].String())
		require.NotNil(t, s.Steps[2].Len)
		assert.Equal(t, 0, *s.Steps[2].Len)
	})

	t.Run("invalid script test", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			data string
		}{
			{"empty document", ``},
			{"missing name", "steps:\n  - {op: append, char: a}\n"},
			{"no steps", "name: x\nsteps: []\n"},
			{"unknown op", "name: x\nsteps:\n  - {op: erase, pos: 0}\n"},
			{"unknown field", "name: x\nsteps:\n  - {op: append, char: a, color: red}\n"},
			{"multi rune char", "name: x\nsteps:\n  - {op: append, char: ab}\n"},
			{"insert without char", "name: x\nsteps:\n  - {op: insert, pos: 0}\n"},
			{"unknown error name", "name: x\nsteps:\n  - {op: get, pos: 0, error: boom}\n"},
			{"append with error", "name: x\nsteps:\n  - {op: append, char: a, error: out_of_range}\n"},
			{"empty check", "name: x\nsteps:\n  - {op: check}\n"},
			{"delete with check fields", "name: x\nsteps:\n  - {op: delete, pos: 0, len: 1}\n"},
		} {
			t.Run(tc.name+" test", func(t *testing.T) {
				_, err := script.Parse([]byte(tc.data))
				assert.ErrorIs(t, err, script.ErrInvalidScript)
				assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))
			})
		}
	})

	t.Run("step metadata test", func(t *testing.T) {
		_, err := script.Parse([]byte("name: x\nsteps:\n  - {op: append, char: a}\n  - {op: check}\n"))
		assert.Equal(t, map[string]string{"step": "1", "op": "check"}, errors.Metadata(err))
	})
}

func TestLoad(t *testing.T) {
	t.Run("load test", func(t *testing.T) {
		s, err := script.Load(filepath.Join("testdata", "successor.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "successor", s.Name)
		assert.Len(t, s.Steps, 6)
	})

	t.Run("name defaults to path test", func(t *testing.T) {
		path := filepath.Join("testdata", "double.yaml")
		s, err := script.Load(path)
		require.NoError(t, err)
		assert.Equal(t, path, s.Name)
	})

	t.Run("not found test", func(t *testing.T) {
		_, err := script.Load(filepath.Join("testdata", "missing.yaml"))
		assert.ErrorIs(t, err, script.ErrScriptNotFound)
		assert.Equal(t, errors.ErrCodeNotFound, errors.StatusOf(err))
	})
}
