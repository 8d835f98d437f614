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

package logging_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/pkg/errors"
)

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() {
		assert.NoError(t, logging.SetLogLevel("info"))
	})

	t.Run("valid level test", func(t *testing.T) {
		assert.NoError(t, logging.SetLogLevel("DEBUG"))
		assert.True(t, logging.Enabled(zapcore.DebugLevel))

		assert.NoError(t, logging.SetLogLevel("warn"))
		assert.False(t, logging.Enabled(zapcore.InfoLevel))
		assert.True(t, logging.Enabled(zapcore.ErrorLevel))
	})

	t.Run("invalid level test", func(t *testing.T) {
		assert.Error(t, logging.SetLogLevel("verbose"))
	})
}

func TestContext(t *testing.T) {
	t.Run("default logger test", func(t *testing.T) {
		assert.Equal(t, logging.DefaultLogger(), logging.From(context.Background()))
	})

	t.Run("stored logger test", func(t *testing.T) {
		logger := logging.New("test", logging.NewField("buffer", "b1"))
		ctx := logging.With(context.Background(), logger)
		assert.Equal(t, logger, logging.From(ctx))
	})
}

func TestLevelOf(t *testing.T) {
	wrapped := fmt.Errorf("insert at 9, size 3: %w", errors.OutOfRange("position out of range"))

	assert.Equal(t, zapcore.DebugLevel, logging.LevelOf(nil))
	assert.Equal(t, zapcore.DebugLevel, logging.LevelOf(context.Canceled))
	assert.Equal(t, zapcore.InfoLevel, logging.LevelOf(wrapped))
	assert.Equal(t, zapcore.InfoLevel, logging.LevelOf(errors.InvalidArgument("bad")))
	assert.Equal(t, zapcore.WarnLevel, logging.LevelOf(errors.FailedPrecond("mismatch")))
	assert.Equal(t, zapcore.ErrorLevel, logging.LevelOf(errors.Internal("broken")))
}

func TestLogOperation(t *testing.T) {
	newObserved := func() (logging.Logger, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		return zap.New(core).Sugar(), logs
	}

	t.Run("status and metadata fields test", func(t *testing.T) {
		logger, logs := newObserved()
		err := errors.WithMetadata(
			fmt.Errorf("delete at 9, size 3: %w", errors.OutOfRange("position out of range")),
			map[string]string{"script": "bounds", "step": "2"},
		)
		logging.LogOperation(logger, "delete", 9, time.Millisecond, err)

		entries := logs.AllUntimed()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Contains(t, entries[0].Message, "OP : delete 9")

		fields := entries[0].ContextMap()
		assert.Equal(t, "out_of_range", fields["status"])
		assert.Equal(t, "bounds", fields["script"])
		assert.Equal(t, "2", fields["step"])
	})

	t.Run("internal error test", func(t *testing.T) {
		logger, logs := newObserved()
		logging.LogOperation(logger, "insert", 0, time.Millisecond, errors.Internal("broken"))

		entries := logs.AllUntimed()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
		assert.Equal(t, "internal", entries[0].ContextMap()["status"])
	})

	t.Run("no fields without status test", func(t *testing.T) {
		logger, logs := newObserved()
		logging.LogOperation(logger, "get", 1, time.Millisecond, nil)
		logging.LogOperation(logger, "get", 1, time.Millisecond, context.Canceled)

		entries := logs.AllUntimed()
		require.Len(t, entries, 2)
		for _, entry := range entries {
			assert.Equal(t, zapcore.DebugLevel, entry.Level)
			assert.Empty(t, entry.Context)
		}
	})
}
