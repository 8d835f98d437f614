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

package logging

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap/zapcore"

	pkgerrors "github.com/yorkie-team/edittree/pkg/errors"
)

// LevelOf returns the level an operation outcome is logged at.
func LevelOf(err error) zapcore.Level {
	if err == nil || errors.Is(err, context.Canceled) {
		return zapcore.DebugLevel
	}

	switch pkgerrors.StatusOf(err) {
	case pkgerrors.ErrCodeOutOfRange, pkgerrors.ErrCodeInvalidArgument, pkgerrors.ErrCodeNotFound:
		// Caller mistakes are expected, e.g. scripts probing the bounds.
		return zapcore.InfoLevel
	case pkgerrors.ErrCodeFailedPrecondition:
		return zapcore.WarnLevel
	case pkgerrors.ErrCodeInternal:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LogOperation logs the outcome of an operation on a buffer. A failure is
// logged with its status and metadata as fields.
func LogOperation(logger Logger, op string, pos int, duration time.Duration, err error) {
	if err == nil {
		logger.Debugf("OP : %s %d %s", op, pos, duration)
		return
	}

	logger = logger.With(errorFields(err)...)
	switch LevelOf(err) {
	case zapcore.DebugLevel:
		logger.Debugf("OP : %s %d %s => %q", op, pos, duration, err)
	case zapcore.InfoLevel:
		logger.Infof("OP : %s %d %s => %q", op, pos, duration, err)
	case zapcore.WarnLevel:
		logger.Warnf("OP : %s %d %s => %q", op, pos, duration, err)
	default:
		logger.Errorf("OP : %s %d %s => %q", op, pos, duration, err)
	}
}

// errorFields returns the status and the metadata of err as key-value pairs,
// with metadata keys in sorted order.
func errorFields(err error) []interface{} {
	info := pkgerrors.ErrorInfoOf(err)
	if info.Status == 0 {
		return nil
	}

	fields := []interface{}{"status", info.StatusString}
	keys := make([]string, 0, len(info.Metadata))
	for key := range info.Metadata {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		fields = append(fields, key, info.Metadata[key])
	}
	return fields
}
