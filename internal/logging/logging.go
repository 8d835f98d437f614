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

// Package logging provides the loggers of edittree. Every logger writes
// human-readable lines to stderr and shares one adjustable level.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a wrapper of zap.Logger.
type Logger = *zap.SugaredLogger

// Field is a wrapper of zap.Field.
type Field = zap.Field

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	defaultOnce   sync.Once
	defaultLogger Logger
)

// SetLogLevel changes the level of every logger, including the ones already
// created. It accepts "debug", "info", "warn", "error", "dpanic", "panic" and
// "fatal" in either case.
func SetLogLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level: %s", name)
	}

	level.SetLevel(l)
	return nil
}

// Enabled returns true if the given level is enabled.
func Enabled(l zapcore.Level) bool {
	return level.Enabled(l)
}

// New creates a named logger carrying the given fields.
func New(name string, fields ...Field) Logger {
	return newCore().Named(name).With(fields...).Sugar()
}

// NewField creates a new field with the given key and value.
func NewField(key string, value string) Field {
	return zap.String(key, value)
}

// DefaultLogger returns the logger used when no other logger is at hand.
func DefaultLogger() Logger {
	defaultOnce.Do(func() {
		defaultLogger = New("edittree")
	})
	return defaultLogger
}

// newCore writes to stderr so that the output of commands on stdout stays
// machine-readable.
func newCore() *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	return zap.New(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}
