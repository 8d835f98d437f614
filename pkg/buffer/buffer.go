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

// Package buffer provides Buffer, a text buffer backed by an edit tree that
// is safe for concurrent use and reports its activity to a Recorder.
package buffer

import (
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/yorkie-team/edittree/internal/logging"
	"github.com/yorkie-team/edittree/pkg/edittree"
	"github.com/yorkie-team/edittree/pkg/errors"
)

// Operation names reported to the Recorder.
const (
	OpInsert = "insert"
	OpAppend = "append"
	OpDelete = "delete"
	OpGet    = "get"
)

// resultOK is the result label of a successful operation.
const resultOK = "ok"

// Recorder receives the activity of buffers.
type Recorder interface {
	ObserveOperation(op, result string, elapsed time.Duration)
	AddRotations(count int)
	SetBufferStats(bufferID string, size, height int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, time.Duration) {}
func (nopRecorder) AddRotations(int)                               {}
func (nopRecorder) SetBufferStats(string, int, int)                {}

// Option configures a Buffer.
type Option func(*Buffer)

// WithRecorder sets the recorder of the buffer.
func WithRecorder(recorder Recorder) Option {
	return func(b *Buffer) {
		b.recorder = recorder
	}
}

// WithLogger sets the logger of the buffer.
func WithLogger(logger logging.Logger) Option {
	return func(b *Buffer) {
		b.logger = logger
	}
}

// WithText initializes the buffer with the given text.
func WithText(text string) Option {
	return func(b *Buffer) {
		for _, ch := range text {
			b.tree.Append(ch)
		}
	}
}

// Buffer is a text buffer addressed by position.
type Buffer struct {
	id       string
	mu       sync.RWMutex
	tree     *edittree.Tree
	recorder Recorder
	logger   logging.Logger

	// reported is the rotation tally last handed to the recorder.
	reported int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:       xid.New().String(),
		tree:     edittree.NewTree(),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.New("buffer", logging.NewField("buffer", b.id))
	}

	b.reported = b.tree.Stats().Rotations
	b.report()
	return b
}

// ID returns the ID of the buffer.
func (b *Buffer) ID() string {
	return b.id
}

// Insert inserts the given character so that it ends up at pos.
func (b *Buffer) Insert(pos int, ch rune) error {
	start := time.Now()

	b.mu.Lock()
	err := b.tree.Insert(pos, ch)
	b.report()
	b.mu.Unlock()

	b.observe(OpInsert, pos, start, err)
	return err
}

// Append inserts the given character at the end of the buffer.
func (b *Buffer) Append(ch rune) {
	start := time.Now()

	b.mu.Lock()
	pos := b.tree.Len()
	b.tree.Append(ch)
	b.report()
	b.mu.Unlock()

	b.observe(OpAppend, pos, start, nil)
}

// Delete removes the character at pos and returns it.
func (b *Buffer) Delete(pos int) (rune, error) {
	start := time.Now()

	b.mu.Lock()
	ch, err := b.tree.Delete(pos)
	b.report()
	b.mu.Unlock()

	b.observe(OpDelete, pos, start, err)
	return ch, err
}

// Get returns the character at pos.
func (b *Buffer) Get(pos int) (rune, error) {
	start := time.Now()

	b.mu.RLock()
	ch, err := b.tree.Get(pos)
	b.mu.RUnlock()

	b.observe(OpGet, pos, start, err)
	return ch, err
}

// Len returns the number of characters in the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Len()
}

// Height returns the height of the tree backing the buffer.
func (b *Buffer) Height() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Height()
}

// RotationCount returns the number of rotations performed by the nodes of
// the backing tree, including the removed ones.
func (b *Buffer) RotationCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.RotationCount()
}

// Stats returns the size, height and rotation tally of the buffer.
func (b *Buffer) Stats() edittree.Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Stats()
}

// String returns the text of the buffer.
func (b *Buffer) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.String()
}

// DebugStructure returns the pre-order dump of the backing tree.
func (b *Buffer) DebugStructure() []edittree.NodeInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.DebugStructure()
}

// ToTestString returns the compact pre-order dump of the backing tree.
func (b *Buffer) ToTestString() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.ToTestString()
}

// CheckIntegrity verifies the invariants of the backing tree.
func (b *Buffer) CheckIntegrity() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.CheckIntegrity()
}

// Snapshot returns a deep copy of the backing tree. The copy shares no nodes
// with the buffer and starts with no rotation history.
func (b *Buffer) Snapshot() *edittree.Tree {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tree.Copy()
}

// report hands the new rotations and the stats of the tree to the recorder.
// It must be called while holding the write lock.
func (b *Buffer) report() {
	stats := b.tree.Stats()
	if delta := stats.Rotations - b.reported; delta > 0 {
		b.recorder.AddRotations(delta)
	}
	b.reported = stats.Rotations
	b.recorder.SetBufferStats(b.id, stats.Len, stats.Height)
}

func (b *Buffer) observe(op string, pos int, start time.Time, err error) {
	elapsed := time.Since(start)
	b.recorder.ObserveOperation(op, ResultOf(err), elapsed)
	logging.LogOperation(b.logger, op, pos, elapsed, err)
}

// ResultOf returns the result label of an operation that ended with err.
func ResultOf(err error) string {
	if err == nil {
		return resultOK
	}
	if code := errors.StatusOf(err); code != 0 {
		return code.String()
	}
	return "unknown"
}
