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

package prometheus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("operation counters test", func(t *testing.T) {
		m, err := NewMetrics()
		require.NoError(t, err)

		m.ObserveOperation("insert", "ok", time.Microsecond)
		m.ObserveOperation("insert", "ok", time.Microsecond)
		m.ObserveOperation("insert", "out_of_range", time.Microsecond)

		assert.Equal(t, 2.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("insert", "ok")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("insert", "out_of_range")))
		assert.Equal(t, 1, testutil.CollectAndCount(m.operationSeconds))
	})

	t.Run("rotations and buffer stats test", func(t *testing.T) {
		m, err := NewMetrics()
		require.NoError(t, err)

		m.AddRotations(3)
		m.AddRotations(0)
		m.AddRotations(-1)
		assert.Equal(t, 3.0, testutil.ToFloat64(m.rotationsTotal))

		m.SetBufferStats("b1", 7, 3)
		assert.Equal(t, 7.0, testutil.ToFloat64(m.bufferSize.WithLabelValues("b1")))
		assert.Equal(t, 3.0, testutil.ToFloat64(m.bufferHeight.WithLabelValues("b1")))
	})

	t.Run("write to textfile test", func(t *testing.T) {
		m, err := NewMetrics()
		require.NoError(t, err)
		m.AddRotations(2)

		path := filepath.Join(t.TempDir(), "edittree.prom")
		require.NoError(t, m.WriteToTextfile(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "edittree_tree_rotations_total 2")
		assert.Contains(t, string(data), "edittree_version")
	})
}
