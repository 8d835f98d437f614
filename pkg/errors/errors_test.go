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

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode_String(t *testing.T) {
	tests := []struct {
		name string
		code StatusCode
		want string
	}{
		{"InvalidArgument", ErrCodeInvalidArgument, "invalid_argument"},
		{"NotFound", ErrCodeNotFound, "not_found"},
		{"FailedPrecondition", ErrCodeFailedPrecondition, "failed_precondition"},
		{"OutOfRange", ErrCodeOutOfRange, "out_of_range"},
		{"Internal", ErrCodeInternal, "internal"},
		{"Unknown", StatusCode(999), "code_999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.String())

			parsed, ok := ParseStatusCode(tt.want)
			if tt.code == StatusCode(999) {
				assert.False(t, ok)
				return
			}
			assert.True(t, ok)
			assert.Equal(t, tt.code, parsed)
		})
	}
}

func TestStatusCode_IsClientError(t *testing.T) {
	for _, code := range []StatusCode{
		ErrCodeInvalidArgument,
		ErrCodeNotFound,
		ErrCodeFailedPrecondition,
		ErrCodeOutOfRange,
	} {
		t.Run(fmt.Sprintf("ClientError_%s", code), func(t *testing.T) {
			assert.True(t, code.IsClientError())
			assert.False(t, code.IsInternalError())
		})
	}

	assert.False(t, ErrCodeInternal.IsClientError())
	assert.True(t, ErrCodeInternal.IsInternalError())
}

func TestStatusOf(t *testing.T) {
	t.Run("status error test", func(t *testing.T) {
		err := OutOfRange("position out of range")
		assert.Equal(t, "position out of range", err.Error())
		assert.Equal(t, ErrCodeOutOfRange, StatusOf(err))
	})

	t.Run("wrapped status error test", func(t *testing.T) {
		base := OutOfRange("position out of range")
		wrapped := fmt.Errorf("delete 7 of 3: %w", base)
		assert.Equal(t, ErrCodeOutOfRange, StatusOf(wrapped))
		assert.True(t, IsStatus(wrapped, ErrCodeOutOfRange))
		assert.True(t, errors.Is(wrapped, base))
	})

	t.Run("plain error test", func(t *testing.T) {
		assert.Equal(t, StatusCode(0), StatusOf(errors.New("plain")))
		assert.Equal(t, StatusCode(0), StatusOf(nil))
	})
}

func TestMetadata(t *testing.T) {
	t.Run("attach and merge test", func(t *testing.T) {
		err := FailedPrecond("text mismatch")
		err1 := WithMetadata(err, map[string]string{"step": "1", "op": "check"})
		err2 := WithMetadata(err1, map[string]string{"step": "2"})

		assert.Equal(t, map[string]string{"step": "2", "op": "check"}, Metadata(err2))
		assert.Equal(t, ErrCodeFailedPrecondition, StatusOf(err2))
		assert.Equal(t, "text mismatch", err2.Error())
	})

	t.Run("nil and empty test", func(t *testing.T) {
		assert.Nil(t, WithMetadata(nil, map[string]string{"a": "b"}))

		err := Internal("broken")
		assert.Equal(t, err, WithMetadata(err, nil))
		assert.Nil(t, Metadata(err))
	})

	t.Run("returned copy test", func(t *testing.T) {
		err := WithMetadata(Internal("broken"), map[string]string{"k": "v"})
		md := Metadata(err)
		md["k"] = "changed"
		assert.Equal(t, "v", Metadata(err)["k"])
	})

	t.Run("error info test", func(t *testing.T) {
		err := WithMetadata(fmt.Errorf("step: %w", OutOfRange("oob")), map[string]string{"step": "3"})
		info := ErrorInfoOf(err)
		assert.Equal(t, ErrCodeOutOfRange, info.Status)
		assert.Equal(t, "out_of_range", info.StatusString)
		assert.True(t, info.IsClient)
		assert.Equal(t, "3", info.Metadata["step"])

		assert.Equal(t, ErrorInfo{}, ErrorInfoOf(nil))
	})
}
