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

// Package errors provides errors carrying a status code so that callers of
// the edit tree, the buffer and the script runner can tell caller mistakes
// apart from broken internal state.
package errors

import "fmt"

// StatusCode represents the error codes used throughout edittree. The values
// follow the gRPC code numbering.
type StatusCode int

const (
	// ErrCodeInvalidArgument indicates that the caller specified an invalid
	// argument, such as a malformed script or configuration.
	ErrCodeInvalidArgument StatusCode = 3

	// ErrCodeNotFound indicates that a requested entity, such as a script
	// file, was not found.
	ErrCodeNotFound StatusCode = 5

	// ErrCodeFailedPrecondition indicates that the operation was rejected
	// because the system is not in the expected state. Script expectations
	// that do not hold are reported with this code.
	ErrCodeFailedPrecondition StatusCode = 9

	// ErrCodeOutOfRange indicates that a position argument is outside the
	// bounds documented by the operation.
	ErrCodeOutOfRange StatusCode = 11

	// ErrCodeInternal indicates that invariants expected by the tree have
	// been broken. It is reserved for programmer errors.
	ErrCodeInternal StatusCode = 13
)

// String returns the string representation of the error code.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeOutOfRange:
		return "out_of_range"
	case ErrCodeInternal:
		return "internal"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

// ParseStatusCode returns the StatusCode whose String matches the given name.
func ParseStatusCode(name string) (StatusCode, bool) {
	for _, c := range []StatusCode{
		ErrCodeInvalidArgument,
		ErrCodeNotFound,
		ErrCodeFailedPrecondition,
		ErrCodeOutOfRange,
		ErrCodeInternal,
	} {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// IsClientError returns true if the error code represents a caller mistake.
func (c StatusCode) IsClientError() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeFailedPrecondition, ErrCodeOutOfRange:
		return true
	default:
		return false
	}
}

// IsInternalError returns true if the error code represents broken state.
func (c StatusCode) IsInternalError() bool {
	return c == ErrCodeInternal
}
