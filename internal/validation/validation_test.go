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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/edittree/pkg/errors"
)

func TestValidation(t *testing.T) {
	t.Run("ValidateValue test", func(t *testing.T) {
		assert.NoError(t, ValidateValue("x", "required,single_rune"))
		assert.NoError(t, ValidateValue("é", "required,single_rune"))

		err := ValidateValue("xy", "required,single_rune")
		assert.Equal(t, "single_rune", err.(Violation).Tag)

		assert.NoError(t, ValidateValue("abc", "distinct_runes"))
		err = ValidateValue("abca", "distinct_runes")
		assert.Equal(t, "distinct_runes", err.(Violation).Tag)
		err = ValidateValue("", "distinct_runes")
		assert.Equal(t, "distinct_runes", err.(Violation).Tag)

		assert.NoError(t, ValidateValue("out_of_range", "status_name"))
		err = ValidateValue("overflow", "status_name")
		assert.Equal(t, "status_name", err.(Violation).Tag)
	})

	t.Run("ValidateStruct test", func(t *testing.T) {
		type Step struct {
			Op   string `validate:"required,oneof=insert append delete get check"`
			Char string `validate:"omitempty,single_rune"`
		}

		err := ValidateStruct(Step{Op: "erase", Char: "ab"})
		structError := err.(*StructError)
		assert.Len(t, structError.Violations, 2)
		assert.Equal(t, "Op", structError.Violations[0].Field)
		assert.Equal(t, "Char must be exactly one character", structError.Descriptions()[1])
		assert.Equal(t, errors.ErrCodeInvalidArgument, errors.StatusOf(err))

		assert.NoError(t, ValidateStruct(Step{Op: "insert", Char: "a"}))
	})

	t.Run("custom rule test", func(t *testing.T) {
		assert.NoError(t, RegisterValidation("vowel", func(v FieldLevel) bool {
			return v.Field().String() == "a"
		}))
		assert.NoError(t, RegisterTranslation("vowel", "{0} must be the letter a"))

		err := ValidateValue("b", "vowel")
		assert.Equal(t, "vowel", err.(Violation).Tag)
		assert.Contains(t, err.(Violation).Description, "must be the letter a")
	})
}
