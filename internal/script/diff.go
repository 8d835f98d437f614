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
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the character level difference between want and got, marking
// missing text as [-...] and unexpected text as {+...}.
func Diff(want, got string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(want, got, false))

	sb := strings.Builder{}
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + diff.Text + "]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + diff.Text + "}")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(diff.Text)
		}
	}
	return sb.String()
}
