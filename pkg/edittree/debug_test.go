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

package edittree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yorkie-team/edittree/pkg/errors"
)

func newAppended(s string) *Tree {
	tree := NewTree()
	for _, ch := range s {
		tree.Append(ch)
	}
	return tree
}

func TestCheckIntegrity(t *testing.T) {
	t.Run("rank drift test", func(t *testing.T) {
		tree := newAppended("abcdefg")
		tree.root.left.rank++
		err := tree.CheckIntegrity()
		assert.ErrorIs(t, err, ErrBrokenInvariant)
		assert.Equal(t, errors.ErrCodeInternal, errors.StatusOf(err))
	})

	t.Run("balance drift test", func(t *testing.T) {
		tree := newAppended("abcdefg")
		tree.root.right.balance = Left
		assert.ErrorIs(t, tree.CheckIntegrity(), ErrBrokenInvariant)
	})

	t.Run("parent drift test", func(t *testing.T) {
		tree := newAppended("abcdefg")
		tree.root.right.left.parent = tree.root
		assert.ErrorIs(t, tree.CheckIntegrity(), ErrBrokenInvariant)
	})

	t.Run("rotation ledger drift test", func(t *testing.T) {
		tree := newAppended("abcdefg")
		tree.rotations++
		assert.ErrorIs(t, tree.CheckIntegrity(), ErrBrokenInvariant)
	})

	t.Run("sentinel stays untouched test", func(t *testing.T) {
		tree := newAppended("abcdefghij")
		for tree.Len() > 0 {
			_, err := tree.Delete(tree.Len() / 2)
			assert.NoError(t, err)
		}

		assert.Nil(t, empty.parent)
		assert.Nil(t, empty.left)
		assert.Nil(t, empty.right)
		assert.Equal(t, 0, empty.rank)
		assert.Equal(t, 0, empty.rotations)
	})
}

func TestRotationRanks(t *testing.T) {
	t.Run("single rotations keep ranks test", func(t *testing.T) {
		tree := newAppended("abcdefg")
		root := tree.singleLeft(tree.root)
		root.parent = nil
		tree.root = root

		assert.Equal(t, 'f', root.element)
		assert.Equal(t, 5, root.rank)
		assert.Equal(t, "abcdefg", tree.String())

		root = tree.singleRight(tree.root)
		root.parent = nil
		tree.root = root
		assert.Equal(t, 'd', root.element)
		assert.Equal(t, 3, root.rank)
		assert.Equal(t, "abcdefg", tree.String())
		assert.Equal(t, 6, tree.rotations)
	})

	t.Run("height follows balance codes test", func(t *testing.T) {
		tree := newAppended("abcdefghijklmnopqrstuvwxyz")
		_, height, err := checkNode(tree.root)
		assert.NoError(t, err)
		assert.Equal(t, height, tree.Height())
	})
}

// buildSparsest builds the tree of height h with the fewest nodes: its left
// subtree has height h-1 and its right subtree height h-2.
func buildSparsest(h int) *Node {
	if h < 0 {
		return empty
	}

	left := buildSparsest(h - 1)
	node := newNode('a' + rune(h%26))
	right := buildSparsest(h - 2)

	node.setLeft(left)
	node.setRight(right)
	node.rank = left.size()
	if h > 0 {
		node.balance = Left
	}
	return node
}

func TestHeightBound(t *testing.T) {
	t.Run("sparsest trees stay within bound test", func(t *testing.T) {
		// N(0)=1, N(1)=2, N(h)=N(h-1)+N(h-2)+1
		sizes := []int{1, 2}
		for h := 2; h <= 40; h++ {
			sizes = append(sizes, sizes[h-1]+sizes[h-2]+1)
		}
		assert.Equal(t, 88, sizes[8])
		assert.Equal(t, 143, sizes[9])

		for h, n := range sizes {
			assert.LessOrEqual(t, float64(h), HeightBound(n), "height %d with %d nodes", h, n)
		}
	})

	t.Run("built sparsest trees test", func(t *testing.T) {
		for h := 0; h <= 16; h++ {
			tree := &Tree{root: buildSparsest(h)}
			assert.NoError(t, tree.CheckIntegrity())
			assert.Equal(t, h, tree.Height())
			assert.LessOrEqual(t, float64(tree.Height()), HeightBound(tree.Len()))
			if h < 9 {
				assert.Equal(t, []int{1, 2, 4, 7, 12, 20, 33, 54, 88}[h], tree.Len())
			}
		}
	})

	t.Run("empty and single node test", func(t *testing.T) {
		assert.LessOrEqual(t, float64(NewTree().Height()), HeightBound(0))
		assert.LessOrEqual(t, float64(NewTreeOf('a').Height()), HeightBound(1))
	})
}
