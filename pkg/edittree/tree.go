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

// Package edittree provides a height-balanced binary tree with rank that
// stores a sequence of characters, the kind of structure a text editor
// buffer can be built on. Nodes are ordered by implicit in-order position
// and cache the size of their left subtree, so access, insertion and
// deletion by position take O(log N).
//
// A Tree is not safe for concurrent use; callers serialize access.
package edittree

import (
	"fmt"
	"strings"

	"github.com/yorkie-team/edittree/pkg/errors"
)

// ErrOutOfRange is returned when a position violates the bound documented
// by the operation.
var ErrOutOfRange = errors.OutOfRange("position out of range")

// Tree is a height-balanced binary tree with rank.
type Tree struct {
	root *Node

	// retired holds the rotation counts of nodes removed by deletion.
	retired int

	// rotations is a running tally of every rotation performed. It always
	// equals retired plus the counts held by the live nodes.
	rotations int
}

// NewTree creates an empty Tree.
func NewTree() *Tree {
	return &Tree{root: empty}
}

// NewTreeOf creates a Tree holding the single character ch.
func NewTreeOf(ch rune) *Tree {
	return &Tree{root: newNode(ch)}
}

// Copy returns a tree with all new nodes but the same shape, contents,
// ranks and balance codes. The copy starts with an empty rotation history.
func (t *Tree) Copy() *Tree {
	return &Tree{root: t.root.copy(nil)}
}

// Root returns the root node or nil when the tree is empty.
func (t *Tree) Root() *Node {
	return exposed(t.root)
}

// Len returns the number of characters in this tree.
func (t *Tree) Len() int {
	return t.root.size()
}

// Height returns the height of this tree, -1 when it is empty.
func (t *Tree) Height() int {
	return t.root.height()
}

// RotationCount returns the number of rotations done in this tree since it
// was created, including those done at nodes that have since been deleted.
// A double rotation counts as two.
func (t *Tree) RotationCount() int {
	return t.retired + t.root.totalRotations()
}

// Stats is a summary of a Tree.
type Stats struct {
	Len       int
	Height    int
	Rotations int
}

// Stats returns the summary of this tree without visiting every node.
func (t *Tree) Stats() Stats {
	return Stats{
		Len:       t.Len(),
		Height:    t.Height(),
		Rotations: t.rotations,
	}
}

// Append adds ch to the end of this tree.
func (t *Tree) Append(ch rune) {
	t.root, _ = t.insert(t.root, ch, t.Len())
	t.root.parent = nil
	t.assertIntegrity()
}

// Insert adds ch so that it occupies the in-order position pos. Characters
// previously at pos or after shift right by one.
func (t *Tree) Insert(pos int, ch rune) error {
	if size := t.Len(); pos < 0 || pos > size {
		return fmt.Errorf("insert at %d, size %d: %w", pos, size, ErrOutOfRange)
	}

	t.root, _ = t.insert(t.root, ch, pos)
	t.root.parent = nil
	t.assertIntegrity()
	return nil
}

// insert adds ch at pos of the subtree rooted at n. It returns the new root
// of the subtree and whether the subtree got taller.
func (t *Tree) insert(n *Node, ch rune, pos int) (*Node, bool) {
	if n == empty {
		return newNode(ch), true
	}

	if pos <= n.rank {
		n.rank++
		child, grew := t.insert(n.left, ch, pos)
		n.setLeft(child)
		if !grew {
			return n, false
		}

		switch n.balance {
		case Same:
			n.balance = Left
			return n, true
		case Right:
			n.balance = Same
			return n, false
		default:
			root, _ := t.fixLeftHeavy(n)
			return root, false
		}
	}

	child, grew := t.insert(n.right, ch, pos-n.rank-1)
	n.setRight(child)
	if !grew {
		return n, false
	}

	switch n.balance {
	case Same:
		n.balance = Right
		return n, true
	case Left:
		n.balance = Same
		return n, false
	default:
		root, _ := t.fixRightHeavy(n)
		return root, false
	}
}

// Delete removes the character at pos and returns it. A node with two
// children is always replaced by its in-order successor.
func (t *Tree) Delete(pos int) (rune, error) {
	if size := t.Len(); pos < 0 || pos >= size {
		return 0, fmt.Errorf("delete at %d, size %d: %w", pos, size, ErrOutOfRange)
	}

	root, removed, _ := t.delete(t.root, pos)
	t.root = root
	if root != empty {
		root.parent = nil
	}

	t.retired += removed.rotations
	ch := removed.element
	removed.retire()

	t.assertIntegrity()
	return ch, nil
}

// delete removes the node at pos of the subtree rooted at n. It returns the
// new root of the subtree, the node that left the structure and whether the
// subtree got shorter.
func (t *Tree) delete(n *Node, pos int) (*Node, *Node, bool) {
	if pos < n.rank {
		n.rank--
		child, removed, shrunk := t.delete(n.left, pos)
		n.setLeft(child)
		if !shrunk {
			return n, removed, false
		}
		root, shrunk := t.leftShrunk(n)
		return root, removed, shrunk
	}

	if pos > n.rank {
		child, removed, shrunk := t.delete(n.right, pos-n.rank-1)
		n.setRight(child)
		if !shrunk {
			return n, removed, false
		}
		root, shrunk := t.rightShrunk(n)
		return root, removed, shrunk
	}

	switch {
	case n.left == empty:
		return n.right, n, true
	case n.right == empty:
		return n.left, n, true
	}

	return t.spliceSuccessor(n)
}

// spliceSuccessor removes n, which has two children, by extracting the
// leftmost node of its right subtree and putting that node in n's place.
func (t *Tree) spliceSuccessor(n *Node) (*Node, *Node, bool) {
	before := n.height()

	right, successor, _ := t.delete(n.right, 0)
	successor.setLeft(n.left)
	successor.setRight(right)
	successor.rank = n.rank

	root := successor
	switch diff := successor.left.height() - successor.right.height(); diff {
	case 0:
		successor.balance = Same
	case 1:
		successor.balance = Left
	case -1:
		successor.balance = Right
	case 2:
		root, _ = t.fixLeftHeavy(successor)
	case -2:
		root, _ = t.fixRightHeavy(successor)
	default:
		panic(fmt.Sprintf("edittree: height difference %d at splice point", diff))
	}

	return root, n, root.height() < before
}

// leftShrunk rebalances n after its left subtree got shorter. It returns the
// new root of the subtree and whether the subtree got shorter.
func (t *Tree) leftShrunk(n *Node) (*Node, bool) {
	switch n.balance {
	case Left:
		n.balance = Same
		return n, true
	case Same:
		n.balance = Right
		return n, false
	default:
		return t.fixRightHeavy(n)
	}
}

// rightShrunk is the mirror image of leftShrunk.
func (t *Tree) rightShrunk(n *Node) (*Node, bool) {
	switch n.balance {
	case Right:
		n.balance = Same
		return n, true
	case Same:
		n.balance = Left
		return n, false
	default:
		return t.fixLeftHeavy(n)
	}
}

// Get returns the character at pos.
func (t *Tree) Get(pos int) (rune, error) {
	node, err := t.Find(pos)
	if err != nil {
		return 0, err
	}
	return node.element, nil
}

// Find returns the node at pos.
func (t *Tree) Find(pos int) (*Node, error) {
	if size := t.Len(); pos < 0 || pos >= size {
		return nil, fmt.Errorf("find at %d, size %d: %w", pos, size, ErrOutOfRange)
	}

	node := t.root
	for pos != node.rank {
		if pos < node.rank {
			node = node.left
		} else {
			pos -= node.rank + 1
			node = node.right
		}
	}
	return node, nil
}

// IndexOf returns the position of the given node by walking up its parent
// links, or -1 if the node is not in this tree.
func (t *Tree) IndexOf(node *Node) int {
	if node == nil || node == empty {
		return -1
	}

	index := node.rank
	current := node
	for current.parent != nil {
		if current == current.parent.right {
			index += current.parent.rank + 1
		}
		current = current.parent
	}

	if current != t.root {
		return -1
	}
	return index
}

// String returns the characters of this tree in order.
func (t *Tree) String() string {
	var builder strings.Builder
	traverseInOrder(t.root, func(node *Node) {
		builder.WriteRune(node.element)
	})
	return builder.String()
}

// Runes returns the characters of this tree in order.
func (t *Tree) Runes() []rune {
	runes := make([]rune, 0, t.Len())
	traverseInOrder(t.root, func(node *Node) {
		runes = append(runes, node.element)
	})
	return runes
}

func traverseInOrder(node *Node, callback func(node *Node)) {
	if node == empty {
		return
	}

	traverseInOrder(node.left, callback)
	callback(node)
	traverseInOrder(node.right, callback)
}

func traversePreOrder(node *Node, callback func(node *Node)) {
	if node == empty {
		return
	}

	callback(node)
	traversePreOrder(node.left, callback)
	traversePreOrder(node.right, callback)
}
