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

// Balance tells which subtree of a node is taller.
type Balance int8

const (
	// Same means both subtrees have the same height.
	Same Balance = iota

	// Left means the left subtree is one level taller.
	Left

	// Right means the right subtree is one level taller.
	Right
)

// String returns the symbol used in debug strings.
func (b Balance) String() string {
	switch b {
	case Left:
		return "/"
	case Right:
		return "\\"
	default:
		return "="
	}
}

// Node is a node of Tree. Nodes are ordered by their in-order position only;
// the element value plays no part in the ordering.
type Node struct {
	element rune

	// rank is the number of nodes in the left subtree.
	rank    int
	balance Balance

	left   *Node
	right  *Node
	parent *Node

	// rotations is the number of rotations rooted at this node so far.
	// A double rotation counts as two.
	rotations int
}

// empty is the shared sentinel standing for "no subtree". It is never
// mutated and is compared by identity.
var empty = &Node{}

func newNode(ch rune) *Node {
	return &Node{
		element: ch,
		left:    empty,
		right:   empty,
	}
}

// Element returns the character stored in this node.
func (n *Node) Element() rune {
	return n.element
}

// Rank returns the size of the left subtree of this node.
func (n *Node) Rank() int {
	return n.rank
}

// Balance returns the balance code of this node.
func (n *Node) Balance() Balance {
	return n.balance
}

// Left returns the left child or nil.
func (n *Node) Left() *Node {
	return exposed(n.left)
}

// Right returns the right child or nil.
func (n *Node) Right() *Node {
	return exposed(n.right)
}

// Parent returns the parent or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

func exposed(n *Node) *Node {
	if n == empty {
		return nil
	}
	return n
}

// size walks the right spine, using ranks for the left sides.
func (n *Node) size() int {
	s := 0
	for ; n != empty; n = n.right {
		s += n.rank + 1
	}
	return s
}

// height follows the taller side given by the balance codes.
func (n *Node) height() int {
	h := -1
	for n != empty {
		h++
		if n.balance == Left {
			n = n.left
		} else {
			n = n.right
		}
	}
	return h
}

func (n *Node) totalRotations() int {
	if n == empty {
		return 0
	}
	return n.rotations + n.left.totalRotations() + n.right.totalRotations()
}

// copy returns a deep copy of the subtree with an empty rotation history.
func (n *Node) copy(parent *Node) *Node {
	if n == empty {
		return empty
	}

	c := &Node{
		element: n.element,
		rank:    n.rank,
		balance: n.balance,
		parent:  parent,
	}
	c.left = n.left.copy(c)
	c.right = n.right.copy(c)
	return c
}

// retire unlinks a node that has been removed from the tree.
func (n *Node) retire() {
	n.left = empty
	n.right = empty
	n.parent = nil
}

func (n *Node) setLeft(child *Node) {
	n.left = child
	if child != empty {
		child.parent = n
	}
}

func (n *Node) setRight(child *Node) {
	n.right = child
	if child != empty {
		child.parent = n
	}
}
