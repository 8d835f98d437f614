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

// The rotations below restructure the subtree rooted at a and return its new
// root. The parent link of the returned root is left to the caller, which
// knows where the subtree hangs.

// singleLeft lifts a.right above a.
func (t *Tree) singleLeft(a *Node) *Node {
	c := a.right

	a.setRight(c.left)
	c.left = a
	a.parent = c
	c.rank += a.rank + 1

	a.balance = Same
	c.balance = Same
	t.recordRotations(a, 1)
	return c
}

// singleRight lifts a.left above a.
func (t *Tree) singleRight(a *Node) *Node {
	c := a.left

	a.setLeft(c.right)
	c.right = a
	a.parent = c
	a.rank -= c.rank + 1

	a.balance = Same
	c.balance = Same
	t.recordRotations(a, 1)
	return c
}

// doubleLeft lifts b = a.right.left above both a and a.right.
func (t *Tree) doubleLeft(a *Node) *Node {
	c := a.right
	b := c.left

	switch b.balance {
	case Left:
		a.balance, c.balance = Same, Right
	case Right:
		a.balance, c.balance = Left, Same
	default:
		a.balance, c.balance = Same, Same
	}

	a.setRight(b.left)
	c.setLeft(b.right)
	b.left = a
	b.right = c
	a.parent = b
	c.parent = b

	c.rank -= b.rank + 1
	b.rank += a.rank + 1

	b.balance = Same
	t.recordRotations(a, 2)
	return b
}

// doubleRight lifts b = a.left.right above both a and a.left.
func (t *Tree) doubleRight(a *Node) *Node {
	c := a.left
	b := c.right

	switch b.balance {
	case Left:
		c.balance, a.balance = Same, Right
	case Right:
		c.balance, a.balance = Left, Same
	default:
		c.balance, a.balance = Same, Same
	}

	a.setLeft(b.right)
	c.setRight(b.left)
	b.right = a
	b.left = c
	a.parent = b
	c.parent = b

	a.rank -= c.rank + b.rank + 2
	b.rank += c.rank + 1

	b.balance = Same
	t.recordRotations(a, 2)
	return b
}

// fixLeftHeavy restores a node whose left subtree is two levels taller than
// its right one. It reports whether the subtree became shorter than it was
// before the imbalance, which is false only when the left child was
// balanced; that case arises on deletion alone.
func (t *Tree) fixLeftHeavy(n *Node) (*Node, bool) {
	switch n.left.balance {
	case Left:
		return t.singleRight(n), true
	case Right:
		return t.doubleRight(n), true
	default:
		root := t.singleRight(n)
		root.balance = Right
		n.balance = Left
		return root, false
	}
}

// fixRightHeavy is the mirror image of fixLeftHeavy.
func (t *Tree) fixRightHeavy(n *Node) (*Node, bool) {
	switch n.right.balance {
	case Right:
		return t.singleLeft(n), true
	case Left:
		return t.doubleLeft(n), true
	default:
		root := t.singleLeft(n)
		root.balance = Left
		n.balance = Right
		return root, false
	}
}

func (t *Tree) recordRotations(n *Node, count int) {
	n.rotations += count
	t.rotations += count
}
