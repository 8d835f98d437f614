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
	"fmt"
	"math"
	"strings"

	"github.com/yorkie-team/edittree/pkg/errors"
)

// ErrBrokenInvariant is returned by CheckIntegrity when a node's rank,
// balance code or parent link does not match the actual structure.
var ErrBrokenInvariant = errors.Internal("broken tree invariant")

// NodeInfo is the white-box view of a node used for verification.
type NodeInfo struct {
	Element rune    `json:"element" yaml:"element"`
	Rank    int     `json:"rank" yaml:"rank"`
	Balance Balance `json:"balance" yaml:"balance"`
}

// String returns the node as "b1=".
func (i NodeInfo) String() string {
	return fmt.Sprintf("%c%d%s", i.Element, i.Rank, i.Balance)
}

// DebugStructure returns the element, rank and balance code of every node in
// pre-order.
func (t *Tree) DebugStructure() []NodeInfo {
	var infos []NodeInfo
	traversePreOrder(t.root, func(node *Node) {
		infos = append(infos, NodeInfo{
			Element: node.element,
			Rank:    node.rank,
			Balance: node.balance,
		})
	})
	return infos
}

// ToTestString returns the debug structure as a string for testing purpose.
// For the tree with node b and children a and c, it returns "[b1=, a0=, c0=]".
func (t *Tree) ToTestString() string {
	infos := t.DebugStructure()
	parts := make([]string, len(infos))
	for i, info := range infos {
		parts[i] = info.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CheckIntegrity visits every node and verifies ranks, balance codes, parent
// links and the rotation ledger. It is slow and meant for tests and debug
// builds.
func (t *Tree) CheckIntegrity() error {
	if t.root != empty && t.root.parent != nil {
		return fmt.Errorf("root %q has a parent: %w", t.root.element, ErrBrokenInvariant)
	}

	if _, _, err := checkNode(t.root); err != nil {
		return err
	}

	if total := t.RotationCount(); total != t.rotations {
		return fmt.Errorf("rotation ledger %d, tally %d: %w", total, t.rotations, ErrBrokenInvariant)
	}
	return nil
}

// checkNode returns the size and height of the subtree rooted at node,
// computed without trusting any cached field.
func checkNode(node *Node) (int, int, error) {
	if node == empty {
		return 0, -1, nil
	}

	for _, child := range []*Node{node.left, node.right} {
		if child != empty && child.parent != node {
			return 0, 0, fmt.Errorf("child %q of %q has a wrong parent: %w",
				child.element, node.element, ErrBrokenInvariant)
		}
	}

	leftSize, leftHeight, err := checkNode(node.left)
	if err != nil {
		return 0, 0, err
	}
	rightSize, rightHeight, err := checkNode(node.right)
	if err != nil {
		return 0, 0, err
	}

	if node.rank != leftSize {
		return 0, 0, fmt.Errorf("node %q rank %d, left size %d: %w",
			node.element, node.rank, leftSize, ErrBrokenInvariant)
	}

	var want Balance
	switch leftHeight - rightHeight {
	case 0:
		want = Same
	case 1:
		want = Left
	case -1:
		want = Right
	default:
		return 0, 0, fmt.Errorf("node %q heights %d and %d: %w",
			node.element, leftHeight, rightHeight, ErrBrokenInvariant)
	}
	if node.balance != want {
		return 0, 0, fmt.Errorf("node %q balance %s, want %s: %w",
			node.element, node.balance, want, ErrBrokenInvariant)
	}

	return leftSize + rightSize + 1, max(leftHeight, rightHeight) + 1, nil
}

// HeightBound returns the upper bound on the height of a tree with n nodes,
// 1.44*log2(n+2) - 1. The sparsest trees of each height stay within it.
func HeightBound(n int) float64 {
	return 1.44*math.Log2(float64(n+2)) - 1
}

func (t *Tree) assertIntegrity() {
	if !debugAssertions {
		return
	}
	if err := t.CheckIntegrity(); err != nil {
		panic(err)
	}
}
