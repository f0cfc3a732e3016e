// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package stack

import (
	"sync"

	"github.com/weavelang/weave/lang"
)

// Creating and destroying one node per push/pop could incur significant
// allocation overhead on hot shuffle-heavy words. As with Tosca's
// whole-stack pool, a sync.Pool of individual nodes is used to amortize
// that cost, since (unlike Tosca's fixed-size array stack) this chain has
// no fixed size to pool whole instances of.
var nodePool = sync.Pool{
	New: func() any { return new(Node) },
}

func acquireNode() *Node {
	return nodePool.Get().(*Node)
}

func releaseNode(n *Node) {
	n.Value = lang.Value{}
	n.next = nil
	nodePool.Put(n)
}
