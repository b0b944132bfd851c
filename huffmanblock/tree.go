/*
Copyright (c) 2017 Simon Schmidt

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package huffmanblock

import "container/heap"
import "github.com/icza/huffman"

// Queue entry. Leaves are keyed by their symbol, inner nodes by 0 and
// their creation sequence, so no two entries ever compare equal.
type entry struct {
	n   *huffman.Node
	key huffman.ValueType
	seq int // 0 for leaves
}

type queue []entry

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.n.Count != b.n.Count {
		return a.n.Count < b.n.Count
	}
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(entry)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

// Build builds the Huffman tree of the counted symbols.
//
// Nodes are merged lowest (count, symbol) first; the first node taken
// becomes the left child. Inner nodes rank as symbol 0: before any leaf of
// equal count except byte 0, which goes first. Inner nodes of equal count
// are taken oldest first. The result is nil if nothing was counted and
// a single leaf if only one symbol was. Parent links are set, so
// huffman.Node.Code works on the leaves.
func Build(h *Histogram) *huffman.Node {
	q := make(queue, 0, len(h))
	for i, c := range h {
		if c > 0 {
			v := huffman.ValueType(i)
			q = append(q, entry{n: &huffman.Node{Value: v, Count: c}, key: v})
		}
	}
	if len(q) == 0 {
		return nil
	}
	heap.Init(&q)

	for seq := 1; q.Len() > 1; seq++ {
		l := heap.Pop(&q).(entry)
		r := heap.Pop(&q).(entry)
		p := &huffman.Node{Left: l.n, Right: r.n, Count: l.n.Count + r.n.Count}
		l.n.Parent, r.n.Parent = p, p
		heap.Push(&q, entry{n: p, seq: seq})
	}
	return q[0].n
}
