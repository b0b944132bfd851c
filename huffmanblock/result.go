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

import "fmt"
import "math"
import "github.com/icza/huffman"

// Result is a compressed block: the payload, the tree to decode it with and
// the number of symbols it holds. A Result is not modified after creation.
type Result struct {
	root    *huffman.Node
	payload Payload
	count   int64
}

// MaxBlock is the largest number of symbols a persisted Result may hold.
const MaxBlock = math.MaxInt32

// NewResult assembles a Result from its parts. The tree must be a full
// binary tree with distinct byte symbols on its leaves and no code longer
// than MaxCodeLen, or nil. Whether the parts agree with each other is
// checked by Decompress and WriteTo.
func NewResult(root *huffman.Node, p Payload, count int64) (*Result, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative symbol count %d", ErrMalformed, count)
	}
	if root != nil {
		var seen [256]bool
		if e := checkTree(root, &seen, 0); e != nil {
			return nil, e
		}
	}
	return &Result{root: root, payload: p, count: count}, nil
}

func checkTree(n *huffman.Node, seen *[256]bool, depth int) error {
	if isLeaf(n) {
		if n.Value < 0 || n.Value > 255 {
			return fmt.Errorf("%w: leaf value %d is not a byte", ErrMalformed, n.Value)
		}
		if seen[n.Value] {
			return fmt.Errorf("%w: symbol %#02x appears twice in tree", ErrMalformed, n.Value)
		}
		seen[n.Value] = true
		return nil
	}
	if n.Left == nil || n.Right == nil {
		return fmt.Errorf("%w: inner node with a single child", ErrMalformed)
	}
	if depth == MaxCodeLen {
		return fmt.Errorf("%w: tree deeper than %d", ErrMalformed, MaxCodeLen)
	}
	if e := checkTree(n.Left, seen, depth+1); e != nil {
		return e
	}
	return checkTree(n.Right, seen, depth+1)
}

// consistent checks that a tree, a symbol count and a payload length
// describe a block that can be persisted and decoded.
func consistent(root *huffman.Node, count, nbits int64) error {
	switch {
	case count < 0 || count > MaxBlock:
		return fmt.Errorf("%w: symbol count %d out of range", ErrMalformed, count)
	case count == 0:
		if nbits != 0 {
			return fmt.Errorf("%w: %d payload bits for an empty block", ErrMalformed, nbits)
		}
	case root == nil:
		return fmt.Errorf("%w: no tree for %d symbols", ErrMalformed, count)
	case isLeaf(root):
		if nbits != 0 {
			return fmt.Errorf("%w: %d payload bits for a single symbol tree", ErrMalformed, nbits)
		}
	case count > nbits:
		return fmt.Errorf("%w: %d symbols do not fit in %d bits", ErrMalformed, count, nbits)
	}
	return nil
}

// Root returns the decoding tree, nil for an empty block.
func (r *Result) Root() *huffman.Node { return r.root }

// Payload returns the encoded bits.
func (r *Result) Payload() Payload { return r.payload }

// Len returns the number of symbols (bytes) in the block.
func (r *Result) Len() int64 { return r.count }

// Bits returns the length of the payload in bits.
func (r *Result) Bits() int64 { return r.payload.n }

// Codes derives the code table of the tree.
func (r *Result) Codes() *CodeTable { return Codes(r.root) }
