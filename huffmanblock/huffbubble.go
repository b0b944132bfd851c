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

// Block based static huffman coding.
//
// Every block gets its own code: Compress counts the symbols of the block,
// builds a Huffman tree from the counts and encodes the block under that
// tree. The resulting Result holds everything Decompress needs and can be
// persisted with WriteTo and read back with ReadFrom.
package huffmanblock

import "bytes"
import "errors"
import "fmt"
import "github.com/icza/bitio"
import "github.com/icza/huffman"

var (
	// ErrMalformed is returned when a payload cannot be resolved against its tree.
	ErrMalformed = errors.New("huffmanblock: malformed payload")

	// ErrInvariant is the panic value for broken codec invariants.
	ErrInvariant = errors.New("huffmanblock: internal invariant violated")
)

// Compress encodes src with a Huffman code built from src itself.
// It never fails; an empty src yields a Result without tree.
func Compress(src []byte) *Result {
	var h Histogram
	h.Scan(src)
	root := Build(&h)
	t := Codes(root)
	p := t.encode(src, h.Cost(t))
	return &Result{root: root, payload: p, count: int64(len(src))}
}

// Decompress reconstructs the block encoded in r.
func Decompress(r *Result) ([]byte, error) {
	switch {
	case r.root == nil:
		if r.count != 0 || r.payload.n != 0 {
			return nil, fmt.Errorf("%w: no tree for %d symbols in %d bits", ErrMalformed, r.count, r.payload.n)
		}
		return []byte{}, nil
	case isLeaf(r.root):
		// A lone symbol has the empty code, the count carries the repetition.
		if r.payload.n != 0 {
			return nil, fmt.Errorf("%w: %d bits for a single symbol tree", ErrMalformed, r.payload.n)
		}
		if r.count > MaxBlock {
			return nil, fmt.Errorf("%w: symbol count %d out of range", ErrMalformed, r.count)
		}
		return bytes.Repeat([]byte{byte(r.root.Value)}, int(r.count)), nil
	}

	// Every code is at least one bit long.
	size := r.count
	if size > r.payload.n {
		size = r.payload.n
	}
	dst := make([]byte, 0, size)

	br := bitio.NewReader(bytes.NewReader(r.payload.data))
	n := r.root
	for i := int64(0); i < r.payload.n; i++ {
		b, e := br.ReadBool()
		if e != nil {
			return nil, fmt.Errorf("%w: bit %d: %w", ErrMalformed, i, e)
		}
		if b {
			n = n.Right
		} else {
			n = n.Left
		}
		if n == nil {
			return nil, fmt.Errorf("%w: bit %d leaves the tree", ErrMalformed, i)
		}
		if isLeaf(n) {
			dst = append(dst, byte(n.Value))
			n = r.root
		}
	}
	if n != r.root {
		return nil, fmt.Errorf("%w: payload ends inside a code", ErrMalformed)
	}
	if int64(len(dst)) != r.count {
		return nil, fmt.Errorf("%w: decoded %d symbols, expected %d", ErrMalformed, len(dst), r.count)
	}
	return dst, nil
}

func isLeaf(n *huffman.Node) bool { return n.Left == nil && n.Right == nil }
