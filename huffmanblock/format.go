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

import "bytes"
import "encoding/binary"
import "fmt"
import "io"
import "math"
import "github.com/icza/bitio"
import "github.com/icza/huffman"

/*
Persisted form of a Result, bit packed, most significant bit first:

	uvarint  number of symbols, at most MaxBlock, and at most
	         the bit count unless the tree is a single leaf
	uvarint  number of payload bits
	tree     only if there are symbols; preorder, at most MaxCodeLen deep,
	         1 + 8 bit symbol for a leaf,
	         0 + left + right for an inner node
	payload  exactly as many bits as announced, zero padded to a byte
*/

// WriteTo writes the persisted form of r to w. A Result whose tree,
// symbol count and payload disagree is refused with ErrMalformed.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	if e := consistent(r.root, r.count, r.payload.n); e != nil {
		return 0, e
	}
	bw := bitio.NewCountWriter(w)
	{
		var buf [2 * binary.MaxVarintLen64]byte
		i := binary.PutUvarint(buf[:], uint64(r.count))
		i += binary.PutUvarint(buf[i:], uint64(r.payload.n))
		bw.TryWrite(buf[:i])
	}
	if r.count > 0 {
		writeTree(bw, r.root)
	}
	full := r.payload.n / 8
	for _, b := range r.payload.data[:full] {
		bw.TryWriteByte(b)
	}
	if rem := uint8(r.payload.n % 8); rem > 0 {
		bw.TryWriteBits(uint64(r.payload.data[full]>>(8-rem)), rem)
	}
	bw.TryAlign()
	return bw.BitsCount / 8, bw.TryError
}

func writeTree(w *bitio.CountWriter, n *huffman.Node) {
	if isLeaf(n) {
		w.TryWriteBool(true)
		w.TryWriteByte(byte(n.Value))
		return
	}
	w.TryWriteBool(false)
	writeTree(w, n.Left)
	writeTree(w, n.Right)
}

// ReadFrom replaces r with a Result read from rd. Anything that does not
// form a valid Result, including premature end of input, is reported as
// ErrMalformed; the cause stays reachable with errors.Is.
//
// The tree read back has no symbol counts. If rd is not an io.ByteReader
// it gets buffered, and ReadFrom may consume input past the Result.
func (r *Result) ReadFrom(rd io.Reader) (int64, error) {
	br := bitio.NewCountReader(rd)
	count, e := binary.ReadUvarint(br)
	if e != nil {
		return br.BitsCount / 8, fmt.Errorf("%w: symbol count: %w", ErrMalformed, e)
	}
	nbits, e := binary.ReadUvarint(br)
	if e != nil {
		return br.BitsCount / 8, fmt.Errorf("%w: payload length: %w", ErrMalformed, e)
	}
	if count > MaxBlock || nbits > math.MaxInt64 {
		return br.BitsCount / 8, fmt.Errorf("%w: header out of range", ErrMalformed)
	}

	var root *huffman.Node
	if count > 0 {
		tr := treeReader{r: br}
		if root, e = tr.node(nil, 0); e != nil {
			return br.BitsCount / 8, e
		}
	}
	if e := consistent(root, int64(count), int64(nbits)); e != nil {
		return br.BitsCount / 8, e
	}

	// Grows with the input, a bogus length cannot force a huge allocation.
	buf := new(bytes.Buffer)
	for i := nbits / 8; i > 0; i-- {
		b, e := br.ReadByte()
		if e != nil {
			return br.BitsCount / 8, fmt.Errorf("%w: payload: %w", ErrMalformed, e)
		}
		buf.WriteByte(b)
	}
	if rem := uint8(nbits % 8); rem > 0 {
		u, e := br.ReadBits(rem)
		if e != nil {
			return br.BitsCount / 8, fmt.Errorf("%w: payload: %w", ErrMalformed, e)
		}
		buf.WriteByte(byte(u << (8 - rem)))
	}
	br.Align()

	*r = Result{root: root, payload: Payload{data: buf.Bytes(), n: int64(nbits)}, count: int64(count)}
	return br.BitsCount / 8, nil
}

type treeReader struct {
	r     *bitio.CountReader
	seen  [256]bool
	inner int
}

func (t *treeReader) node(parent *huffman.Node, depth int) (*huffman.Node, error) {
	leaf, e := t.r.ReadBool()
	if e != nil {
		return nil, fmt.Errorf("%w: tree: %w", ErrMalformed, e)
	}
	n := &huffman.Node{Parent: parent}
	if leaf {
		v, e := t.r.ReadByte()
		if e != nil {
			return nil, fmt.Errorf("%w: tree: %w", ErrMalformed, e)
		}
		if t.seen[v] {
			return nil, fmt.Errorf("%w: symbol %#02x appears twice in tree", ErrMalformed, v)
		}
		t.seen[v] = true
		n.Value = huffman.ValueType(v)
		return n, nil
	}
	if depth == MaxCodeLen {
		return nil, fmt.Errorf("%w: tree deeper than %d", ErrMalformed, MaxCodeLen)
	}
	// A full tree over at most 256 symbols has at most 255 inner nodes.
	if t.inner++; t.inner > 255 {
		return nil, fmt.Errorf("%w: tree has too many inner nodes", ErrMalformed)
	}
	if n.Left, e = t.node(n, depth+1); e != nil {
		return nil, e
	}
	if n.Right, e = t.node(n, depth+1); e != nil {
		return nil, e
	}
	return n, nil
}

// MarshalBinary returns the persisted form of r.
func (r *Result) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	_, e := r.WriteTo(buf)
	return buf.Bytes(), e
}

// UnmarshalBinary replaces r with the Result persisted in data.
// Trailing bytes are rejected.
func (r *Result) UnmarshalBinary(data []byte) error {
	rd := bytes.NewReader(data)
	if _, e := r.ReadFrom(rd); e != nil {
		return e
	}
	if rd.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, rd.Len())
	}
	return nil
}
