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
import "fmt"
import "github.com/icza/bitio"
import "github.com/icza/huffman"

// Code is a prefix code of Len bits held in the low bits of Bits.
// The most significant of them is the first bit on the path from the root.
type Code struct {
	Bits uint64
	Len  uint8
}

func (c Code) get() (uint64, uint8) { return c.Bits, c.Len }

// String renders c as a string of '0' and '1'.
func (c Code) String() string {
	s := make([]byte, c.Len)
	for i := range s {
		s[i] = '0' + byte(c.Bits>>(c.Len-1-uint8(i))&1)
	}
	return string(s)
}

// HasPrefix reports whether p is a prefix of c.
func (c Code) HasPrefix(p Code) bool {
	if p.Len > c.Len {
		return false
	}
	return c.Bits>>(c.Len-p.Len) == p.Bits
}

// MaxCodeLen is the longest code a Code holds. Trees deeper than that
// are rejected as malformed.
const MaxCodeLen = 64

// CodeTable maps every symbol of a tree to its code.
type CodeTable struct {
	codes [256]Code
	has   [256]bool
	n     int
}

// Codes derives the code table of a tree. Left edges are 0, right edges 1.
// A tree that is a single leaf gives that symbol the empty code; a nil tree
// gives an empty table.
func Codes(root *huffman.Node) *CodeTable {
	t := new(CodeTable)
	if root != nil {
		t.walk(root, 0, 0)
	}
	return t
}

func (t *CodeTable) walk(n *huffman.Node, bits uint64, depth uint8) {
	if isLeaf(n) {
		s := byte(n.Value)
		t.codes[s] = Code{bits, depth}
		t.has[s] = true
		t.n++
		return
	}
	if depth == MaxCodeLen {
		panic(fmt.Errorf("%w: code longer than %d bits", ErrInvariant, MaxCodeLen))
	}
	t.walk(n.Left, bits<<1, depth+1)
	t.walk(n.Right, bits<<1|1, depth+1)
}

// Len returns the number of symbols with a code.
func (t *CodeTable) Len() int { return t.n }

// Lookup returns the code of s.
func (t *CodeTable) Lookup(s byte) (Code, bool) { return t.codes[s], t.has[s] }

// Encode concatenates the codes of the bytes of src.
// It panics with ErrInvariant if a byte has no code.
func (t *CodeTable) Encode(src []byte) Payload {
	return t.encode(src, 0)
}

func (t *CodeTable) encode(src []byte, hint int64) Payload {
	buf := new(bytes.Buffer)
	buf.Grow(int((hint + 7) / 8))
	w := bitio.NewCountWriter(buf)
	for _, b := range src {
		if !t.has[b] {
			panic(fmt.Errorf("%w: no code for symbol %#02x", ErrInvariant, b))
		}
		w.TryWriteBits(t.codes[b].get())
	}
	n := w.BitsCount
	w.TryAlign()
	if w.TryError != nil {
		// bytes.Buffer does not fail short of running out of memory.
		panic(w.TryError)
	}
	if hint > 0 && n != hint {
		panic(fmt.Errorf("%w: wrote %d bits, expected %d", ErrInvariant, n, hint))
	}
	return Payload{data: buf.Bytes(), n: n}
}
