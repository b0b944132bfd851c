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

// Payload is a sequence of bits packed into bytes, first bit in the most
// significant position. The bit count is explicit; padding bits of the
// last byte are not part of the payload.
type Payload struct {
	data []byte
	n    int64
}

// NewPayload returns the payload made of the first n bits of data.
func NewPayload(data []byte, n int64) (Payload, error) {
	if n < 0 || n > int64(len(data))*8 {
		return Payload{}, fmt.Errorf("%w: %d bits do not fit in %d bytes", ErrMalformed, n, len(data))
	}
	d := make([]byte, (n+7)/8)
	copy(d, data)
	if r := n % 8; r != 0 {
		d[len(d)-1] &= 0xFF << (8 - r)
	}
	return Payload{data: d, n: n}, nil
}

// ParsePayload reads a payload written as a string of '0' and '1'.
func ParsePayload(s string) (Payload, error) {
	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			w.TryWriteBool(false)
		case '1':
			w.TryWriteBool(true)
		default:
			return Payload{}, fmt.Errorf("%w: invalid bit %q at %d", ErrMalformed, s[i], i)
		}
	}
	w.TryAlign()
	return Payload{data: buf.Bytes(), n: int64(len(s))}, w.TryError
}

// Len returns the number of bits.
func (p Payload) Len() int64 { return p.n }

// Bytes returns the packed bits. The unused low bits of the last byte are zero.
func (p Payload) Bytes() []byte { return p.data }

// Bit returns bit i, 0 or 1.
func (p Payload) Bit(i int64) byte {
	return p.data[i/8] >> (7 - uint(i%8)) & 1
}

// String renders p as a string of '0' and '1'.
func (p Payload) String() string {
	s := make([]byte, p.n)
	for i := range s {
		s[i] = '0' + p.Bit(int64(i))
	}
	return string(s)
}
