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

/*
Package huffarchive stores huffmanblock results as self-checking files.

An archive is the magic "HUFP", a version byte, the big endian xxhash64 of
the uncompressed data and the persisted huffmanblock.Result.
*/
package huffarchive

import "bufio"
import "encoding/binary"
import "errors"
import "fmt"
import "io"
import "github.com/cespare/xxhash/v2"
import "github.com/maxymania/huffpack/huffmanblock"

const (
	magic   = "HUFP"
	version = 1

	headerLen = len(magic) + 1 + 8
)

var (
	// ErrFormat is returned for input that is not a huffpack archive.
	ErrFormat = errors.New("huffarchive: not a huffpack archive")

	// ErrChecksum is returned when the decoded data does not match its checksum.
	ErrChecksum = errors.New("huffarchive: checksum mismatch")
)

// Stats describes one compressed block.
type Stats struct {
	In      int64 // uncompressed bytes
	Out     int64 // archive bytes, header included
	Symbols int   // distinct byte values
	Bits    int64 // payload bits
}

// Ratio returns Out/In, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.In == 0 {
		return 0
	}
	return float64(s.Out) / float64(s.In)
}

// Sum returns the checksum an archive stores for data.
func Sum(data []byte) uint64 { return xxhash.Sum64(data) }

// Write compresses data and writes it to w as an archive.
func Write(w io.Writer, data []byte) (Stats, error) {
	return WriteResult(w, huffmanblock.Compress(data), Sum(data))
}

// WriteResult writes an already compressed block as an archive.
// sum must be Sum of the uncompressed data.
func WriteResult(w io.Writer, r *huffmanblock.Result, sum uint64) (Stats, error) {
	st := Stats{In: r.Len(), Symbols: r.Codes().Len(), Bits: r.Bits()}

	var hdr [headerLen]byte
	copy(hdr[:], magic)
	hdr[len(magic)] = version
	binary.BigEndian.PutUint64(hdr[len(magic)+1:], sum)
	n, e := w.Write(hdr[:])
	st.Out += int64(n)
	if e != nil {
		return st, e
	}

	m, e := r.WriteTo(w)
	st.Out += m
	return st, e
}

// Read reads an archive from r and returns the uncompressed data.
// Codec failures wrap huffmanblock.ErrMalformed.
func Read(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)

	var hdr [headerLen]byte
	if _, e := io.ReadFull(br, hdr[:]); e != nil {
		if e == io.EOF || e == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: short header", ErrFormat)
		}
		return nil, e
	}
	if string(hdr[:len(magic)]) != magic {
		return nil, ErrFormat
	}
	if v := hdr[len(magic)]; v != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, v)
	}
	sum := binary.BigEndian.Uint64(hdr[len(magic)+1:])

	var res huffmanblock.Result
	if _, e := res.ReadFrom(br); e != nil {
		return nil, e
	}
	data, e := huffmanblock.Decompress(&res)
	if e != nil {
		return nil, e
	}
	if Sum(data) != sum {
		return nil, ErrChecksum
	}
	return data, nil
}
