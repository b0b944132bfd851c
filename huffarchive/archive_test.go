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

package huffarchive

import (
	"bytes"
	"errors"
	"testing"

	"github.com/maxymania/huffpack/huffmanblock"
)

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"", "AAAA", "AABBBC", "\x00\xffmixed\x00text\xff"} {
		var buf bytes.Buffer
		st, err := Write(&buf, []byte(s))
		if err != nil {
			t.Fatalf("Write(%q): %v", s, err)
		}
		if st.In != int64(len(s)) || st.Out != int64(buf.Len()) {
			t.Errorf("Write(%q) stats %+v, archive is %d bytes", s, st, buf.Len())
		}
		got, err := Read(&buf)
		if err != nil {
			t.Fatalf("Read(%q): %v", s, err)
		}
		if string(got) != s {
			t.Errorf("Read = %q, want %q", got, s)
		}
	}
}

func TestStats(t *testing.T) {
	var buf bytes.Buffer
	st, _ := Write(&buf, []byte("AABBBC"))
	want := Stats{In: 6, Out: int64(headerLen) + 7, Symbols: 3, Bits: 9}
	if st != want {
		t.Errorf("stats %+v, want %+v", st, want)
	}
	if (Stats{}).Ratio() != 0 {
		t.Errorf("Ratio of empty input = %v", (Stats{}).Ratio())
	}
}

func archive(s string) []byte {
	var buf bytes.Buffer
	Write(&buf, []byte(s))
	return buf.Bytes()
}

func TestReadErrors(t *testing.T) {
	badMagic := archive("AABBBC")
	badMagic[0] = 'X'
	badVersion := archive("AABBBC")
	badVersion[4] = 9
	// Flips the last payload bit: AABBBC decodes as AABBBA.
	flipped := archive("AABBBC")
	flipped[headerLen+6] ^= 0x04
	truncated := archive("AABBBC")
	truncated = truncated[:len(truncated)-2]

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrFormat},
		{"short header", []byte("HUFP\x01"), ErrFormat},
		{"bad magic", badMagic, ErrFormat},
		{"bad version", badVersion, ErrFormat},
		{"flipped bit", flipped, ErrChecksum},
		{"truncated", truncated, huffmanblock.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Read error = %v, want %v", err, tt.want)
			}
		})
	}
}
