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

import (
	"errors"
	"testing"
)

func TestParsePayload(t *testing.T) {
	for _, s := range []string{"", "0", "1", "10110011", "101100111", "0000000000000001"} {
		p, err := ParsePayload(s)
		if err != nil {
			t.Fatalf("ParsePayload(%q): %v", s, err)
		}
		if p.Len() != int64(len(s)) || p.String() != s {
			t.Errorf("ParsePayload(%q) = %s (%d bits)", s, p, p.Len())
		}
		if len(p.Bytes()) != (len(s)+7)/8 {
			t.Errorf("ParsePayload(%q) packs into %d bytes", s, len(p.Bytes()))
		}
	}
	for _, s := range []string{"2", "01x", "0 1"} {
		if _, err := ParsePayload(s); !errors.Is(err, ErrMalformed) {
			t.Errorf("ParsePayload(%q) error = %v, want ErrMalformed", s, err)
		}
	}
}

func TestNewPayload(t *testing.T) {
	p, err := NewPayload([]byte{0xb3, 0xff}, 9)
	if err != nil {
		t.Fatal(err)
	}
	if p.String() != "101100111" {
		t.Errorf("NewPayload = %s", p)
	}
	if p.Bytes()[1] != 0x80 {
		t.Errorf("padding bits not cleared: %#02x", p.Bytes()[1])
	}
	if _, err := NewPayload([]byte{0xff}, 9); !errors.Is(err, ErrMalformed) {
		t.Errorf("NewPayload of 9 bits in 1 byte: error = %v", err)
	}
}

func TestNewResultRejectsBadTrees(t *testing.T) {
	r := Compress([]byte("AABBBC"))
	inner := r.Root().Left
	right := inner.Right
	inner.Right = nil
	if _, err := NewResult(r.Root(), r.Payload(), r.Len()); !errors.Is(err, ErrMalformed) {
		t.Errorf("NewResult with single child node: error = %v", err)
	}
	inner.Right = r.Root().Right
	if _, err := NewResult(r.Root(), r.Payload(), r.Len()); !errors.Is(err, ErrMalformed) {
		t.Errorf("NewResult with duplicate symbol: error = %v", err)
	}
	inner.Right = right
	if _, err := NewResult(r.Root(), r.Payload(), -1); !errors.Is(err, ErrMalformed) {
		t.Errorf("NewResult with negative count: error = %v", err)
	}
	if _, err := NewResult(r.Root(), r.Payload(), r.Len()); err != nil {
		t.Errorf("NewResult: %v", err)
	}
}

func TestCodeString(t *testing.T) {
	tests := []struct {
		c    Code
		want string
	}{
		{Code{}, ""},
		{Code{0, 1}, "0"},
		{Code{5, 3}, "101"},
		{Code{5, 5}, "00101"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
	if !(Code{5, 3}).HasPrefix(Code{1, 1}) || (Code{5, 3}).HasPrefix(Code{0, 1}) {
		t.Error("HasPrefix")
	}
	if !(Code{5, 3}).HasPrefix(Code{}) {
		t.Error("empty code is a prefix of every code")
	}
}
