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
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("AAAA"))
	f.Add([]byte("AABBBC"))
	f.Add([]byte{0x00, 0xff, 'a', 0x00})
	f.Add(fullRange())
	f.Fuzz(func(t *testing.T, src []byte) {
		data, err := Compress(src).MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		var r Result
		if err := r.UnmarshalBinary(data); err != nil {
			t.Fatal(err)
		}
		got, err := Decompress(&r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("round trip of %x gave %x", src, got)
		}
	})
}

func FuzzUnmarshal(f *testing.F) {
	for _, s := range []string{"", "AAAA", "AABBBC", "abracadabra"} {
		data, _ := Compress([]byte(s)).MarshalBinary()
		f.Add(data)
	}
	f.Add([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x40, 0x00, 0xa0, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		var r Result
		if err := r.UnmarshalBinary(data); err != nil {
			return
		}
		if r.Len() > 1<<20 {
			return
		}
		Decompress(&r)
	})
}
