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

// Histogram holds the number of occurrences of every byte value.
type Histogram [256]int

// Scan resets h and counts the bytes of src.
func (h *Histogram) Scan(src []byte) {
	for i := range h {
		h[i] = 0
	}
	for _, b := range src {
		h[b]++
	}
}

// Symbols returns the number of distinct byte values counted.
func (h *Histogram) Symbols() (n int) {
	for _, c := range h {
		if c > 0 {
			n++
		}
	}
	return
}

// Total returns the number of bytes counted.
func (h *Histogram) Total() (total int64) {
	for _, c := range h {
		total += int64(c)
	}
	return
}

// Cost returns the payload size in bits of the counted data under t.
func (h *Histogram) Cost(t *CodeTable) (total int64) {
	for i, n := range h {
		total += int64(t.codes[i].Len) * int64(n)
	}
	return
}
