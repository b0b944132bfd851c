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

// Command huffpack compresses files with static Huffman coding.
//
//	huffpack [-o dir] [-j n] [-codes] [-v] file...
//	huffpack -d [-o dir] [-j n] [-v] file...
//
// Compressing "name" writes "compressed_name", decompressing writes
// "decompressed_name", next to the input unless -o is given.
package main

import "context"
import "flag"
import "fmt"
import "io"
import "log"
import "os"
import "path/filepath"
import "runtime"
import "sync"
import "github.com/icza/huffman"
import "github.com/maxymania/huffpack/huffarchive"
import "github.com/maxymania/huffpack/huffmanblock"
import "golang.org/x/sync/errgroup"
import "golang.org/x/text/language"
import "golang.org/x/text/message"

const (
	compressedPrefix   = "compressed_"
	decompressedPrefix = "decompressed_"
)

type config struct {
	decompress bool
	outDir     string
	jobs       int
	codes      bool
	verbose    bool
}

func main() {
	var cfg config
	flag.BoolVar(&cfg.decompress, "d", false, "decompress instead of compress")
	flag.StringVar(&cfg.outDir, "o", "", "output directory (default: next to each input)")
	flag.IntVar(&cfg.jobs, "j", runtime.NumCPU(), "number of files processed in parallel")
	flag.BoolVar(&cfg.codes, "codes", false, "print the code table of every compressed file")
	flag.BoolVar(&cfg.verbose, "v", false, "log sizes of every file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-d] [-o dir] [-j n] [-codes] [-v] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("huffpack: ")

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(context.Background(), &cfg, flag.Args()); err != nil {
		os.Exit(1)
	}
}

type packer struct {
	cfg *config
	p   *message.Printer
	mu  sync.Mutex // serializes code table output
}

// run processes all files and returns the first error. Every failure is
// logged; files already scheduled when a failure occurs are still finished.
func run(ctx context.Context, cfg *config, files []string) error {
	pk := &packer{cfg: cfg, p: message.NewPrinter(language.English)}
	g, ctx := errgroup.WithContext(ctx)
	if cfg.jobs > 0 {
		g.SetLimit(cfg.jobs)
	}
	for _, f := range files {
		f := f
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var err error
			if cfg.decompress {
				err = pk.decompressFile(f)
			} else {
				err = pk.compressFile(f)
			}
			if err != nil {
				log.Print(err)
			}
			return err
		})
	}
	return g.Wait()
}

func (pk *packer) output(in, prefix string) string {
	dir := pk.cfg.outDir
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, prefix+filepath.Base(in))
}

func (pk *packer) compressFile(in string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	r := huffmanblock.Compress(data)
	if pk.cfg.codes {
		pk.printCodes(in, r)
	}
	out := pk.output(in, compressedPrefix)
	var st huffarchive.Stats
	err = writeFile(out, func(w io.Writer) (e error) {
		st, e = huffarchive.WriteResult(w, r, huffarchive.Sum(data))
		return
	})
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if pk.cfg.verbose {
		log.Print(pk.p.Sprintf("%s: %d -> %d bytes (%.1f%%), %d symbols, %d bits",
			in, st.In, st.Out, st.Ratio()*100, st.Symbols, st.Bits))
	}
	return nil
}

func (pk *packer) decompressFile(in string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	data, err := huffarchive.Read(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	out := pk.output(in, decompressedPrefix)
	err = writeFile(out, func(w io.Writer) error {
		_, e := w.Write(data)
		return e
	})
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if pk.cfg.verbose {
		log.Print(pk.p.Sprintf("%s: %d bytes", out, len(data)))
	}
	return nil
}

func (pk *packer) printCodes(name string, r *huffmanblock.Result) {
	pk.mu.Lock()
	defer pk.mu.Unlock()
	fmt.Printf("%s:\n", name)
	if r.Root() == nil {
		return
	}
	huffman.Print(r.Root())
}

// writeFile writes path through a temporary file in the same directory,
// so a failed write never leaves a partial output behind.
func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".huffpack-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err = f.Chmod(0644); err == nil {
		err = fn(f)
	}
	if err == nil {
		err = f.Sync()
	}
	if e := f.Close(); err == nil {
		err = e
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
