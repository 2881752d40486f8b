// Command gen_golden rewrites the .golden preview next to every .fb source in
// the given directories.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/forthbyte/internal/compiler"
)

func main() {
	var samples int
	flag.IntVar(&samples, "n", 16, "samples per channel to preview")
	flag.Parse()

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"testdata"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	for _, dir := range dirs {
		sources, err := filepath.Glob(filepath.Join(dir, "*.fb"))
		if err != nil {
			log.Fatalln(err)
		}
		for _, source := range sources {
			source := source
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return generate(source, samples)
			})
		}
	}
	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func generate(source string, samples int) error {
	src, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	prog, err := compiler.Compile(string(src))
	if err != nil {
		return fmt.Errorf("%v: %w", source, err)
	}

	var buf bytes.Buffer
	compiler.Preview(&buf, prog, samples)
	golden := strings.TrimSuffix(source, ".fb") + ".golden"
	if err := os.WriteFile(golden, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %v", golden)
	return nil
}
