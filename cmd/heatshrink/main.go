package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/embedstream/heatshrink"
)

func main() {
	var (
		window    = flag.Int("window", 8, "window size in bits (4..15)")
		lookahead = flag.Int("lookahead", 4, "lookahead size in bits (3..window-1)")
		decode    = flag.Bool("d", false, "decompress stdin instead of compressing")
		indexed   = flag.Bool("indexed", false, "use the indexed (hash-chain) search backend")
	)
	flag.Parse()

	params := heatshrink.Params{Window: uint8(*window), Lookahead: uint8(*lookahead)}

	in, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("read stdin: %v", err)
	}

	var opts []heatshrink.Option
	if *indexed {
		opts = append(opts, heatshrink.WithIndexedSearch())
	}

	if *decode {
		out, err := heatshrink.Decompress(params, in, opts...)
		if err != nil {
			log.Fatalf("decompress: %v", err)
		}
		os.Stdout.Write(out)
		return
	}

	out, err := heatshrink.Compress(params, in, opts...)
	if err != nil {
		log.Fatalf("compress: %v", err)
	}
	if len(in) > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d -> %d bytes (%.1f%%)\n", params, len(in), len(out),
			100*float64(len(out))/float64(len(in)))
	}
	os.Stdout.Write(out)
}
