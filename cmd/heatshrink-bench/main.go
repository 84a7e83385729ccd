// Command heatshrink-bench sweeps a range of window/lookahead parameter
// combinations against an input file concurrently, one goroutine per
// combination, and reports the compression ratio and throughput each
// achieves. It exists to make the parameter tradeoff spec.md §6
// describes ("larger windows and lookaheads trade memory for ratio")
// something you can see rather than take on faith.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/embedstream/heatshrink"
)

type result struct {
	params heatshrink.Params
	ratio  float64
	rate   float64 // MB/s
}

func main() {
	var (
		path        = flag.String("file", "", "input file to sweep (required)")
		minWindow   = flag.Int("min-window", heatshrink.MinWindowBits, "smallest window size in bits to try")
		maxWindow   = flag.Int("max-window", 12, "largest window size in bits to try")
		concurrency = flag.Int("concurrency", 0, "max combinations run concurrently (0 = unbounded)")
	)
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "heatshrink-bench: -file is required")
		os.Exit(1)
	}
	in, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}

	var combos []heatshrink.Params
	for w := *minWindow; w <= *maxWindow; w++ {
		for l := heatshrink.MinLookaheadBits; l < w; l++ {
			combos = append(combos, heatshrink.Params{Window: uint8(w), Lookahead: uint8(l)})
		}
	}

	g, _ := errgroup.WithContext(context.Background())
	if *concurrency > 0 {
		g.SetLimit(*concurrency)
	}

	var mu sync.Mutex
	results := make([]result, 0, len(combos))
	stats := heatshrink.NewStats()

	for _, p := range combos {
		p := p
		g.Go(func() error {
			start := time.Now()
			out, err := heatshrink.Compress(p, in, heatshrink.WithStats(stats))
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			elapsed := time.Since(start).Seconds()

			mu.Lock()
			results = append(results, result{
				params: p,
				ratio:  float64(len(out)) / float64(len(in)),
				rate:   float64(len(in)) / (1 << 20) / elapsed,
			})
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ratio < results[j].ratio })

	fmt.Printf("input: %d bytes\n", len(in))
	fmt.Printf("%-10s %8s %10s\n", "params", "ratio", "MB/s")
	for _, r := range results {
		fmt.Printf("%-10s %7.1f%% %9.1f\n", r.params, 100*r.ratio, r.rate)
	}
	fmt.Printf("total literals=%d backrefs=%d backlog_shifts=%d\n",
		stats.Literals.Load(), stats.Backrefs.Load(), stats.BacklogShifts.Load())
}
