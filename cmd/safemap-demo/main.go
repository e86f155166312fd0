// Command safemap-demo drives a Map under concurrent readers and writers,
// printing a stats snapshot at the end — a small stress harness for
// exercising the reference-count/tombstone protocol the way the
// concurrency tests do, but over a configurable duration and goroutine
// count for manual soak testing.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Krishna8167/safemap"
)

func main() {
	var (
		writers  = pflag.Int("writers", 4, "number of concurrent writer goroutines")
		readers  = pflag.Int("readers", 4, "number of concurrent reader goroutines")
		keyspace = pflag.Int("keyspace", 1000, "number of distinct keys to spread writes over")
		duration = pflag.Duration("duration", 3*time.Second, "how long to run the stress workload")
		verbose  = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	m := safemap.New[int, string, safemap.ForwardThenBackward, safemap.Linear](
		safemap.WithLogger[int, string](logger),
		safemap.WithCleanupInterval[int, string](500 * time.Millisecond),
	)
	defer m.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	for i := 0; i < *writers; i++ {
		g.Go(func() error {
			return runWriter(ctx, m, *keyspace)
		})
	}
	for i := 0; i < *readers; i++ {
		g.Go(func() error {
			return runReader(ctx, m, *keyspace)
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "safemap-demo:", err)
		os.Exit(1)
	}

	stats := m.Stats()
	fmt.Printf("size=%d hits=%d misses=%d tombstones_collected=%d\n",
		m.Size(), stats.Hits, stats.Misses, stats.TombstonesCollected)
}

func runWriter(ctx context.Context, m *safemap.Map[int, string, safemap.ForwardThenBackward, safemap.Linear], keyspace int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		key := rand.Intn(keyspace)
		if rand.Intn(2) == 0 {
			it, _ := m.Insert(key, fmt.Sprintf("v%d", key))
			it.Close()
		} else {
			m.Erase(key)
		}
	}
}

func runReader(ctx context.Context, m *safemap.Map[int, string, safemap.ForwardThenBackward, safemap.Linear], keyspace int) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		key := rand.Intn(keyspace)
		it := m.Find(key)
		if _, err := it.Value(); err == nil {
			it.Next()
		}
		it.Close()
	}
}
