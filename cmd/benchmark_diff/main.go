package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/delaneyj/treeparty/memhost"
	"github.com/delaneyj/treeparty/reactivity"
	"github.com/delaneyj/treeparty/renderer"
	"github.com/delaneyj/treeparty/scheduler"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting reconcile benchmark, please wait...")
	defer log.Print("Finished reconcile benchmark")

	cfgs := []benchmarkTestConfig{
		{name: "append 1", size: 1_000, iterations: 200, permute: appendOne},
		{name: "remove 1", size: 1_000, iterations: 200, permute: removeOne},
		{name: "swap ends", size: 1_000, iterations: 200, permute: swapEnds},
		{name: "reverse", size: 1_000, iterations: 100, permute: reverse},
		{name: "rotate", size: 1_000, iterations: 200, permute: rotate},
		{name: "shuffle", size: 1_000, iterations: 50, permute: shuffle},
		{name: "shuffle 10%", size: 10_000, iterations: 20, permute: shuffleFraction(0.1)},
		{name: "replace all", size: 1_000, iterations: 50, permute: replaceAll},
	}

	type results struct {
		duration time.Duration
		ops      int
		moves    int
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "size", "nTimes", "time", "hostOps", "moves", "updateRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		runOnce := func() results {
			random := rand.New(rand.NewSource(0))
			host := memhost.New()
			root := host.NewContainer()
			r := renderer.New(host,
				reactivity.CreateReactiveSystem(nil),
				scheduler.New(scheduler.NewLoop()),
			)

			keys := makeKeys(0, cfg.size)
			if err := r.Render(list(keys), root); err != nil {
				log.Fatal(err)
			}
			host.Reset()

			start := time.Now()
			for i := 0; i < cfg.iterations; i++ {
				keys = cfg.permute(keys, random)
				if err := r.Render(list(keys), root); err != nil {
					log.Fatal(err)
				}
			}
			duration := time.Since(start)

			counts := host.Counts()
			return results{
				duration: duration,
				ops:      len(host.Ops()),
				moves:    counts[memhost.OpMove],
			}
		}
		// run once to warm up
		runOnce()

		best := results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			log.Printf("Running '%s' config, iteration %d/%d %d%%", cfg.name, i+1, testRepeats, (i+1)*100/testRepeats)
			res := runOnce()
			if res.duration < best.duration {
				best = res
			}
		}

		updateRate := float64(cfg.iterations) / (float64(best.duration) / float64(time.Second))

		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.size)),
			humanize.Comma(int64(cfg.iterations)),
			fmt.Sprint(best.duration),
			humanize.Comma(int64(best.ops)),
			humanize.Comma(int64(best.moves)),
			humanize.Comma(int64(updateRate)) + "/s",
		})
	}
	table.Render()
}

type permutation func(keys []string, random *rand.Rand) []string

type benchmarkTestConfig struct {
	name       string // friendly name for the test, should be unique
	size       int    // children in the keyed list
	iterations int    // renders per run
	permute    permutation
}

func list(keys []string) *renderer.VNode {
	children := make([]*renderer.VNode, len(keys))
	for i, key := range keys {
		children[i] = renderer.H("li", renderer.Props{"key": key}, key)
	}
	return renderer.H("ul", nil, children)
}

func makeKeys(from, n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(from + i)
	}
	return keys
}

var nextKey = 1 << 30

func appendOne(keys []string, _ *rand.Rand) []string {
	nextKey++
	return append(slices.Clone(keys), strconv.Itoa(nextKey))
}

func removeOne(keys []string, random *rand.Rand) []string {
	if len(keys) == 0 {
		return keys
	}
	i := random.Intn(len(keys))
	return slices.Delete(slices.Clone(keys), i, i+1)
}

func swapEnds(keys []string, _ *rand.Rand) []string {
	out := slices.Clone(keys)
	if len(out) > 1 {
		out[0], out[len(out)-1] = out[len(out)-1], out[0]
	}
	return out
}

func reverse(keys []string, _ *rand.Rand) []string {
	out := slices.Clone(keys)
	slices.Reverse(out)
	return out
}

func rotate(keys []string, _ *rand.Rand) []string {
	if len(keys) == 0 {
		return keys
	}
	return append(slices.Clone(keys[1:]), keys[0])
}

func shuffle(keys []string, random *rand.Rand) []string {
	out := slices.Clone(keys)
	random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// shuffleFraction swaps a fraction of random pairs.
func shuffleFraction(fraction float64) permutation {
	return func(keys []string, random *rand.Rand) []string {
		out := slices.Clone(keys)
		swaps := int(float64(len(out)) * fraction / 2)
		for i := 0; i < swaps; i++ {
			a, b := random.Intn(len(out)), random.Intn(len(out))
			out[a], out[b] = out[b], out[a]
		}
		return out
	}
}

func replaceAll(keys []string, _ *rand.Rand) []string {
	nextKey += len(keys)
	return makeKeys(nextKey, len(keys))
}
