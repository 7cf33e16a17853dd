package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/treeparty/reactivity"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
)

var profile = flag.String("profile", "", "write a CPU profile to this file")

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagation(false)
	benchmarkFanOut(false)

	benchmarkPropagation(true)
	benchmarkFanOut(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func newSystem() *reactivity.ReactiveSystem {
	return reactivity.CreateReactiveSystem(func(from *reactivity.Effect, err error) {
		log.Panic(err)
	})
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRow(table.Row{
		name,
		calc.Time.Avg,
		calc.Time.Min,
		calc.Time.P75,
		calc.Time.P99,
		calc.Time.Max,
	})
}

// benchmarkPropagation builds w chains of h computed values over one ref,
// each ending in an effect, and times a write to the ref.
func benchmarkPropagation(shouldRender bool) {
	getValue := func(x any) int {
		switch x := x.(type) {
		case *reactivity.RefImpl:
			return x.Value().(int) + 1
		case *reactivity.ComputedRef[int]:
			return x.Value() + 1
		default:
			panic("unknown type")
		}
	}

	tbl := newTable("Propagation")
	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rs := newSystem()
			src := reactivity.Ref(rs, 1)
			for i := 0; i < w; i++ {
				var last any = src
				for j := 0; j < h; j++ {
					prev := last
					last = reactivity.Computed(rs, func() int {
						return getValue(prev)
					})
				}

				if _, err := reactivity.NewEffect(rs, func() error {
					getValue(last)
					return nil
				}); err != nil {
					log.Fatal(err)
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value().(int) + 1)
				tach.AddTime(time.Since(start))
			}

			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

// benchmarkFanOut subscribes n effects to one key of a reactive object and
// times a write to that key.
func benchmarkFanOut(shouldRender bool) {
	tbl := newTable("Object fan-out")
	for _, n := range []int{1, 10, 100, 1_000, 10_000} {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		rs := newSystem()
		obj := reactivity.Reactive(rs, reactivity.ObjectOf(map[string]any{"n": 0}))
		for i := 0; i < n; i++ {
			if _, err := reactivity.NewEffect(rs, func() error {
				obj.Get("n")
				return nil
			}); err != nil {
				log.Fatal(err)
			}
		}

		for i := 0; i < iters; i++ {
			start := time.Now()
			obj.Set("n", i+1)
			tach.AddTime(time.Since(start))
		}

		appendCalc(tbl, fmt.Sprintf("fan-out: %d effects", n), tach)
	}

	if shouldRender {
		tbl.Render()
	}
}
