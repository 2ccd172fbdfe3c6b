// Times the competing nmodpoly algorithm variants against each other over
// a ladder of lengths, reports the observed crossover points, and renders
// the timing curves to an HTML page.
//
// The default modulus is a 61-bit prime; the Taylor shift and
// interpolation comparisons assume a prime modulus larger than the
// largest length.
package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/vneiger/flint2/nmod"
	"github.com/vneiger/flint2/nmodpoly"
	"github.com/vneiger/flint2/utils"
	"github.com/vneiger/flint2/utils/sampling"
)

// Timing sinks, so the measured calls cannot be elided.
var (
	sink    nmodpoly.Poly
	sinkRem nmodpoly.Poly
	sinkVec []uint64
)

type timedFunc struct {
	name string
	fn   func()
}

type comparison struct {
	name string
	// maxLen caps the length ladder for expensive variants; 0 means the
	// -maxlen flag value.
	maxLen  int
	prepare func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc
}

var comparisons = []comparison{
	{
		name: "Mul",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			a := nmodpoly.RandTestMonic(mod, prng, n)
			b := nmodpoly.RandTestMonic(mod, prng, n)
			return []timedFunc{
				{"classical", func() { sink = a.MulClassical(b) }},
				{"kronecker", func() { sink = a.MulKS(b) }},
			}
		},
	},
	{
		name: "DivRem",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			a := nmodpoly.RandTestMonic(mod, prng, 2*n-1)
			d := nmodpoly.RandTestMonic(mod, prng, n)
			return []timedFunc{
				{"basecase", func() { sink, sinkRem = a.DivRemBasecase(d) }},
				{"divconquer", func() { sink, sinkRem = a.DivRemDivConquer(d) }},
				{"newton", func() { sink, sinkRem = a.DivRemNewton(d) }},
			}
		},
	},
	{
		name: "InvSeries",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			f := nmodpoly.RandTestMonic(mod, prng, n)
			f.SetCoeff(0, 1)
			return []timedFunc{
				{"basecase", func() { sink = f.InvSeriesBasecase(n) }},
				{"newton", func() { sink = f.InvSeriesNewton(n) }},
			}
		},
	},
	{
		name:   "Compose",
		maxLen: 64,
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			f := nmodpoly.RandTestMonic(mod, prng, n)
			g := nmodpoly.RandTestMonic(mod, prng, n)
			return []timedFunc{
				{"horner", func() { sink = f.ComposeHorner(g) }},
				{"divconquer", func() { sink = f.ComposeDivConquer(g) }},
			}
		},
	},
	{
		name: "TaylorShift",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			p := nmodpoly.RandTestMonic(mod, prng, n)
			c := smp.Next()
			return []timedFunc{
				{"horner", func() { sink = p.TaylorShiftHorner(c) }},
				{"convolution", func() { sink = p.TaylorShiftConvolution(c) }},
			}
		},
	},
	{
		name: "EvaluateVec",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			p := nmodpoly.RandTestMonic(mod, prng, n)
			xs := smp.ReadNew(n)
			return []timedFunc{
				{"horner", func() { sinkVec = p.EvaluateVec(xs) }},
				{"tree", func() { sinkVec = p.EvaluateVecFast(xs) }},
			}
		},
	},
	{
		name: "Interpolate",
		prepare: func(mod nmod.Modulus, smp *nmod.UniformSampler, prng sampling.PRNG, n int) []timedFunc {
			xs := make([]uint64, n)
			for i := range xs {
				xs[i] = uint64(i)
			}
			ys := smp.ReadNew(n)
			return []timedFunc{
				{"newton", func() { sink = nmodpoly.InterpolateNewton(mod, xs, ys) }},
				{"barycentric", func() { sink = nmodpoly.InterpolateBarycentric(mod, xs, ys) }},
				{"tree", func() { sink = nmodpoly.InterpolateFast(mod, xs, ys) }},
			}
		},
	},
}

func lengthLadder(max int) []int {
	var ns []int
	for n := 4; n <= max; n = utils.Max(n+1, n*5/4) {
		ns = append(ns, n)
	}
	return ns
}

// timeVariant reports the median and standard deviation, in microseconds,
// of reps timed runs after one warmup run.
func timeVariant(fn func(), reps int) (median, stddev float64) {
	fn()
	samples := make([]float64, reps)
	for i := range samples {
		start := time.Now()
		fn()
		samples[i] = float64(time.Since(start).Nanoseconds()) / 1e3
	}
	median, _ = stats.Median(samples)
	stddev, _ = stats.StandardDeviation(samples)
	return
}

// crossoverLength returns the first ladder length from which cand stays
// below base through the end of the ladder, or 0 if it never does.
func crossoverLength(lengths []int, base, cand []float64) int {
	for i := range lengths {
		j := i
		for j < len(lengths) && cand[j] < base[j] {
			j++
		}
		if j == len(lengths) {
			return lengths[i]
		}
	}
	return 0
}

func buildChart(name string, lengths []int, order []string, medians map[string][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: "median time per call (us)"}),
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "length"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "us", Type: "log"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	x := make([]string, len(lengths))
	for i, n := range lengths {
		x[i] = strconv.Itoa(n)
	}
	line.SetXAxis(x)
	for _, variant := range order {
		items := make([]opts.LineData, len(medians[variant]))
		for i, v := range medians[variant] {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(variant, items)
	}
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func main() {
	var (
		modulus = flag.Uint64("modulus", 0x1fffffffffe00001, "word-sized modulus")
		maxLen  = flag.Int("maxlen", 1024, "largest polynomial length to time")
		reps    = flag.Int("reps", 15, "timed repetitions per point")
		out     = flag.String("out", "nmodpoly_profile.html", "output HTML report")
		verbose = flag.Bool("v", false, "log every timed point")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	} else {
		log = log.Level(zerolog.DebugLevel)
	}

	if *maxLen < 4 {
		log.Fatal().Int("maxlen", *maxLen).Msg("maxlen must be at least 4")
	}
	mod, err := nmod.NewModulus(*modulus)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid modulus")
	}
	prng, err := sampling.NewPRNG()
	if err != nil {
		log.Fatal().Err(err).Msg("prng")
	}
	smp := nmod.NewUniformSampler(prng, mod)

	page := components.NewPage().SetPageTitle("nmodpoly crossovers")

	for _, cmp := range comparisons {
		limit := cmp.maxLen
		if limit == 0 || limit > *maxLen {
			limit = *maxLen
		}
		lengths := lengthLadder(limit)

		var order []string
		medians := make(map[string][]float64)
		for _, n := range lengths {
			variants := cmp.prepare(mod, smp, prng, n)
			if order == nil {
				for _, v := range variants {
					order = append(order, v.name)
				}
			}
			for _, v := range variants {
				med, dev := timeVariant(v.fn, *reps)
				medians[v.name] = append(medians[v.name], med)
				log.Debug().
					Str("comparison", cmp.name).
					Str("variant", v.name).
					Int("length", n).
					Float64("median_us", med).
					Float64("stddev_us", dev).
					Msg("timed")
			}
		}

		for _, variant := range order[1:] {
			if n := crossoverLength(lengths, medians[order[0]], medians[variant]); n > 0 {
				log.Info().
					Str("comparison", cmp.name).
					Str("variant", variant).
					Int("length", n).
					Msgf("beats %s from this length on", order[0])
			} else {
				log.Info().
					Str("comparison", cmp.name).
					Str("variant", variant).
					Msgf("never beats %s on this ladder", order[0])
			}
		}

		page.AddCharts(buildChart(cmp.name, lengths, order, medians))
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Msg("create report")
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatal().Err(err).Msg("render report")
	}
	log.Info().Str("path", *out).Msg("wrote report")
}
