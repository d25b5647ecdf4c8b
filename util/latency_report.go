package util

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

type LatencyReportOpts struct {
	Name      string
	Unit      string // printed after each value, e.g. "us"
	Samples   int64  // report and reset after this many samples
	MinPct    float64
	Min       int64
	Max       int64
	Precision int
	Writer    io.Writer
}

// LatencyReport accumulates samples in a HDR histogram and prints a
// percentile summary with a bar chart of the distribution every
// opts.Samples samples.
type LatencyReport struct {
	opts LatencyReportOpts

	hdr  *hdrhistogram.Histogram
	tabw *tabwriter.Writer
	n    int
}

func NewLatencyReport(opts LatencyReportOpts) *LatencyReport {
	if opts.Min < 1 {
		opts.Min = 1
	}
	if opts.Max <= opts.Min {
		opts.Max = opts.Min * 10
	}
	if opts.Precision < 1 || opts.Precision > 5 {
		opts.Precision = 2
	}
	if opts.Samples <= 0 {
		opts.Samples = 1024
	}

	r := &LatencyReport{
		opts: opts,
		hdr:  hdrhistogram.New(opts.Min, opts.Max, opts.Precision),
	}
	if opts.Writer != nil {
		r.tabw = tabwriter.NewWriter(opts.Writer, 2, 2, 2, ' ', 0)
	}
	return r
}

// Add records xs, clamping each to the histogram's range.
func (r *LatencyReport) Add(xs ...int64) {
	for _, x := range xs {
		if x < r.opts.Min {
			x = r.opts.Min
		} else if x > r.opts.Max {
			x = r.opts.Max
		}
		_ = r.hdr.RecordValue(x)
	}
	if r.hdr.TotalCount() >= r.opts.Samples {
		r.n++
		r.report()
		r.hdr.Reset()
	}
}

// Reported is the number of reports emitted so far.
func (r *LatencyReport) Reported() int {
	return r.n
}

func (r *LatencyReport) report() {
	if r.tabw == nil {
		return
	}

	w := r.opts.Writer
	fmt.Fprintf(w, "%v latency report=%d name=%s samples=%d unit=%s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		r.n, r.opts.Name, r.hdr.TotalCount(), r.opts.Unit,
	)
	fmt.Fprintf(w, "min/avg/max/stddev = %d/%.3f/%d/%.3f %s\n",
		r.hdr.Min(), r.hdr.Mean(), r.hdr.Max(), r.hdr.StdDev(), r.opts.Unit)
	for _, p := range [...]float64{50, 90, 99, 99.9} {
		fmt.Fprintf(w, "p%g=%d %s\n", p, r.hdr.ValueAtPercentile(p), r.opts.Unit)
	}

	total := float64(r.hdr.TotalCount())
	var maxCount int64
	for _, bin := range r.hdr.Distribution() {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	for _, bin := range r.hdr.Distribution() {
		pct := float64(bin.Count) * 100.0 / total
		if bin.Count == 0 || pct < r.opts.MinPct {
			continue
		}

		bar := int(math.Ceil(float64(bin.Count) * 20 / float64(maxCount)))
		to := bin.To
		if bin.From == to {
			to++
		}
		fmt.Fprintf(r.tabw, "%d-%d %s\t%.3g%%\t%s\t%d\n",
			bin.From, to, r.opts.Unit, pct, strings.Repeat("|", bar), bin.Count)
	}

	_ = r.tabw.Flush()
}
