// Package metrics is a small Prometheus-text metrics registry for the
// simulation worker: counters, float gauges, and duration histograms
// exposed over an HTTP /metrics handler. The worker's handful of series
// does not justify a client-library dependency.
package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultBuckets cover simulation latencies from sub-millisecond single
// operating points to multi-second boundary sweeps.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Counter is a monotonically increasing counter.
type Counter struct {
	mu  sync.Mutex
	val float64
}

func (c *Counter) Inc() { c.Add(1) }

func (c *Counter) Add(delta float64) {
	c.mu.Lock()
	c.val += delta
	c.mu.Unlock()
}

func (c *Counter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val
}

// Gauge holds an instantaneous value.
type Gauge struct {
	mu  sync.Mutex
	val float64
}

func (g *Gauge) Set(v float64) {
	g.mu.Lock()
	g.val = v
	g.mu.Unlock()
}

func (g *Gauge) Add(delta float64) {
	g.mu.Lock()
	g.val += delta
	g.mu.Unlock()
}

func (g *Gauge) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.val
}

// Histogram accumulates observations into fixed buckets.
type Histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64 // per-bucket; Render accumulates cumulatively
	sum     float64
	count   uint64
}

// Observe records one value.
func (h *Histogram) Observe(v float64) {
	h.mu.Lock()
	h.sum += v
	h.count++
	for i, b := range h.buckets {
		if v <= b {
			h.counts[i]++
			break
		}
	}
	h.mu.Unlock()
}

// Since observes the seconds elapsed from t.
func (h *Histogram) Since(t time.Time) { h.Observe(time.Since(t).Seconds()) }

func (h *Histogram) snapshot() ([]float64, []uint64, float64, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c := make([]uint64, len(h.counts))
	copy(c, h.counts)
	return h.buckets, c, h.sum, h.count
}

type series struct {
	name string // full name including any baked-in labels
	typ  string
	help string
}

// Registry holds named metrics and renders them in the Prometheus text
// exposition format, in registration order.
type Registry struct {
	mu         sync.RWMutex
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
	order      []series
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		counters:   make(map[string]*Counter),
		gauges:     make(map[string]*Gauge),
		histograms: make(map[string]*Histogram),
	}
}

// Counter returns (or creates) the named counter. Label pairs are baked into
// the name with Label so each combination is a distinct series.
func (r *Registry) Counter(name, help string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.counters[name]; ok {
		return c
	}
	c := &Counter{}
	r.counters[name] = c
	r.order = append(r.order, series{name, "counter", help})
	return c
}

// Gauge returns (or creates) the named gauge.
func (r *Registry) Gauge(name, help string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.gauges[name]; ok {
		return g
	}
	g := &Gauge{}
	r.gauges[name] = g
	r.order = append(r.order, series{name, "gauge", help})
	return g
}

// Histogram returns (or creates) the named histogram. A nil bucket slice
// selects DefaultBuckets.
func (r *Registry) Histogram(name, help string, buckets []float64) *Histogram {
	if buckets == nil {
		buckets = DefaultBuckets
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.histograms[name]; ok {
		return h
	}
	b := make([]float64, len(buckets))
	copy(b, buckets)
	sort.Float64s(b)
	h := &Histogram{buckets: b, counts: make([]uint64, len(b))}
	r.histograms[name] = h
	r.order = append(r.order, series{name, "histogram", help})
	return h
}

// Label bakes label pairs into a metric name:
// Label("jobs_total", "topology", "dab_single") => `jobs_total{topology="dab_single"}`.
func Label(name string, kvs ...string) string {
	if len(kvs) == 0 || len(kvs)%2 != 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('{')
	for i := 0; i < len(kvs); i += 2 {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%q", kvs[i], kvs[i+1])
	}
	b.WriteByte('}')
	return b.String()
}

func baseName(name string) string {
	if i := strings.IndexByte(name, '{'); i != -1 {
		return name[:i]
	}
	return name
}

func labelSuffix(name string) string {
	if i := strings.IndexByte(name, '{'); i != -1 {
		return name[i:]
	}
	return ""
}

// Render emits all metrics. HELP/TYPE lines appear once per base name even
// when several labeled series share it.
func (r *Registry) Render() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	headered := make(map[string]bool)
	for _, s := range r.order {
		base := baseName(s.name)
		if !headered[base] {
			headered[base] = true
			if s.help != "" {
				fmt.Fprintf(&b, "# HELP %s %s\n", base, s.help)
			}
			fmt.Fprintf(&b, "# TYPE %s %s\n", base, s.typ)
		}

		switch s.typ {
		case "counter":
			fmt.Fprintf(&b, "%s %g\n", s.name, r.counters[s.name].Value())
		case "gauge":
			fmt.Fprintf(&b, "%s %g\n", s.name, r.gauges[s.name].Value())
		case "histogram":
			renderHistogram(&b, s.name, r.histograms[s.name])
		}
	}
	return b.String()
}

func renderHistogram(b *strings.Builder, name string, h *Histogram) {
	buckets, counts, sum, count := h.snapshot()
	base := baseName(name)
	labels := labelSuffix(name)

	// Merge le into any existing label set.
	le := func(v string) string {
		if labels == "" {
			return fmt.Sprintf("{le=%q}", v)
		}
		return labels[:len(labels)-1] + fmt.Sprintf(",le=%q}", v)
	}

	var cumulative uint64
	for i, bk := range buckets {
		cumulative += counts[i]
		fmt.Fprintf(b, "%s_bucket%s %d\n", base, le(fmt.Sprintf("%g", bk)), cumulative)
	}
	fmt.Fprintf(b, "%s_bucket%s %d\n", base, le("+Inf"), count)
	fmt.Fprintf(b, "%s_sum%s %g\n", base, labels, sum)
	fmt.Fprintf(b, "%s_count%s %d\n", base, labels, count)
}

// Handler serves the rendered registry.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.Write([]byte(r.Render()))
	})
}
