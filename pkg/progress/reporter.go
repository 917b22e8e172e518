package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultInterval is how often the reporter repaints a transfer line.
const DefaultInterval = 500 * time.Millisecond

// Reporter renders transfer progress as a single repainted terminal line per
// transfer. It is safe for use from multiple transfers at once, though
// snapfetch drives transfers sequentially.
type Reporter struct {
	out      io.Writer
	interval time.Duration

	mu        sync.Mutex
	lastPaint map[string]time.Time
	started   map[string]time.Time
}

// NewReporter creates a Reporter writing to out, repainting at most once per
// interval per transfer. A zero interval uses DefaultInterval.
func NewReporter(out io.Writer, interval time.Duration) *Reporter {
	if interval == 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		out:       out,
		interval:  interval,
		lastPaint: make(map[string]time.Time),
		started:   make(map[string]time.Time),
	}
}

// Sink returns the Sink to inject into the acquisition engine.
func (r *Reporter) Sink() Sink {
	return func(u Update) {
		r.mu.Lock()
		defer r.mu.Unlock()

		now := time.Now()
		if _, ok := r.started[u.Name]; !ok {
			r.started[u.Name] = now
		}
		if last, ok := r.lastPaint[u.Name]; ok && now.Sub(last) < r.interval {
			return
		}
		r.lastPaint[u.Name] = now
		r.paint(u, now)
	}
}

// Done finalizes the progress line for a transfer and prints a newline.
func (r *Reporter) Done(name string, total int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started, ok := r.started[name]
	if !ok {
		started = time.Now()
	}
	r.paint(Update{Name: name, Position: total, Total: total}, time.Now())
	fmt.Fprintf(r.out, " in %s\n", time.Since(started).Round(time.Second))

	delete(r.lastPaint, name)
	delete(r.started, name)
}

func (r *Reporter) paint(u Update, now time.Time) {
	if u.Total > 0 {
		percent := float64(u.Position) / float64(u.Total) * 100
		fmt.Fprintf(r.out, "\r%s: %s / %s (%.1f%%)",
			u.Name,
			humanize.IBytes(uint64(u.Position)),
			humanize.IBytes(uint64(u.Total)),
			percent,
		)
		return
	}
	fmt.Fprintf(r.out, "\r%s: %s", u.Name, humanize.IBytes(uint64(u.Position)))
}
