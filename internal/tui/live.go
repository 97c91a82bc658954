package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/jominkmathew/neonfolio/internal/feed"
)

const (
	width       = 70
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// ErrInterval is returned by Run for a non-positive frame interval.
var ErrInterval = errors.New("tui: frame interval must be positive")

// LiveRenderer prints the simulated feeds as a plain dashboard, one frame
// per tick, for terminals without the interactive program.
type LiveRenderer struct {
	out   io.Writer
	clear bool

	metrics    *feed.ServerMetrics
	api        *feed.APILog
	git        *feed.GitFeed
	db         *feed.DBQueries
	containers *feed.Containers
	feeds      []feed.Feed
	due        map[string]time.Time
	frames     int
}

// NewLiveRenderer writes frames to out. With clear set each frame repaints
// the screen instead of scrolling.
func NewLiveRenderer(out io.Writer, rng *rand.Rand, clear bool) *LiveRenderer {
	r := &LiveRenderer{
		out:        out,
		clear:      clear,
		metrics:    feed.NewServerMetrics(rng),
		api:        feed.NewAPILog(),
		git:        feed.NewGitFeed(rng),
		db:         feed.NewDBQueries(),
		containers: feed.NewContainers(rng),
		due:        make(map[string]time.Time),
	}
	r.feeds = []feed.Feed{r.metrics, r.api, r.git, r.db, r.containers}
	return r
}

func (r *LiveRenderer) Start(now time.Time) {
	for _, f := range r.feeds {
		f.Start(now)
		r.due[f.Name()] = now.Add(f.Interval())
	}
	if r.clear {
		fmt.Fprint(r.out, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.clear {
		fmt.Fprint(r.out, showCursor)
	}
}

// Advance ticks every feed whose interval has elapsed by now and reports
// how many fired.
func (r *LiveRenderer) Advance(now time.Time) int {
	fired := 0
	for _, f := range r.feeds {
		for !now.Before(r.due[f.Name()]) {
			f.Tick(r.due[f.Name()])
			r.due[f.Name()] = r.due[f.Name()].Add(f.Interval())
			fired++
		}
	}
	return fired
}

// Frames counts rendered frames.
func (r *LiveRenderer) Frames() int { return r.frames }

func (r *LiveRenderer) Render(now time.Time) string {
	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  live systems  %s  uptime %s\n", now.Format("15:04:05"), r.metrics.Uptime())
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, k := range feed.Metrics {
		lo, hi := r.metrics.Bounds(k)
		v := r.metrics.Value(k)
		filled := int((v - lo) / (hi - lo) * 20)
		fmt.Fprintf(&b, "  %-5s [%s%s] %5.1f\n", k, strings.Repeat("#", filled), strings.Repeat(".", 20-filled), v)
	}
	if chart := metricChart(r.metrics.History(feed.CPU), feed.CPU, width-10); chart != "" {
		b.WriteString(indent(chart) + "\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, c := range r.api.Entries() {
		fmt.Fprintf(&b, "  %s %-6s %-38s %s %s\n", c.Timestamp(), c.Method, c.URL, c.Status, c.Latency)
	}
	for _, c := range r.git.Entries() {
		fmt.Fprintf(&b, "  %s %s (%s)\n", c.Hash, c.Msg, c.Age)
	}
	for _, q := range r.db.Entries() {
		fmt.Fprintf(&b, "  %s  %s %s\n", q.SQL, q.Rows, q.Latency)
	}
	for _, c := range r.containers.Snapshot(now) {
		fmt.Fprintf(&b, "  %-15s :%-5d %s\n", c.Name, c.Port, c.Status)
	}
	return b.String()
}

// Run prints ticks frames, one every interval. A non-positive ticks runs
// until ctx is done.
func (r *LiveRenderer) Run(ctx context.Context, ticks int, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInterval, interval)
	}
	r.Start(time.Now())
	defer r.Stop()

	t := time.NewTicker(interval)
	defer t.Stop()
	for ticks <= 0 || r.frames < ticks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			r.Advance(now)
			if _, err := io.WriteString(r.out, r.Render(now)); err != nil {
				return err
			}
			r.frames++
		}
	}
	return nil
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
