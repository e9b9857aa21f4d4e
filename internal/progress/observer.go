package progress

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/phyten/emptymon/internal/textutil"
)

const (
	barWidth  = 20
	pathWidth = 40
)

// Observer receives snapshots while a scan runs. Done is called exactly once
// with the final snapshot, whether the run finished, was cancelled or failed.
type Observer interface {
	Publish(Snapshot)
	Done(Snapshot)
}

type NoopObserver struct{}

func (NoopObserver) Publish(Snapshot) {}
func (NoopObserver) Done(Snapshot)    {}

// ObserverFunc adapts a function to Observer; Done is ignored.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Publish(s Snapshot) { f(s) }
func (ObserverFunc) Done(Snapshot)        {}

// isTTY is swapped out in tests.
var isTTY = func(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ShouldShow decides whether progress is drawn. disable wins over force;
// otherwise both stdout and stderr have to be terminals so piped output stays clean.
func ShouldShow(force, disable bool) bool {
	switch {
	case disable:
		return false
	case force:
		return true
	}
	return isTTY(os.Stdout) && isTTY(os.Stderr)
}

// NewObserver redraws a single status line on a terminal and falls back to
// one key=value record per update on anything else.
func NewObserver(w io.Writer) Observer {
	if w == nil {
		w = os.Stderr
	}
	if f, ok := w.(*os.File); ok && isTTY(f) {
		return &barObserver{w: w}
	}
	return &recordObserver{w: w}
}

type barObserver struct {
	mu    sync.Mutex
	w     io.Writer
	drawn bool
}

func (o *barObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, "\r\x1b[K"+statusLine(s))
	o.drawn = true
}

func (o *barObserver) Done(Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.drawn {
		_, _ = io.WriteString(o.w, "\r\x1b[K")
		o.drawn = false
	}
}

type recordObserver struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *recordObserver) Publish(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, record(s)+"\n")
}

func (o *recordObserver) Done(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, record(s)+" final=true\n")
}

// statusLine: "[#####---------------]  25%  1/4 files  3.2/s  ETA 00:00:02  1 found  Assets/A.cs"
func statusLine(s Snapshot) string {
	pct := percent(s.Done, s.Total)
	var b strings.Builder
	b.WriteString("[")
	filled := pct * barWidth / 100
	b.WriteString(strings.Repeat("#", filled))
	b.WriteString(strings.Repeat("-", barWidth-filled))
	fmt.Fprintf(&b, "] %3d%%  %d/%d files", pct, s.Done, s.Total)
	if s.Warmup || s.Rate <= 0 {
		b.WriteString("  --/s  ETA --:--:--")
	} else {
		fmt.Fprintf(&b, "  %.1f/s  ETA %s", s.Rate, clock(s.ETA))
	}
	if s.Findings > 0 {
		fmt.Fprintf(&b, "  %d found", s.Findings)
	}
	if s.Current != "" {
		b.WriteString("  ")
		b.WriteString(textutil.TruncateLeftByWidth(s.Current, pathWidth, "…"))
	}
	return b.String()
}

func record(s Snapshot) string {
	fields := []string{
		"progress",
		"stage=" + string(s.Stage),
		"done=" + strconv.Itoa(s.Done),
		"total=" + strconv.Itoa(s.Total),
		"findings=" + strconv.Itoa(s.Findings),
		"bytes=" + strconv.FormatInt(s.Bytes, 10),
		"rate=" + strconv.FormatFloat(s.Rate, 'f', 3, 64),
		"eta=" + etaSeconds(s.ETA, s.Warmup),
		"eta_slow=" + etaSeconds(s.ETASlow, s.Warmup),
		"elapsed=" + strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 3, 64),
	}
	if s.Current != "" {
		fields = append(fields, "current="+strconv.Quote(s.Current))
	}
	return strings.Join(fields, " ")
}

// etaSeconds は未確定なら "-" を返す
func etaSeconds(d time.Duration, warmup bool) string {
	if warmup || d <= 0 {
		return "-"
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 1, 64)
}

func clock(d time.Duration) string {
	secs := int(math.Round(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	h := min(secs/3600, 99)
	return fmt.Sprintf("%02d:%02d:%02d", h, secs%3600/60, secs%60)
}

func percent(done, total int) int {
	switch {
	case total <= 0 && done > 0:
		return 100
	case total <= 0 || done <= 0:
		return 0
	case done >= total:
		return 100
	}
	return done * 100 / total
}
