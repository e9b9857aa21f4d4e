package progress

import (
	"math"
	"sync"
	"time"
)

// Stage names the phase a run is in. Walk has no known total yet.
type Stage string

const (
	StageWalk Stage = "walk"
	StageScan Stage = "scan"
)

// Snapshot is a point-in-time view of a run.
//
// Rate is an exponential moving average in files per second. ETA uses the
// median of recent rates and ETASlow the 10th percentile, so ETASlow is a
// pessimistic bound. Both stay zero during warmup.
type Snapshot struct {
	Stage       Stage         `json:"stage"`
	Total       int           `json:"total"`
	Done        int           `json:"done"`
	Remaining   int           `json:"remaining"`
	Rate        float64       `json:"rate_per_sec"`
	ETA         time.Duration `json:"eta"`
	ETASlow     time.Duration `json:"eta_slow"`
	Warmup      bool          `json:"warmup"`
	Elapsed     time.Duration `json:"elapsed"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Bytes       int64         `json:"bytes"`
	BytesPerSec float64       `json:"bytes_per_sec"`
	Findings    int           `json:"findings"`
	Current     string        `json:"current,omitempty"`
}

// Config tunes an Estimator. Zero fields take DefaultConfig's value.
type Config struct {
	Alpha          float64
	WindowSize     int
	WarmupSamples  int
	WarmupDuration time.Duration
	NotifyInterval time.Duration
}

// DefaultConfig: EMA alpha 0.2, 60-sample window, 20 files and 2s of
// warmup, notifications at most every 250ms.
func DefaultConfig() Config {
	return Config{
		Alpha:          0.2,
		WindowSize:     60,
		WarmupSamples:  20,
		WarmupDuration: 2 * time.Second,
		NotifyInterval: 250 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = d.Alpha
	}
	if c.WindowSize <= 0 {
		c.WindowSize = d.WindowSize
	}
	if c.WarmupSamples <= 0 {
		c.WarmupSamples = d.WarmupSamples
	}
	if c.WarmupDuration <= 0 {
		c.WarmupDuration = d.WarmupDuration
	}
	if c.NotifyInterval <= 0 {
		c.NotifyInterval = d.NotifyInterval
	}
	return c
}

// slowFactor estimates the pessimistic rate before the window has data.
const slowFactor = 0.6

// Estimator tracks done/total and derives a rate and ETA. Safe for
// concurrent use. Rates restart whenever the stage changes.
type Estimator struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	start      time.Time
	lastUpdate time.Time
	lastNotify time.Time

	stage    Stage
	total    int
	done     int
	bytes    int64
	findings int
	current  string

	rate     float64
	byteRate float64
	recent   *window
}

// NewEstimator starts in StageWalk. A negative total means "not known yet";
// set it with SetTotal once enumeration finishes.
func NewEstimator(total int, cfg Config) *Estimator {
	cfg = cfg.withDefaults()
	e := &Estimator{cfg: cfg, now: time.Now, stage: StageWalk, total: total}
	e.start = e.now()
	e.lastUpdate = e.start
	e.recent = newWindow(cfg.WindowSize)
	return e
}

func (e *Estimator) SetTotal(total int) {
	e.mu.Lock()
	e.total = total
	e.mu.Unlock()
}

// Stage switches the current phase; the bool is true when it actually changed.
func (e *Estimator) Stage(stage Stage) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	if stage == e.stage {
		return e.snapshotLocked(now), false
	}
	e.stage = stage
	e.rate, e.byteRate = 0, 0
	e.recent = newWindow(e.cfg.WindowSize)
	e.lastUpdate, e.lastNotify = now, now
	return e.snapshotLocked(now), true
}

// Advance counts delta finished units without byte or finding accounting.
func (e *Estimator) Advance(delta int) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if delta <= 0 {
		return e.snapshotLocked(e.now()), false
	}
	return e.stepLocked(delta, 0)
}

// AdvanceFile counts one finished file. size is the number of bytes actually
// read (0 for skipped files) and found the findings it produced. The bool
// reports whether observers should be notified: at most once per
// NotifyInterval, and always for the last file.
func (e *Estimator) AdvanceFile(path string, size int64, found int) (Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	size = max(size, 0)
	e.bytes += size
	e.findings += max(found, 0)
	e.current = path
	return e.stepLocked(1, size)
}

func (e *Estimator) stepLocked(files int, size int64) (Snapshot, bool) {
	now := e.now()
	if now.Before(e.lastUpdate) {
		now = e.lastUpdate
	}
	dt := math.Max(now.Sub(e.lastUpdate).Seconds(), 1e-6)
	e.lastUpdate = now
	e.done += files

	instant := finite(float64(files) / dt)
	e.recent.Add(instant)
	e.rate = ema(e.rate, instant, e.cfg.Alpha)
	e.byteRate = ema(e.byteRate, finite(float64(size)/dt), e.cfg.Alpha)

	snap := e.snapshotLocked(now)
	notify := snap.Remaining == 0 || now.Sub(e.lastNotify) >= e.cfg.NotifyInterval
	if notify {
		e.lastNotify = now
	}
	return snap, notify
}

func (e *Estimator) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(e.now())
}

// Complete marks every known unit as done, for the final snapshot.
func (e *Estimator) Complete() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.total >= 0 && e.done < e.total {
		e.done = e.total
	}
	now := e.now()
	e.lastNotify = now
	return e.snapshotLocked(now)
}

func (e *Estimator) snapshotLocked(now time.Time) Snapshot {
	remaining := -1
	if e.total >= 0 {
		remaining = max(e.total-e.done, 0)
	}
	elapsed := now.Sub(e.start)
	warm := e.done >= e.cfg.WarmupSamples && elapsed >= e.cfg.WarmupDuration

	s := Snapshot{
		Stage:       e.stage,
		Total:       e.total,
		Done:        e.done,
		Remaining:   remaining,
		Rate:        e.rate,
		Warmup:      !warm,
		Elapsed:     elapsed,
		UpdatedAt:   now,
		Bytes:       e.bytes,
		BytesPerSec: e.byteRate,
		Findings:    e.findings,
		Current:     e.current,
	}
	if warm && remaining > 0 {
		median := e.recent.Quantile(0.5)
		if median <= 0 {
			median = e.rate
		}
		slow := e.recent.Quantile(0.1)
		if slow <= 0 {
			slow = median * slowFactor
		}
		s.ETA = durationFrom(float64(remaining), median)
		s.ETASlow = durationFrom(float64(remaining), slow)
	}
	return s
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ema は最初のサンプルをそのまま採用する
func ema(prev, sample, alpha float64) float64 {
	if prev == 0 {
		return sample
	}
	return alpha*sample + (1-alpha)*prev
}

// durationFrom converts count units at rate per second, saturating at the
// largest Duration.
func durationFrom(count, rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	secs := count / rate
	switch {
	case math.IsNaN(secs) || secs <= 0:
		return 0
	case secs >= float64(math.MaxInt64)/float64(time.Second):
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(secs * float64(time.Second))
}
