package progress

import (
	"sync"
	"testing"
	"time"
)

func TestEstimatorAdvanceIsSequential(t *testing.T) {
	const workers = 128
	est := NewEstimator(workers, Config{NotifyInterval: time.Nanosecond})

	var wg sync.WaitGroup
	wg.Add(workers)

	start := make(chan struct{})
	results := make(chan int, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			snap, _ := est.Advance(1)
			results <- snap.Done
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	seen := make([]bool, workers)
	count := 0
	for r := range results {
		if r <= 0 || r > workers {
			t.Fatalf("進捗値が範囲外です: got=%d", r)
		}
		if seen[r-1] {
			t.Fatalf("進捗値が重複しました: got=%d", r)
		}
		seen[r-1] = true
		count++
	}

	if count != workers {
		t.Fatalf("進捗値の数が期待と一致しません: want=%d got=%d", workers, count)
	}

	for i, ok := range seen {
		if !ok {
			t.Fatalf("進捗値が欠落しています: index=%d", i+1)
		}
	}
}

func TestPercentClampsTo100(t *testing.T) {
	if got := percent(5, 4); got != 100 {
		t.Fatalf("5/4 は 100%% として扱うべきです: got=%d", got)
	}
}

func TestEstimatorAdvanceFileAccumulates(t *testing.T) {
	est := NewEstimator(-1, Config{NotifyInterval: time.Hour})
	if snap := est.Snapshot(); snap.Stage != StageWalk || snap.Remaining != -1 {
		t.Fatalf("新規 Estimator は walk 段階で総数不明のはずです: %+v", snap)
	}
	est.SetTotal(3)
	if _, changed := est.Stage(StageScan); !changed {
		t.Fatal("walk から scan への切り替えは changed=true を返すべきです")
	}
	if _, changed := est.Stage(StageScan); changed {
		t.Fatal("同じ段階への切り替えは changed=false のはずです")
	}

	if _, notify := est.AdvanceFile("Assets/A.cs", 120, 2); notify {
		t.Fatal("通知間隔内の途中経過は通知しないはずです")
	}
	est.AdvanceFile("Assets/B.cs", -5, -1)
	snap, notify := est.AdvanceFile("Assets/C.cs", 30, 1)
	if !notify {
		t.Fatal("最後のファイルでは必ず通知するはずです")
	}
	if snap.Done != 3 || snap.Remaining != 0 {
		t.Fatalf("件数が一致しません: %+v", snap)
	}
	if snap.Bytes != 150 || snap.Findings != 3 {
		t.Fatalf("積算値が一致しません: bytes=%d findings=%d", snap.Bytes, snap.Findings)
	}
	if snap.Current != "Assets/C.cs" {
		t.Fatalf("現在のファイルが一致しません: %q", snap.Current)
	}
}

func TestEstimatorCompleteFillsTotal(t *testing.T) {
	est := NewEstimator(5, Config{})
	est.Advance(2)
	snap := est.Complete()
	if snap.Done != 5 || snap.Remaining != 0 {
		t.Fatalf("Complete 後は全件完了のはずです: %+v", snap)
	}
}

func TestDurationFromGuardsEdges(t *testing.T) {
	if durationFrom(10, 0) != 0 {
		t.Fatal("レート 0 では ETA 0 のはずです")
	}
	if got := durationFrom(10, 5); got != 2*time.Second {
		t.Fatalf("10 件 / 5 件毎秒 = 2 秒のはずです: %v", got)
	}
}

func TestEstimatorETAAfterWarmup(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	est := NewEstimator(10, Config{WarmupSamples: 2, WarmupDuration: time.Second})
	est.now = func() time.Time { return clock }
	est.start, est.lastUpdate = clock, clock
	est.Stage(StageScan)

	clock = clock.Add(500 * time.Millisecond)
	if snap, _ := est.AdvanceFile("Assets/A.cs", 10, 0); !snap.Warmup || snap.ETA != 0 {
		t.Fatalf("ウォームアップ中は ETA を出さないはずです: %+v", snap)
	}
	for i := 0; i < 3; i++ {
		clock = clock.Add(500 * time.Millisecond)
		est.AdvanceFile("Assets/B.cs", 10, 0)
	}
	snap := est.Snapshot()
	if snap.Warmup {
		t.Fatalf("4 件 / 2 秒でウォームアップは終わっているはずです: %+v", snap)
	}
	if snap.Rate != 2 || snap.BytesPerSec != 20 {
		t.Fatalf("レートが一致しません: rate=%v bytes/s=%v", snap.Rate, snap.BytesPerSec)
	}
	if snap.ETA != 3*time.Second || snap.ETASlow != 3*time.Second {
		t.Fatalf("残り 6 件 / 毎秒 2 件 = 3 秒のはずです: eta=%v slow=%v", snap.ETA, snap.ETASlow)
	}
}

func TestEstimatorStageResetsRate(t *testing.T) {
	est := NewEstimator(-1, Config{})
	est.Advance(5)
	if est.Snapshot().Rate == 0 {
		t.Fatal("walk 段階でもレートは計算されるはずです")
	}
	snap, _ := est.Stage(StageScan)
	if snap.Rate != 0 || snap.Done != 5 {
		t.Fatalf("段階切り替えでレートだけが初期化されるはずです: %+v", snap)
	}
}
