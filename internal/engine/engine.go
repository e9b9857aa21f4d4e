package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phyten/emptymon/internal/model"
	"github.com/phyten/emptymon/internal/progress"
)

type fileOutcome struct {
	findings []model.Finding
	skipped  *SkippedFile
	err      error
}

type runner struct {
	opts       Options
	sourceRoot string
	matcher    *Matcher
	guard      ModifierGuard
	log        Logger
	est        *progress.Estimator
	obs        progress.Observer
}

// Run は opts.Root 以下のソースファイルを走査し、空メソッドの一覧を返します。
//
// ファイルは相対パスの辞書順に処理され、結果もその順に並びます。
// opts.OnProgress が false を返すか ctx が取り消されると、それまでの結果を
// Status=cancelled として返します（エラーではありません）。
// 読み込めないファイルがあると走査全体を中断して *FileError を返します。
// opts.SkipUnreadable の場合は Result.Errors に記録して続行します。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}

	root, sourceRoot, err := resolveRoots(opts.Root, opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	m, err := BuildMatcher(opts.Methods)
	if err != nil {
		return nil, err
	}

	r := &runner{
		opts:       opts,
		sourceRoot: sourceRoot,
		matcher:    m,
		guard:      opts.Guard,
		log:        opts.Logger,
		obs:        opts.ProgressObserver,
	}
	if r.guard == nil {
		r.guard = VirtualGuard{}
	}
	if r.log == nil {
		r.log = nopLogger{}
	}
	if r.obs == nil {
		r.obs = progress.NoopObserver{}
	}
	r.est = progress.NewEstimator(-1, progress.Config{})

	res := &Result{RunID: uuid.NewString(), Status: StatusComplete}

	var walkErr func(string, error) error
	if opts.SkipUnreadable {
		walkErr = func(path string, err error) error {
			r.log.Warnf("skip unreadable entry %s: %v", path, err)
			res.Errors = append(res.Errors, newScanError(RelativePath(sourceRoot, path), err))
			return nil
		}
	}
	files, err := enumerate(root, opts.Extensions, opts.Excludes, walkErr)
	if err != nil {
		return nil, err
	}
	res.FilesTotal = len(files)
	r.est.SetTotal(len(files))
	if snap, changed := r.est.Stage(progress.StageScan); changed {
		r.obs.Publish(snap)
	}
	r.log.Debugf("run %s: scanning %d files under %s (methods=%s)", res.RunID, len(files), root, joinMethods(m.Methods()))

	var cancelled bool
	if opts.Jobs > 1 && len(files) > 1 {
		cancelled, err = r.runParallel(ctx, files, res)
	} else {
		cancelled, err = r.runSequential(ctx, files, res)
	}
	if err != nil {
		r.obs.Done(r.est.Snapshot())
		return nil, err
	}

	if cancelled {
		res.Status = StatusCancelled
		r.obs.Done(r.est.Snapshot())
	} else {
		r.obs.Done(r.est.Complete())
	}
	res.Total = len(res.Findings)
	res.ErrorCount = len(res.Errors)
	res.ElapsedMS = msSince(start)
	return res, nil
}

func (r *runner) proceed(ctx context.Context, i int, files []sourceFile) bool {
	if ctx.Err() != nil {
		return false
	}
	if r.opts.OnProgress != nil && !r.opts.OnProgress(i, len(files), files[i].path) {
		return false
	}
	// コールバック内での取り消しもこのファイルから効かせる
	return ctx.Err() == nil
}

func (r *runner) runSequential(ctx context.Context, files []sourceFile, res *Result) (bool, error) {
	for i := range files {
		if !r.proceed(ctx, i, files) {
			return true, nil
		}
		out := r.scanOne(files[i])
		if err := r.collect(res, files[i], out); err != nil {
			return false, err
		}
		r.advance(files[i], out)
	}
	return ctx.Err() != nil, nil
}

// runParallel は files を順番に投入し、結果は index ごとに保持してから順に集約する。
func (r *runner) runParallel(ctx context.Context, files []sourceFile, res *Result) (bool, error) {
	nw := r.opts.Jobs
	if nw > len(files) {
		nw = len(files)
	}
	slots := make([]fileOutcome, len(files))
	jobs := make(chan int)
	abort := make(chan struct{})
	var abortOnce sync.Once
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			out := r.scanOne(files[idx])
			slots[idx] = out
			r.advance(files[idx], out)
			if out.err != nil && !r.opts.SkipUnreadable {
				abortOnce.Do(func() { close(abort) })
			}
		}
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}

	cancelled := false
	dispatched := 0
dispatch:
	for i := range files {
		select {
		case <-abort:
			break dispatch
		default:
		}
		if !r.proceed(ctx, i, files) {
			cancelled = true
			break dispatch
		}
		select {
		case jobs <- i:
			dispatched++
		case <-abort:
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()
	if ctx.Err() != nil {
		cancelled = true
	}

	for i := 0; i < dispatched; i++ {
		if err := r.collect(res, files[i], slots[i]); err != nil {
			return false, err
		}
	}
	return cancelled, nil
}

func (r *runner) scanOne(f sourceFile) fileOutcome {
	if r.opts.MaxFileBytes > 0 && f.size > int64(r.opts.MaxFileBytes) {
		rel := RelativePath(r.sourceRoot, f.path)
		return fileOutcome{skipped: &SkippedFile{File: rel, Reason: fmt.Sprintf("size %d exceeds max_file_bytes %d", f.size, r.opts.MaxFileBytes)}}
	}
	findings, err := ScanFile(f.path, r.sourceRoot, r.matcher, r.guard)
	return fileOutcome{findings: findings, err: err}
}

// collect は 1 ファイル分の結果を res に追加する。呼び出しは常に列挙順。
func (r *runner) collect(res *Result, f sourceFile, out fileOutcome) error {
	switch {
	case out.err != nil:
		if !r.opts.SkipUnreadable {
			return out.err
		}
		r.log.Warnf("skip unreadable file %s: %v", f.path, out.err)
		res.Errors = append(res.Errors, newScanError(RelativePath(r.sourceRoot, f.path), out.err))
	case out.skipped != nil:
		r.log.Debugf("skip %s: %s", out.skipped.File, out.skipped.Reason)
		res.Skipped = append(res.Skipped, *out.skipped)
	default:
		res.FilesScanned++
		res.Findings = append(res.Findings, out.findings...)
	}
	return nil
}

func (r *runner) advance(f sourceFile, out fileOutcome) {
	var size int64
	if out.err == nil && out.skipped == nil {
		size = f.size
	}
	if snap, notify := r.est.AdvanceFile(f.rel, size, len(out.findings)); notify {
		r.obs.Publish(snap)
	}
}

func resolveRoots(root, sourceRoot string) (string, string, error) {
	if strings.TrimSpace(root) == "" {
		return "", "", fmt.Errorf("%w: root directory is required", ErrInvalidRequest)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return "", "", fmt.Errorf("%w: root %s: %v", ErrInvalidRequest, root, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("%w: root %s is not a directory", ErrInvalidRequest, root)
	}
	if strings.TrimSpace(sourceRoot) == "" {
		return absRoot, absRoot, nil
	}
	absSource, err := filepath.Abs(sourceRoot)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return absRoot, absSource, nil
}

func newScanError(file string, err error) ScanError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ScanError{File: file, Message: msg}
}

func joinMethods(ms []model.MethodName) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
