package engine

import (
	"errors"
	"fmt"

	"github.com/phyten/emptymon/internal/model"
	"github.com/phyten/emptymon/internal/progress"
)

var (
	// ErrInvalidRequest は走査開始前に検出される呼び出し側の前提違反です。
	ErrInvalidRequest = errors.New("invalid request")
	// ErrIO はファイル読み込みの失敗を表します。
	ErrIO = errors.New("io error")
)

// FileError は 1 ファイルの読み込み失敗を表す
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// Is により errors.Is(err, ErrIO) が成立する。
func (e *FileError) Is(target error) bool { return target == ErrIO }

// Status は走査の終了状態
type Status string

const (
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

// ProgressFunc は各ファイルの処理前に呼ばれる。index は処理済み件数。
// false を返すと以降のファイルは処理されない。
type ProgressFunc func(index, total int, path string) bool

// Options は実行オプション
type Options struct {
	Root             string
	SourceRoot       string
	Methods          []model.MethodName
	Extensions       []string
	Excludes         []string
	Jobs             int
	MaxFileBytes     int
	SkipUnreadable   bool
	Guard            ModifierGuard     `json:"-"`
	OnProgress       ProgressFunc      `json:"-"`
	ProgressObserver progress.Observer `json:"-"`
	Logger           Logger            `json:"-"`
}

// Logger は engine が警告や経過を書き出す先
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

// SkippedFile は検査対象から外したファイル
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// ScanError は SkipUnreadable 時に記録される読み込み失敗
type ScanError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// Result は出力
type Result struct {
	RunID        string          `json:"run_id"`
	Findings     []model.Finding `json:"findings"`
	Status       Status          `json:"status"`
	FilesTotal   int             `json:"files_total"`
	FilesScanned int             `json:"files_scanned"`
	Total        int             `json:"total"`
	Skipped      []SkippedFile   `json:"skipped,omitempty"`
	Errors       []ScanError     `json:"errors,omitempty"`
	ErrorCount   int             `json:"error_count"`
	ElapsedMS    int64           `json:"elapsed_ms"`
}

// Cancelled は走査が途中で打ち切られたかを返す
func (r *Result) Cancelled() bool {
	return r != nil && r.Status == StatusCancelled
}
