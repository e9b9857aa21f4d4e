package engine

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions は拡張子未指定時の対象
var DefaultExtensions = []string{".cs"}

type sourceFile struct {
	path string
	rel  string // root からのスラッシュ区切り相対パス
	size int64
}

// enumerate は root 以下の対象ファイルを再帰的に列挙し、相対パスの辞書順で返します。
// onErr が nil でなければ読めないエントリの扱いを委ね、nil を返せばそのエントリを飛ばします。
func enumerate(root string, exts, excludes []string, onErr func(path string, err error) error) ([]sourceFile, error) {
	extSet := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		extSet[strings.ToLower(e)] = struct{}{}
	}
	if len(extSet) == 0 {
		for _, e := range DefaultExtensions {
			extSet[e] = struct{}{}
		}
	}

	// WalkDir は root 自体のシンボリックリンクを辿らないので実体を歩き、
	// パスは root 側に付け替えて表示用の相対パスを保つ。
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		walkRoot = root
	}
	display := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil || walkRoot == root {
			return path
		}
		return filepath.Join(root, rel)
	}

	var files []sourceFile
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			ferr := &FileError{Path: display(path), Err: err}
			if onErr == nil || path == walkRoot {
				return ferr
			}
			if handled := onErr(ferr.Path, ferr); handled != nil {
				return handled
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == walkRoot {
			return nil
		}
		rel, relErr := filepath.Rel(walkRoot, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, d.Name(), excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := extSet[strings.ToLower(filepath.Ext(d.Name()))]; !ok {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return &FileError{Path: display(path), Err: infoErr}
		}
		files = append(files, sourceFile{path: display(path), rel: rel, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

func excluded(rel, name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
