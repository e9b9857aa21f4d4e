package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/phyten/emptymon/internal/model"
)

// ScanFile は 1 ファイルを丸ごと読み込み、空メソッドの検出結果を返します。
//
// 読み込みに失敗した場合は *FileError を返し、部分的な結果は返しません。
// guard が nil の場合は VirtualGuard を使います。
func ScanFile(path, sourceRoot string, m *Matcher, guard ModifierGuard) ([]model.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return scanText(text, RelativePath(sourceRoot, path), m, guard), nil
}

var (
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}
)

// decodeText は BOM から UTF-8/16/32 を判別して UTF-8 に変換し、BOM を取り除く。
// BOM が無ければ UTF-8 としてそのまま扱う。
func decodeText(data []byte) (string, error) {
	var t transform.Transformer
	switch {
	case bytes.HasPrefix(data, bomUTF32LE):
		t = utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder()
	case bytes.HasPrefix(data, bomUTF32BE):
		t = utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder()
	default:
		t = unicode.BOMOverride(transform.Nop)
	}
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func scanText(text, rel string, m *Matcher, guard ModifierGuard) []model.Finding {
	if guard == nil {
		guard = VirtualGuard{}
	}
	var out []model.Finding
	for _, rm := range m.FindAll(text) {
		if guard.Suppressed(text, rm.Start) {
			continue
		}
		out = append(out, model.Finding{
			File:   rel,
			Line:   LineNumber(text, rm.Start),
			Method: rm.Method,
		})
	}
	return out
}

// RelativePath は sourceRoot の最後の要素を先頭に付けた、スラッシュ区切りの相対パスを返します。
// 例: root=/p/Assets, path=/p/Assets/Foo/Bar.cs → Assets/Foo/Bar.cs
func RelativePath(sourceRoot, path string) string {
	root := filepath.Clean(sourceRoot)
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	base := filepath.Base(root)
	if base == "." || base == string(filepath.Separator) || strings.HasSuffix(base, ":\\") {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(filepath.Join(base, rel))
}
