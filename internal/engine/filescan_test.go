package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/phyten/emptymon/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("ディレクトリの作成に失敗しました: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("ファイルの作成に失敗しました: %v", err)
	}
}

func TestScanFileはvirtualを除外する(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Assets")
	path := filepath.Join(root, "Scripts", "Base.cs")
	writeFile(t, path, "class Base {\n"+
		"    protected virtual void Awake(){}\n"+
		"    public void Start(){}\n"+
		"}\n")

	m := mustMatcher(t, model.Awake, model.Start)
	got, err := ScanFile(path, root, m, nil)
	if err != nil {
		t.Fatalf("ScanFile error: %v", err)
	}
	want := []model.Finding{{File: "Assets/Scripts/Base.cs", Line: 3, Method: model.Start}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestScanFileは重複を除かない(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Dup.cs")
	writeFile(t, path, "void Update(){}\nvoid Update(){}\n")

	got, err := ScanFile(path, root, mustMatcher(t, model.Update), nil)
	if err != nil {
		t.Fatalf("ScanFile error: %v", err)
	}
	if len(got) != 2 || got[0].Line != 1 || got[1].Line != 2 {
		t.Fatalf("2 件の検出を期待しました: %+v", got)
	}
}

func TestScanFileの行番号は宣言の先頭行(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Multi.cs")
	writeFile(t, path, "using X;\n\nclass C\n{\n    void LateUpdate()\n    {\n    }\n}\n")

	got, err := ScanFile(path, root, mustMatcher(t, model.LateUpdate), nil)
	if err != nil {
		t.Fatalf("ScanFile error: %v", err)
	}
	if len(got) != 1 || got[0].Line != 5 {
		t.Fatalf("5 行目の検出を期待しました: %+v", got)
	}
}

func TestScanFileは差し替えたガードを使う(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "G.cs")
	writeFile(t, path, "void Start(){}\nvoid Update(){}\n")

	never := ModifierGuardFunc(func(string, int) bool { return true })
	got, err := ScanFile(path, root, mustMatcher(t, model.Start, model.Update), never)
	if err != nil {
		t.Fatalf("ScanFile error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("全て抑止されるべきです: %+v", got)
	}
}

func TestScanFile読み込み失敗はFileError(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "Missing.cs")
	_, err := ScanFile(missing, root, mustMatcher(t, model.Start), nil)
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("*FileError を期待しました: %v", err)
	}
	if fe.Path != missing {
		t.Fatalf("Path = %q", fe.Path)
	}
	if !errors.Is(err, ErrIO) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ErrIO と fs.ErrNotExist の両方に一致するべきです: %v", err)
	}
}

func TestRelativePath(t *testing.T) {
	sep := string(filepath.Separator)
	cases := []struct {
		root, path, want string
	}{
		{sep + filepath.Join("p", "Assets"), sep + filepath.Join("p", "Assets", "Foo", "Bar.cs"), "Assets/Foo/Bar.cs"},
		{sep + filepath.Join("p", "Assets") + sep, sep + filepath.Join("p", "Assets", "A.cs"), "Assets/A.cs"},
		{".", "A.cs", "A.cs"},
		{sep, sep + filepath.Join("x", "A.cs"), "x/A.cs"},
		{sep + filepath.Join("p", "Assets"), sep + filepath.Join("q", "B.cs"), filepath.ToSlash(sep + filepath.Join("q", "B.cs"))},
	}
	for _, tc := range cases {
		if got := RelativePath(tc.root, tc.path); got != tc.want {
			t.Fatalf("RelativePath(%q, %q) = %q, want %q", tc.root, tc.path, got, tc.want)
		}
	}
}

func TestScanFileはBOM付きのUTF16とUTF32を読める(t *testing.T) {
	src := "public class A : MonoBehaviour\r\n{\r\n    void Start() { }\r\n    virtual void Update() { }\r\n}\r\n"
	cases := []struct {
		name string
		enc  encoding.Encoding
	}{
		{"utf8", unicode.UTF8BOM},
		{"utf16le", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
		{"utf16be", unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
		{"utf32le", utf32.UTF32(utf32.LittleEndian, utf32.UseBOM)},
		{"utf32be", utf32.UTF32(utf32.BigEndian, utf32.UseBOM)},
	}
	m := mustMatcher(t, model.Start, model.Update)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			encoded, err := c.enc.NewEncoder().String(src)
			if err != nil {
				t.Fatalf("エンコードに失敗しました: %v", err)
			}
			root := filepath.Join(t.TempDir(), "Assets")
			path := filepath.Join(root, "A.cs")
			writeFile(t, path, encoded)
			got, err := ScanFile(path, root, m, nil)
			if err != nil {
				t.Fatalf("ScanFile error: %v", err)
			}
			want := []model.Finding{{File: "Assets/A.cs", Line: 3, Method: model.Start}}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %+v, want %+v", got, want)
			}
		})
	}
}

func TestDecodeTextはBOMが無ければそのまま返す(t *testing.T) {
	raw := []byte("void Start(){}\xff")
	got, err := decodeText(raw)
	if err != nil || got != string(raw) {
		t.Fatalf("decodeText = %q, %v", got, err)
	}
}
