package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/phyten/emptymon/internal/engine"
	"github.com/phyten/emptymon/internal/model"
	"github.com/phyten/emptymon/internal/termcolor"
	"github.com/phyten/emptymon/internal/textutil"
)

var sampleFindings = []model.Finding{
	{File: "Assets/Scripts/Player.cs", Line: 12, Method: model.Update},
	{File: "Assets/敵/Boss|Core.cs", Line: 7, Method: model.Start},
	{File: "Assets/UI/Menu <Main>.cs", Line: 120, Method: model.LateUpdate},
}

func mustFields(t *testing.T, raw string) FieldSelection {
	t.Helper()
	sel, err := ResolveFields(raw)
	if err != nil {
		t.Fatalf("ResolveFields(%q) failed: %v", raw, err)
	}
	return sel
}

func TestResolveFieldsDefault(t *testing.T) {
	sel := mustFields(t, "")
	got := strings.Join(Headers(sel.Fields), ",")
	if got != "FILE,LINE,METHOD" {
		t.Fatalf("default headers = %q", got)
	}
}

func TestResolveFieldsAliasesAndCase(t *testing.T) {
	sel := mustFields(t, " Loc , NAME,path")
	var keys []string
	for _, f := range sel.Fields {
		keys = append(keys, f.Key)
	}
	if strings.Join(keys, ",") != "location,method,file" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestResolveFieldsErrors(t *testing.T) {
	for _, raw := range []string{"file,,line", "author"} {
		if _, err := ResolveFields(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRowValues(t *testing.T) {
	sel := mustFields(t, "location,line,method")
	row := RowValues(sampleFindings[0], sel.Fields)
	want := []string{"Assets/Scripts/Player.cs:12", "12", "Update"}
	if strings.Join(row, "|") != strings.Join(want, "|") {
		t.Fatalf("RowValues = %v, want %v", row, want)
	}
}

func TestWriteTableAlignsWideCharacters(t *testing.T) {
	sel := mustFields(t, "file,line,method")
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleFindings, sel, TableStyle{}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(sampleFindings)+1 {
		t.Fatalf("expected %d lines, got %d: %q", len(sampleFindings)+1, len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "FILE") {
		t.Fatalf("header should come first: %q", lines[0])
	}
	// METHOD 列の開始位置は全行で揃う
	col := -1
	for i, line := range lines {
		idx := strings.LastIndex(line, "  ")
		width := textutil.VisibleWidth(line[:idx])
		if col == -1 {
			col = width
			continue
		}
		if width != col {
			t.Fatalf("line %d misaligned: %q (width %d, want %d)", i, line, width, col)
		}
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("plain table must not contain ANSI escapes")
	}
}

func TestWriteTableColor(t *testing.T) {
	sel := mustFields(t, "method")
	var buf bytes.Buffer
	style := TableStyle{Enabled: true, Scheme: termcolor.SchemeDark, Profile: termcolor.ProfileBasic8}
	if err := WriteTable(&buf, sampleFindings[:1], sel, style); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[1;36mUpdate\x1b[0m") {
		t.Fatalf("expected coloured method cell, got %q", buf.String())
	}
}

func TestWriteTSV(t *testing.T) {
	sel := mustFields(t, "")
	findings := []model.Finding{{File: "Assets/a\tb.cs", Line: 3, Method: model.Awake}}
	var buf bytes.Buffer
	if err := WriteTSV(&buf, findings, sel); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	want := "FILE\tLINE\tMETHOD\nAssets/a b.cs\t3\tAwake\n"
	if buf.String() != want {
		t.Fatalf("WriteTSV = %q, want %q", buf.String(), want)
	}
}

func TestWriteCSV(t *testing.T) {
	sel := mustFields(t, "location,method")
	findings := []model.Finding{{File: "Assets/a,b.cs", Line: 4, Method: model.Start}}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, findings, sel); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\r\n") {
		t.Fatal("CSV output should use CRLF line endings")
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("CSV output is not parseable: %v", err)
	}
	if len(records) != 2 || records[1][0] != "Assets/a,b.cs:4" || records[1][1] != "Start" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, sampleFindings); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(sampleFindings) {
		t.Fatalf("expected %d lines, got %d", len(sampleFindings), len(lines))
	}
	for i, line := range lines {
		var f model.Finding
		if err := json.Unmarshal([]byte(line), &f); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if f != sampleFindings[i] {
			t.Fatalf("line %d = %+v, want %+v", i, f, sampleFindings[i])
		}
	}
	if strings.Contains(output, "\\u003c") {
		t.Fatal("HTML characters should not be escaped in NDJSON output")
	}
}

func TestWriteMarkdownTable(t *testing.T) {
	sel := mustFields(t, "file,line,method")
	var buf bytes.Buffer
	if err := WriteMarkdownTable(&buf, sampleFindings, sel); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	output := buf.String()
	if !strings.HasPrefix(output, "| FILE | LINE | METHOD |\n| --- | ---: | --- |\n") {
		t.Fatalf("unexpected markdown header: %q", output)
	}
	if !strings.Contains(output, "Assets/敵/Boss\\|Core.cs") {
		t.Fatal("expected pipe characters to be escaped in markdown output")
	}
}

func TestWriteJSON(t *testing.T) {
	res := &engine.Result{
		Findings:     sampleFindings[:1],
		Status:       engine.StatusComplete,
		FilesTotal:   2,
		FilesScanned: 2,
		Total:        1,
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["status"] != "complete" {
		t.Fatalf("status = %v", decoded["status"])
	}
	if _, ok := decoded["skipped"]; ok {
		t.Fatal("empty skipped list should be omitted")
	}
	findings, ok := decoded["findings"].([]any)
	if !ok || len(findings) != 1 {
		t.Fatalf("unexpected findings: %v", decoded["findings"])
	}
}

func TestWriteMarkdownTableRendersAsGFMTable(t *testing.T) {
	var src bytes.Buffer
	if err := WriteMarkdownTable(&src, sampleFindings[:2], mustFields(t, "file,line,method")); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var html bytes.Buffer
	if err := md.Convert(src.Bytes(), &html); err != nil {
		t.Fatalf("goldmark conversion failed: %v", err)
	}
	out := html.String()
	if !strings.Contains(out, "<table>") {
		t.Fatalf("markdown output is not parsed as a table:\n%s", out)
	}
	if got := strings.Count(out, "<tr>"); got != 3 {
		t.Fatalf("expected header plus 2 rows, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "<td>Assets/敵/Boss|Core.cs</td>") {
		t.Fatalf("escaped pipe should stay inside one cell:\n%s", out)
	}
}
