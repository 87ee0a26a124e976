package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/style"
)

func TestFromDefects_Positions(t *testing.T) {
	text := "ab  \ncd\t\n"
	defects := []engine.Defect{
		{Kind: style.KindTrailing, Start: 2, End: 4},
		{Kind: style.KindTrailing, Start: 7, End: 8},
	}

	fr := FromDefects("x.txt", "text", text, defects)
	if len(fr.Findings) != 2 {
		t.Fatalf("len = %d, want 2", len(fr.Findings))
	}
	if fr.Findings[0].Line != 1 || fr.Findings[0].Column != 3 {
		t.Errorf("first at %d:%d, want 1:3", fr.Findings[0].Line, fr.Findings[0].Column)
	}
	if fr.Findings[1].Line != 2 || fr.Findings[1].Column != 3 {
		t.Errorf("second at %d:%d, want 2:3", fr.Findings[1].Line, fr.Findings[1].Column)
	}
}

func TestWriteText(t *testing.T) {
	r := New()
	r.Add(FileReport{
		Path: "main.go",
		Mode: "go",
		Findings: []Finding{
			{Kind: style.KindTrailing, Start: 10, End: 12, Line: 2, Column: 5},
		},
	})
	r.Add(FileReport{Path: "util.go", Mode: "go", Cleaned: true, EditCount: 3})

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "main.go:2:5: trailing") {
		t.Errorf("missing diagnostic line in %q", out)
	}
	if !strings.Contains(out, "util.go: cleaned (3 edits)") {
		t.Errorf("missing cleanup line in %q", out)
	}
	if !strings.Contains(out, "1 finding(s) in 2 file(s)") {
		t.Errorf("missing summary in %q", out)
	}
}

func TestJSON(t *testing.T) {
	r := New()
	r.Add(FileReport{
		Path: "a.txt",
		Mode: "text",
		Findings: []Finding{
			{Kind: style.KindEmptyAtStart, Start: 0, End: 3, Line: 1, Column: 1},
			{Kind: style.KindTrailing, Start: 8, End: 9, Line: 4, Column: 2},
		},
	})

	data, err := r.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	doc := gjson.ParseBytes(data)

	if got := doc.Get("total_findings").Int(); got != 2 {
		t.Errorf("total_findings = %d, want 2", got)
	}
	if got := doc.Get("files.#").Int(); got != 1 {
		t.Errorf("files count = %d, want 1", got)
	}
	if got := doc.Get("files.0.path").String(); got != "a.txt" {
		t.Errorf("path = %q", got)
	}
	if got := doc.Get("files.0.findings.0.kind").String(); got != "empty-at-start" {
		t.Errorf("kind = %q, want empty-at-start", got)
	}
	if got := doc.Get("files.0.findings.1.line").Int(); got != 4 {
		t.Errorf("line = %d, want 4", got)
	}
	if doc.Get("files.0.cleaned").Exists() {
		t.Error("cleaned should be omitted when false")
	}
}

func TestHasFindings(t *testing.T) {
	r := New()
	if r.HasFindings() {
		t.Error("empty report should have no findings")
	}
	r.Add(FileReport{Path: "a", Findings: []Finding{{Kind: style.KindTrailing}}})
	if !r.HasFindings() {
		t.Error("report with a finding should report it")
	}
}
