// Package report renders classification results for humans and tools.
//
// The text form is the usual path:line:col diagnostic layout; the JSON
// form is stable for editor and CI integration.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/sjson"

	"github.com/dshills/blankline/internal/engine"
	"github.com/dshills/blankline/internal/style"
)

// Finding is one located defect with both byte offsets and 1-based
// line/column coordinates.
type Finding struct {
	Kind   style.DefectKind
	Start  int
	End    int
	Line   int
	Column int
}

// FileReport collects the findings for one file.
type FileReport struct {
	Path     string
	Mode     string
	Findings []Finding

	// Cleaned reports whether cleanup edits were applied, and
	// EditCount how many.
	Cleaned   bool
	EditCount int
}

// Report is a scan result across files.
type Report struct {
	GeneratedAt time.Time
	Files       []FileReport
}

// New creates an empty report stamped with the current time.
func New() *Report {
	return &Report{GeneratedAt: time.Now()}
}

// Add appends a file report.
func (r *Report) Add(fr FileReport) {
	r.Files = append(r.Files, fr)
}

// TotalFindings counts findings across all files.
func (r *Report) TotalFindings() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Findings)
	}
	return n
}

// HasFindings reports whether any file has defects.
func (r *Report) HasFindings() bool { return r.TotalFindings() > 0 }

// FromDefects builds a file report from engine results, deriving
// line/column coordinates from the buffer text.
func FromDefects(path, mode, text string, defects []engine.Defect) FileReport {
	fr := FileReport{Path: path, Mode: mode}
	for _, d := range defects {
		line, col := position(text, d.Start)
		fr.Findings = append(fr.Findings, Finding{
			Kind:   d.Kind,
			Start:  d.Start,
			End:    d.End,
			Line:   line,
			Column: col,
		})
	}
	return fr
}

// position converts a byte offset to 1-based line and column.
func position(text string, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := 1 + strings.Count(text[:offset], "\n")
	col := offset
	if i := strings.LastIndexByte(text[:offset], '\n'); i >= 0 {
		col = offset - i - 1
	}
	return line, col + 1
}

// WriteText renders the report in diagnostic form, one finding per
// line, followed by a summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Files {
		for _, fd := range f.Findings {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%d-%d)\n",
				f.Path, fd.Line, fd.Column, fd.Kind, fd.Start, fd.End); err != nil {
				return err
			}
		}
		if f.Cleaned {
			if _, err := fmt.Fprintf(w, "%s: cleaned (%d edits)\n", f.Path, f.EditCount); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d finding(s) in %d file(s)\n", r.TotalFindings(), len(r.Files))
	return err
}

// JSON renders the report as a JSON document.
func (r *Report) JSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error

	if out, err = sjson.SetBytes(out, "generated_at", r.GeneratedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "total_findings", r.TotalFindings()); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "files", []any{}); err != nil {
		return nil, err
	}

	for i, f := range r.Files {
		base := fmt.Sprintf("files.%d", i)
		if out, err = sjson.SetBytes(out, base+".path", f.Path); err != nil {
			return nil, err
		}
		if out, err = sjson.SetBytes(out, base+".mode", f.Mode); err != nil {
			return nil, err
		}
		if f.Cleaned {
			if out, err = sjson.SetBytes(out, base+".cleaned", true); err != nil {
				return nil, err
			}
			if out, err = sjson.SetBytes(out, base+".edit_count", f.EditCount); err != nil {
				return nil, err
			}
		}
		if out, err = sjson.SetBytes(out, base+".findings", []any{}); err != nil {
			return nil, err
		}
		for j, fd := range f.Findings {
			fb := fmt.Sprintf("%s.findings.%d", base, j)
			if out, err = sjson.SetBytes(out, fb+".kind", fd.Kind.String()); err != nil {
				return nil, err
			}
			if out, err = sjson.SetBytes(out, fb+".start", fd.Start); err != nil {
				return nil, err
			}
			if out, err = sjson.SetBytes(out, fb+".end", fd.End); err != nil {
				return nil, err
			}
			if out, err = sjson.SetBytes(out, fb+".line", fd.Line); err != nil {
				return nil, err
			}
			if out, err = sjson.SetBytes(out, fb+".column", fd.Column); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
