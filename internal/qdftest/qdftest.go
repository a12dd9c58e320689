// seehuhn.de/go/pdflinks - insert hyperlinks into PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package qdftest provides PDF files in QDF layout and fake qpdf
// executables for use in unit tests.
package qdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// Options control the file generated by [Make].
type Options struct {
	// Pages is the number of pages.  Values less than 1 are treated as 1.
	Pages int

	// Annots adds an existing link annotation to the first page.
	Annots AnnotsMode

	// OriginalIDs adds "%% Original object ID" comments, as written by
	// newer versions of qpdf.
	OriginalIDs bool
}

// AnnotsMode describes how the first page refers to its annotations.
type AnnotsMode int

// These are the supported values for [Options.Annots].
const (
	NoAnnots       AnnotsMode = iota // page 1 has no /Annots entry
	InlineAnnots                     // /Annots is a direct array
	IndirectAnnots                   // /Annots is a reference to an array
)

// ExistingURI is the URI of the link annotation added by [InlineAnnots] and
// [IndirectAnnots].
const ExistingURI = "https://existing.example/"

// Make returns a small, valid PDF file in the layout written by
// "qpdf --qdf".
//
// Objects are numbered as follows: 1 is the catalog, 2 the page tree root,
// and page i (starting from 0) uses objects 3+3i (page dictionary), 4+3i
// (content stream) and 5+3i (stream length).  The existing annotation, if
// any, comes next, followed by the annotation array for [IndirectAnnots].
// The xref table has a single subsection starting at object 0.
func Make(opt *Options) []byte {
	if opt == nil {
		opt = &Options{}
	}
	pages := max(opt.Pages, 1)

	annotNum := 3 + 3*pages
	size := annotNum
	switch opt.Annots {
	case InlineAnnots:
		size++
	case IndirectAnnots:
		size += 2
	}

	w := &writer{offsets: make([]int, size)}
	w.buf.WriteString("%PDF-1.3\n%\xbf\xf7\xa2\xfe\n%QDF-1.0\n\n")

	kids := &strings.Builder{}
	for i := range pages {
		fmt.Fprintf(kids, "    %d 0 R\n", 3+3*i)
	}

	w.object(opt, 1, "", "<<\n  /Pages 2 0 R\n  /Type /Catalog\n>>")
	w.object(opt, 2, "", fmt.Sprintf(
		"<<\n  /Count %d\n  /Kids [\n%s  ]\n  /Type /Pages\n>>", pages, kids))

	for i := range pages {
		pageNum := 3 + 3*i
		contentNum := pageNum + 1
		lengthNum := pageNum + 2

		extra := ""
		if i == 0 {
			switch opt.Annots {
			case InlineAnnots:
				extra = fmt.Sprintf("  /Annots [\n    %d 0 R\n  ]\n", annotNum)
			case IndirectAnnots:
				extra = fmt.Sprintf("  /Annots %d 0 R\n", annotNum+1)
			}
		}
		w.object(opt, pageNum, fmt.Sprintf("%%%% Page %d\n", i+1), fmt.Sprintf(
			"<<\n%s  /Contents %d 0 R\n  /MediaBox [\n    0\n    0\n    612\n    792\n  ]\n"+
				"  /Parent 2 0 R\n  /Resources <<\n  >>\n  /Type /Page\n>>",
			extra, contentNum))

		content := fmt.Sprintf("0 0 1 rg\n72 %d 200 14 re\nf\n", 700-20*i)
		w.object(opt, contentNum, fmt.Sprintf("%%%% Contents for page %d\n", i+1), fmt.Sprintf(
			"<<\n  /Length %d 0 R\n>>\nstream\n%sendstream", lengthNum, content))
		w.object(opt, lengthNum, "", fmt.Sprintf("%d", len(content)))
	}

	if opt.Annots != NoAnnots {
		w.object(opt, annotNum, "", "<<\n  /A <<\n    /S /URI\n    /URI ("+ExistingURI+")\n  >>\n"+
			"  /Border [\n    0\n    0\n    0\n  ]\n  /Rect [\n    72\n    500\n    272\n    514\n  ]\n"+
			"  /Subtype /Link\n  /Type /Annot\n>>")
	}
	if opt.Annots == IndirectAnnots {
		w.object(opt, annotNum+1, "", fmt.Sprintf("[\n  %d 0 R\n]", annotNum))
	}

	xrefPos := w.buf.Len()
	fmt.Fprintf(&w.buf, "xref\n0 %d\n0000000000 65535 f \n", size)
	for _, pos := range w.offsets[1:] {
		fmt.Fprintf(&w.buf, "%010d 00000 n \n", pos)
	}
	fmt.Fprintf(&w.buf, "trailer <<\n  /Root 1 0 R\n  /Size %d\n"+
		"  /ID [<31415926535897932384626433832795><31415926535897932384626433832795>]\n>>\n", size)
	fmt.Fprintf(&w.buf, "startxref\n%d\n%%%%EOF\n", xrefPos)

	return w.buf.Bytes()
}

type writer struct {
	buf     bytes.Buffer
	offsets []int
}

func (w *writer) object(opt *Options, num int, comment, body string) {
	w.buf.WriteString(comment)
	if opt.OriginalIDs {
		fmt.Fprintf(&w.buf, "%%%% Original object ID: %d 0\n", num)
	}
	w.offsets[num] = w.buf.Len()
	fmt.Fprintf(&w.buf, "%d 0 obj\n%s\nendobj\n\n", num, body)
}

// CopyScript is a fake qpdf which copies its input file to the output file.
// This is enough for inputs which are already in QDF form.
const CopyScript = `[ "$1" = "--qdf" ] || exit 2
cp "$2" "$3"
`

// FailScript is a fake qpdf which fails with exit status 2.
const FailScript = `echo "qpdf: $2: unable to find trailer dictionary" >&2
exit 2
`

// FakeQPDF writes a fake qpdf executable into dir and returns its path.
// The executable runs the given shell script and records every call in a log
// file, see [Calls].
//
// The test is skipped on systems without /bin/sh.
func FakeQPDF(t testing.TB, dir, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake qpdf needs a POSIX shell")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not found")
	}

	path := filepath.Join(dir, "qpdf")
	body := "#!/bin/sh\necho \"$@\" >> \"$0.log\"\n" + script
	err := os.WriteFile(path, []byte(body), 0o755)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// Calls returns the number of times the fake qpdf at path has been run.
func Calls(t testing.TB, path string) int {
	t.Helper()

	data, err := os.ReadFile(path + ".log")
	if os.IsNotExist(err) {
		return 0
	} else if err != nil {
		t.Fatal(err)
	}
	return bytes.Count(data, []byte("\n"))
}
