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

package qdf

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdflinks"
)

// Result describes a file after links have been inserted.
type Result struct {
	// Data is the contents of the modified file.
	Data []byte

	// Refs are the references of the new annotation objects.
	Refs []pdf.Reference

	// XRef is the cross-reference table header of the original file.
	XRef *XRef
}

// InsertLinks adds link annotations to the first page of a QDF file.
//
// The annotation objects are placed in front of the cross-reference table,
// and references to them are added to the /Annots array of the first page.
// The cross-reference table, the /Size entry of the trailer and the startxref
// offset are updated to match, so that the result is a valid PDF file.
//
// If links is empty, data is returned unchanged.  The data slice itself is
// never modified.
func InsertLinks(data []byte, links []*pdflinks.Link) (*Result, error) {
	xref, err := FindXRef(data)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return &Result{Data: data, XRef: xref}, nil
	}
	if xref.Count > math.MaxInt32-len(links) {
		return nil, fmt.Errorf("%w: too many objects", ErrMalformed)
	}

	objects, refs := RenderLinks(links, xref)

	annotsPos, annotsText, err := annotsInsertion(data[:xref.Pos], refs)
	if err != nil {
		return nil, err
	}

	entries, entriesStart, entriesEnd, err := parseEntries(data, xref.End, xref.Count)
	if err != nil {
		return nil, err
	}

	newSize := xref.Count + len(links)

	size := len(data) + len(annotsText) + 20*len(links)
	for _, obj := range objects {
		size += len(obj) + 1
	}
	out := bytes.NewBuffer(make([]byte, 0, size+64))

	// first page
	out.Write(data[:annotsPos])
	out.WriteString(annotsText)
	shift := len(annotsText)
	out.Write(data[annotsPos:xref.Pos])

	// new objects
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = out.Len()
		out.Write(obj)
		out.WriteByte('\n')
	}

	// cross-reference table
	xrefPos := out.Len()
	fmt.Fprintf(out, "xref\n%d %d", xref.Start, newSize)
	out.Write(data[xref.End:entriesStart])
	eol := []byte(" \n")
	for _, e := range entries {
		offset := e.offset
		if e.inUse && offset >= annotsPos {
			offset += shift
		}
		fmt.Fprintf(out, "%010d %s ", offset, e.gen)
		if e.inUse {
			out.WriteByte('n')
		} else {
			out.WriteByte('f')
		}
		out.Write(e.eol)
		eol = e.eol
	}
	for _, offset := range offsets {
		fmt.Fprintf(out, "%010d %05d n", offset, xref.Start)
		out.Write(eol)
	}

	// trailer
	tail := data[entriesEnd:]
	tail = replaceGroup(tail, trailerSizeRe, strconv.Itoa(newSize))
	tail = replaceGroup(tail, startxrefRe, strconv.Itoa(xrefPos))
	out.Write(tail)

	res := &Result{
		Data: out.Bytes(),
		Refs: refs,
		XRef: xref,
	}
	return res, nil
}

var (
	pageRe        = regexp.MustCompile(`%%\s+Page\s+1\s+(?:%%[^\n]*\s+)*\d+\s+\d+\s+obj\s+<<`)
	endobjRe      = regexp.MustCompile(`\bendobj\b`)
	annotsRe      = regexp.MustCompile(`/Annots\s*(?:(\[)|\d+\s+\d+\s+R)`)
	trailerSizeRe = regexp.MustCompile(`\btrailer\s*<<(?:[^>]|>[^>])*?/Size\s+(\d+)`)
	startxrefRe   = regexp.MustCompile(`\bstartxref\s+(\d+)`)
)

// annotsInsertion finds the place where references to new annotations are
// added to the first page.  It returns the position in data and the text to
// insert there.
func annotsInsertion(data []byte, refs []pdf.Reference) (int, string, error) {
	m := pageRe.FindIndex(data)
	if m == nil {
		return 0, "", ErrNoPage
	}
	dictStart := m[1]

	body := data[dictStart:]
	if e := endobjRe.FindIndex(body); e != nil {
		body = body[:e[0]]
	}

	a := annotsRe.FindSubmatchIndex(body)
	if a == nil {
		return dictStart, "/Annots [" + formatRefs(refs) + "] ", nil
	}
	if a[2] < 0 {
		return 0, "", ErrIndirectAnnots
	}

	// Append to the existing array.  In QDF files, annotation arrays only
	// contain references, so the first closing bracket ends the array.
	arrayStart := a[3]
	k := bytes.IndexByte(body[arrayStart:], ']')
	if k < 0 {
		return 0, "", fmt.Errorf("%w: unterminated /Annots array", ErrMalformed)
	}
	return dictStart + arrayStart + k, " " + formatRefs(refs), nil
}

// replaceGroup replaces the first submatch of the first match of re in data.
// If re does not match, data is returned unchanged.
func replaceGroup(data []byte, re *regexp.Regexp, value string) []byte {
	m := re.FindSubmatchIndex(data)
	if m == nil {
		return data
	}
	res := make([]byte, 0, len(data)+len(value))
	res = append(res, data[:m[2]]...)
	res = append(res, value...)
	res = append(res, data[m[3]:]...)
	return res
}
