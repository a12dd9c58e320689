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

// Package qdf edits PDF files in the QDF layout written by "qpdf --qdf".
//
// The edits are done textually on the byte representation of the file,
// using regular expressions.  This relies on the regular structure of QDF
// files: every object starts on a new line, page objects are preceded by a
// "%% Page n" comment, and the file has a single cross-reference table.
package qdf

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// XRef describes the header of the first cross-reference table in a file.
type XRef struct {
	// Start is the object number of the first entry in the table.
	Start int

	// Count is the number of entries in the table.
	Count int

	// Pos and End are the byte offsets of the beginning and the end of
	// the header text "xref <Start> <Count>".
	Pos, End int
}

var xrefRe = regexp.MustCompile(`\bxref\s+(\d+)\s+(\d+)\b`)

// FindXRef locates the first cross-reference table header in data.
// If no header is found, [ErrNoXRef] is returned.
func FindXRef(data []byte) (*XRef, error) {
	m := xrefRe.FindSubmatchIndex(data)
	if m == nil {
		return nil, ErrNoXRef
	}

	start, err := strconv.Atoi(string(data[m[2]:m[3]]))
	if err != nil {
		return nil, fmt.Errorf("%w: xref start: %v", ErrMalformed, err)
	}
	count, err := strconv.Atoi(string(data[m[4]:m[5]]))
	if err != nil {
		return nil, fmt.Errorf("%w: xref count: %v", ErrMalformed, err)
	}

	// New objects use the start of the table as their generation number.
	if start > math.MaxUint16 {
		return nil, fmt.Errorf("%w: xref start %d out of range", ErrMalformed, start)
	}
	if count > math.MaxInt32 {
		return nil, fmt.Errorf("%w: xref count %d out of range", ErrMalformed, count)
	}

	xref := &XRef{
		Start: start,
		Count: count,
		Pos:   m[0],
		End:   m[1],
	}
	return xref, nil
}

// entry is one line of a cross-reference table.
type entry struct {
	offset int
	gen    []byte
	inUse  bool
	eol    []byte
}

var entryRe = regexp.MustCompile(`^(\d{10}) (\d{5}) ([fn])( \r| \n|\r\n)`)

// parseEntries reads the n entries following the xref header, which ends at
// pos.  The returned positions are the start of the first entry and the first
// byte after the table.
func parseEntries(data []byte, pos, n int) ([]entry, int, int, error) {
	for pos < len(data) && isSpace(data[pos]) {
		pos++
	}
	first := pos

	entries := make([]entry, 0, n)
	for i := range n {
		m := entryRe.FindSubmatchIndex(data[pos:])
		if m == nil {
			return nil, 0, 0, fmt.Errorf("%w: xref entry %d", ErrMalformed, i)
		}
		offset, _ := strconv.Atoi(string(data[pos+m[2] : pos+m[3]]))
		entries = append(entries, entry{
			offset: offset,
			gen:    data[pos+m[4] : pos+m[5]],
			inUse:  data[pos+m[6]] == 'n',
			eol:    data[pos+m[8] : pos+m[9]],
		})
		pos += m[1]
	}
	return entries, first, pos, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

var (
	// ErrNoXRef is returned if a file has no cross-reference table.
	ErrNoXRef = errors.New("could not find cross-reference table")

	// ErrNoPage is returned if the object of the first page cannot be
	// located.
	ErrNoPage = errors.New("could not find first page")

	// ErrIndirectAnnots is returned if the /Annots entry of the first page is
	// a reference to an array instead of an inline array.
	ErrIndirectAnnots = errors.New("page 1 has an indirect /Annots array")

	// ErrMalformed indicates that a file does not have the expected QDF
	// structure.
	ErrMalformed = errors.New("malformed QDF file")
)
