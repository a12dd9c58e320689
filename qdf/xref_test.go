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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdflinks/internal/qdftest"
)

func TestFindXRef(t *testing.T) {
	data := qdftest.Make(nil)
	xref, err := FindXRef(data)
	if err != nil {
		t.Fatal(err)
	}
	if xref.Start != 0 || xref.Count != 6 {
		t.Errorf("wrong xref header: start=%d count=%d", xref.Start, xref.Count)
	}
	if got := string(data[xref.Pos:xref.End]); got != "xref\n0 6" {
		t.Errorf("wrong header range: %q", got)
	}
}

func TestFindXRefFirst(t *testing.T) {
	data := []byte("%PDF-1.3\nxref  0\r\n 4 trailer\nxref\n0 9\nstartxref\n5\n")
	xref, err := FindXRef(data)
	if err != nil {
		t.Fatal(err)
	}
	want := &XRef{Start: 0, Count: 4, Pos: 9, End: 20}
	if d := cmp.Diff(want, xref); d != "" {
		t.Errorf("unexpected xref (-want +got):\n%s", d)
	}
}

func TestFindXRefMissing(t *testing.T) {
	cases := []string{
		"",
		"%PDF-1.3\n1 0 obj\n<<\n>>\nendobj\n",
		"startxref\n0 6\n",
		"xref\n0\n",
		"xrefs 0 6\n",
	}
	for _, in := range cases {
		_, err := FindXRef([]byte(in))
		if !errors.Is(err, ErrNoXRef) {
			t.Errorf("%q: expected ErrNoXRef, got %v", in, err)
		}
	}
}

func TestFindXRefRange(t *testing.T) {
	_, err := FindXRef([]byte("xref\n65536 2\n"))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}
