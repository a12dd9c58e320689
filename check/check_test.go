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

package check

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdflinks"
	"seehuhn.de/go/pdflinks/internal/qdftest"
	"seehuhn.de/go/pdflinks/qdf"
)

var testLinks = []*pdflinks.Link{
	{URI: "https://one.example/", Rect: rect.Rect{LLx: 72, LLy: 700, URx: 272, URy: 714}},
	{URI: "https://two.example/(x)", Rect: rect.Rect{LLx: 72, LLy: 680, URx: 192.5, URy: 694}},
	{URI: `https://three.example/a)b\c`, Rect: rect.Rect{LLx: 300, LLy: 100, URx: 310, URy: 110}},
}

func TestValidate(t *testing.T) {
	cases := []*qdftest.Options{
		nil,
		{Pages: 3},
		{Annots: qdftest.InlineAnnots, OriginalIDs: true},
		{Annots: qdftest.IndirectAnnots},
	}
	for _, opt := range cases {
		err := Validate(qdftest.Make(opt))
		if err != nil {
			t.Errorf("%+v: %v", opt, err)
		}
	}
}

func TestValidateGarbage(t *testing.T) {
	err := Validate([]byte("this is not a PDF file\n"))
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestPageLinks(t *testing.T) {
	links, err := PageLinks(qdftest.Make(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(links) != 0 {
		t.Errorf("unexpected links %v", links)
	}

	links, err = PageLinks(qdftest.Make(&qdftest.Options{Annots: qdftest.IndirectAnnots}))
	if err != nil {
		t.Fatal(err)
	}
	want := []*pdflinks.Link{
		{URI: qdftest.ExistingURI, Rect: rect.Rect{LLx: 72, LLy: 500, URx: 272, URy: 514}},
	}
	if d := cmp.Diff(want, links); d != "" {
		t.Errorf("unexpected links (-want +got):\n%s", d)
	}
}

func TestLinks(t *testing.T) {
	for _, opt := range []*qdftest.Options{nil, {Pages: 2}, {Annots: qdftest.InlineAnnots}} {
		res, err := qdf.InsertLinks(qdftest.Make(opt), testLinks)
		if err != nil {
			t.Fatal(err)
		}

		err = Links(res.Data, testLinks)
		if err != nil {
			t.Errorf("%+v: %v", opt, err)
		}

		have, err := PageLinks(res.Data)
		if err != nil {
			t.Fatal(err)
		}
		want := testLinks
		if opt != nil && opt.Annots == qdftest.InlineAnnots {
			existing := &pdflinks.Link{
				URI:  qdftest.ExistingURI,
				Rect: rect.Rect{LLx: 72, LLy: 500, URx: 272, URy: 514},
			}
			want = append([]*pdflinks.Link{existing}, testLinks...)
		}
		if d := cmp.Diff(want, have); d != "" {
			t.Errorf("%+v: unexpected links (-want +got):\n%s", opt, d)
		}
	}
}

func TestLinksMissing(t *testing.T) {
	data := qdftest.Make(nil)
	err := Links(data, testLinks[:2])

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingError, got %v", err)
	}
	want := []string{testLinks[0].URI, testLinks[1].URI}
	if d := cmp.Diff(want, missing.URIs); d != "" {
		t.Errorf("wrong URIs (-want +got):\n%s", d)
	}
}
