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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdflinks"
)

func TestDecode(t *testing.T) {
	in := `# links for the title page
links:
  - url: https://example.com/
    coords: [72, 700, 200, 14]
  - url: "mailto:someone@example.com"
    coords:
      - 72
      - 680.5
      - 120
      - 14
output: ignored.pdf
`
	cfg, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}

	want := &File{
		Links: []*pdflinks.Link{
			{
				URI:  "https://example.com/",
				Rect: rect.Rect{LLx: 72, LLy: 700, URx: 272, URy: 714},
			},
			{
				URI:  "mailto:someone@example.com",
				Rect: rect.Rect{LLx: 72, LLy: 680.5, URx: 192, URy: 694.5},
			},
		},
	}
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("unexpected config (-want +got):\n%s", d)
	}
}

func TestDecodeEmptyList(t *testing.T) {
	cfg, err := Decode(strings.NewReader("links: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Links) != 0 {
		t.Errorf("expected no links, got %d", len(cfg.Links))
	}
}

func TestDecodeMissingLinks(t *testing.T) {
	cases := []string{
		"",
		"output: out.pdf\n",
		"links:\n",
	}
	for _, in := range cases {
		_, err := Decode(strings.NewReader(in))
		if !errors.Is(err, ErrNoLinks) {
			t.Errorf("%q: expected ErrNoLinks, got %v", in, err)
		}
	}
}

func TestDecodeInvalidLink(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		index int
	}{
		{
			name:  "too few coords",
			in:    "links:\n  - url: https://a.example/\n    coords: [1, 2, 3]\n",
			index: 0,
		},
		{
			name:  "missing coords",
			in:    "links:\n  - url: https://a.example/\n",
			index: 0,
		},
		{
			name: "missing url",
			in: "links:\n" +
				"  - url: https://a.example/\n    coords: [1, 2, 3, 4]\n" +
				"  - coords: [1, 2, 3, 4]\n",
			index: 1,
		},
		{
			name:  "negative width",
			in:    "links:\n  - url: https://a.example/\n    coords: [1, 2, -3, 4]\n",
			index: 0,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.in))
			var linkErr *LinkError
			if !errors.As(err, &linkErr) {
				t.Fatalf("expected *LinkError, got %v", err)
			}
			if linkErr.Index != c.index {
				t.Errorf("wrong index: got %d, want %d", linkErr.Index, c.index)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(strings.NewReader("links: [\n"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrNoLinks) {
		t.Errorf("syntax error reported as missing links: %v", err)
	}
}

func TestRead(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "links.yaml")
	err := os.WriteFile(fname, []byte("links:\n  - url: https://a.example/\n    coords: [1, 2, 3]\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Read(fname)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), fname+": link 1: ") {
		t.Errorf("unexpected error message %q", err)
	}

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}
