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

package pdflinks

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
)

// Link is a hyperlink on a PDF page.
type Link struct {
	// URI is the target of the link.  This must be 7-bit ASCII,
	// see [NormalizeURI].
	URI string

	// Rect is the active area of the link, in PDF default user space units.
	Rect rect.Rect
}

// NewLink creates a link from an origin-and-size description of the
// active area.  The rectangle is converted to the corner form used by PDF,
// i.e. to (x, y, x+width, y+height).
func NewLink(uri string, x, y, width, height float64) (*Link, error) {
	for _, v := range []float64{x, y, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("coordinates must be finite")
		}
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid link size %gx%g", width, height)
	}

	uri, err := NormalizeURI(uri)
	if err != nil {
		return nil, err
	}

	l := &Link{
		URI: uri,
		Rect: rect.Rect{
			LLx: x,
			LLy: y,
			URx: x + width,
			URy: y + height,
		},
	}
	return l, nil
}

// NormalizeURI prepares a URI for use in a PDF URI action.
//
// PDF requires URIs to be 7-bit ASCII.  Surrounding white space is removed,
// the string is converted to Unicode normalization form C, and all non-ASCII
// bytes of the UTF-8 encoding are percent-encoded.
func NormalizeURI(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", errMissingURI
	}
	for _, r := range uri {
		if r < 0x20 || r == 0x7f {
			return "", fmt.Errorf("invalid character %q in URI", r)
		}
	}

	uri = norm.NFC.String(uri)

	var b strings.Builder
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		if c < 0x80 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String(), nil
}

var errMissingURI = errors.New("missing URI")

// AsDict returns the link annotation dictionary for l.
//
// The annotation has a URI action and no visible border.
func (l *Link) AsDict() pdf.Dict {
	action := pdf.Dict{
		"S":   pdf.Name("URI"),
		"URI": pdf.String(l.URI),
	}
	return pdf.Dict{
		"Type":    pdf.Name("Annot"),
		"Subtype": pdf.Name("Link"),
		"A":       action,
		"Border":  pdf.Array{pdf.Integer(0), pdf.Integer(0), pdf.Integer(0)},
		"Rect": pdf.Array{
			pdf.Number(l.Rect.LLx),
			pdf.Number(l.Rect.LLy),
			pdf.Number(l.Rect.URx),
			pdf.Number(l.Rect.URy),
		},
	}
}
