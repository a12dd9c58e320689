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

// Package check reads back a PDF file after links have been inserted.
//
// The file is parsed and validated with pdfcpu, which is independent of the
// textual editing done by package qdf.  This catches broken
// cross-reference tables and annotations which did not end up on the
// first page.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdflinks"
)

func init() {
	// Keep pdfcpu from creating a configuration directory.
	api.DisableConfigDir()
}

func read(data []byte) (*model.Context, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, err
	}
	err = api.ValidateContext(ctx)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

// Validate checks that data is a well-formed PDF file.
func Validate(data []byte) error {
	_, err := read(data)
	return err
}

// PageLinks returns the link annotations with URI actions on the first page
// of a PDF file.  Other annotations are skipped.
func PageLinks(data []byte) ([]*pdflinks.Link, error) {
	ctx, err := read(data)
	if err != nil {
		return nil, err
	}

	page, _, _, err := ctx.PageDict(1, false)
	if err != nil {
		return nil, err
	}
	obj, ok := page.Find("Annots")
	if !ok {
		return nil, nil
	}
	annots, err := ctx.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}

	var res []*pdflinks.Link
	for _, obj := range annots {
		annot, err := ctx.DereferenceDict(obj)
		if err != nil {
			return nil, err
		}
		if subtype := annot.NameEntry("Subtype"); subtype == nil || *subtype != "Link" {
			continue
		}

		action, err := ctx.DereferenceDict(annot["A"])
		if err != nil {
			return nil, err
		}
		if s := action.NameEntry("S"); s == nil || *s != "URI" {
			continue
		}
		uri, err := getString(ctx, action["URI"])
		if err != nil {
			return nil, err
		}

		r, err := getRect(ctx, annot["Rect"])
		if err != nil {
			return nil, err
		}

		res = append(res, &pdflinks.Link{URI: uri, Rect: r})
	}
	return res, nil
}

// Links checks that data is a valid PDF file, and that the first page has a
// link annotation for each of the given links.
func Links(data []byte, want []*pdflinks.Link) error {
	have, err := PageLinks(data)
	if err != nil {
		return err
	}

	var missing []string
	for _, l := range want {
		if !contains(have, l) {
			missing = append(missing, l.URI)
		}
	}
	if len(missing) > 0 {
		return &MissingError{URIs: missing}
	}
	return nil
}

func contains(links []*pdflinks.Link, l *pdflinks.Link) bool {
	for _, cand := range links {
		if cand.URI == l.URI && nearlyEqual(cand.Rect, l.Rect) {
			return true
		}
	}
	return false
}

func nearlyEqual(a, b rect.Rect) bool {
	const eps = 1e-6
	return math.Abs(a.LLx-b.LLx) < eps && math.Abs(a.LLy-b.LLy) < eps &&
		math.Abs(a.URx-b.URx) < eps && math.Abs(a.URy-b.URy) < eps
}

// MissingError is returned by [Links] if some links are not present on the
// first page.
type MissingError struct {
	URIs []string
}

func (err *MissingError) Error() string {
	return "links missing from page 1: " + strings.Join(err.URIs, ", ")
}

func getString(ctx *model.Context, obj types.Object) (string, error) {
	obj, err := ctx.Dereference(obj)
	if err != nil {
		return "", err
	}
	switch s := obj.(type) {
	case types.StringLiteral:
		return types.StringLiteralToString(s)
	case types.HexLiteral:
		return types.HexLiteralToString(s)
	default:
		return "", fmt.Errorf("expected string but got %T", obj)
	}
}

func getRect(ctx *model.Context, obj types.Object) (rect.Rect, error) {
	a, err := ctx.DereferenceArray(obj)
	if err != nil {
		return rect.Rect{}, err
	}
	if len(a) != 4 {
		return rect.Rect{}, errNoRect
	}
	var v [4]float64
	for i, o := range a {
		o, err := ctx.Dereference(o)
		if err != nil {
			return rect.Rect{}, err
		}
		switch x := o.(type) {
		case types.Integer:
			v[i] = float64(x)
		case types.Float:
			v[i] = float64(x)
		default:
			return rect.Rect{}, errNoRect
		}
	}
	return rect.Rect{LLx: v[0], LLy: v[1], URx: v[2], URy: v[3]}, nil
}

var errNoRect = errors.New("malformed annotation rectangle")
