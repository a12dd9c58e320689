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

// Package config reads the list of links to insert into a PDF file.
//
// The configuration is a YAML file of the following form:
//
//	links:
//	  - url: https://example.com/
//	    coords: [72, 700, 200, 14]
//	  - url: mailto:someone@example.com
//	    coords: [72, 680, 120, 14]
//
// The coords of a link give x, y, width and height of the active area on
// the first page, in PDF points.  The y coordinate is measured from the
// bottom of the page.  Other top-level keys are ignored.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pdflinks"
)

// File is the contents of a configuration file.
type File struct {
	// Links lists the links to insert, in the order given in the file.
	Links []*pdflinks.Link
}

type yamlFile struct {
	Links []yamlLink `yaml:"links"`
}

type yamlLink struct {
	URL    string    `yaml:"url"`
	Coords []float64 `yaml:"coords"`
}

// Read reads the configuration file with the given name.
func Read(fname string) (*File, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	cfg, err := Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r.
//
// The document must have a "links" list.  An empty list is allowed and
// results in a File without links.
func Decode(r io.Reader) (*File, error) {
	var raw yamlFile
	err := yaml.NewDecoder(r).Decode(&raw)
	if errors.Is(err, io.EOF) {
		return nil, ErrNoLinks
	} else if err != nil {
		return nil, err
	}
	if raw.Links == nil {
		return nil, ErrNoLinks
	}

	res := &File{
		Links: make([]*pdflinks.Link, 0, len(raw.Links)),
	}
	for i, l := range raw.Links {
		if len(l.Coords) != 4 {
			return nil, &LinkError{
				Index: i,
				Err:   fmt.Errorf("coords must have 4 entries, not %d", len(l.Coords)),
			}
		}
		c := l.Coords
		link, err := pdflinks.NewLink(l.URL, c[0], c[1], c[2], c[3])
		if err != nil {
			return nil, &LinkError{Index: i, Err: err}
		}
		res.Links = append(res.Links, link)
	}
	return res, nil
}

// ErrNoLinks is returned by [Decode] if the configuration has no "links"
// list.
var ErrNoLinks = errors.New("missing \"links\" list")

// LinkError reports an invalid entry in the "links" list.
type LinkError struct {
	// Index is the zero-based position of the entry in the list.
	Index int
	Err   error
}

func (err *LinkError) Error() string {
	return fmt.Sprintf("link %d: %v", err.Index+1, err.Err)
}

func (err *LinkError) Unwrap() error {
	return err.Err
}
