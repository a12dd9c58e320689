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

// Package pdflinks adds clickable hyperlinks to existing PDF files.
//
// The links are described by a URI and a rectangle on the first page of the
// document.  The heavy lifting is done in three steps:
//
//   - The input file is rewritten into QDF form by the external qpdf
//     program (package [seehuhn.de/go/pdflinks/qpdf]).  In QDF form every
//     object starts on a new line and pages are marked by comments.
//   - A link annotation object is rendered for every link (see [Link.AsDict]).
//   - The new objects are spliced into the QDF text, the first page is made
//     to refer to them, and the cross-reference table is updated
//     (package [seehuhn.de/go/pdflinks/qdf]).
//
// The links are read from a YAML file, see [seehuhn.de/go/pdflinks/config].
// The command line tool is in cmd/pdf-insert-links.
package pdflinks
