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
	"strings"

	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdflinks"
)

// RenderLinks renders one link annotation object per link.
//
// Link i is assigned the object number xref.Count+i, i.e. the new objects
// follow the objects already present in the file.  The start of the
// cross-reference table is used as the generation number.  The returned
// references identify the new objects, in the same order as links.
func RenderLinks(links []*pdflinks.Link, xref *XRef) ([][]byte, []pdf.Reference) {
	objects := make([][]byte, len(links))
	refs := make([]pdf.Reference, len(links))
	for i, l := range links {
		ref := pdf.NewReference(uint32(xref.Count+i), uint16(xref.Start))

		buf := &bytes.Buffer{}
		fmt.Fprintf(buf, "%d %d obj\n", ref.Number(), ref.Generation())
		buf.WriteString(pdf.Format(l.AsDict()))
		buf.WriteString("\nendobj")

		objects[i] = buf.Bytes()
		refs[i] = ref
	}
	return objects, refs
}

// formatRefs returns the references as they appear in a PDF array,
// separated by single spaces.
func formatRefs(refs []pdf.Reference) string {
	parts := make([]string, len(refs))
	for i, ref := range refs {
		parts[i] = pdf.Format(ref)
	}
	return strings.Join(parts, " ")
}
