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

// Package qpdf runs the qpdf command-line tool to convert PDF files
// into QDF form.
//
// QDF is a normalized PDF layout which is easy to edit with a text editor
// or with regular expressions: all streams are uncompressed, every object
// starts on its own line, and each page object is preceded by a
// "%% Page n" comment.
package qpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// DefaultPath is the name of the qpdf executable used if
// [Normalizer.Path] is empty.
const DefaultPath = "qpdf"

// Normalizer converts PDF files into QDF form.
type Normalizer struct {
	// Path is the qpdf executable.  If this is empty, DefaultPath is
	// looked up in $PATH.
	Path string

	// TempDir is the directory for the temporary output file.
	// If this is empty, the default directory for temporary files is used.
	TempDir string
}

// Normalize converts the PDF file fname into QDF form and returns the
// contents of the converted file.
//
// qpdf writes its output to a temporary file, which is removed before
// Normalize returns.
func (n *Normalizer) Normalize(ctx context.Context, fname string) ([]byte, error) {
	path := n.Path
	if path == "" {
		path = DefaultPath
	}

	fd, err := os.CreateTemp(n.TempDir, "pdflinks-*.pdf")
	if err != nil {
		return nil, err
	}
	tmpName := fd.Name()
	fd.Close()
	defer os.Remove(tmpName)

	stderr := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, path, "--qdf", fname, tmpName)
	cmd.Stdin = nil
	cmd.Stderr = stderr
	err = cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case errors.As(err, &exitErr):
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ExitError{
			Code:   exitErr.ExitCode(),
			Stderr: strings.TrimSpace(stderr.String()),
		}
	case err != nil:
		return nil, err
	}

	return os.ReadFile(tmpName)
}

// ErrNotFound is returned if the qpdf executable cannot be found.
var ErrNotFound = errors.New("qpdf executable not found")

// ExitError is returned if qpdf exits with a non-zero status.
type ExitError struct {
	// Code is the exit status of qpdf.
	Code int

	// Stderr is the error output of qpdf, with leading and trailing
	// white space removed.
	Stderr string
}

func (err *ExitError) Error() string {
	msg := fmt.Sprintf("qpdf failed (exit status %d)", err.Code)
	if err.Stderr != "" {
		msg += ": " + err.Stderr
	}
	return msg
}
