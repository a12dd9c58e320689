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

// Pdf-insert-links adds clickable hyperlinks to the first page of a PDF file.
//
// The links are read from a YAML file, the input file is normalized with
// qpdf, and the modified PDF file is written to standard output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"golang.org/x/term"

	"seehuhn.de/go/pdflinks/check"
	"seehuhn.de/go/pdflinks/config"
	"seehuhn.de/go/pdflinks/qdf"
	"seehuhn.de/go/pdflinks/qpdf"
)

const toolName = "pdf-insert-links"

// options holds the command-line flag values.
type options struct {
	qpdfPath string
	force    bool
	check    bool
	verbose  bool
}

func main() {
	opt := &options{}
	flag.StringVar(&opt.qpdfPath, "qpdf", defaultQPDF(), "qpdf executable")
	flag.BoolVar(&opt.force, "f", false, "write PDF data even if standard output is a terminal")
	flag.BoolVar(&opt.check, "check", false, "validate the output before writing it")
	flag.BoolVar(&opt.verbose, "v", false, "log progress to standard error")
	showVersion := flag.Bool("version", false, "print version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - add hyperlinks to the first page of a PDF file\n", toolName)
		fmt.Fprintf(os.Stderr, "%s\n\n", version())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options] <config.yaml> <file.pdf> >out.pdf\n\n", toolName)
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  config.yaml   list of links, with url and coords for each link\n")
		fmt.Fprintf(os.Stderr, "  file.pdf      the PDF file to modify\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample config.yaml:\n")
		fmt.Fprintf(os.Stderr, "  links:\n")
		fmt.Fprintf(os.Stderr, "    - url: https://example.com/\n")
		fmt.Fprintf(os.Stderr, "      coords: [72, 700, 200, 14]  # x, y, width, height\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version())
		return
	}
	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	if !opt.force && term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "error: refusing to write PDF data to a terminal (use -f to override)")
		os.Exit(1)
	}

	level := slog.LevelWarn
	if opt.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, logger, opt, flag.Arg(0), flag.Arg(1), os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run inserts the links from the configuration file cfgName into the PDF
// file pdfName and writes the result to w.  Nothing is written to w if an
// error occurs.
func run(ctx context.Context, logger *slog.Logger, opt *options, cfgName, pdfName string, w io.Writer) error {
	cfg, err := config.Read(cfgName)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "file", cfgName, "links", len(cfg.Links))

	n := &qpdf.Normalizer{Path: opt.qpdfPath}
	data, err := n.Normalize(ctx, pdfName)
	if err != nil {
		return fmt.Errorf("%s: %w", pdfName, err)
	}
	logger.Debug("converted to QDF", "file", pdfName, "size", len(data))

	res, err := qdf.InsertLinks(data, cfg.Links)
	if err != nil {
		return fmt.Errorf("%s: %w", pdfName, err)
	}
	logger.Debug("cross-reference table found",
		"start", res.XRef.Start, "count", res.XRef.Count)
	for i, ref := range res.Refs {
		logger.Debug("link inserted",
			"object", ref.Number(), "generation", ref.Generation(),
			"uri", cfg.Links[i].URI)
	}

	if opt.check {
		err = check.Links(res.Data, cfg.Links)
		if err != nil {
			return fmt.Errorf("%s: output check failed: %w", pdfName, err)
		}
		logger.Debug("output checked")
	}

	_, err = w.Write(res.Data)
	return err
}

// defaultQPDF returns the qpdf executable to use if the -qpdf flag is not
// given.  The QPDF environment variable overrides the default.
func defaultQPDF() string {
	if path := os.Getenv("QPDF"); path != "" {
		return path
	}
	return qpdf.DefaultPath
}

// version returns a short version string, e.g.
// "pdf-insert-links (seehuhn.de/go/pdflinks v0.1.0)".
func version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return toolName
	}

	v := info.Main.Version
	if v == "" || v == "(devel)" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				v = s.Value
				if len(v) > 8 {
					v = v[:8]
				}
			}
		}
	}
	if v == "" || v == "(devel)" {
		return toolName
	}
	return toolName + " (" + info.Main.Path + " " + v + ")"
}
