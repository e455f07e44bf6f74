package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"gopkg.in/yaml.v3"

	"github.com/five82/lectio/internal/guideapi"
)

// Output formats accepted by --output.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const nameColumnWidth = 48

type fileListing struct {
	Count int                  `json:"count" yaml:"count"`
	Files []guideapi.DriveFile `json:"files" yaml:"files"`
}

func writeFiles(w io.Writer, format string, files []guideapi.DriveFile, now time.Time) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatTable:
		return writeFileTable(w, files, now)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fileListing{Count: len(files), Files: files})
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fileListing{Count: len(files), Files: files}); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func writeFileTable(w io.Writer, files []guideapi.DriveFile, now time.Time) error {
	if len(files) == 0 {
		_, err := fmt.Fprintln(w, "No text files found in Google Drive.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tFOLDER\tMODIFIED\tID")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			truncate.StringWithTail(f.Name, nameColumnWidth, "…"),
			f.Folder(),
			modifiedLabel(f, now),
			f.ID,
		)
	}
	return tw.Flush()
}

func modifiedLabel(f guideapi.DriveFile, now time.Time) string {
	t := f.ParsedModifiedTime()
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
