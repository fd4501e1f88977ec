// Package report assembles analysis results into the final report value and
// renders it as JSON. Pretty and compact renderings differ only in
// whitespace; both are lossless encodings of the same report.
package report

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// Assemble combines file metadata, the analyzer result, and the parser's
// duplicate list into one report. Duplicates are sorted by path then key;
// an empty duplicate list is omitted from the report rather than emitted
// as an empty array.
func Assemble(filepath string, sizeBytes int64, res *analyzer.Result, dups []models.DuplicateRecord) *models.Report {
	rep := &models.Report{
		Filepath:      filepath,
		FileSizeBytes: &sizeBytes,
		RootType:      res.RootType,
		MaxDepth:      &res.MaxDepth,
		Statistics:    &res.Statistics,
		Structure:     res.Structure,
	}
	if len(dups) > 0 {
		sorted := make([]models.DuplicateRecord, len(dups))
		copy(sorted, dups)
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].Path != sorted[j].Path {
				return sorted[i].Path < sorted[j].Path
			}
			return sorted[i].Key < sorted[j].Key
		})
		rep.DuplicateKeys = sorted
	}
	return rep
}

// AssembleError builds the failure report: only the filepath and the error
// message survive, never partial statistics or structure.
func AssembleError(filepath string, err error) *models.Report {
	return &models.Report{
		Filepath:      filepath,
		AnalysisError: errors.UserFriendlyError(err),
	}
}

// Options controls JSON rendering.
type Options struct {
	Pretty bool
	Indent int // spaces per level when pretty; <= 0 means 2
}

// Render serializes the report. Pretty output is multi-line and indented,
// compact output is a single line with minimal separators.
func Render(rep *models.Report, opts Options) ([]byte, error) {
	if !opts.Pretty {
		return json.Marshal(rep)
	}
	indent := opts.Indent
	if indent <= 0 {
		indent = 2
	}
	return json.MarshalIndent(rep, "", strings.Repeat(" ", indent))
}
