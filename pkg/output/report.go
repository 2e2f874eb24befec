package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sdejongh/cmpgroups/pkg/group"
)

// ReportInfo describes the run a group report was produced by
type ReportInfo struct {
	Comparator string
	Generated  time.Time

	// Sizes holds the content size of each group by index; nil omits sizes
	Sizes []int64
}

func (i ReportInfo) size(index int) (int64, bool) {
	if index < len(i.Sizes) {
		return i.Sizes[index], true
	}
	return 0, false
}

// WriteGroupReport writes the group collection to path, or to stdout when
// path is "-". Format can be "human" or "json".
func WriteGroupReport(coll *group.Collection, info ReportInfo, path string, format string) error {
	if path == "-" {
		return writeReport(os.Stdout, coll, info, format)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := writeReport(file, coll, info, format); err != nil {
		return err
	}
	return file.Close()
}

func writeReport(w io.Writer, coll *group.Collection, info ReportInfo, format string) error {
	switch format {
	case "json":
		return writeReportJSON(w, coll, info)
	case "human", "":
		return writeReportHuman(w, coll, info)
	default:
		return fmt.Errorf("unsupported report format: %s (use: human, json)", format)
	}
}

func writeReportHuman(w io.Writer, coll *group.Collection, info ReportInfo) error {
	fmt.Fprintf(w, "Group Report\n")
	fmt.Fprintf(w, "============\n\n")
	fmt.Fprintf(w, "Generated: %s\n", info.Generated.Format(time.RFC3339))
	fmt.Fprintf(w, "Comparator: %s\n", info.Comparator)
	fmt.Fprintf(w, "Groups: %d\n", coll.Len())
	fmt.Fprintf(w, "Files: %d\n\n", coll.FileCount)

	for i, g := range coll.Groups {
		label := fmt.Sprintf("Group %d (%d file(s))", i, g.Len())
		if size, ok := info.size(i); ok {
			label = fmt.Sprintf("Group %d (%d file(s), %s each)", i, g.Len(), humanize.Bytes(uint64(size)))
		}
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, f := range g.Files {
			fmt.Fprintf(w, "  %s\n", f)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

type reportGroup struct {
	Index          int      `json:"index"`
	Representative string   `json:"representative"`
	Size           *int64   `json:"size,omitempty"`
	Files          []string `json:"files"`
}

func writeReportJSON(w io.Writer, coll *group.Collection, info ReportInfo) error {
	groups := make([]reportGroup, 0, coll.Len())
	for i, g := range coll.Groups {
		rg := reportGroup{
			Index:          i,
			Representative: g.Representative(),
			Files:          g.Files,
		}
		if size, ok := info.size(i); ok {
			rg.Size = &size
		}
		groups = append(groups, rg)
	}

	report := struct {
		Generated   string        `json:"generated"`
		Comparator  string        `json:"comparator"`
		TotalGroups int           `json:"total_groups"`
		TotalFiles  int           `json:"total_files"`
		Groups      []reportGroup `json:"groups"`
	}{
		Generated:   info.Generated.Format(time.RFC3339),
		Comparator:  info.Comparator,
		TotalGroups: coll.Len(),
		TotalFiles:  coll.FileCount,
		Groups:      groups,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
