package compare

import (
	"io"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// DiffStat summarizes comparator output in unified format
type DiffStat struct {
	Hunks   int
	Added   int
	Removed int
}

// ParseDiffStat counts hunks and changed lines in unified diff output.
// ok is false when r holds no unified diff, e.g. the default normal
// format of diff(1).
func ParseDiffStat(r io.Reader) (stat DiffStat, ok bool) {
	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return DiffStat{}, false
	}

	for _, fd := range fileDiffs {
		for _, hunk := range fd.Hunks {
			stat.Hunks++
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				if strings.HasPrefix(line, "+") {
					stat.Added++
				} else if strings.HasPrefix(line, "-") {
					stat.Removed++
				}
			}
		}
	}

	return stat, stat.Hunks > 0
}
