package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sdejongh/cmpgroups/pkg/group"
)

const (
	// DefaultWidth is used when the terminal width cannot be determined
	DefaultWidth = 80

	ellipsis = "..."
)

// RenderGroup renders one group summary line of at most width columns.
//
// A non-negative index adds a "[ n*]: " prefix, the marker being '*' when
// index equals base. Paths are appended one at a time until the line
// reaches width; a line that is cut short ends in "...". A width <= 0
// disables truncation.
func RenderGroup(files []string, index, base, width int) string {
	var b strings.Builder
	if index >= 0 {
		marker := ' '
		if index == base {
			marker = '*'
		}
		fmt.Fprintf(&b, "[%2d%c]: ", index, marker)
	}
	fmt.Fprintf(&b, "%d file(s) : ", len(files))

	line := b.String()
	appended := 0
	for _, f := range files {
		if width > 0 && runewidth.StringWidth(line) >= width {
			break
		}
		if appended > 0 {
			line += " "
		}
		line += f
		appended++
	}

	if width <= 0 {
		return line
	}
	if appended < len(files) || runewidth.StringWidth(line) > width {
		keep := width - len(ellipsis)
		if keep < 0 {
			return ellipsis[:width]
		}
		line = runewidth.Truncate(line, keep, "") + ellipsis
	}
	return line
}

// Listing writes the two-line header followed by one rendered line per group
func Listing(w io.Writer, coll *group.Collection, base, width int) {
	headerColor.Fprintf(w, "%d group(s), %d file(s)\n", coll.Len(), coll.FileCount)
	fmt.Fprintln(w, "(* marks the base group)")
	for i, g := range coll.Groups {
		fmt.Fprintln(w, RenderGroup(g.Files, i, base, width))
	}
}

// Members writes a header and every member path of group index
func Members(w io.Writer, g *group.Group, index int) {
	headerColor.Fprintf(w, "group %d (%d file(s)):\n", index, g.Len())
	for _, f := range g.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
