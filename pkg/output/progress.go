package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }}`

// Progress shows a grouping progress bar. A nil *Progress is a no-op so
// callers can skip the bar when output is not a terminal.
type Progress struct {
	bar *pb.ProgressBar
}

// NewProgress starts a bar on w counting up to total files
func NewProgress(w io.Writer, total int) *Progress {
	bar := pb.New(total)
	bar.SetWriter(w)
	bar.SetTemplateString(progressTemplate)
	bar.Set("prefix", "grouping ")
	bar.Start()
	return &Progress{bar: bar}
}

// Update sets the number of files placed so far
func (p *Progress) Update(done, total int) {
	if p == nil {
		return
	}
	p.bar.SetTotal(int64(total))
	p.bar.SetCurrent(int64(done))
}

// Finish stops the bar and leaves it at its final state
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	p.bar.Finish()
}
