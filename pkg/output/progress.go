package output

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/Demoen/organizer-application/pkg/models"
)

const progressTemplate = `{{counters . }} {{bar . "[" "=" ">" " " "]" }} {{percent . }} {{string . "item" }}`

// ProgressBar draws a single bar while a plan is applied
type ProgressBar struct {
	mu  sync.Mutex
	bar *pb.ProgressBar
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// NewProgressBar starts a bar for total operations written to w
func NewProgressBar(w io.Writer, total int) *ProgressBar {
	width := 100
	// Detect terminal width to prevent line wrapping issues
	if file, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(file.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}

	bar := pb.New(total).
		SetWriter(w).
		SetTemplateString(progressTemplate).
		SetWidth(width)
	bar.Start()

	return &ProgressBar{bar: bar}
}

// Update matches execute.ProgressFunc
func (p *ProgressBar) Update(done, total int, op models.FileOperation) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bar.SetTotal(int64(total))
	p.bar.SetCurrent(int64(done))
	p.bar.Set("item", filepath.Base(op.Destination))
}

// Finish draws the final state and stops refreshing
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.bar.Set("item", "")
	p.bar.Finish()
}
