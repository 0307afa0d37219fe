package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
)

// progressBar renders a single-line transfer progress bar, driven by the
// byte-delta callbacks of pkg/client:
//
//	Uploading data ████████░░░░ 42% │ 1.2 MB / 2.8 MB │ 45.2 KB/s
//
// When the total size is unknown it degrades to a running byte counter.
type progressBar struct {
	w       io.Writer
	label   string
	total   int64
	current int64
	started time.Time
	bar     progress.Model
}

func newProgressBar(w io.Writer, label string, total int64) *progressBar {
	return &progressBar{
		w:       w,
		label:   label,
		total:   total,
		started: time.Now(),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
	}
}

// Add advances the bar by n bytes and redraws it. Safe to use directly as
// a client.ProgressFunc.
func (p *progressBar) Add(n int64) {
	p.current += n
	p.render()
}

// Done finishes the line. The counter is forced to the total so a final
// short read never leaves a 99% bar on screen.
func (p *progressBar) Done() {
	if p.total > 0 {
		p.current = p.total
	}
	p.render()
	fmt.Fprintln(p.w)
}

// Abort drops to a fresh line without completing the bar.
func (p *progressBar) Abort() {
	fmt.Fprintln(p.w)
}

func (p *progressBar) render() {
	clearLine(p.w)

	if p.total <= 0 {
		fmt.Fprintf(p.w, "%s %s | %s", p.label, humanSize(p.current), p.speed())
		return
	}

	frac := float64(p.current) / float64(p.total)
	if frac > 1 {
		frac = 1
	}

	fmt.Fprintf(p.w, "%s %s | %s / %s | %s",
		p.label, p.bar.ViewAs(frac), humanSize(p.current), humanSize(p.total), p.speed())
}

func (p *progressBar) speed() string {
	elapsed := time.Since(p.started).Seconds()
	if elapsed < 0.5 {
		return "-- B/s"
	}
	return humanSize(int64(float64(p.current)/elapsed)) + "/s"
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func clearLine(w io.Writer) {
	fmt.Fprint(w, "\r\033[K")
}
