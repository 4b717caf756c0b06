package main

import (
	"fmt"
	"io"
	"time"

	"github.com/muesli/termenv"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// progressPrinter reports render progress on the terminal. Colours are dropped
// automatically when the writer is not a TTY.
type progressPrinter struct {
	out    *termenv.Output
	scene  string
	frames int
	start  time.Time
}

func newProgressPrinter(w io.Writer, sceneName string, frames int) *progressPrinter {
	return &progressPrinter{
		out:    termenv.NewOutput(w),
		scene:  sceneName,
		frames: max(frames, 1),
		start:  time.Now(),
	}
}

func (p *progressPrinter) label() termenv.Style {
	return p.out.String("[" + p.scene + "]").Foreground(p.out.Color("12")).Bold()
}

func (p *progressPrinter) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// Preview implements renderer.PreviewFunc
func (p *progressPrinter) Preview(preview renderer.Preview) {
	percent := 100 * float64(preview.Received) / float64(max(preview.Expected, 1))
	fmt.Fprintf(p.out, "%s frame %d/%d %5.1f%% %v\n", p.label(), preview.Frame, p.frames, percent, p.elapsed())
}

func (p *progressPrinter) Done(stats renderer.RenderStats) {
	status := p.out.String("done").Foreground(p.out.Color("10"))
	fmt.Fprintf(p.out, "%s %s in %v: %d samples (%.1f per pixel) on %d workers\n",
		p.label(), status, stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.AverageSamples, stats.Workers)
}

func (p *progressPrinter) Fail(err error) {
	status := p.out.String("failed").Foreground(p.out.Color("9"))
	fmt.Fprintf(p.out, "%s %s after %v: %v\n", p.label(), status, p.elapsed(), err)
}

func (p *progressPrinter) Saved(path string) {
	fmt.Fprintf(p.out, "%s saved %s\n", p.label(), path)
}
