package toast

import (
	"context"
	"io"

	"github.com/fatih/color"
)

// Printer echoes toasts to a terminal, one colored line each.
type Printer struct {
	out    io.Writer
	colors map[Level]*color.Color
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out: out,
		colors: map[Level]*color.Color{
			LevelInfo:    color.New(color.FgCyan),
			LevelSuccess: color.New(color.FgGreen),
			LevelWarning: color.New(color.FgYellow),
			LevelError:   color.New(color.FgRed, color.Bold),
		},
	}
}

func (p *Printer) Print(t Toast) {
	c, ok := p.colors[t.Level]
	if !ok {
		c = color.New(color.Reset)
	}
	c.Fprintf(p.out, "[%s] %-7s %s\n", t.CreatedAt.Format("15:04:05"), t.Level, t.Message)
}

// Run prints every toast of center until ctx is done.
func (p *Printer) Run(ctx context.Context, center *Center) error {
	queue := make(chan Toast, 64)
	stop := center.Listen(func(t Toast) {
		select {
		case queue <- t:
		default:
		}
	})
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-queue:
			p.Print(t)
		}
	}
}
