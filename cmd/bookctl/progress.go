package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/ytget/audiobook-reader/internal/model"
	"github.com/ytget/audiobook-reader/internal/notify"
)

const progressInterval = 250 * time.Millisecond

// progressPrinter renders store changes and notifications to the terminal.
// On a TTY it keeps one progress line updated in place; otherwise it prints
// only chapter changes and notifications.
type progressPrinter struct {
	out      io.Writer
	tty      bool
	lastID   int
	lastDraw time.Time
	inLine   bool
	seen     map[string]bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	return &progressPrinter{
		out:  out,
		tty:  isTerminal(out),
		seen: make(map[string]bool),
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *progressPrinter) onStore(prev, next model.PlaybackState) {
	if ch := next.CurrentChapter.Chapter; ch != nil && ch.ID != p.lastID {
		p.lastID = ch.ID
		p.println(fmt.Sprintf("Chapter %d: %s", ch.ID, ch.Title))
	}
	if !p.tty {
		return
	}

	discrete := prev.IsPlaying != next.IsPlaying ||
		prev.Volume != next.Volume ||
		prev.PlaybackRate != next.PlaybackRate
	if !discrete && time.Since(p.lastDraw) < progressInterval {
		return
	}
	p.draw(next)
}

func (p *progressPrinter) draw(st model.PlaybackState) {
	p.lastDraw = time.Now()
	state := "paused"
	if st.IsPlaying {
		state = "playing"
	}
	fmt.Fprintf(p.out, "\r\033[K%-7s %s / %s  vol %3d%%  %s",
		state,
		model.FormatTime(st.CurrentTime),
		model.FormatTime(st.Duration),
		int(st.Volume*100+0.5),
		model.FormatRate(st.PlaybackRate),
	)
	p.inLine = true
}

// onNotifications prints notifications the first time they become active
func (p *progressPrinter) onNotifications(active []notify.Notification) {
	current := make(map[string]bool, len(active))
	for _, n := range active {
		current[n.ID] = true
		if p.seen[n.ID] {
			continue
		}
		line := fmt.Sprintf("[%s] %s", strings.ToUpper(n.Kind.String()), n.Title)
		if n.Message != "" {
			line += ": " + n.Message
		}
		p.println(line)
	}
	p.seen = current
}

func (p *progressPrinter) println(line string) {
	p.endLine()
	fmt.Fprintln(p.out, line)
}

// endLine terminates the in-place progress line, if one is showing
func (p *progressPrinter) endLine() {
	if p.inLine {
		fmt.Fprintln(p.out)
		p.inLine = false
	}
}
