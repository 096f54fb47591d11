package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const logPanelHeight = 8

// logRing keeps the most recent log lines for the in-app overlay. The hook
// fires on whatever goroutine logged, so access is guarded.
type logRing struct {
	mu    sync.Mutex
	lines []string
	size  int
}

func newLogRing(size int) *logRing {
	return &logRing{size: size}
}

func (r *logRing) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	if len(r.lines) > r.size {
		r.lines = r.lines[len(r.lines)-r.size:]
	}
}

func (r *logRing) last(n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > len(r.lines) {
		n = len(r.lines)
	}
	out := make([]string, n)
	copy(out, r.lines[len(r.lines)-n:])
	return out
}

// RingHook is a logrus hook that captures log entries for display in the
// dashboard's log overlay.
type RingHook struct {
	ring *logRing
}

// Levels returns the levels the hook fires on.
func (h *RingHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire formats the entry into a single overlay line.
func (h *RingHook) Fire(entry *logrus.Entry) error {
	msg := strings.ReplaceAll(entry.Message, "\n", " ")
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	var fields strings.Builder
	for k, v := range entry.Data {
		fmt.Fprintf(&fields, " %s=%v", k, v)
	}
	h.ring.add(fmt.Sprintf("%s %s [%s] %s%s",
		entry.Time.Format("15:04:05"),
		strings.ToUpper(entry.Level.String())[:4],
		"sonoctl", msg, fields.String()))
	return nil
}

// SetupLogging routes logrus into the app's log ring and, optionally, a
// file. Console output is discarded so it cannot corrupt the alternate
// screen.
func SetupLogging(app *App, logFile *os.File) {
	logrus.AddHook(&RingHook{ring: app.logs})
	if logFile != nil {
		logrus.SetOutput(logFile)
	} else {
		logrus.SetOutput(io.Discard)
	}
}

func (a *App) renderLogs() string {
	lines := a.logs.last(logPanelHeight - 2)
	body := mutedTextStyle.Render(strings.Join(lines, "\n"))
	if len(lines) == 0 {
		body = mutedTextStyle.Render("No log entries yet")
	}
	return barStyle.Width(a.width - 4).Render(body)
}
