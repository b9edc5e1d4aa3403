package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Level tags a log line in both console and file output.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelStep    Level = "STEP"
	LevelWarn    Level = "WARN"
	LevelError   Level = "ERROR"
	LevelSuccess Level = "SUCCESS"
)

// RunLog mirrors every line to the console and to a per-chain log file.
// The file is truncated at the start of each run; writes are synchronous.
type RunLog struct {
	Out io.Writer
	Err io.Writer

	file *os.File
	path string
	now  func() time.Time
}

// SummaryRow is one label/value pair in the final summary block.
type SummaryRow struct {
	Label string
	Value string
}

var levelColors = map[Level]*color.Color{
	LevelInfo:    color.New(),
	LevelStep:    color.New(color.FgCyan),
	LevelWarn:    color.New(color.FgYellow),
	LevelError:   color.New(color.FgRed),
	LevelSuccess: color.New(color.FgGreen),
}

// New creates a run logger writing to <dir>/<chainName>.log, creating the
// directory if needed and truncating any log left by a previous run.
func New(dir, chainName string) (*RunLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, chainName+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &RunLog{
		Out:  os.Stdout,
		Err:  os.Stderr,
		file: file,
		path: path,
		now:  time.Now,
	}, nil
}

// Path returns the location of the log file.
func (l *RunLog) Path() string {
	return l.path
}

// Close flushes and releases the log file. Safe to call on every exit path.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *RunLog) Info(format string, args ...any)  { l.log(LevelInfo, l.Out, format, args...) }
func (l *RunLog) Step(format string, args ...any)  { l.log(LevelStep, l.Out, format, args...) }
func (l *RunLog) Warn(format string, args ...any)  { l.log(LevelWarn, l.Err, format, args...) }
func (l *RunLog) Error(format string, args ...any) { l.log(LevelError, l.Err, format, args...) }

// Success marks completed deployments.
func (l *RunLog) Success(format string, args ...any) {
	l.log(LevelSuccess, l.Out, format, args...)
}

// RecordError appends a failure to the log file without echoing it to the
// console; the top-level handler owns the single console print.
func (l *RunLog) RecordError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.appendFile(fmt.Sprintf("[%s] [%s] %s", l.now().UTC().Format(time.RFC3339), LevelError, msg))
}

func (l *RunLog) log(level Level, console io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] [%s] %s", l.now().UTC().Format(time.RFC3339), level, msg)

	c, ok := levelColors[level]
	if !ok {
		c = color.New()
	}
	_, _ = c.Fprintln(console, line)

	l.appendFile(line)
}

// Summary renders a bordered label/value block to the console and mirrors
// the same table into the log file.
func (l *RunLog) Summary(title string, rows []SummaryRow) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	for _, row := range rows {
		t.AppendRow(table.Row{row.Label, row.Value})
	}

	rendered := t.Render()
	fmt.Fprintln(l.Out, rendered)

	for _, line := range strings.Split(rendered, "\n") {
		l.appendFile(line)
	}
}

func (l *RunLog) appendFile(line string) {
	if l.file == nil {
		return
	}
	// Flushed per line: partial logs must survive a mid-run crash.
	_, _ = l.file.WriteString(line + "\n")
	_ = l.file.Sync()
}
