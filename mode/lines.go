package mode

import (
	"bufio"
	"fmt"
	"io"
)

// Lines is the dmenu-style mode: one candidate per input line,
// usually read from a pipe.
type Lines struct {
	prompt string
	lines  []string
}

// ReadLines consumes r to the end and returns a Lines mode over its
// lines.
func ReadLines(r io.Reader, prompt string) (*Lines, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input lines: %w", err)
	}
	return &Lines{prompt: prompt, lines: lines}, nil
}

func (l *Lines) Name() string            { return "lines" }
func (l *Lines) Prompt() string          { return l.prompt }
func (l *Lines) Count() int              { return len(l.lines) }
func (l *Lines) Searchable(i int) string { return l.lines[i] }
func (l *Lines) Display(i int) string    { return l.lines[i] }

// Reload is a no-op: stdin is consumed once.
func (l *Lines) Reload() error { return nil }
