package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// lineReader reads one routing-assignment line at a time from stdin using
// github.com/chzyer/readline (a pure-Go readline), keeping command history and editing free of escape
// sequences — the same wrapper the interactive engine session applies to
// its own command input.
type lineReader struct {
	rl *readline.Instance
}

func newLineReader(prompt string) (*lineReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &lineReader{rl: rl}, nil
}

func (r *lineReader) Close() error { return r.rl.Close() }

func (r *lineReader) SetPrompt(p string) { r.rl.SetPrompt(p) }

// readLine blocks until a non-blank line is read, returning io.EOF at end
// of input.
func (r *lineReader) readLine() (string, error) {
	var line string
	var err error
	for line == "" {
		line, err = r.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		line = strings.TrimSpace(line)
	}
	return line, nil
}
