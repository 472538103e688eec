package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
)

// ReadLine reads console input through readline, with line editing and
// a persistent history file.
type ReadLine struct {
	rl *readline.Instance
}

func NewReadLine(historyFile string) (*ReadLine, error) {
	if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "#quit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{rl: rl}, nil
}

// ReadLine returns the next line. Ctrl+C on an empty line and Ctrl+D
// yield ErrInterrupted; Ctrl+C with text typed just discards the line.
func (r *ReadLine) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	for {
		line, again, err := translateKey(r.rl.Readline())
		if again {
			continue
		}
		return line, err
	}
}

// translateKey maps readline's control-key results onto console input.
func translateKey(line string, err error) (string, bool, error) {
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		if len(line) == 0 {
			return "", false, ErrInterrupted
		}
		return "", true, nil
	case errors.Is(err, io.EOF):
		// Ctrl+D echoes EOFPrompt, so it has to mean #quit.
		return "", false, ErrInterrupted
	}
	return line, false, err
}

func (r *ReadLine) RendersPrompt() bool {
	return true
}

// Stdout is a writer that redraws the prompt after asynchronous output.
func (r *ReadLine) Stdout() io.Writer {
	return r.rl.Stdout()
}

func (r *ReadLine) Close() error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
