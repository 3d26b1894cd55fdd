package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// interactive reports whether stdin is a terminal. Prompts are only drawn
// for a human; piped input runs silently.
func interactive() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader lineSource, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

// lineSource is the part of *bufio.Reader the prompts need.
type lineSource interface {
	ReadString(delim byte) (string, error)
}

// readLine reads one line and trims surrounding whitespace. A final line
// without a newline is returned as is; io.EOF is only reported when nothing
// was read.
func readLine(reader lineSource) (string, error) {
	return trimLine(reader.ReadString('\n'))
}

func trimLine(line string, err error) (string, error) {
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

type readResult struct {
	line string
	err  error
}

// lineReader reads terminal input line by line and can wait for a line in
// the background while a command runs. A line read in the background that
// nobody asked for is handed to the next ReadString. It is not safe for
// concurrent use.
type lineReader struct {
	r       *bufio.Reader
	pending chan readResult
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(in)}
}

// ReadString reads until the first newline. delim is ignored for a line that
// was already read in the background.
func (l *lineReader) ReadString(delim byte) (string, error) {
	if ch := l.pending; ch != nil {
		l.pending = nil
		res := <-ch
		return res.line, res.err
	}
	return l.r.ReadString(delim)
}

// awaitLine blocks until a line is entered or done is closed, whichever
// comes first. It returns the trimmed line and true in the first case. End
// of input never counts as a line: awaitLine then waits for done.
func (l *lineReader) awaitLine(done <-chan struct{}) (string, bool) {
	ch := l.pending
	l.pending = nil
	if ch == nil {
		ch = make(chan readResult, 1)
		go func() {
			line, err := l.r.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
	}

	select {
	case res := <-ch:
		line, err := trimLine(res.line, res.err)
		if err != nil {
			ch <- res
			l.pending = ch
			<-done
			return "", false
		}
		return line, true
	case <-done:
		l.pending = ch
		return "", false
	}
}
