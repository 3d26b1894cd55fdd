package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  Untuk Ibu \n"), "Name on tag?", &out)
	require.NoError(t, err)
	assert.Equal(t, "Untuk Ibu", got)
	assert.Equal(t, "Name on tag?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestInteractive(t *testing.T) {
	old := isTerminal
	t.Cleanup(func() { isTerminal = old })

	isTerminal = func(int) bool { return true }
	assert.True(t, interactive())

	isTerminal = func(int) bool { return false }
	assert.False(t, interactive())
}

func TestLineReader_AwaitLine(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	l := newLineReader(pr)

	go func() { _, _ = io.WriteString(pw, " stop \n") }()
	line, ok := l.awaitLine(make(chan struct{}))
	require.True(t, ok)
	assert.Equal(t, "stop", line)

	// done first: the background read is handed to the next prompt
	done := make(chan struct{})
	close(done)
	_, ok = l.awaitLine(done)
	assert.False(t, ok)

	go func() { _, _ = io.WriteString(pw, "help\n") }()
	got, err := readLine(l)
	require.NoError(t, err)
	assert.Equal(t, "help", got)
}

func TestLineReader_AwaitLineAtEOF(t *testing.T) {
	l := newLineReader(strings.NewReader(""))
	done := make(chan struct{})
	time.AfterFunc(10*time.Millisecond, func() { close(done) })

	_, ok := l.awaitLine(done)
	assert.False(t, ok, "end of input is not a line")

	_, err := readLine(l)
	assert.ErrorIs(t, err, io.EOF)
}
