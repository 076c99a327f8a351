package cmd

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether stdin is attached to a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// pause keeps a terminal window open until Enter is pressed. It does
// nothing when input is not interactive.
func pause(in io.Reader, out io.Writer) error {
	if !isTerminal() {
		return nil
	}
	if _, err := io.WriteString(out, "Press Enter to quit..."); err != nil {
		return err
	}
	_, err := bufio.NewReader(in).ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}
