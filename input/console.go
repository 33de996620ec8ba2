package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wfunc/connect4/board"
	"github.com/wfunc/connect4/strategy"
)

// Console reads 1-based column numbers, one per line. Anything that is not an
// integer is answered with INVALID and asked again; legality is left to the game.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  "Your move? ",
	}
}

// ReadColumn returns the 0-based column, or strategy.ErrNoMoreInput at EOF.
func (c *Console) ReadColumn(_ board.Snapshot) (int, error) {
	for {
		fmt.Fprint(c.out, c.prompt)
		if !c.scanner.Scan() {
			if err := c.scanner.Err(); err != nil {
				return -1, err
			}
			fmt.Fprintln(c.out)
			return -1, strategy.ErrNoMoreInput
		}
		n, err := strconv.Atoi(strings.TrimSpace(c.scanner.Text()))
		if err != nil {
			fmt.Fprintln(c.out, "INVALID")
			continue
		}
		return n - 1, nil
	}
}

func (c *Console) Invalid(int) {
	fmt.Fprintln(c.out, "INVALID")
}
