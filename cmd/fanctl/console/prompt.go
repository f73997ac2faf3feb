package console

import (
	"strings"

	"github.com/chzyer/readline"
)

// Confirm asks a yes/no question on the terminal. Empty or unrecognized
// input counts as no.
func Confirm(question string) (bool, error) {
	rl, err := readline.New(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	defer rl.Close()
	answer, err := rl.Readline()
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}
