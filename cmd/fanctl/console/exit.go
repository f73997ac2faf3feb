package console

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Exit formats the message and wraps it in a cli exit code error.
func Exit(code int, msg string, args ...any) cli.ExitCoder {
	return cli.Exit(fmt.Sprintf(msg, args...), code)
}
