package fire

import (
	"io"
	"os"
)

// ExitFunc terminates the run with the given status.
type ExitFunc func(int)

var osExit ExitFunc = os.Exit
var stderrWriter io.Writer = os.Stderr
var stdoutWriter io.Writer = os.Stdout

// SetExitFunc allows overriding the exit function for testing.
func SetExitFunc(exitFunc ExitFunc) {
	osExit = exitFunc
}

// SetStderrWriter allows overriding the stderr writer for testing or custom output.
func SetStderrWriter(w io.Writer) {
	stderrWriter = w
}

// SetStdoutWriter allows overriding the stdout writer for testing or custom output.
func SetStdoutWriter(w io.Writer) {
	stdoutWriter = w
}
