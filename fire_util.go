package fire

import "fmt"

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// countHyphens returns the number of leading hyphens in s.
func countHyphens(s string) int {
	hyphens := 0
	for hyphens < len(s) && s[hyphens] == '-' {
		hyphens++
	}
	return hyphens
}

// instantAssert reports msg and terminates the run when pass is false.
// programmerSide marks schema bugs, which are never deferred.
func instantAssert(pass bool, msg string, programmerSide bool) {
	if pass {
		return
	}
	if msg != "" {
		if programmerSide {
			fmt.Fprintln(stderrWriter, "Error (programmer side): "+msg)
		} else {
			fmt.Fprintln(stderrWriter, "Error: "+msg)
		}
	}
	osExit(failureCode)
}
