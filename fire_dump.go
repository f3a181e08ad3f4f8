package fire

import (
	"fmt"
	"strings"
)

// GenerateDump creates a diagnostic dump of the run: configuration, the
// classified token tables, the query ledger and the deferred error slot.
func (m *Matcher) GenerateDump() string {
	var sb strings.Builder

	sb.WriteString(GreenBoldS("Fire Matcher Dump") + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString("Configuration:\n")
	sb.WriteString(fmt.Sprintf("  Executable: %s\n", m.executable))
	sb.WriteString(fmt.Sprintf("  Space Assignment: %t\n", m.spaceAssignment))
	sb.WriteString(fmt.Sprintf("  Strict: %t\n", m.strict))
	sb.WriteString(fmt.Sprintf("  Declarations Remaining: %d\n", m.remaining))
	sb.WriteString(fmt.Sprintf("  Help Requested: %t\n", m.helpFlag))

	sb.WriteString("\nPositional Tokens:\n")
	if len(m.positional) == 0 {
		sb.WriteString("  none\n")
	}
	for i, p := range m.positional {
		sb.WriteString(fmt.Sprintf("  [%d]: %q\n", i, p))
	}

	sb.WriteString("\nNamed Tokens:\n")
	if len(m.named) == 0 {
		sb.WriteString("  none\n")
	}
	for _, entry := range m.named {
		if entry.value.Has() {
			sb.WriteString(fmt.Sprintf("  %s = %q\n", PrependHyphens(entry.name), entry.value.Value()))
		} else {
			sb.WriteString(fmt.Sprintf("  %s (flag)\n", PrependHyphens(entry.name)))
		}
	}

	sb.WriteString("\nQueried Identifiers:\n")
	if len(m.queried) == 0 {
		sb.WriteString("  none\n")
	}
	for _, q := range m.queried {
		sb.WriteString(fmt.Sprintf("  %s\n", q.Help()))
	}

	sb.WriteString("\nDeferred Error:\n")
	if m.deferred.set {
		sb.WriteString(fmt.Sprintf("  %s\n", m.deferred.msg))
	} else {
		sb.WriteString("  none\n")
	}

	return sb.String()
}
