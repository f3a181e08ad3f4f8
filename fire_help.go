package fire

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/amterp/color"
)

var (
	greenBold  = color.New(color.FgGreen, color.Bold)
	bold       = color.New(color.Bold)
	GreenBoldS = greenBold.SprintfFunc()
	BoldS      = bold.SprintfFunc()
)

func initializeColorFromEnv() {
	colorValue := strings.ToLower(strings.TrimSpace(os.Getenv("FIRE_COLOR")))
	switch colorValue {
	case "never":
		color.NoColor = true
	case "always":
		color.NoColor = false
	case "", "auto":
		// let amterp/color decide based on tty
	default:
		// invalid value - treat as auto
	}
}

// HelpRecord is one structured per-argument record handed to help renderers.
// Type and Default are empty when not applicable.
type HelpRecord struct {
	ID          Identifier
	Description string
	Type        string
	Default     string
	Optional    bool
}

// helpLogger accumulates declaration records as conversions happen.
type helpLogger struct {
	params []HelpRecord
}

func (h *helpLogger) log(id Identifier, descr, typeName, def string, optional bool) {
	h.params = append(h.params, HelpRecord{
		ID:          id,
		Description: descr,
		Type:        typeName,
		Default:     def,
		Optional:    optional || def != "",
	})
}

// sorted returns the records in presentation order: required arguments
// first, then by identifier ordering.
func (h *helpLogger) sorted() []HelpRecord {
	printed := make([]HelpRecord, len(h.params))
	copy(printed, h.params)
	sort.SliceStable(printed, func(i, j int) bool {
		if printed[i].Optional != printed[j].Optional {
			return !printed[i].Optional
		}
		return printed[i].ID.Less(printed[j].ID)
	})
	return printed
}

// Records returns the accumulated declaration records in presentation order,
// for external help renderers.
func (m *Matcher) Records() []HelpRecord {
	return m.recorder.sorted()
}

// makePrintable renders one argument reference, e.g. "[-c|--count=<INTEGER>]".
func makePrintable(rec HelpRecord, verbose bool) string {
	var sb strings.Builder
	bracket := rec.Optional || rec.Type == ""
	if bracket {
		sb.WriteString("[")
	}
	if verbose {
		sb.WriteString(rec.ID.Help())
	} else {
		sb.WriteString(rec.ID.Longer())
	}
	if rec.Type != "" && !(!verbose && rec.ID.Pos().Has()) {
		sb.WriteString("=<")
		sb.WriteString(rec.Type)
		sb.WriteString(">")
	}
	if bracket {
		sb.WriteString("]")
	}
	return sb.String()
}

// printHelp renders the default usage text to stderr. External renderers can
// consume Records instead; this is the built-in layout.
func (h *helpLogger) printHelp(executable string) {
	printed := h.sorted()

	margin := 0
	for _, rec := range printed {
		if n := len(makePrintable(rec, true)); n > margin {
			margin = n
		}
	}

	usage := "    " + GreenBoldS("Usage:") + "\n      " + BoldS(executable)
	options := "    " + GreenBoldS("Options:") + "\n"
	for _, rec := range printed {
		usage += " " + makePrintable(rec, false)

		printable := makePrintable(rec, true)
		options += "      " + printable + strings.Repeat(" ", 2+margin-len(printable)) + rec.Description
		if rec.Default != "" {
			options += " [default: " + rec.Default + "]"
		}
		options += "\n"
	}

	fmt.Fprint(stderrWriter, "\n"+usage+"\n\n\n"+options+"\n")
}
