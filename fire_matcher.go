package fire

import (
	"fmt"
	"strconv"
	"strings"
)

const failureCode = 1

// argKind tags the result of locating an identifier in the token tables.
type argKind int

const (
	kindHasValue argKind = iota
	kindFlagPresent
	kindAbsent
)

// namedEntry is one occurrence of a named argument. An absent value denotes
// flag presence.
type namedEntry struct {
	name  string
	value Optional[string]
}

// firstError retains the single deferred error with the smallest identifier
// ordering seen so far this run. Later, larger-ordered errors are discarded.
type firstError struct {
	order Identifier
	msg   string
	set   bool
}

func (f *firstError) record(order Identifier, msg string) {
	if !f.set || order.Less(f.order) {
		f.order = order
		f.msg = msg
		f.set = true
	}
}

// Matcher is the per-run context: it owns the classified token tables, the
// query ledger, the deferred error slot and the declaration recorder. Create
// one with NewMatcher at run start and thread it through every declaration.
type Matcher struct {
	executable string
	positional []string
	named      []namedEntry
	queried    []Identifier
	deferred   firstError
	recorder   helpLogger

	remaining       int
	spaceAssignment bool
	strict          bool
	helpFlag        bool
}

// NewMatcher classifies the raw token list (excluding the executable path)
// and returns the run context. The implicit "h"/"help" identifier is queried
// immediately, so a supplied help flag suppresses leftover validation and
// triggers help rendering at flush time.
func NewMatcher(executable string, tokens []string, opts ...MatcherOpt) *Matcher {
	initializeColorFromEnv()

	cfg := &matcherCfg{spaceAssignment: true, strict: true}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Matcher{
		executable:      executable,
		remaining:       cfg.argCount,
		spaceAssignment: cfg.spaceAssignment,
		strict:          cfg.strict,
	}

	m.parse(tokens)
	_, kind := m.getAndMarkQueried(newNamesIdentifier("h", "help"))
	m.helpFlag = kind != kindAbsent
	m.check(false)
	return m
}

func (m *Matcher) Executable() string {
	return m.executable
}

// PosArgs returns the number of positional tokens supplied this run.
func (m *Matcher) PosArgs() int {
	return len(m.positional)
}

// parse runs the classification pipeline: named/positional separation,
// equals-splitting, value assignment, then duplicate detection.
func (m *Matcher) parse(tokens []string) {
	named, positional := m.separateNamedPositional(tokens)
	m.positional = positional
	m.named = m.assignNamedValues(m.splitEquations(named))

	for i := range m.named {
		for j := 0; j < i; j++ {
			m.deferredAssert(newVectorIdentifier(), m.named[i].name != m.named[j].name,
				"multiple occurrences of argument "+PrependHyphens(m.named[i].name))
		}
	}

	if !m.spaceAssignment {
		m.deferredAssert(newVectorIdentifier(), len(m.positional) == 0,
			"positional arguments given, but not accepted")
	}
}

// separateNamedPositional splits the raw tokens into named-token candidates
// and positional tokens. With space assignment enabled, a token following an
// eligible named token is reclassified as that token's value: eligible means
// double-hyphen or single-character single-hyphen, with no '=' attached. A
// multi-letter single-hyphen token is a bundle of boolean flags and cannot
// take a trailing value.
func (m *Matcher) separateNamedPositional(raw []string) (named, positional []string) {
	toNamed := false
	for _, s := range raw {
		hyphens := countHyphens(s)
		nameSize := len(s) - hyphens
		m.deferredAssert(newVectorIdentifier(), hyphens <= 2, "too many hyphens: "+s)
		if hyphens == 2 || (hyphens == 1 && nameSize >= 1 && !isDigit(s[1])) {
			named = append(named, s)
			toNamed = hyphens >= 2 || nameSize == 1
			toNamed = toNamed && !strings.Contains(s, "=")
			continue
		}
		if m.spaceAssignment && toNamed {
			named = append(named, s)
			toNamed = false
			continue
		}
		positional = append(positional, s)
	}
	return named, positional
}

// splitToken is a named token fragment; certainlyValue marks the part after
// an '=', which can only ever be a value.
type splitToken struct {
	text           string
	certainlyValue bool
}

func (m *Matcher) splitEquations(named []string) []splitToken {
	var split []splitToken
	for _, hyphenedName := range named {
		hyphens := countHyphens(hyphenedName)
		eq := strings.Index(hyphenedName, "=")
		if eq == -1 {
			split = append(split, splitToken{text: hyphenedName})
			continue
		}
		nameSize := eq - hyphens

		if !m.deferredAssert(newVectorIdentifier(), nameSize == 1 || hyphens >= 2,
			"expanding single-hyphen arguments can't have value ("+hyphenedName+")") {
			continue
		}

		split = append(split, splitToken{text: hyphenedName[:eq]})
		split = append(split, splitToken{text: hyphenedName[eq+1:], certainlyValue: true})
	}
	return split
}

// assignNamedValues walks the split stream left to right, opening named
// entries and attaching values to the entry currently open. Single-hyphen
// tokens expand into one boolean-flag entry per character, except when the
// name starts with a digit, which marks a negative-number value.
func (m *Matcher) assignNamedValues(split []splitToken) []namedEntry {
	var args []namedEntry

	attach := func(value string) {
		if !m.deferredAssert(newVectorIdentifier(), len(args) > 0,
			"value "+value+" assigned to no argument") {
			return
		}
		args[len(args)-1].value = Some(value)
	}

	for _, p := range split {
		hyphenedName := p.text
		hyphens := countHyphens(hyphenedName)
		name := hyphenedName[hyphens:]
		switch {
		case p.certainlyValue:
			attach(hyphenedName)
		case hyphens == 2:
			m.deferredAssert(newVectorIdentifier(), len(name) >= 2,
				"single character parameter "+hyphenedName+" must have exactly one hyphen")
			args = append(args, namedEntry{name: name})
		case hyphens == 1:
			if isDigit(name[0]) {
				attach(hyphenedName)
			} else {
				for _, c := range []byte(name) {
					args = append(args, namedEntry{name: string(c)})
				}
			}
		case hyphens == 0:
			attach(name)
		}
	}
	return args
}

// getAndMarkQueried resolves an identifier against the classified tables:
// named entries first (short or long name), then the positional sequence.
// The identifier is recorded into the query ledger in strict mode, and
// overlap with any previously queried identifier is a programmer-side fatal
// error.
func (m *Matcher) getAndMarkQueried(id Identifier) (string, argKind) {
	if !m.spaceAssignment {
		instantAssert(!id.Pos().Has(),
			"positional argument used with space assignment disabled", true)
	}

	for _, q := range m.queried {
		instantAssert(!q.Overlaps(id), "double query for argument "+id.Longer(), true)
	}

	if m.strict {
		m.queried = append(m.queried, id)
	}

	for _, entry := range m.named {
		if id.ContainsName(entry.name) {
			if entry.value.Has() {
				return entry.value.Value(), kindHasValue
			}
			return "", kindFlagPresent
		}
	}

	if id.Pos().Has() {
		pos := id.Pos().Value()
		if pos >= len(m.positional) {
			return "", kindAbsent
		}
		return m.positional[pos], kindHasValue
	}

	return "", kindAbsent
}

// deferredAssert raises a user-input fault: deferred to end-of-run in strict
// mode, reported and fatal immediately otherwise.
func (m *Matcher) deferredAssert(id Identifier, pass bool, msg string) bool {
	if !m.strict {
		instantAssert(pass, msg, false)
		return pass
	}
	if !pass {
		m.deferred.record(id, msg)
	}
	return pass
}

// check counts down the declarations still expected this run and, once none
// remain, flushes: help rendering short-circuits everything, otherwise the
// leftover-token validation runs and the retained deferred error (if any) is
// reported.
func (m *Matcher) check(decRemaining bool) {
	if decRemaining {
		m.remaining--
	}
	if !m.strict || m.remaining > 0 {
		return
	}

	if m.helpFlag {
		m.recorder.printHelp(m.executable)
		osExit(0)
		return
	}

	m.checkNamed()
	m.checkPositional()

	if m.deferred.set {
		fmt.Fprintln(stderrWriter, "Error: "+m.deferred.msg)
		osExit(failureCode)
	}
}

func (m *Matcher) checkNamed() {
	invalidCount := 0
	invalid := ""
	for _, entry := range m.named {
		if m.claimedName(entry.name) {
			continue
		}
		invalidCount++
		invalid += " " + PrependHyphens(entry.name)
	}
	plural := ""
	if invalidCount > 1 {
		plural = "s"
	}
	m.deferredAssert(newVectorIdentifier(), invalid == "", "invalid argument"+plural+invalid)
}

func (m *Matcher) checkPositional() {
	invalidCount := 0
	invalid := ""
	for i := range m.positional {
		if m.claimedPos(i) {
			continue
		}
		invalidCount++
		invalid += " " + strconv.Itoa(i)
	}
	plural := ""
	if invalidCount > 1 {
		plural = "s"
	}
	m.deferredAssert(newVectorIdentifier(), invalid == "", "invalid positional argument"+plural+invalid)
}

func (m *Matcher) claimedName(name string) bool {
	for _, q := range m.queried {
		if q.ContainsName(name) {
			return true
		}
	}
	return false
}

func (m *Matcher) claimedPos(pos int) bool {
	for _, q := range m.queried {
		if q.ContainsPos(pos) {
			return true
		}
	}
	return false
}
