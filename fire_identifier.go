package fire

import (
	"strconv"
	"strings"
)

// Identifier describes how one logical argument may be referred to: by a
// single-character short name, a long name, a positional index, or — for the
// vector form — the entire positional sequence at once. Short and long names
// may combine; the other shapes are mutually exclusive.
type Identifier struct {
	short  Optional[string]
	long   Optional[string]
	pos    Optional[int]
	vector bool

	help   string
	longer string
}

// PrependHyphens formats a bare name the way it appears on the command line.
func PrependHyphens(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	if len(name) >= 2 {
		return "--" + name
	}
	return name
}

// checkName validates a declared name. Violations are programmer-side fatal
// errors: hyphens are a presentation concern and never part of a name, and
// single-character names must not be digits so that "-5" stays a number.
func checkName(name string) {
	instantAssert(countHyphens(name) == 0, "argument "+name+" has hyphens prefixed in declaration", true)
	instantAssert(len(name) >= 1, "name must contain at least one character", true)
	instantAssert(len(name) >= 2 || !isDigit(name[0]), "single character name must not be a digit ("+name+")", true)
}

func newVectorIdentifier() Identifier {
	return Identifier{vector: true, help: "...", longer: "..."}
}

func newNameIdentifier(name string) Identifier {
	checkName(name)

	id := Identifier{}
	if len(name) == 1 {
		id.short = Some(name)
		id.help = "-" + name
	} else {
		id.long = Some(name)
		id.help = "--" + name
	}
	id.longer = id.help
	return id
}

func newNamesIdentifier(name1, name2 string) Identifier {
	checkName(name1)
	checkName(name2)

	if len(name2) < len(name1) {
		name1, name2 = name2, name1
	}
	instantAssert(len(name1) == 1, "one of the two names given must be a shorthand (single character)", true)
	instantAssert(len(name2) >= 2, "one of the two names given must be longer than one character", true)

	return Identifier{
		short:  Some(name1),
		long:   Some(name2),
		help:   "-" + name1 + "|--" + name2,
		longer: "--" + name2,
	}
}

func newPosIdentifier(pos int) Identifier {
	help := "<" + strconv.Itoa(pos) + ">"
	return Identifier{pos: Some(pos), help: help, longer: help}
}

func newPosHintIdentifier(pos int, hint string) Identifier {
	checkName(hint)
	return Identifier{pos: Some(pos), help: hint, longer: hint}
}

// absentPosOrder sorts identifiers without a positional index after all
// identifiers that have one.
const absentPosOrder = 1000000

// Less orders identifiers by case-folded long-else-short name, then by
// positional index. This ordering drives both help sorting and which
// deferred error is retained.
func (id Identifier) Less(other Identifier) bool {
	name := strings.ToLower(id.long.ValueOr(id.short.ValueOr("")))
	otherName := strings.ToLower(other.long.ValueOr(other.short.ValueOr("")))

	if name != otherName {
		return name < otherName
	}
	return id.pos.ValueOr(absentPosOrder) < other.pos.ValueOr(absentPosOrder)
}

// Overlaps reports whether two identifiers could claim the same token.
// Querying two overlapping identifiers in one run is a programmer error.
// A vector identifier claims every positional slot, so it overlaps any
// positional identifier and any other vector.
func (id Identifier) Overlaps(other Identifier) bool {
	if id.vector && (other.vector || other.pos.Has()) {
		return true
	}
	if other.vector && id.pos.Has() {
		return true
	}
	if id.long.Has() && other.long.Has() && id.long.Value() == other.long.Value() {
		return true
	}
	if id.short.Has() && other.short.Has() && id.short.Value() == other.short.Value() {
		return true
	}
	if id.pos.Has() && other.pos.Has() && id.pos.Value() == other.pos.Value() {
		return true
	}
	return false
}

func (id Identifier) ContainsName(name string) bool {
	if id.short.Has() && name == id.short.Value() {
		return true
	}
	if id.long.Has() && name == id.long.Value() {
		return true
	}
	return false
}

func (id Identifier) ContainsPos(pos int) bool {
	if id.vector {
		return true
	}
	return id.pos.Has() && pos == id.pos.Value()
}

// Help returns the full presentation form, e.g. "-c|--count" or "<0>".
func (id Identifier) Help() string {
	return id.help
}

// Longer returns the most descriptive single form, e.g. "--count".
func (id Identifier) Longer() string {
	return id.longer
}

func (id Identifier) Pos() Optional[int] {
	return id.pos
}

func (id Identifier) IsVector() bool {
	return id.vector
}
