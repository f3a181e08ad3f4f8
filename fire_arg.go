package fire

import (
	"errors"
	"math"
	"strconv"
)

// Integer enumerates the integral kinds a declared argument may coerce to.
type Integer interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

// Real enumerates the floating-point kinds a declared argument may coerce to.
type Real interface {
	float32 | float64
}

// Arg is one lazy argument declaration: an identifier, a free-text
// description for help rendering, and at most one programmer default.
// Defaults, optionality and requiredness are mutually exclusive; the
// conversion functions enforce the combinations.
type Arg struct {
	id    Identifier
	descr string

	intDef    Optional[int64]
	floatDef  Optional[float64]
	stringDef Optional[string]
}

// Name declares an argument by a single name: one character makes it a short
// name, two or more a long name.
func Name(name string) *Arg {
	return &Arg{id: newNameIdentifier(name)}
}

// Names declares an argument by a short/long pair, in either order.
func Names(name1, name2 string) *Arg {
	return &Arg{id: newNamesIdentifier(name1, name2)}
}

// Pos declares an argument matched by position.
func Pos(pos int) *Arg {
	return &Arg{id: newPosIdentifier(pos)}
}

// PosHint declares a positional argument with a placeholder name for help
// output. The hint is validated like any declared name.
func PosHint(pos int, hint string) *Arg {
	return &Arg{id: newPosHintIdentifier(pos, hint)}
}

// Vector declares the capture-all-positionals sentinel.
func Vector() *Arg {
	return &Arg{id: newVectorIdentifier()}
}

func (a *Arg) SetDescription(descr string) *Arg {
	a.descr = descr
	return a
}

// SetDefault attaches a programmer default. Integral, floating-point and
// string defaults are supported; anything else is a programmer-side fatal
// error.
func (a *Arg) SetDefault(value any) *Arg {
	switch v := value.(type) {
	case int:
		a.intDef = Some(int64(v))
	case int8:
		a.intDef = Some(int64(v))
	case int16:
		a.intDef = Some(int64(v))
	case int32:
		a.intDef = Some(int64(v))
	case int64:
		a.intDef = Some(v)
	case uint:
		a.intDef = Some(int64(v))
	case uint8:
		a.intDef = Some(int64(v))
	case uint16:
		a.intDef = Some(int64(v))
	case uint32:
		a.intDef = Some(int64(v))
	case uint64:
		a.intDef = Some(int64(v))
	case float32:
		a.floatDef = Some(float64(v))
	case float64:
		a.floatDef = Some(v)
	case string:
		a.stringDef = Some(v)
	default:
		instantAssert(false, "default value for "+a.id.Longer()+" must be an integer, real or string", true)
	}
	return a
}

func (a *Arg) ID() Identifier {
	return a.id
}

func (a *Arg) hasDefault() bool {
	return a.intDef.Has() || a.floatDef.Has() || a.stringDef.Has()
}

// intLimits returns the representable range of the requested integer kind as
// (lowest, highest, signedness). The high bound is unsigned so uint64 fits.
func intLimits[T Integer]() (lo int64, hi uint64, signed bool) {
	switch any(T(0)).(type) {
	case int:
		return math.MinInt, math.MaxInt, true
	case int8:
		return math.MinInt8, math.MaxInt8, true
	case int16:
		return math.MinInt16, math.MaxInt16, true
	case int32:
		return math.MinInt32, math.MaxInt32, true
	case int64:
		return math.MinInt64, math.MaxInt64, true
	case uint:
		return 0, math.MaxUint, false
	case uint8:
		return 0, math.MaxUint8, false
	case uint16:
		return 0, math.MaxUint16, false
	case uint32:
		return 0, math.MaxUint32, false
	default: // uint64
		return 0, math.MaxUint64, false
	}
}

// intFromKind converts a located raw value to the maximal-precision integer,
// falling back to the declared default on absence. Trailing characters, e.g.
// "3.5", are not an integer; overflow of the maximal precision is out of
// range; flag presence never carries an integral value.
func (m *Matcher) intFromKind(id Identifier, raw string, kind argKind, def Optional[int64]) Optional[int64] {
	m.deferredAssert(id, kind != kindFlagPresent, "argument "+id.Help()+" must have value")
	if kind == kindHasValue {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				m.deferredAssert(id, false, "value "+raw+" out of range")
			} else {
				m.deferredAssert(id, false, "value "+raw+" is not an integer")
			}
		}
		return Some(v)
	}
	return def
}

// floatFromKind converts a located raw value to the maximal-precision float.
// On absence (or a malformed value) the declared float default applies, then
// the integer default widened.
func (m *Matcher) floatFromKind(id Identifier, raw string, kind argKind, intDef Optional[int64], floatDef Optional[float64]) Optional[float64] {
	m.deferredAssert(id, kind != kindFlagPresent, "argument "+id.Help()+" must have value")
	if kind == kindHasValue {
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return Some(v)
		}
		if errors.Is(err, strconv.ErrRange) {
			m.deferredAssert(id, false, "value "+raw+" out of range")
		} else {
			m.deferredAssert(id, false, "value "+raw+" is not a real number")
		}
	}
	if floatDef.Has() {
		return floatDef
	}
	if intDef.Has() {
		return Some(float64(intDef.Value()))
	}
	return None[float64]()
}

func (m *Matcher) stringFromKind(id Identifier, raw string, kind argKind, def Optional[string]) Optional[string] {
	m.deferredAssert(id, kind != kindFlagPresent, "argument "+id.Help()+" must have value")
	if kind == kindHasValue {
		return Some(raw)
	}
	return def
}

// narrowInt narrows a maximal-precision value into the requested kind.
// Unsigned targets reject negative values; anything outside the kind's
// range is reported, never silently truncated.
func narrowInt[T Integer](m *Matcher, id Identifier, opt Optional[int64]) Optional[T] {
	if !opt.Has() {
		return None[T]()
	}
	v := opt.Value()
	lo, hi, signed := intLimits[T]()

	m.deferredAssert(id, signed || v >= 0, "argument "+id.Help()+" must be positive")
	inRange := v >= lo && (v < 0 || uint64(v) <= hi)
	m.deferredAssert(id, inRange, "value "+strconv.FormatInt(v, 10)+" out of range")

	return Some(T(v))
}

func narrowFloat[T Real](m *Matcher, id Identifier, opt Optional[float64]) Optional[T] {
	if !opt.Has() {
		return None[T]()
	}
	v := opt.Value()
	if _, ok := any(T(0)).(float32); ok {
		inRange := v >= -math.MaxFloat32 && v <= math.MaxFloat32
		m.deferredAssert(id, inRange, "value "+strconv.FormatFloat(v, 'g', -1, 64)+" out of range")
	}
	return Some(T(v))
}

func intWithPrecision[T Integer](m *Matcher, a *Arg) Optional[T] {
	raw, kind := m.getAndMarkQueried(a.id)
	return narrowInt[T](m, a.id, m.intFromKind(a.id, raw, kind, a.intDef))
}

func floatWithPrecision[T Real](m *Matcher, a *Arg) Optional[T] {
	raw, kind := m.getAndMarkQueried(a.id)
	return narrowFloat[T](m, a.id, m.floatFromKind(a.id, raw, kind, a.intDef, a.floatDef))
}

func stringValue(m *Matcher, a *Arg) Optional[string] {
	raw, kind := m.getAndMarkQueried(a.id)
	return m.stringFromKind(a.id, raw, kind, a.stringDef)
}

// requireValue enforces the required-argument rule and counts the
// declaration towards the end-of-run flush.
func requireValue[T any](m *Matcher, a *Arg, val Optional[T]) T {
	m.deferredAssert(a.id, val.Has(), "required argument "+a.id.Longer()+" not provided")
	m.check(true)
	var zero T
	return val.ValueOr(zero)
}

// optionalValue enforces the optional-argument rule: optional declarations
// must not also carry a programmer default.
func optionalValue[T any](m *Matcher, a *Arg, val Optional[T]) Optional[T] {
	instantAssert(!a.hasDefault(), "optional argument has default value", true)
	m.check(true)
	return val
}

// Int coerces a required integral argument of the requested kind.
func Int[T Integer](m *Matcher, a *Arg) T {
	a.log(m, "INTEGER", false)
	return requireValue(m, a, intWithPrecision[T](m, a))
}

// OptionalInt coerces an integral argument that may be absent.
func OptionalInt[T Integer](m *Matcher, a *Arg) Optional[T] {
	a.log(m, "INTEGER", true)
	return optionalValue(m, a, intWithPrecision[T](m, a))
}

// Float coerces a required floating-point argument of the requested kind.
func Float[T Real](m *Matcher, a *Arg) T {
	a.log(m, "REAL", false)
	return requireValue(m, a, floatWithPrecision[T](m, a))
}

// OptionalFloat coerces a floating-point argument that may be absent.
func OptionalFloat[T Real](m *Matcher, a *Arg) Optional[T] {
	a.log(m, "REAL", true)
	return optionalValue(m, a, floatWithPrecision[T](m, a))
}

// String coerces a required string argument.
func String(m *Matcher, a *Arg) string {
	a.log(m, "STRING", false)
	return requireValue(m, a, stringValue(m, a))
}

// OptionalString coerces a string argument that may be absent.
func OptionalString(m *Matcher, a *Arg) Optional[string] {
	a.log(m, "STRING", true)
	return optionalValue(m, a, stringValue(m, a))
}

// Bool coerces a flag: presence is true, absence is false, and an attached
// value is a usage error. Declaring a default for a flag is a programmer
// error.
func Bool(m *Matcher, a *Arg) bool {
	instantAssert(!a.hasDefault(), a.id.Longer()+" flag parameter must not have default value", true)

	a.log(m, "", true)
	_, kind := m.getAndMarkQueried(a.id)
	m.deferredAssert(a.id, kind != kindHasValue, "flag "+a.id.Help()+" must not have value")
	m.check(true)
	return kind == kindFlagPresent
}

// queryVector claims the entire positional sequence as a single sentinel
// ledger entry on behalf of a capture-all declaration.
func (m *Matcher) queryVector() {
	m.getAndMarkQueried(newVectorIdentifier())
}

// IntVector converts every positional token with the integral scalar rule,
// in order, and claims the whole positional range.
func IntVector[T Integer](m *Matcher, a *Arg) []T {
	m.queryVector()
	ret := make([]T, 0, len(m.positional))
	for i, raw := range m.positional {
		id := newPosIdentifier(i)
		v := narrowInt[T](m, id, m.intFromKind(id, raw, kindHasValue, None[int64]()))
		var zero T
		ret = append(ret, v.ValueOr(zero))
	}
	a.log(m, "", true)
	m.check(true)
	return ret
}

// FloatVector converts every positional token with the floating-point scalar
// rule, in order, and claims the whole positional range.
func FloatVector[T Real](m *Matcher, a *Arg) []T {
	m.queryVector()
	ret := make([]T, 0, len(m.positional))
	for i, raw := range m.positional {
		id := newPosIdentifier(i)
		v := narrowFloat[T](m, id, m.floatFromKind(id, raw, kindHasValue, None[int64](), None[float64]()))
		var zero T
		ret = append(ret, v.ValueOr(zero))
	}
	a.log(m, "", true)
	m.check(true)
	return ret
}

// StringVector returns every positional token verbatim, in order, and claims
// the whole positional range.
func StringVector(m *Matcher, a *Arg) []string {
	m.queryVector()
	ret := make([]string, 0, len(m.positional))
	ret = append(ret, m.positional...)
	a.log(m, "", true)
	m.check(true)
	return ret
}

// log feeds the declaration recorder; a side effect of every conversion,
// successful or not.
func (a *Arg) log(m *Matcher, typeName string, optional bool) {
	def := ""
	if a.intDef.Has() {
		def = strconv.FormatInt(a.intDef.Value(), 10)
	}
	if a.floatDef.Has() {
		def = strconv.FormatFloat(a.floatDef.Value(), 'g', -1, 64)
	}
	if a.stringDef.Has() {
		def = a.stringDef.Value()
	}

	m.recorder.log(a.id, a.descr, typeName, def, optional)
}
