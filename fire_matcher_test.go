package fire

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type exitRecorder struct {
	called bool
	code   int
}

// captureExit swaps in recording seams for the duration of the test. Only
// the first exit is recorded, since execution continues past a captured
// exit and may cascade into further reports.
func captureExit(t *testing.T) (*exitRecorder, *bytes.Buffer) {
	t.Helper()

	rec := &exitRecorder{}
	var stderr bytes.Buffer
	SetExitFunc(func(code int) {
		if !rec.called {
			rec.called = true
			rec.code = code
		}
	})
	SetStderrWriter(&stderr)
	t.Cleanup(func() {
		SetExitFunc(os.Exit)
		SetStderrWriter(os.Stderr)
	})
	return rec, &stderr
}

func TestNamedEqualsAndPositional(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"--count=5", "file.txt"}, WithArgCount(2))
	count := Int[int](m, Names("c", "count"))
	file := String(m, Pos(0))

	assert.Equal(t, 5, count)
	assert.Equal(t, "file.txt", file)
	assert.False(t, rec.called)
}

func TestBundledShortFlags(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"-xvf"}, WithArgCount(3))
	x := Bool(m, Name("x"))
	v := Bool(m, Name("v"))
	f := Bool(m, Name("f"))

	assert.True(t, x)
	assert.True(t, v)
	assert.True(t, f)
	assert.False(t, rec.called)
}

func TestSeparateShortFlagsMatchBundle(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"-x", "-v", "-f"}, WithArgCount(3))
	assert.True(t, Bool(m, Name("x")))
	assert.True(t, Bool(m, Name("v")))
	assert.True(t, Bool(m, Name("f")))
	assert.False(t, rec.called)
}

func TestEqualsAndSpaceAssignmentEquivalent(t *testing.T) {
	rec, _ := captureExit(t)

	equals := NewMatcher("testapp", []string{"--name=value"}, WithArgCount(1))
	spaced := NewMatcher("testapp", []string{"--name", "value"}, WithArgCount(1))

	assert.Equal(t, "value", String(equals, Name("name")))
	assert.Equal(t, "value", String(spaced, Name("name")))
	assert.False(t, rec.called)
}

func TestNegativeNumberIsValueNotFlag(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"-n", "-5"}, WithArgCount(1))
	n := Int[int](m, Name("n"))

	assert.Equal(t, -5, n)
	assert.False(t, rec.called)
}

func TestLonePositionalNegativeNumber(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"-5"}, WithArgCount(1))
	v := Int[int](m, Pos(0))

	assert.Equal(t, -5, v)
	assert.False(t, rec.called)
}

func TestPositionalOutOfRangeIsAbsent(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{}, WithArgCount(1))
	v := OptionalString(m, Pos(5))

	assert.False(t, v.Has())
	assert.False(t, rec.called)
}

func TestDoubleQueryIsFatal(t *testing.T) {
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{}, WithArgCount(10))
	OptionalString(m, Names("o", "output"))
	OptionalInt[int](m, Name("output"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error (programmer side): double query for argument --output")
}

func TestUnknownArgumentDeferred(t *testing.T) {
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{"--unknown"}, WithArgCount(1))
	Bool(m, Name("verbose"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: invalid argument --unknown")
}

func TestInvalidArgumentsAggregated(t *testing.T) {
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{"--foo", "--bar"}, WithArgCount(1))
	Bool(m, Name("verbose"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: invalid arguments --foo --bar")
}

func TestInvalidPositionalsAggregated(t *testing.T) {
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{"a", "b"}, WithArgCount(1))
	Bool(m, Name("verbose"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: invalid positional arguments 0 1")
}

func TestDuplicateOccurrence(t *testing.T) {
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{"--num=1", "--num=2"}, WithArgCount(1))
	Int[int](m, Name("num"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: multiple occurrences of argument --num")
}

func TestTooManyHyphens(t *testing.T) {
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"---x"})

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: too many hyphens: ---x")
}

func TestBundleWithEqualsRejected(t *testing.T) {
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"-ab=3"})

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: expanding single-hyphen arguments can't have value (-ab=3)")
}

func TestSingleCharLongFormRejected(t *testing.T) {
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"--x"})

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "must have exactly one hyphen")
}

func TestPositionalsRejectedWithoutSpaceAssignment(t *testing.T) {
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"file.txt"}, WithSpaceAssignment(false))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: positional arguments given, but not accepted")
}

func TestNoSpaceAssignmentKeepsFlagBoundaries(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"--name=value", "--other"}, WithArgCount(2), WithSpaceAssignment(false))
	assert.Equal(t, "value", String(m, Name("name")))
	assert.True(t, Bool(m, Name("other")))
	assert.False(t, rec.called)
}

func TestNonStrictFailsImmediately(t *testing.T) {
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"---x"}, WithStrict(false))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: too many hyphens: ---x")
	assert.NotContains(t, stderr.String(), "programmer side")
}

func TestParseErrorPrecedesCoercionError(t *testing.T) {
	rec, stderr := captureExit(t)

	// Both a classification fault and a coercion fault occur; the one with
	// the smaller identifier ordering is the one reported.
	m := NewMatcher("testapp", []string{"---x", "--count=abc"}, WithArgCount(1))
	Int[int](m, Names("c", "count"))

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error: too many hyphens: ---x")
	assert.NotContains(t, stderr.String(), "is not an integer")
}

func TestHelpShortCircuitsValidation(t *testing.T) {
	t.Setenv("FIRE_COLOR", "never")
	rec, stderr := captureExit(t)

	m := NewMatcher("testapp", []string{"-h"}, WithArgCount(1))
	Int[int](m, Names("c", "count").SetDescription("how many"))

	assert.True(t, rec.called)
	assert.Equal(t, 0, rec.code)
	assert.Contains(t, stderr.String(), "Usage:")
	assert.Contains(t, stderr.String(), "--count")
	assert.NotContains(t, stderr.String(), "required argument")
}

func TestLongHelpFlag(t *testing.T) {
	t.Setenv("FIRE_COLOR", "never")
	rec, stderr := captureExit(t)

	NewMatcher("testapp", []string{"--help"})

	assert.True(t, rec.called)
	assert.Equal(t, 0, rec.code)
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestExecutableAndPosArgs(t *testing.T) {
	rec, _ := captureExit(t)

	m := NewMatcher("testapp", []string{"a", "b"}, WithArgCount(1))
	assert.Equal(t, "testapp", m.Executable())
	assert.Equal(t, 2, m.PosArgs())

	StringVector(m, Vector())
	assert.False(t, rec.called)
}
