package fire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalSomeAndNone(t *testing.T) {
	some := Some(5)
	assert.True(t, some.Has())
	assert.Equal(t, 5, some.Value())
	assert.Equal(t, 5, some.ValueOr(9))

	none := None[int]()
	assert.False(t, none.Has())
	assert.Equal(t, 9, none.ValueOr(9))
}

func TestOptionalValueOnUnassignedIsFatal(t *testing.T) {
	rec, stderr := captureExit(t)

	None[string]().Value()

	assert.True(t, rec.called)
	assert.Equal(t, 1, rec.code)
	assert.Contains(t, stderr.String(), "Error (programmer side): accessing unassigned optional")
}
