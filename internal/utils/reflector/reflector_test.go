package reflector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name    string `form:"name"`
	Port    uint16 `form:"port"`
	Enabled bool   `form:"enabled"`
	Offset  int8   `form:"offset"`
	hidden  string `form:"hidden"`
	Plain   string
}

func TestSetByTag(t *testing.T) {
	s := sample{}

	assert.NoError(t, SetByTag(&s, "form", "name", "relay"))
	assert.NoError(t, SetByTag(&s, "form", "port", " 1883 "))
	assert.NoError(t, SetByTag(&s, "form", "enabled", "true"))
	assert.NoError(t, SetByTag(&s, "form", "offset", "-3"))

	assert.Equal(t, "relay", s.Name)
	assert.Equal(t, uint16(1883), s.Port)
	assert.True(t, s.Enabled)
	assert.Equal(t, int8(-3), s.Offset)
}

func TestSetByTagRejectsBadInput(t *testing.T) {
	s := sample{Port: 1883}

	assert.ErrorIs(t, SetByTag(&s, "form", "port", "abc"), ErrInvalidValue)
	assert.ErrorIs(t, SetByTag(&s, "form", "port", "70000"), ErrInvalidValue)
	assert.ErrorIs(t, SetByTag(&s, "form", "missing", "x"), ErrUnknownField)
	assert.ErrorIs(t, SetByTag(&s, "form", "hidden", "x"), ErrUnknownField)
	assert.Equal(t, uint16(1883), s.Port)

	assert.Error(t, SetByTag(s, "form", "name", "x"))
}

func TestValues(t *testing.T) {
	s := sample{Name: "relay", Port: 1883}

	values := Values(&s, "form")

	assert.Equal(t, "relay", values["name"])
	assert.Equal(t, "1883", values["port"])
	assert.Equal(t, "false", values["enabled"])
	assert.NotContains(t, values, "Plain")
	assert.NotContains(t, values, "hidden")
}
