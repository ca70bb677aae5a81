package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		token string
		want  Key
	}{
		{"7", Digit('7')},
		{".", Digit('.')},
		{"+", Op(Add)},
		{"-", Op(Subtract)},
		{"−", Op(Subtract)},
		{"*", Op(Multiply)},
		{"×", Op(Multiply)},
		{"/", Op(Divide)},
		{"÷", Op(Divide)},
		{"=", Equals()},
		{"C", ClearKey()},
		{"clear", ClearKey()},
		{"DEL", DeleteKey()},
		{"⌫", DeleteKey()},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseKey(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyUnknown(t *testing.T) {
	_, err := ParseKey("%")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKey))
}

func TestParseKeysSplitsNumbers(t *testing.T) {
	keys, err := ParseKeys([]string{"12.5", "+", "3"})
	require.NoError(t, err)
	assert.Equal(t, []Key{Digit('1'), Digit('2'), Digit('.'), Digit('5'), Op(Add), Digit('3')}, keys)
}

func TestPressRejectsNonDigit(t *testing.T) {
	c := New()
	err := c.Press(Digit('x'))
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Equal(t, "0", c.Display())
}

func TestKeyLabels(t *testing.T) {
	assert.Equal(t, "÷", Op(Divide).Label())
	assert.Equal(t, "/", Op(Divide).Token())
	assert.Equal(t, "DEL", DeleteKey().Label())
	assert.Equal(t, "DEL", DeleteKey().Token())

	for _, row := range Keypad {
		for _, k := range row {
			parsed, err := ParseKey(k.Token())
			require.NoError(t, err, k.Label())
			assert.Equal(t, k, parsed)
		}
	}
}
