package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned by ParseKey for tokens that name no button.
var ErrUnknownKey = errors.New("unknown key")

// KeyKind identifies which keypad button was pressed.
type KeyKind int

const (
	KeyDigit KeyKind = iota
	KeyOperator
	KeyEquals
	KeyClear
	KeyDelete
)

// Key is a single button press.
type Key struct {
	Kind     KeyKind
	Digit    rune
	Operator Operator
}

func Digit(d rune) Key   { return Key{Kind: KeyDigit, Digit: d} }
func Op(op Operator) Key { return Key{Kind: KeyOperator, Operator: op} }
func Equals() Key        { return Key{Kind: KeyEquals} }
func ClearKey() Key      { return Key{Kind: KeyClear} }
func DeleteKey() Key     { return Key{Kind: KeyDelete} }

// Label is the text printed on the button.
func (k Key) Label() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyOperator:
		return k.Operator.Label()
	case KeyEquals:
		return "="
	case KeyClear:
		return "C"
	case KeyDelete:
		return "DEL"
	}
	return "?"
}

// Token is the ASCII form accepted by ParseKey.
func (k Key) Token() string {
	if k.Kind == KeyOperator {
		return k.Operator.Symbol()
	}
	return k.Label()
}

// ParseKey turns a command-line or form token into a Key.
func ParseKey(token string) (Key, error) {
	t := strings.TrimSpace(token)
	if len(t) == 1 && (isDigit(t[0]) || t[0] == '.') {
		return Digit(rune(t[0])), nil
	}
	switch strings.ToLower(t) {
	case "=", "equals":
		return Equals(), nil
	case "c", "clear", "ac":
		return ClearKey(), nil
	case "del", "delete", "⌫", "backspace":
		return DeleteKey(), nil
	}
	if op, err := ParseOperator(t); err == nil {
		return Op(op), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// ParseKeys parses every token, splitting multi-digit tokens such as "12" or
// "3.5" into one key per character.
func ParseKeys(tokens []string) ([]Key, error) {
	var keys []Key
	for _, tok := range tokens {
		if isNumberToken(tok) {
			for _, r := range tok {
				keys = append(keys, Digit(r))
			}
			continue
		}
		k, err := ParseKey(tok)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func isNumberToken(tok string) bool {
	if len(tok) < 2 {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) && tok[i] != '.' {
			return false
		}
	}
	return true
}

// Press applies one button press. It is the single entry point used by every
// surface.
func (c *Calculator) Press(k Key) error {
	switch k.Kind {
	case KeyDigit:
		if (k.Digit < '0' || k.Digit > '9') && k.Digit != '.' {
			return fmt.Errorf("%w: digit %q", ErrUnknownKey, k.Digit)
		}
		c.AppendDigit(k.Digit)
		return nil
	case KeyOperator:
		return c.ChooseOperator(k.Operator)
	case KeyEquals:
		return c.Calculate()
	case KeyClear:
		c.Clear()
		return nil
	case KeyDelete:
		c.DeleteLast()
		return nil
	}
	panic(fmt.Sprintf("calculator: unknown key kind %d", int(k.Kind)))
}

// PressHook observes each key after it has been pressed, with the error the
// press returned.
type PressHook func(k Key, err error)

// Run presses every key in order and returns the first error. Divide-by-zero
// does not stop the sequence when keepGoing is set, matching a user who
// dismisses the alert and carries on typing. hook may be nil.
func (c *Calculator) Run(keys []Key, keepGoing bool, hook PressHook) error {
	var first error
	for _, k := range keys {
		err := c.Press(k)
		if hook != nil {
			hook(k, err)
		}
		if err != nil {
			if !errors.Is(err, ErrDivideByZero) || !keepGoing {
				return err
			}
			if first == nil {
				first = err
			}
		}
	}
	return first
}

// Keypad is the button layout shared by the terminal and web keypads.
var Keypad = [][]Key{
	{ClearKey(), DeleteKey()},
	{Digit('7'), Digit('8'), Digit('9'), Op(Divide)},
	{Digit('4'), Digit('5'), Digit('6'), Op(Multiply)},
	{Digit('1'), Digit('2'), Digit('3'), Op(Subtract)},
	{Digit('0'), Digit('.'), Equals(), Op(Add)},
}
