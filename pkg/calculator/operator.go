package calculator

import "fmt"

// Operator is a binary arithmetic operation awaiting its second operand.
type Operator int

const (
	NoOperator Operator = iota
	Add
	Subtract
	Multiply
	Divide
)

// Operators lists every selectable operator in keypad order.
var Operators = []Operator{Add, Subtract, Multiply, Divide}

// Symbol returns the ASCII symbol used on the command line and in forms.
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case NoOperator:
		return ""
	}
	panic(fmt.Sprintf("calculator: unknown operator %d", int(o)))
}

// Label returns the symbol printed on keypad buttons.
func (o Operator) Label() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "−"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	case NoOperator:
		return ""
	}
	panic(fmt.Sprintf("calculator: unknown operator %d", int(o)))
}

func (o Operator) String() string {
	switch o {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	case NoOperator:
		return "none"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// ParseOperator accepts both the ASCII and the typographic symbols.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "×", "x":
		return Multiply, nil
	case "/", "÷":
		return Divide, nil
	default:
		return NoOperator, fmt.Errorf("unknown operator %q", s)
	}
}

func (o Operator) valid() bool {
	return o >= Add && o <= Divide
}

// apply evaluates first <o> second. Division by zero is checked by the caller.
func (o Operator) apply(first, second float64) float64 {
	switch o {
	case Add:
		return first + second
	case Subtract:
		return first - second
	case Multiply:
		return first * second
	case Divide:
		return first / second
	}
	panic(fmt.Sprintf("calculator: apply called with %s", o))
}
