// Package calculator implements the four-function keypad state machine.
//
// A Calculator owns the display value, the pending operator, the first
// operand and the reset flag. Every surface (terminal, web, command line)
// drives it through Press or the individual operations; none of them keep
// calculator state of their own.
package calculator

import (
	"errors"
	"fmt"
)

// InitialDisplay is what the display shows after a clear.
const InitialDisplay = "0"

// ErrDivideByZero is returned when a division's second operand is zero. The
// calculator has already been cleared when it is returned.
var ErrDivideByZero = errors.New("cannot divide by zero")

// Phase is the position of the calculator in its input cycle.
type Phase int

const (
	EnteringFirst Phase = iota
	OperatorChosen
	EnteringSecond
)

func (p Phase) String() string {
	switch p {
	case EnteringFirst:
		return "entering-first"
	case OperatorChosen:
		return "operator-chosen"
	case EnteringSecond:
		return "entering-second"
	default:
		return "unknown"
	}
}

// State is the complete calculator state.
type State struct {
	Display      string
	Operator     Operator
	FirstOperand *float64
	ResetDisplay bool
}

// InitialState returns the state after a clear.
func InitialState() State {
	return State{Display: InitialDisplay}
}

// Calculator is the controller owning a State. It is not safe for concurrent
// use; callers serialize events the way a UI event loop does.
type Calculator struct {
	state State
}

// New returns a calculator in its initial state.
func New() *Calculator {
	return &Calculator{state: InitialState()}
}

// FromState returns a calculator resuming from s. An empty display is
// normalized to the initial display.
func FromState(s State) *Calculator {
	c := &Calculator{}
	c.Restore(s)
	return c
}

// Display returns the current display value.
func (c *Calculator) Display() string {
	return c.state.Display
}

// Snapshot returns a copy of the current state.
func (c *Calculator) Snapshot() State {
	s := c.state
	if s.FirstOperand != nil {
		v := *s.FirstOperand
		s.FirstOperand = &v
	}
	return s
}

// Restore replaces the current state with a copy of s.
func (c *Calculator) Restore(s State) {
	if s.Display == "" {
		s.Display = InitialDisplay
	}
	if s.FirstOperand != nil {
		v := *s.FirstOperand
		s.FirstOperand = &v
	}
	c.state = s
}

// Phase reports where the calculator is in its input cycle.
func (c *Calculator) Phase() Phase {
	switch {
	case c.state.Operator == NoOperator:
		return EnteringFirst
	case c.state.ResetDisplay:
		return OperatorChosen
	default:
		return EnteringSecond
	}
}

// AppendDigit adds d to the number being entered. A display of "0" or a set
// reset flag starts a new number instead. The display grows without bound.
func (c *Calculator) AppendDigit(d rune) {
	if c.state.Display == InitialDisplay || c.state.ResetDisplay {
		c.state.Display = string(d)
		c.state.ResetDisplay = false
		return
	}
	c.state.Display += string(d)
}

// DeleteLast removes the last character of the display, flooring at "0".
func (c *Calculator) DeleteLast() {
	r := []rune(c.state.Display)
	if len(r) > 1 {
		c.state.Display = string(r[:len(r)-1])
		return
	}
	c.state.Display = InitialDisplay
}

// Clear returns the calculator to its initial state.
func (c *Calculator) Clear() {
	c.state = InitialState()
}

// ChooseOperator stores the display as the first operand and op as the
// pending operator. A pending operation with a fresh second operand is
// evaluated first, so chains run strictly left to right.
func (c *Calculator) ChooseOperator(op Operator) error {
	if !op.valid() {
		panic(fmt.Sprintf("calculator: ChooseOperator called with invalid operator %d", int(op)))
	}
	if c.state.Operator != NoOperator && !c.state.ResetDisplay {
		if err := c.Calculate(); err != nil {
			return err
		}
	}
	first := ParseNumber(c.state.Display)
	c.state.FirstOperand = &first
	c.state.Operator = op
	c.state.ResetDisplay = true
	return nil
}

// Calculate applies the pending operator to the first operand and the
// display. It does nothing without a pending operator or while the reset
// flag is set, since no second operand has been entered yet.
func (c *Calculator) Calculate() error {
	if c.state.Operator == NoOperator || c.state.ResetDisplay {
		return nil
	}
	if c.state.FirstOperand == nil {
		panic("calculator: pending operator without a first operand")
	}

	second := ParseNumber(c.state.Display)
	if c.state.Operator == Divide && second == 0 {
		c.Clear()
		return ErrDivideByZero
	}

	result := c.state.Operator.apply(*c.state.FirstOperand, second)
	c.state.Display = FormatNumber(result)
	c.state.Operator = NoOperator
	c.state.FirstOperand = nil
	c.state.ResetDisplay = true
	return nil
}
