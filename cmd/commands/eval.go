package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hufspace/hufspace-cli/internal/cli"
	"github.com/hufspace/hufspace-cli/pkg/calculator"
)

// EvalResult represents the output structure for the eval command
type EvalResult struct {
	Keys    []string `json:"keys" yaml:"keys"`
	Display string   `json:"display" yaml:"display"`
	Phase   string   `json:"phase" yaml:"phase"`
	Pending string   `json:"pending,omitempty" yaml:"pending,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

var (
	evalKeepGoing bool
	evalTrace     bool
)

// NewEvalCommand creates the eval command
func NewEvalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <key>...",
		Short: "Press a sequence of calculator keys and print the display",
		Long: `Press calculator keys in order, exactly as if they were typed on the keypad,
and print what the display shows afterwards.

Keys:
  0-9 .        digits and the decimal point (multi-digit tokens are split)
  + - * /      operators (also − × ÷)
  =            equals
  C, DEL       clear and delete

Operators chain strictly left to right: there is no precedence.

Examples:
  # Basic addition
  hufspace eval 5 + 3 =

  # Chains evaluate left to right (prints 20)
  hufspace eval 2 + 3 '*' 4 =

  # Show the display after every key
  hufspace eval --trace 12 / 4 =

  # Output as JSON
  hufspace eval 7 DEL -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEval,
	}

	cmd.Flags().BoolVar(&evalKeepGoing, "keep-going", false, "Continue after a divide-by-zero instead of failing")
	cmd.Flags().BoolVar(&evalTrace, "trace", false, "Print the display after every key")

	return cmd
}

func runEval(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("output")
	if err := cli.ValidateFormat(format); err != nil {
		return err
	}

	keys, err := calculator.ParseKeys(args)
	if err != nil {
		return err
	}

	trace := evalTrace && format == string(cli.FormatText)
	calc := calculator.New()
	result := EvalResult{}
	err = calc.Run(keys, evalKeepGoing, func(k calculator.Key, err error) {
		result.Keys = append(result.Keys, k.Token())
		if !trace {
			return
		}
		if err != nil {
			cli.PrintWarning("%s: %v, calculator cleared", k.Label(), err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-4s %s\n", k.Label(), calc.Display())
	})
	var divErr error
	if err != nil {
		if !errors.Is(err, calculator.ErrDivideByZero) {
			return err
		}
		divErr = err
	}

	state := calc.Snapshot()
	result.Display = state.Display
	result.Phase = calc.Phase().String()
	if state.Operator != calculator.NoOperator && state.FirstOperand != nil {
		result.Pending = calculator.FormatNumber(*state.FirstOperand) + " " + state.Operator.Symbol()
	}
	if divErr != nil {
		result.Error = divErr.Error()
	}

	if format == string(cli.FormatText) {
		if !evalTrace {
			fmt.Fprintln(cmd.OutOrStdout(), result.Display)
		}
	} else if err := cli.OutputResults(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if divErr != nil && !evalKeepGoing {
		return divErr
	}
	return nil
}
