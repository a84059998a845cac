package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/formatter"
	"github.com/gnoswap-labs/formula/lexer"
	"github.com/gnoswap-labs/formula/parser"
)

// expression command flags
var (
	showTree bool
	showRPN  bool
	sets     []string
	diffVar  string
	diffRaw  bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [expressions...]",
	Short: "Print the tokens of each expression",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnFailure(runTokenize(cmd.OutOrStdout(), newPrinter(), args))
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse [expressions...]",
	Short: "Parse each expression and print it fully parenthesized",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnFailure(runParse(cmd.OutOrStdout(), newPrinter(), args, showTree, showRPN))
	},
}

var simplifyCmd = &cobra.Command{
	Use:   "simplify [expressions...]",
	Short: "Simplify each expression",
	Long: `Simplifies each expression with the configured rules, functions and parameters.
Example) formula simplify --set a=2 "a * x + 3x"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnFailure(runSimplify(cmd.OutOrStdout(), newEngine(), newPrinter(), args, sets))
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff [expressions...]",
	Short: "Differentiate each expression",
	Long: `Differentiates each expression with respect to --var and simplifies the result.
Example) formula diff --var x "x^2 * sin(x)"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitOnFailure(runDiff(cmd.OutOrStdout(), newEngine(), newPrinter(), args, diffVar, diffRaw))
	},
}

func init() {
	parseCmd.Flags().BoolVar(&showTree, "tree", false, "Print the expression tree")
	parseCmd.Flags().BoolVar(&showRPN, "rpn", false, "Print the postfix form")
	simplifyCmd.Flags().StringArrayVar(&sets, "set", nil, "Bind a parameter, e.g. --set a=2 (repeatable)")
	diffCmd.Flags().StringVar(&diffVar, "var", "x", "Variable to differentiate by")
	diffCmd.Flags().BoolVar(&diffRaw, "raw", false, "Print the derivative before simplification")
}

// evaluator is the part of the engine the expression commands use.
type evaluator interface {
	Simplify(text string, extra map[string]ast.Node) (ast.Node, error)
	Differentiate(text, variable string, raw bool) (ast.Node, error)
}

// report prints the diagnostic of a failed expression.
func report(w io.Writer, p *formatter.Printer, text string, err error) {
	fmt.Fprint(w, p.Diagnostic(formatter.Diagnostic{Text: text, Err: err}))
}

func runTokenize(w io.Writer, p *formatter.Printer, exprs []string) error {
	var failed bool
	for _, text := range exprs {
		tokens, err := lexer.Tokenize(text)
		if err != nil {
			report(w, p, text, err)
			failed = true
			continue
		}
		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	}
	if failed {
		return errFailed
	}
	return nil
}

func runParse(w io.Writer, p *formatter.Printer, exprs []string, tree, rpn bool) error {
	var failed bool
	for _, text := range exprs {
		tokens, err := lexer.Tokenize(text)
		if err != nil {
			report(w, p, text, err)
			failed = true
			continue
		}
		if rpn {
			items, err := parser.ToRPN(tokens)
			if err != nil {
				report(w, p, text, err)
				failed = true
				continue
			}
			fmt.Fprintln(w, parser.FormatRPN(items))
			continue
		}
		n, err := parser.ParseTokens(tokens)
		if err != nil {
			report(w, p, text, err)
			failed = true
			continue
		}
		if tree {
			fmt.Fprint(w, p.Tree(n))
		} else {
			fmt.Fprintln(w, n.String())
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func runSimplify(w io.Writer, e evaluator, p *formatter.Printer, exprs, sets []string) error {
	params, err := parseSets(sets)
	if err != nil {
		return err
	}

	var failed bool
	for _, text := range exprs {
		n, err := e.Simplify(text, params)
		if err != nil {
			report(w, p, text, err)
			failed = true
			continue
		}
		fmt.Fprintln(w, p.Infix(n))
	}
	if failed {
		return errFailed
	}
	return nil
}

func runDiff(w io.Writer, e evaluator, p *formatter.Printer, exprs []string, variable string, raw bool) error {
	var failed bool
	for _, text := range exprs {
		n, err := e.Differentiate(text, variable, raw)
		if err != nil {
			report(w, p, text, err)
			failed = true
			continue
		}
		fmt.Fprintln(w, p.Infix(n))
	}
	if failed {
		return errFailed
	}
	return nil
}

// parseSets turns name=expression pairs into parameter bindings.
func parseSets(sets []string) (map[string]ast.Node, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	params := make(map[string]ast.Node, len(sets))
	for _, s := range sets {
		name, text, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q, expected name=expression", s)
		}
		n, err := parser.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		params[name] = n
	}
	return params, nil
}
