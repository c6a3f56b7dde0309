package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/dhamidi/paskal/lexer"
)

func newRulesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [file]",
		Short: "Print the character classes, final states and reserved words of a rule file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rs  *lexer.RuleSet
				err error
			)
			if len(args) == 1 {
				rs, err = lexer.LoadRules(args[0])
			} else {
				rs, err = a.ruleSet()
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Character classes")
			fmt.Fprintln(w, classTable(rs))
			fmt.Fprintf(w, "\nFinal states (initial state %s)\n", rs.InitialState)
			fmt.Fprintln(w, finalStateTable(rs))
			fmt.Fprintln(w, "\nReserved words")
			fmt.Fprintln(w, strings.Join(rs.ReservedWords(), " "))
			return nil
		},
	}

	return cmd
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// classTable lists each class in declaration order with the ASCII
// characters it was expanded to.
func classTable(rs *lexer.RuleSet) string {
	members := make(map[string][]string)
	for _, c := range rs.Classification() {
		members[c.Class] = append(members[c.Class], printable(c.Char))
	}
	t := newTable("Class", "Spec", "Characters")
	for _, c := range rs.Classes {
		t.Row(c.Name, c.Spec, strings.Join(members[c.Name], " "))
	}
	return t.String()
}

func finalStateTable(rs *lexer.RuleSet) string {
	states := make([]string, 0, len(rs.FinalStates))
	for s := range rs.FinalStates {
		states = append(states, s)
	}
	sort.Strings(states)
	t := newTable("State", "Token")
	for _, s := range states {
		t.Row(s, string(rs.FinalStates[s]))
	}
	return t.String()
}

func printable(ch rune) string {
	if ch > ' ' && ch < 0x7f {
		return string(ch)
	}
	return strings.Trim(strconv.QuoteRune(ch), "'")
}
