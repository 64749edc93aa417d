package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newLookupCmd())
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <pattern> <name>",
		Short: "Print the group numbers labelled by a name",
		Long: `The lookup command prints the groups carrying a name, in the order
they appear in the pattern. It fails if no group has that name.

Example:
  onignames lookup '(?<foo>a*)(?<bar>b*)(?<bar>c*)' bar`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(args)
		},
	}
}

func runLookup(args []string) error {
	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Close()

	groups, err := re.GroupNumbers(args[1])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(nameJSON{Name: args[1], Groups: groups})
	}
	printInfo("%s\n", joinInts(groups))
	return nil
}
