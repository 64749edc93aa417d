package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCountCmd())
}

func newCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count <pattern>",
		Short: "Print the number of distinct group names",
		Long: `The count command prints how many distinct names a pattern defines.
A name carried by several groups counts once.

Example:
  onignames count '(?<foo>a*)(?<bar>b*)(?<bar>c*)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(args)
		},
	}
}

func runCount(args []string) error {
	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Close()

	if jsonOut {
		return printJSON(map[string]any{
			"pattern": re.String(),
			"names":   re.NamesLen(),
			"groups":  re.NumSubexp(),
		})
	}
	printInfo("%d\n", re.NamesLen())
	printVerbose("groups: %d\n", re.NumSubexp())
	return nil
}
