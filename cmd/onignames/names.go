package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newNamesCmd())
}

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names <pattern>",
		Short: "List group names and the groups they label",
		Long: `The names command compiles a pattern and lists every distinct group
name together with the group numbers carrying it, in name table order.

Example:
  onignames names '(?<foo>a*)(?<bar>b*)(?<bar>c*)'
  onignames names --syntax python '(?P<year>\d{4})-(?P<month>\d\d)'
  onignames names --encoding utf-16le '(?<név>x)' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNames(args)
		},
	}
}

type nameJSON struct {
	Name   string `json:"name"`
	Groups []int  `json:"groups"`
}

func runNames(args []string) error {
	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Close()

	var names []nameJSON
	it := re.Names()
	for it.Next() {
		e := it.Entry()
		names = append(names, nameJSON{Name: e.Name(), Groups: e.Groups().Ints()})
	}
	if err := it.Err(); err != nil {
		return err
	}

	if jsonOut {
		if names == nil {
			names = []nameJSON{}
		}
		return printJSON(map[string]any{
			"pattern":  re.String(),
			"encoding": re.Encoding().String(),
			"names":    names,
			"count":    len(names),
		})
	}

	printVerbose("Pattern: %s (%d groups, %s names)\n", re.String(), re.NumSubexp(), re.Encoding())
	for _, n := range names {
		printInfo("%s\t%s\n", n.Name, joinInts(n.Groups))
	}
	printVerbose("\nTotal: %d names\n", len(names))
	return nil
}
