package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <pattern>",
		Short: "Show the name table's bucket layout",
		Long: `The dump command prints the name table bucket by bucket: each entry's
bucket, its position in the bucket's chain, its stored hash, the name and
its groups. A summary of bucket usage follows.

Example:
  onignames dump '(?<a>x)(?<l>y)'
  onignames dump --heap '(?<foo>a*)(?<bar>b*)' --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
}

type dumpEntry struct {
	Bucket int    `json:"bucket"`
	Link   int    `json:"link"`
	Hash   uint32 `json:"hash"`
	Name   string `json:"name"`
	Groups []int  `json:"groups"`
}

func runDump(args []string) error {
	re, err := compilePattern(args[0])
	if err != nil {
		return err
	}
	defer re.Close()

	tab := re.NameTable()
	if err := tab.Err(); err != nil {
		return err
	}
	stats, err := tab.Stats()
	if err != nil {
		return err
	}

	entries := []dumpEntry{}
	it := tab.Names()
	for it.Next() {
		e := it.Entry()
		entries = append(entries, dumpEntry{
			Bucket: e.Bucket,
			Link:   e.Link,
			Hash:   e.Hash,
			Name:   e.Name(),
			Groups: e.Groups().Ints(),
		})
	}
	if err := it.Err(); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]any{
			"pattern":       re.String(),
			"encoding":      tab.Encoding().String(),
			"buckets":       stats.Buckets,
			"used_buckets":  stats.UsedBuckets,
			"entries":       stats.Entries,
			"longest_chain": stats.LongestChain,
			"table":         entries,
		})
	}

	if !tab.Present() {
		printInfo("No name table\n")
		return nil
	}
	printInfo("%-6s %-4s %-10s %s\n", "BUCKET", "LINK", "HASH", "NAME")
	for _, e := range entries {
		printInfo("%-6d %-4d 0x%08x %s %s\n", e.Bucket, e.Link, e.Hash, e.Name, joinInts(e.Groups))
	}
	printInfo("\nBuckets: %d (%d used)  Entries: %d  Longest chain: %d\n",
		stats.Buckets, stats.UsedBuckets, stats.Entries, stats.LongestChain)
	return nil
}

// joinInts formats group numbers as "2 3".
func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}
