package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent generation runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	runs, err := openRunStore()
	if err != nil {
		return err
	}
	defer runs.Close()

	records, err := runs.ListRuns(runsLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEYWORD\tOUTCOME\tFILES\tELAPSED\tCREATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1fs\t%s\n",
			rec.ID, rec.Keyword, rec.Outcome, len(rec.GeneratedFiles),
			rec.ElapsedSeconds, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
