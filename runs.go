package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spotsnap/spotsnap/config"
	"github.com/spotsnap/spotsnap/db"
	"github.com/spotsnap/spotsnap/subcmd"
)

func listRuns(args []string) error {
	sc := subcmd.New("runs", "list recent extraction runs and their task outcomes")
	n := sc.Int("n", 10, "number of runs to show")
	if err := sc.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	catalog, err := db.Open(cfg.CatalogFile)
	if err != nil {
		return err
	}
	defer catalog.Close()

	runs, err := catalog.RecentRuns(*n)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, run := range runs {
		finished := "unfinished"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Format("15:04:05")
		}
		fmt.Fprintf(w, "run %d\t%s\t%s\t%s\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), finished, run.UserID)
		for _, task := range run.Tasks {
			detail := task.File
			if task.Error != "" {
				detail = task.Error
			}
			fmt.Fprintf(w, "  %s\t%s\t%d\t%s\n", task.Name, task.Status, task.Records, detail)
		}
	}
	return w.Flush()
}
