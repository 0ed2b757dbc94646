package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/picksleagues/picks-leagues/internal/app"
	"github.com/picksleagues/picks-leagues/internal/config"
	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "ingest",
		Usage: "mirror ESPN data and run maintenance jobs on demand",
		Commands: []*cli.Command{
			runCommand(),
			runsCommand(),
			purgeSessionsCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "mirror one entity, or all of them in dependency order",
		ArgsUsage: "<all|" + strings.Join(entityNames(), "|") + ">",
		Action: func(c *cli.Context) error {
			target := strings.TrimSpace(c.Args().First())
			if target == "" {
				return cli.Exit("missing entity argument", 2)
			}

			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			var runs []ingestionrun.Run
			if target == "all" {
				runs, err = rt.Ingestion.RunAll(c.Context, ingestionrun.TriggerCLI)
			} else {
				entity, ok := ingestionrun.ParseEntity(target)
				if !ok {
					return cli.Exit(fmt.Sprintf("unknown entity %q", target), 2)
				}
				var run ingestionrun.Run
				run, err = rt.Ingestion.Run(c.Context, entity, ingestionrun.TriggerCLI)
				if run.ID != "" {
					runs = append(runs, run)
				}
			}
			printRuns(runs)
			return err
		},
	}
}

func runsCommand() *cli.Command {
	return &cli.Command{
		Name:  "runs",
		Usage: "list recent ingestion runs",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to show"},
		},
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			runs, err := rt.Ingestion.RecentRuns(c.Context, c.Int("limit"))
			if err != nil {
				return err
			}
			printRuns(runs)
			return nil
		},
	}
}

func purgeSessionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "purge-sessions",
		Usage: "delete expired sign-in sessions",
		Action: func(c *cli.Context) error {
			rt, err := newRuntime(c)
			if err != nil {
				return err
			}
			defer rt.Close()

			n, err := rt.Auth.PurgeExpiredSessions(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("purged %d expired session(s)\n", n)
			return nil
		},
	}
}

func newRuntime(c *cli.Context) (*app.Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ServiceName += "-ingest"
	return app.New(c.Context, cfg, app.NewLogger(cfg))
}

func entityNames() []string {
	names := make([]string, 0, len(ingestionrun.Entities)+1)
	for _, e := range ingestionrun.Entities {
		names = append(names, string(e))
	}
	return append(names, string(ingestionrun.EntityPicksLeagueSeasons))
}

func printRuns(runs []ingestionrun.Run) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENTITY\tTRIGGER\tSTATUS\tSTARTED\tDURATION\tUPSERTED\tSKIPPED\tERROR")
	for _, run := range runs {
		duration := "-"
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.Entity, run.Trigger, run.Status, run.StartedAt.Format(time.RFC3339),
			duration, run.Upserted, run.Skipped, run.Error)
	}
	_ = w.Flush()
}
