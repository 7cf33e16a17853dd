package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/treeparty/cmd/treediff/templates"
	"github.com/urfave/cli/v3"
)

const (
	scenarioKey = "scenario"
	fromKey     = "from"
	toKey       = "to"
	treeKey     = "tree"
	outKey      = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "treediff",
		Usage: "Replay tree snapshots through the renderer and report the host mutations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  scenarioKey,
				Usage: "YAML scenario file",
			},
			&cli.StringFlag{
				Name:  fromKey,
				Usage: "comma separated keys of the first list, used without a scenario",
				Value: "A,B,C,D",
			},
			&cli.StringFlag{
				Name:  toKey,
				Usage: "comma separated keys of the second list, used without a scenario",
				Value: "D,B,C,A",
			},
			&cli.BoolFlag{
				Name:  treeKey,
				Usage: "Print the resulting tree after each step",
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Write the report to this file instead of stdout",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	defer func() {
		log.Printf("treediff finished in %v", time.Since(start))
	}()

	var (
		s   *Scenario
		err error
	)
	if path := cmd.String(scenarioKey); path != "" {
		if s, err = loadScenario(path); err != nil {
			return err
		}
	} else {
		s = keyedScenario(cmd.String(fromKey), cmd.String(toKey))
	}

	report, err := replay(s, cmd.Bool(treeKey))
	if err != nil {
		return err
	}

	if out := cmd.String(outKey); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		templates.WriteRenderReport(f, report)
		return nil
	}
	templates.WriteRenderReport(os.Stdout, report)
	return nil
}
