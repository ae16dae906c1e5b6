package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/recall-lab/recall/pkg/cli/config"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/utils/safe"
)

func cmdSearch() *cli.Command {
	var topic string
	var contentKind string
	var tags []string
	var limit int
	var minScore float64
	var policyCfg config.Policy
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "topic",
			Usage:       "Restrict results to a topic",
			Destination: &topic,
		},
		&cli.StringFlag{
			Name:        "content-kind",
			Usage:       "Restrict results to a content kind (note or code)",
			Destination: &contentKind,
		},
		&cli.StringSliceFlag{
			Name:        "tag",
			Usage:       "Restrict results to records carrying any of these tags (repeatable)",
			Destination: &tags,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of results",
			Destination: &limit,
		},
		&cli.FloatFlag{
			Name:        "min-score",
			Usage:       "Minimum similarity score",
			Destination: &minScore,
		},
	}
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:      "search",
		Aliases:   []string{"q"},
		Usage:     "Search stored knowledge snippets",
		ArgsUsage: "<query>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one query argument is required")
			}

			uc, index, err := buildUseCases(ctx, &policyCfg, &repoCfg, &llmCfg)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, index)

			results, err := uc.Search(ctx, knowledge.RawQuery{
				Query:       c.Args().First(),
				Topic:       topic,
				ContentKind: contentKind,
				Tags:        tags,
				Limit:       limit,
				MinScore:    minScore,
			})
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal results")
			}
			safe.Write(ctx, os.Stdout, append(data, '\n'))

			return nil
		},
	}
}
