package cli

import (
	"context"
	"io"
	"os"
	"sync/atomic"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/recall-lab/recall/pkg/cli/config"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/usecase"
	"github.com/recall-lab/recall/pkg/utils/logging"
	"github.com/recall-lab/recall/pkg/utils/safe"
)

// ingestConcurrency caps parallel embedding calls during batch ingestion.
const ingestConcurrency = 4

func cmdIngest() *cli.Command {
	var title string
	var topic string
	var contentKind string
	var language string
	var source string
	var tags []string
	var policyCfg config.Policy
	var repoCfg config.Repository
	var llmCfg config.LLM

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Record title (only valid with a single input)",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "topic",
			Usage:       "Topic tag for filtering",
			Destination: &topic,
		},
		&cli.StringFlag{
			Name:        "content-kind",
			Usage:       "Content kind (note or code)",
			Destination: &contentKind,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "Programming language (code records only)",
			Destination: &language,
		},
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Provenance label, defaults to the input file name",
			Destination: &source,
		},
		&cli.StringSliceFlag{
			Name:        "tag",
			Usage:       "Free-form tag (repeatable)",
			Destination: &tags,
		},
	}
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)

	return &cli.Command{
		Name:      "ingest",
		Aliases:   []string{"i"},
		Usage:     "Ingest knowledge snippets from files or stdin",
		ArgsUsage: "<file>... (use '-' for stdin)",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.New("at least one input file is required")
			}
			if title != "" && len(paths) > 1 {
				return goerr.New("--title is only valid with a single input")
			}

			uc, index, err := buildUseCases(ctx, &policyCfg, &repoCfg, &llmCfg)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, index)

			var created, duplicates atomic.Int64

			eg, egCtx := errgroup.WithContext(ctx)
			eg.SetLimit(ingestConcurrency)
			for _, path := range paths {
				eg.Go(func() error {
					content, err := readInput(path)
					if err != nil {
						return err
					}

					recordSource := source
					if recordSource == "" && path != "-" {
						recordSource = path
					}

					result, err := uc.Ingest(egCtx, knowledge.RawRecord{
						Title:       title,
						Content:     content,
						ContentKind: contentKind,
						Language:    language,
						Topic:       topic,
						Tags:        tags,
						Source:      recordSource,
					})
					if err != nil {
						return goerr.Wrap(err, "failed to ingest", goerr.V("path", path))
					}

					if result.Status == usecase.StatusDuplicate {
						duplicates.Add(1)
					} else {
						created.Add(1)
					}

					logging.From(egCtx).Info("ingested",
						"path", path,
						"id", result.ID,
						"status", result.Status)
					return nil
				})
			}

			if err := eg.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Ingestion completed",
				"created", created.Load(),
				"duplicates", duplicates.Load())
			return nil
		},
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	return string(data), nil
}
