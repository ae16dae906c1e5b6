package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/recall-lab/recall/pkg/cli/config"
	modelConfig "github.com/recall-lab/recall/pkg/domain/model/config"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required)",
			Required:    true,
			Sources:     cli.EnvVars("RECALL_FIRESTORE_PROJECT_ID"),
			Destination: &projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("RECALL_FIRESTORE_DATABASE_ID"),
			Destination: &databaseID,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore vector and payload field indexes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load policy")
			}

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"collection", policy.Collection,
				"dimension", policy.Embedding.Dimension,
				"dryRun", dryRun)

			indexConfig := getIndexConfig(policy)

			client, err := fireconf.NewClient(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer func() {
				if err := client.Close(); err != nil {
					logger.Error("failed to close fireconf client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx, indexConfig); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig declares the vector index plus the composite indexes that
// make each filtered similarity search run index-side: one per filterable
// payload field combined with the embedding vector.
func getIndexConfig(policy *modelConfig.Policy) *fireconf.Config {
	vector := fireconf.IndexField{
		Path: "embedding",
		Vector: &fireconf.VectorConfig{
			Dimension: policy.Embedding.Dimension,
		},
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: policy.Collection,
				Indexes: []fireconf.Index{
					// Unfiltered similarity search
					{
						Fields: []fireconf.IndexField{vector},
					},
					// topic == X
					{
						Fields: []fireconf.IndexField{
							{Path: "topic", Order: fireconf.OrderAscending},
							vector,
						},
					},
					// content_kind == X
					{
						Fields: []fireconf.IndexField{
							{Path: "content_kind", Order: fireconf.OrderAscending},
							vector,
						},
					},
					// tags array-contains-any
					{
						Fields: []fireconf.IndexField{
							{Path: "tags", Order: fireconf.OrderAscending},
							vector,
						},
					},
				},
			},
		},
	}
}
