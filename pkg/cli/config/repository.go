package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/recall-lab/recall/pkg/domain/interfaces"
	"github.com/recall-lab/recall/pkg/repository/firestore"
	"github.com/recall-lab/recall/pkg/repository/memory"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

// Repository holds CLI flags for vector index backend configuration
type Repository struct {
	backend    string
	projectID  string
	databaseID string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "index-backend",
			Usage:       "Vector index backend (firestore or memory)",
			Value:       "firestore",
			Sources:     cli.EnvVars("RECALL_INDEX_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("RECALL_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("RECALL_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
	}
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// Configure initializes the vector index for the configured backend. The
// caller is responsible for calling Close() on the returned index.
func (r *Repository) Configure(ctx context.Context, collection string) (interfaces.VectorIndex, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		index, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollection(collection))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore index")
		}
		logging.Default().Info("Using Firestore vector index",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection", collection,
		)
		return index, nil

	case "memory":
		logging.Default().Info("Using in-memory vector index (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid index backend", goerr.V("backend", r.backend))
	}
}
