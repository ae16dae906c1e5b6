package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	modelConfig "github.com/recall-lab/recall/pkg/domain/model/config"
)

// Policy holds the CLI flag pointing at an optional TOML policy file.
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a TOML policy file (collection, limits, dedup scope)",
			Sources:     cli.EnvVars("RECALL_POLICY"),
			Destination: &p.path,
		},
	}
}

// Configure loads the policy file, or returns the default policy when no
// file is configured.
func (p *Policy) Configure() (*modelConfig.Policy, error) {
	if p.path == "" {
		return modelConfig.DefaultPolicy(), nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", p.path))
	}

	var policy modelConfig.Policy
	if err := toml.Unmarshal(data, &policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse policy file", goerr.V("path", p.path))
	}

	policy.FillDefaults()
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid policy file", goerr.V("path", p.path))
	}

	return &policy, nil
}
