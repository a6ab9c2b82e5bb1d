package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/cli/config"
	"github.com/m-mizutani/vendorfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdStatus(sourceCfg *config.Source) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show which manifest files are already present under the root",
		Action: func(ctx context.Context, c *cli.Command) error {
			manifest, err := sourceCfg.LoadManifest()
			if err != nil {
				return goerr.Wrap(err, "failed to load manifest")
			}

			// No fetcher: status never touches the network
			uc := usecase.NewFetch(nil, sourceCfg.Storage())
			statuses, err := uc.Status(manifest)
			if err != nil {
				return err
			}

			renderStatus(c.Root().Writer, statuses)
			return nil
		},
	}
}
