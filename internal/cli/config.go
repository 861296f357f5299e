package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or initialize the configuration",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Display the effective configuration",
				Action: func(_ context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return fmt.Errorf("failed to load config: %w", err)
					}

					data, err := json.MarshalIndent(cfg, "", "  ")
					if err != nil {
						return fmt.Errorf("failed to encode config: %w", err)
					}
					fmt.Println(string(data))
					return nil
				},
			},
			{
				Name:  "path",
				Usage: "Print the config file location",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Println(config.FilePath())
					return nil
				},
			},
			{
				Name:  "init",
				Usage: "Write the default configuration to disk",
				Action: func(_ context.Context, _ *cli.Command) error {
					cfg := config.Default()
					if err := cfg.Save(); err != nil {
						return fmt.Errorf("failed to save config: %w", err)
					}
					fmt.Println(ui.StatusSuccess("Wrote " + config.FilePath()))
					return nil
				},
			},
		},
	}
}
