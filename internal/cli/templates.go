package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillkit/internal/template"
	"github.com/klauern/skillkit/internal/ui"
)

func templatesCommand() *cli.Command {
	return &cli.Command{
		Name:      "templates",
		Usage:     "List available templates",
		UsageText: "skillkit templates [category]",
		Description: `List built-in templates and any overrides from the configured
   template directory. Pass a category (skill, command) to filter.`,
		Action: func(_ context.Context, cmd *cli.Command) error {
			category := ""
			if cmd.Args().Len() > 0 {
				category = cmd.Args().Get(0)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			names := template.New(cfg.TemplatesDir()).ListTemplates(category)
			if len(names) == 0 {
				fmt.Println("No templates found")
				return nil
			}

			fmt.Println(ui.Header("Available templates:"))
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}
