package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillkit/internal/handlers"
	"github.com/klauern/skillkit/internal/ui"
)

func addCommandCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-command",
		Usage: "Add a slash command to an existing skill",
		UsageText: `skillkit add-command <command-name> [options]
   skillkit add-command run-tests --description "Run the test suite"`,
		Description: `Create a slash-command markdown file under .claude/commands/ and
   register it in the plugin manifest. The command name must be
   kebab-case.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "description",
				Aliases:  []string{"d"},
				Usage:    "Description shown for the command",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "instructions",
				Aliases: []string{"i"},
				Usage:   "Instructions for the command body",
			},
			&cli.StringFlag{
				Name:  "skill-dir",
				Value: ".",
				Usage: "Path to the skill directory",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("add-command requires exactly 1 argument: <command-name>")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			resp := handlers.New(cfg).AddCommand(handlers.AddCommandRequest{
				SkillDir:            cmd.String("skill-dir"),
				CommandName:         args.Get(0),
				CommandDescription:  cmd.String("description"),
				CommandInstructions: cmd.String("instructions"),
			})

			if handled, err := renderResponse(resp, cmd.String("output")); handled {
				if err == nil && !resp.Success {
					return cli.Exit("", 1)
				}
				return err
			}

			if !resp.Success {
				return errors.New(resp.Error)
			}

			if warning, ok := resp.Data["warning"].(string); ok {
				fmt.Println(ui.StatusWarning(resp.Message))
				fmt.Printf("  %s\n", warning)
			} else {
				fmt.Println(ui.StatusSuccess(resp.Message))
			}
			if file, ok := resp.Data["command_file"].(string); ok {
				fmt.Printf("  %s\n", file)
			}
			return nil
		},
	}
}
