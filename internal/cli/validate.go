package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillkit/internal/handlers"
	"github.com/klauern/skillkit/internal/ui"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a skill directory's structure",
		UsageText: "skillkit validate [skill-dir]",
		Description: `Check required files, manifest JSON syntax, skill frontmatter,
   executable bits, and slash commands. The skill name is auto-detected
   unless --skill is given. Exits non-zero when validation fails.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "skill",
				Aliases: []string{"s"},
				Usage:   "Skill name (auto-detected if omitted)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			skillDir := "."
			if cmd.Args().Len() > 0 {
				skillDir = cmd.Args().Get(0)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			resp := handlers.New(cfg).ValidateSkill(handlers.ValidateRequest{
				SkillDir:  skillDir,
				SkillName: cmd.String("skill"),
			})

			if handled, err := renderResponse(resp, cmd.String("output")); handled {
				if err == nil && !resp.Success {
					return cli.Exit("", 1)
				}
				return err
			}

			printValidationResult(resp)
			if !resp.Success {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// printValidationResult renders a validation response as text.
func printValidationResult(resp handlers.Response) {
	if info, ok := resp.Data["info"].([]string); ok {
		for _, msg := range info {
			fmt.Println(ui.StatusInfo(msg))
		}
	}
	if warnings, ok := resp.Data["warnings"].([]string); ok {
		for _, msg := range warnings {
			fmt.Println(ui.StatusWarning(msg))
		}
	}
	if errs, ok := resp.Data["errors"].([]string); ok {
		for _, msg := range errs {
			fmt.Println(ui.StatusError(msg))
		}
	}

	fmt.Println()
	if resp.Success {
		fmt.Println(ui.StatusSuccess(resp.Message))
	} else {
		fmt.Println(ui.StatusError(resp.Message))
	}
}
