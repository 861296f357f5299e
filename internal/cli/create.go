package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillkit/internal/handlers"
	"github.com/klauern/skillkit/internal/ui"
)

func createCommand() *cli.Command {
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new skill project",
		UsageText: `skillkit create <skill-name> [options]
   skillkit create my-skill --description "Does things" --author "Jane Doe" \
     --email jane@example.com --github-user janedoe`,
		Description: `Scaffold a complete skill project: plugin manifests, a skill
   definition with frontmatter, an installer script, README, LICENSE,
   and a .gitignore.

   The skill name must be kebab-case (lowercase with hyphens).`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "description",
				Aliases:  []string{"d"},
				Usage:    "Brief description of the skill",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "author",
				Aliases:  []string{"a"},
				Usage:    "Author name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Author email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "github-user",
				Aliases:  []string{"g"},
				Usage:    "GitHub username for repository links",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "target-dir",
				Usage: "Directory to create the skill in (default: current directory)",
			},
			&cli.StringFlag{
				Name:  "skill-version",
				Usage: "Initial version for the skill",
				Value: "0.1.0",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("create requires exactly 1 argument: <skill-name>")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			resp := handlers.New(cfg).CreateSkill(handlers.CreateRequest{
				SkillName:        args.Get(0),
				SkillDescription: cmd.String("description"),
				AuthorName:       cmd.String("author"),
				AuthorEmail:      cmd.String("email"),
				GitHubUser:       cmd.String("github-user"),
				TargetDir:        cmd.String("target-dir"),
				Version:          cmd.String("skill-version"),
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

			fmt.Println(ui.StatusSuccess(resp.Message))
			if files, ok := resp.Data["created_files"].([]string); ok {
				for _, f := range files {
					fmt.Printf("  %s\n", f)
				}
			}
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Printf("  1. cd %s\n", args.Get(0))
			fmt.Println("  2. Edit the skill definition under skills/")
			fmt.Println("  3. Run 'skillkit validate' to check the structure")
			return nil
		},
	}
}
