package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/klauern/skillkit/internal/config"
	"github.com/klauern/skillkit/internal/handlers"
	"github.com/klauern/skillkit/internal/progress"
	"github.com/klauern/skillkit/internal/sync"
	"github.com/klauern/skillkit/internal/ui"
	"github.com/klauern/skillkit/internal/ui/tui"
)

func syncCommand() *cli.Command {
	return &cli.Command{
		Name:      "sync",
		Usage:     "Sync skill files from a source tree to a target tree",
		UsageText: "skillkit sync [options] <source-dir> <target-dir>",
		Description: `Copy the configured skill files from a standalone skill repository
   into a marketplace tree. Existing target files are backed up with a
   timestamped copy before being overwritten.

   Examples:
     skillkit sync --skill my-skill ./my-skill ../marketplace
     skillkit sync --skill my-skill --dry-run ./my-skill ../marketplace
     skillkit sync --skill my-skill --interactive ./my-skill ../marketplace`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "skill",
				Aliases:  []string{"s"},
				Usage:    "Skill name used to resolve file patterns",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Preview changes without modifying files",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Pick the files to sync in an interactive list",
			},
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Skip the overwrite confirmation prompt",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 2 {
				return errors.New("sync requires exactly 2 arguments: <source-dir> <target-dir>")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			sourceDir := args.Get(0)
			targetDir := args.Get(1)
			skillName := cmd.String("skill")
			dryRun := cmd.Bool("dry-run")

			h := handlers.New(cfg)

			opts := sync.Options{DryRun: dryRun}

			if cmd.Bool("interactive") {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return errors.New("interactive mode requires a terminal")
				}
				files := h.ListSyncFiles(sourceDir, skillName)
				picked, err := tui.RunFilePicker(files, skillName, targetDir)
				if err != nil {
					return fmt.Errorf("file picker failed: %w", err)
				}
				if !picked.Confirmed {
					fmt.Println("Sync cancelled")
					return nil
				}
				opts.Include = picked.Selected
			} else if !dryRun && !cmd.Bool("yes") {
				if !confirmOverwrite(cfg, targetDir) {
					fmt.Println("Sync cancelled")
					return nil
				}
			}

			total := len(h.ListSyncFiles(sourceDir, skillName))
			var bar *progress.Bar
			if !dryRun && total > 0 {
				bar = progress.Simple(int64(total), "Syncing")
				opts.OnFile = func(string) { _ = bar.Add(1) }
			}

			resp := h.SyncSkill(handlers.SyncRequest{
				SourceDir: sourceDir,
				TargetDir: targetDir,
				SkillName: skillName,
				Options:   opts,
			})

			if bar != nil {
				_ = bar.Finish()
			}

			if handled, err := renderResponse(resp, cmd.String("output")); handled {
				if err == nil && !resp.Success {
					return cli.Exit("", 1)
				}
				return err
			}

			printSyncResult(resp)
			if !resp.Success {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// confirmOverwrite prompts before a sync that may overwrite target
// files, when the config asks for confirmation. Non-terminal input
// proceeds without prompting.
func confirmOverwrite(cfg *config.Config, targetDir string) bool {
	if !cfg.Sync.ConfirmOverwrite {
		return true
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return true
	}

	fmt.Printf("Sync may overwrite files in %s. Continue? [y/N] ", targetDir)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// printSyncResult renders a sync response as text.
func printSyncResult(resp handlers.Response) {
	if resp.Success {
		fmt.Println(ui.StatusSuccess(resp.Message))
	} else {
		fmt.Println(ui.StatusError(resp.Error))
	}

	if copied, ok := resp.Data["copied_files"].([]string); ok {
		for _, f := range copied {
			fmt.Printf("  %s %s\n", ui.SymbolSuccess, f)
		}
	}
	if skipped, ok := resp.Data["skipped_files"].([]sync.SkippedFile); ok {
		for _, s := range skipped {
			fmt.Printf("  %s %s (%s)\n", ui.SymbolSkipped, s.Path, s.Reason)
		}
	}
	if backups, ok := resp.Data["backups"].([]sync.BackupRecord); ok && len(backups) > 0 {
		fmt.Printf("\n%d backup(s) created:\n", len(backups))
		for _, b := range backups {
			fmt.Printf("  %s\n", b.Backup)
		}
	}
	if errs, ok := resp.Data["errors"].([]string); ok {
		for _, e := range errs {
			fmt.Printf("  %s %s\n", ui.SymbolError, e)
		}
	}
}
