package main

import (
	"github.com/spf13/cobra"

	"github.com/gibfahn/dot/pkg/config"
	"github.com/gibfahn/dot/pkg/env"
	"github.com/gibfahn/dot/pkg/filesystem"
	"github.com/gibfahn/dot/pkg/generate"
	"github.com/gibfahn/dot/pkg/link"
	"github.com/gibfahn/dot/pkg/paths"
	"github.com/gibfahn/dot/pkg/types"
	"github.com/gibfahn/dot/pkg/ui/output"
)

var (
	fromDir   string
	toDir     string
	backupDir string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run all configured tasks (the default when no subcommand is given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAll(cmd)
	},
}

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Symlink your dotfiles into place",
	Long: `Symlink everything in the from directory into the to directory.
Pre-existing files or directories that would be overwritten are moved
into the backup directory at the same relative path; conflicting
symlinks are replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Flags bypass the config file entirely; only ~ is expanded.
		resolver, err := env.NewResolver()
		if err != nil {
			return err
		}
		return runLink(cmd, types.LinkConfig{
			FromDir:   resolver.ExpandHome(fromDir),
			ToDir:     resolver.ExpandHome(toDir),
			BackupDir: resolver.ExpandHome(backupDir),
		})
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the resolved environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		resolver, err := env.NewResolver()
		if err != nil {
			return err
		}
		resolved, err := cfg.ResolveEnv(resolver)
		if err != nil {
			return err
		}
		output.NewRenderer(cmd.OutOrStdout()).RenderEnv(resolved)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate dot config from existing state",
}

var generateGitCmd = &cobra.Command{
	Use:   "git",
	Short: "Snapshot git repository layout into a config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cmd.Flags().GetString("path")
		if err != nil {
			return err
		}
		searchPaths, err := cmd.Flags().GetStringArray("search-path")
		if err != nil {
			return err
		}
		excludes, err := cmd.Flags().GetStringArray("exclude")
		if err != nil {
			return err
		}
		return generate.Git(filesystem.NewOS(), generate.GitTask{
			Path:        path,
			SearchPaths: searchPaths,
			Excludes:    excludes,
		})
	},
}

func init() {
	linkCmd.Flags().StringVar(&fromDir, "from-dir", paths.DefaultFromDir, "Directory your dotfiles live in")
	linkCmd.Flags().StringVar(&toDir, "to-dir", paths.DefaultToDir, "Directory the symlinks are written into")
	linkCmd.Flags().StringVar(&backupDir, "backup-dir", paths.DefaultBackupDir, "Directory displaced content is moved to")

	generateGitCmd.Flags().String("path", "", "File to write the generated config to")
	generateGitCmd.Flags().StringArray("search-path", nil, "Directory to scan for git repositories (repeatable)")
	generateGitCmd.Flags().StringArray("exclude", nil, "Skip repositories whose path contains this substring (repeatable)")
	_ = generateGitCmd.MarkFlagRequired("path")
	_ = generateGitCmd.MarkFlagRequired("search-path")
	generateCmd.AddCommand(generateGitCmd)
}

// runAll loads the config, resolves the environment and runs every
// configured task: generate tasks first, then the link run.
func runAll(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	resolver, err := env.NewResolver()
	if err != nil {
		return err
	}
	if _, err := cfg.ResolveEnv(resolver); err != nil {
		return err
	}

	fsys := filesystem.NewOS()
	for _, task := range cfg.Generate.Git {
		err := generate.Git(fsys, generate.GitTask{
			Path:        task.Path,
			SearchPaths: task.SearchPaths,
			Excludes:    task.Excludes,
		})
		if err != nil {
			return err
		}
	}

	return runLink(cmd, types.LinkConfig{
		FromDir:   cfg.Link.FromDir,
		ToDir:     cfg.Link.ToDir,
		BackupDir: cfg.Link.BackupDir,
	})
}

func runLink(cmd *cobra.Command, cfg types.LinkConfig) error {
	result, err := link.New(filesystem.NewOS()).Link(cfg)
	if err != nil {
		return err
	}
	output.NewRenderer(cmd.OutOrStdout()).RenderLinkResult(result)
	return nil
}
