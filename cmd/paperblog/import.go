package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/paperblog"
	"github.com/eringen/paperblog/importer"
	"github.com/eringen/paperblog/logging"
)

var (
	importDryRun  bool
	importPattern string
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import markdown posts with YAML frontmatter",
	Long: `Upsert every markdown file under dir as a post and delete posts
previously imported from dir whose file is gone. The file path is kept as
the post's source path, so run this from the repository root for edit
links to resolve.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&importDryRun, "dry-run", "n", false, "parse files without writing to the database")
	importCmd.Flags().StringVar(&importPattern, "pattern", importer.DefaultPattern, "glob of files to import, relative to dir")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	log := logging.WithComponent("import")

	if importDryRun {
		posts, err := importer.Read(args[0], importPattern)
		if err != nil {
			return err
		}
		for _, p := range posts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.Slug, p.FilePath)
		}
		return nil
	}

	store, err := paperblog.NewStore(cfg.Server.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	res, err := importer.Sync(store, args[0], importPattern)
	if err != nil {
		return err
	}
	log.Info().Int("posts", len(res.Imported)).Strs("removed", res.Removed).Str("dir", args[0]).Msg("import finished")
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d posts, removed %d\n", len(res.Imported), len(res.Removed))
	return nil
}
