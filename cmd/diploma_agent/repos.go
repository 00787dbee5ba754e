package main

import (
	"github.com/jonathan/diploma-scanner/internal/fetch"
	"github.com/jonathan/diploma-scanner/internal/gallery"
	"github.com/jonathan/diploma-scanner/internal/observability"
	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List a GitHub user's repositories as a paged gallery",
	Long:  "Repos lists every public repository of the owner, probes each for a preview.png on main or master, and prints one display page.",
	Args:  cobra.NoArgs,
	RunE:  runRepos,
}

var (
	reposOwner   string
	reposPage    int
	reposPerPage int
	reposFormat  string
)

func init() {
	reposCmd.Flags().StringVar(&reposOwner, "owner", "", "GitHub user whose repositories are listed (default from config)")
	reposCmd.Flags().IntVar(&reposPage, "page", 1, "Display page, 1-based")
	reposCmd.Flags().IntVar(&reposPerPage, "per-page", gallery.DefaultDisplayPageSize, "Repositories per display page")
	reposCmd.Flags().StringVar(&reposFormat, "format", "", "Output format: json or yaml")

	rootCmd.AddCommand(reposCmd)
}

func runRepos(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	galleryCfg := cfg.Gallery
	if reposOwner != "" {
		galleryCfg.Owner = reposOwner
	}
	format := cfg.Format
	if cmd.Flags().Changed("format") {
		format = reposFormat
	}

	opts := fetch.DefaultOptions()
	opts.Timeout = cfg.FetchTimeout
	client := gallery.NewClient(galleryCfg, opts, logger.Named("gallery"))

	repos, err := client.Gallery(cmd.Context())
	if err != nil {
		return err
	}
	page := gallery.Paginate(repos, reposPage, reposPerPage)

	data, err := marshal(page, format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), "", data); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRepoPage(&page)
	}
	return nil
}
