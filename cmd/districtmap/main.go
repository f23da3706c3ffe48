package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/devcompany145/Business-developers-ai/pkg/match"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "districtmap",
		Short:        "Interactive office district map: layout, camera, relationships and scene frames",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "districtmap.yaml", "config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(sceneCmd(&configPath))
	rootCmd.AddCommand(validateCmd(&configPath))
	rootCmd.AddCommand(analyzeCmd(&configPath))
	rootCmd.AddCommand(matchesCmd(&configPath))
	rootCmd.AddCommand(configCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the map API and gesture stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides server.addr)")
	return cmd
}

type sceneOptions struct {
	mode     string
	zoom     float64
	selected string
	hovered  string
	category string
	query    string
	flat     bool
}

func sceneCmd(configPath *string) *cobra.Command {
	var opts sceneOptions

	cmd := &cobra.Command{
		Use:   "scene [district-file]",
		Short: "Compose one frame for a district and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScene(*configPath, seedArg(args), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "standard", "map mode: standard, heatmap, networking, traffic, globe")
	cmd.Flags().Float64VarP(&opts.zoom, "zoom", "z", 0, "camera zoom (default: the mode's default)")
	cmd.Flags().StringVar(&opts.selected, "select", "", "selected business id")
	cmd.Flags().StringVar(&opts.hovered, "hover", "", "hovered business id")
	cmd.Flags().StringVar(&opts.category, "category", "", "only render this category")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "only render businesses matching this text")
	cmd.Flags().BoolVar(&opts.flat, "2d", false, "print the flat overlay instead of the 3D frame")
	return cmd
}

func validateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [district-file]",
		Short: "Validate a district snapshot and its composed frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(*configPath, seedArg(args))
		},
	}
}

func analyzeCmd(configPath *string) *cobra.Command {
	var (
		query string
		lang  string
		useAI bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [district-file]",
		Short: "Print district statistics and, with --ai, an AI trend analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), *configPath, seedArg(args), useAI, query, lang)
		},
	}

	cmd.Flags().BoolVar(&useAI, "ai", false, "ask the AI analyst for a trend summary")
	cmd.Flags().StringVarP(&query, "query", "q", "", "also run an AI search for this query")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "response language (default: i18n.default_language)")
	return cmd
}

type matchesOptions struct {
	profile string
	lang    string
	sortBy  string
	asc     bool
	opts    match.Options
	intro   string
}

func matchesCmd(configPath *string) *cobra.Command {
	var o matchesOptions

	cmd := &cobra.Command{
		Use:   "matches [district-file]",
		Short: "Score the district against a company profile and list the matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatches(cmd.Context(), *configPath, seedArg(args), o)
		},
	}

	cmd.Flags().StringVarP(&o.profile, "profile", "p", "profile.yaml", "YAML file with your company profile")
	cmd.Flags().StringVarP(&o.lang, "lang", "l", "", "response language (default: i18n.default_language)")
	cmd.Flags().StringVar(&o.sortBy, "sort", "score", "sort by: score, name, visitors")
	cmd.Flags().BoolVar(&o.asc, "asc", false, "ascending order")
	cmd.Flags().IntVar(&o.opts.MinScore, "min-score", 0, "drop matches below this score")
	cmd.Flags().StringVar(&o.opts.Category, "category", "", "only this category")
	cmd.Flags().StringVarP(&o.opts.Query, "query", "q", "", "only businesses matching this text")
	cmd.Flags().IntVar(&o.opts.Limit, "limit", 0, "maximum matches to list")
	cmd.Flags().StringVar(&o.intro, "intro", "", "draft an introduction to this business id")
	return cmd
}

func configCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to --config",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(*configPath)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigShow(*configPath)
		},
	})
	return cmd
}

func seedArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
