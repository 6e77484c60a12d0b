package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veter069/BloodHound-Penetrator-2000/cmd/bhp2000/internal"
)

const version = "v2.0.0"

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "bhp2000",
	Short: "BloodHound Penetrator 2000 - Obsidian checklist generator",
	Long: `BloodHound Penetrator 2000 runs curated Cypher check packs against a
BloodHound Neo4j database and renders the results as Obsidian-ready
markdown: a checklist, a notes document, and a Dataview tracking
dashboard.

Configuration comes from the environment (a .env file is honored);
run without a subcommand to generate the documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable verbose output, including driver logging")
	cobra.OnInitialize(func() {
		internal.SetVerbose(verboseFlag)
	})

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}

// newLogger builds the structured logger for a command invocation.
// Default level keeps the console output down to the progress lines the
// generator prints itself.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if internal.IsVerbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("bhp2000 " + version)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion scripts",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			_ = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			_ = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			_ = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			_ = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
