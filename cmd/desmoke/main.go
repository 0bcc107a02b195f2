package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/crimson-sun/desmoke/internal/config"
	"github.com/crimson-sun/desmoke/internal/engine"
	"github.com/crimson-sun/desmoke/internal/engine/summary"
	"github.com/crimson-sun/desmoke/internal/logging"
	"github.com/crimson-sun/desmoke/internal/output/stdout"
	"github.com/crimson-sun/desmoke/internal/pipeline"
	"github.com/crimson-sun/desmoke/internal/source"
	"github.com/crimson-sun/desmoke/internal/tasks"
)

var (
	flagSummary  bool
	flagOnly     bool
	flagFiletype string
	flagColor    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "desmoke [file]",
	Short: "Prettify test-harness log output",
	Long: "Desmoke reformats integration-test harness and unit-test runner logs\n" +
		"into readable lines. It reads a file, or stdin when no file is given,\n" +
		"and can report a run summary at the end of the stream.",
	Args:         cobra.MaximumNArgs(1),
	RunE:         run,
	SilenceUsage: true,
}

var installCmd = &cobra.Command{
	Use:   "install [file]",
	Short: "Add desmoke tasks to VS Code's tasks.json",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInstall,
}

func init() {
	rootCmd.Flags().BoolVar(&flagSummary, "summary", false, "report a summary at the end of the output")
	rootCmd.Flags().BoolVar(&flagOnly, "only", false, "only emit desmoke's own lines, without forwarding the input")
	rootCmd.Flags().StringVar(&flagFiletype, "filetype", "", "force a log format (resmoke or cppunit) instead of guessing from the first line")
	rootCmd.Flags().StringVar(&flagColor, "color", "", "colorize the summary: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	rootCmd.MarkFlagsMutuallyExclusive("summary", "only")
	rootCmd.AddCommand(installCmd)
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var src source.Source
	if len(args) == 1 {
		src = source.NewFile(args[0])
	} else {
		src = source.NewReader(os.Stdin)
	}

	eng := engine.New(engine.ParseFormat(cfg.Format))
	out := stdout.New(os.Stdout, cfg.Only)

	p := pipeline.New(src, eng, out)
	defer p.Close()

	report, err := p.Stream(ctx)
	if err != nil {
		return err
	}

	if cfg.Summary {
		renderer := summary.NewRenderer(colorEnabled(cfg.Color))
		if err := out.WriteSummary(ctx, renderer.Render(report)); err != nil {
			return err
		}
	}
	return nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel))

	path := cfg.TasksFile
	if len(args) == 1 {
		path = args[0]
	}
	return tasks.Install(path, os.Stdin, os.Stdout)
}

// loadConfig layers changed flags over file and environment configuration.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = flagSummary
	}
	if cmd.Flags().Changed("only") {
		cfg.Only = flagOnly
	}
	if cmd.Flags().Changed("filetype") {
		cfg.Format = flagFiletype
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = flagColor
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
