package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"teamboard/cmd/teamboard/output"
	"teamboard/internal/coordinator"
	"teamboard/internal/di"
	"teamboard/internal/infrastructure/config"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	// Global flags
	boardID      string
	outputFormat string
	configPath   string
	quiet        bool

	// Shared instances
	cfg       *config.Config
	container *di.ClientContainer
	printer   *output.Printer
	formatter *output.Formatter
)

// Commands annotated with noDaemon only need the configuration
const noDaemon = "no-daemon"

var multiSpaceRE = regexp.MustCompile(`\s{2,}`)
var idLikeRE = regexp.MustCompile(`^(card|list)-[0-9a-f-]+$`)

var rootCmd = &cobra.Command{
	Use:   "teamboard",
	Short: "Shared kanban boards in the terminal",
	Long: `teamboard is a kanban board client. Boards live in the teamboardd
daemon; every change shows up locally at once and is rolled back if the
daemon rejects it.

Examples:
  # Launch interactive TUI
  teamboard
  teamboard tui

  # List all boards
  teamboard board list

  # Create a card in the Todo list
  teamboard card create "Fix login bug" --list Todo --priority high

  # Move a card to the top of another list
  teamboard card move card-3f2a --to Doing --index 0`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		formatter = output.NewFormatter(format, os.Stdout)
		printer = output.DefaultPrinter()
		printer.SetQuiet(quiet || format != output.FormatText)

		if _, ok := cmd.Annotations[noDaemon]; ok {
			return nil
		}
		// The TUI owns the terminal, so its log goes to a file.
		if cmd.Name() == "tui" || !cmd.HasParent() {
			cfg.Logging.OutputPath = cfg.TUI.LogPath
		}

		container, err = di.InitializeClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize client: %w", err)
		}
		if err := container.Client.Ping(getContext()); err != nil {
			return fmt.Errorf("daemon not reachable at %s, start it with teamboardd: %w", container.Client.Target(), err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.NewPrinter(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&boardID, "board-id", "b", "", "Board to operate on (default: first board)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml, id")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			printVersion()
			return nil
		}
		if len(args) > 0 {
			return cmd.Help()
		}
		return tuiCmd.RunE(cmd, args)
	}
}

func loadConfig() (*config.Config, error) {
	var loader *config.Loader
	if configPath != "" {
		loader = config.LoadFrom(configPath)
	} else {
		var err error
		loader, err = config.NewLoader()
		if err != nil {
			return nil, fmt.Errorf("failed to create config loader: %w", err)
		}
	}
	c, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c, nil
}

func printVersion() {
	fmt.Printf("teamboard version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Built:      %s\n", BuildDate)
}

func getContext() context.Context {
	return context.Background()
}

// getBoardID returns the board to operate on: the --board-id flag, or the
// first board the daemon knows about.
func getBoardID(ctx context.Context) (string, error) {
	if boardID != "" {
		return boardID, nil
	}

	boards, err := container.Client.ListBoards(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list boards: %w", err)
	}
	if len(boards) == 0 {
		return "", fmt.Errorf("no boards found. Create a board first with: teamboard board create <name>")
	}
	return boards[0].ID, nil
}

// commit sends a locally applied mutation and waits for the daemon. A
// rejected change has already been rolled back when the error is returned.
func commit(ctx context.Context, p *coordinator.Pending, err error) (coordinator.Outcome, error) {
	if err != nil {
		return coordinator.Outcome{}, err
	}
	out := p.Await(ctx)
	if out.Failure != nil {
		return out, errors.New(out.Failure.Message)
	}
	return out, nil
}

func resolveArgs(args []string, expected int) ([]string, error) {
	if len(args) >= expected {
		return args, nil
	}

	pipedArgs, err := readPipedArgs(os.Stdin, expected)
	if err != nil {
		return nil, err
	}

	needed := expected - len(args)
	if len(pipedArgs) < needed {
		return nil, fmt.Errorf("accepts %d arg(s), received %d", expected, len(args)+len(pipedArgs))
	}

	resolved := append([]string{}, pipedArgs[:needed]...)
	return append(resolved, args...), nil
}

func readPipedArgs(in *os.File, expected int) ([]string, error) {
	stat, err := in.Stat()
	if err != nil {
		return nil, err
	}
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return nil, nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return extractArgsFromInput(data, expected), nil
}

// extractArgsFromInput picks the line of piped text that looks most like
// an argument list, e.g. a row of "teamboard card list" output.
func extractArgsFromInput(data []byte, expected int) []string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	bestScore := -1
	var best []string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens, score := parsePipedLine(line, expected)
		if len(tokens) < expected {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = tokens
		}
	}
	return best
}

func parsePipedLine(line string, expected int) ([]string, int) {
	if strings.Contains(line, "\t") {
		return strings.FieldsFunc(line, func(r rune) bool { return r == '\t' }), 3
	}
	if multiSpaceRE.MatchString(line) {
		return multiSpaceRE.Split(line, -1), 2
	}

	fields := strings.Fields(line)
	if expected == 1 && len(fields) > 1 {
		if idLikeRE.MatchString(fields[0]) {
			return []string{fields[0]}, 2
		}
		return []string{line}, 1
	}
	return fields, 1
}
