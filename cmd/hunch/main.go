package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"hunch/internal/answer"
	"hunch/internal/history"
	"hunch/internal/profile"
	"hunch/internal/runner"
	"hunch/internal/simulate"
	"hunch/internal/ui"
	"hunch/internal/workspace"
)

var (
	flagProfilePath string
	flagDebug       bool
)

func main() {
	root := newRootCmd()
	root.SilenceUsage = true
	root.SilenceErrors = false
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hunch",
		Short: "A weighted decision oracle for the terminal",
		Long:  "hunch answers questions by drawing a weighted random answer from a fixed set.",
	}

	cmd.PersistentFlags().StringVar(&flagProfilePath, "profile", "", "path to hunch.yaml (defaults to repo root if present)")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable structured debug logging")

	cmd.AddCommand(askCmd())
	cmd.AddCommand(answersCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(doctorCmd())

	return cmd
}

func newLogger() *zap.Logger {
	if !flagDebug {
		return zap.NewNop()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func askCmd() *cobra.Command {
	var (
		flagSeed      int64
		flagCount     int
		flagNoHistory bool
	)
	c := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the oracle a question",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer logger.Sync()

			opts := runner.RunOptions{
				ProfilePath: flagProfilePath,
				Seed:        flagSeed,
				Count:       flagCount,
				NoHistory:   flagNoHistory,
				Logger:      logger,
			}

			if len(args) > 0 {
				return runner.Run(strings.Join(args, " "), opts)
			}

			// Interactive: prompt for the question, offer another round.
			for {
				question := ui.ReadQuestion("What do you ask the oracle")
				if err := runner.Run(question, opts); err != nil {
					return err
				}
				if !ui.Confirm("Ask another question?") {
					return nil
				}
			}
		},
	}
	c.Flags().Int64Var(&flagSeed, "seed", 0, "pin the randomness source (overrides the profile seed)")
	c.Flags().IntVar(&flagCount, "count", 1, "number of draws")
	c.Flags().BoolVar(&flagNoHistory, "no-history", false, "skip the history log")
	return c
}

func answersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answers",
		Short: "List the answer set",
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := runner.Resolve(flagProfilePath, 0, newLogger())
			if err != nil {
				return err
			}
			mass := setup.Oracle.Table().Mass()
			for _, a := range answer.Values() {
				line := fmt.Sprintf("%-6s %-12s %s", a, a.Leaning(), a.Gloss())
				if mass[a] == 0 {
					line += " (unreachable)"
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	var (
		flagDraws int
		flagSeed  int64
	)
	c := &cobra.Command{
		Use:   "stats",
		Short: "Simulate draws and compare observed frequencies with expected mass",
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := runner.Resolve(flagProfilePath, flagSeed, newLogger())
			if err != nil {
				return err
			}
			res, err := simulate.Run(setup.Oracle, flagDraws)
			if err != nil {
				return err
			}
			fmt.Printf("%d draws against %s\n", res.Draws, setup.Source)
			fmt.Printf("%-6s %9s %9s %9s\n", "answer", "expected", "observed", "count")
			for _, row := range res.Rows {
				fmt.Printf("%-6s %8.2f%% %8.2f%% %9d\n", row.Answer, row.Expected, row.Observed, row.Count)
			}
			return nil
		},
	}
	c.Flags().IntVar(&flagDraws, "draws", 100000, "number of draws to simulate")
	c.Flags().Int64Var(&flagSeed, "seed", 0, "pin the randomness source")
	return c
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default hunch.yaml in the repo root",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.Detect()
			if err != nil {
				return err
			}
			target := filepath.Join(ws.Root, workspace.ProfileName)
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists at %s", workspace.ProfileName, target)
			}
			if err := os.WriteFile(target, []byte(profile.DefaultYAML()), 0o644); err != nil {
				return err
			}
			fmt.Println("Created", target)
			return nil
		},
	}
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile show",
		Short: "Print the effective profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := runner.Resolve(flagProfilePath, 0, newLogger())
			if err != nil {
				return err
			}
			yamlStr, err := setup.Profile.ToYAML()
			if err != nil {
				return err
			}
			fmt.Print(yamlStr)
			return nil
		},
	}
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect prior asks",
	}
	cmd.AddCommand(historyExplainCmd())
	cmd.AddCommand(historyTailCmd())
	return cmd
}

func openHistory() (*history.Log, error) {
	ws, err := workspace.Detect()
	if err != nil {
		return nil, err
	}
	root := ""
	if ws.InRepo {
		root = ws.Root
	}
	return history.New(root)
}

func historyExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <id>",
		Short: "Explain a prior ask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := openHistory()
			if err != nil {
				return err
			}
			e, err := log.Find(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Answer: %s (%s)\n", e.Answer, e.Answer.Gloss())
			fmt.Printf("Draw: %.4f\n", e.Draw)
			if e.Question != "" {
				fmt.Printf("Question: %s\n", e.Question)
			}
			fmt.Printf("Asked: %s\n", e.Timestamp.Format("2006-01-02 15:04:05 MST"))
			fmt.Printf("Profile: %s\n", e.Profile)
			if e.Seed != 0 {
				fmt.Printf("Seed: %d\n", e.Seed)
			}
			return nil
		},
	}
}

func historyTailCmd() *cobra.Command {
	var flagN int
	c := &cobra.Command{
		Use:   "tail",
		Short: "Show the most recent asks",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := openHistory()
			if err != nil {
				return err
			}
			entries, err := log.Tail(flagN)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			for _, e := range entries {
				q := e.Question
				if q == "" {
					q = "(no question)"
				}
				fmt.Printf("%s  %-6s %s\n", e.ID, e.Answer, q)
			}
			return nil
		},
	}
	c.Flags().IntVar(&flagN, "n", 10, "number of entries to show")
	return c
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate environment readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			setup, err := runner.Resolve(flagProfilePath, 0, newLogger())
			if err != nil {
				return err
			}
			fmt.Println("hunch doctor")
			fmt.Println("cwd:", setup.Workspace.Cwd)
			if setup.Workspace.InRepo {
				fmt.Println("repo root:", setup.Workspace.Root)
			} else {
				fmt.Println("repo root: none (using cwd)")
			}
			fmt.Println("profile:", setup.Source)
			log, err := openHistory()
			if err != nil {
				fmt.Println("history: unavailable:", err)
			} else {
				fmt.Println("history:", log.Path())
			}
			if unreachable := setup.Oracle.Table().Unreachable(); len(unreachable) > 0 {
				names := make([]string, 0, len(unreachable))
				for _, a := range unreachable {
					names = append(names, a.String())
				}
				fmt.Printf("note: no band maps to %s\n", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
