package runner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hunch/internal/history"
	"hunch/internal/oracle"
	"hunch/internal/profile"
	"hunch/internal/workspace"
)

// RunOptions controls ask behaviour.
type RunOptions struct {
	ProfilePath string
	Seed        int64
	Count       int
	NoHistory   bool
	Logger      *zap.Logger
}

// Setup carries everything resolved before asking.
type Setup struct {
	Workspace workspace.Info
	Profile   profile.Profile
	Source    string
	Oracle    *oracle.Oracle
	Seed      int64
}

// Resolve detects the workspace, loads the effective profile, and builds
// the oracle. seedOverride takes precedence over the profile seed; zero
// means an unpinned time-based source.
func Resolve(profilePath string, seedOverride int64, logger *zap.Logger) (Setup, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ws, err := workspace.Detect()
	if err != nil {
		return Setup{}, err
	}

	path := profilePath
	if path == "" {
		path = ws.ProfilePath()
	} else {
		resolved, err := workspace.ResolvePath(ws.Cwd, path)
		if err != nil {
			return Setup{}, fmt.Errorf("resolve profile path: %w", err)
		}
		path = resolved
	}

	prof, err := profile.Load(path)
	if err != nil {
		return Setup{}, err
	}

	source := path
	if source == "" {
		source = "embedded default"
	}
	logger.Debug("profile resolved", zap.String("source", source), zap.Int64("seed", prof.Seed))

	seed := prof.Seed
	if seedOverride != 0 {
		seed = seedOverride
	}

	opts := []oracle.Option{}
	if seed != 0 {
		opts = append(opts, oracle.WithSeed(seed))
	}
	orc, err := oracle.New(prof.Table(), opts...)
	if err != nil {
		return Setup{}, err
	}

	return Setup{Workspace: ws, Profile: prof, Source: source, Oracle: orc, Seed: seed}, nil
}

// Run asks the oracle and records the asks in the history log.
func Run(question string, opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	setup, err := Resolve(opts.ProfilePath, opts.Seed, logger)
	if err != nil {
		return err
	}

	var log *history.Log
	recording := !opts.NoHistory && !setup.Profile.Options.NoHistory
	if recording {
		root := ""
		if setup.Workspace.InRepo {
			root = setup.Workspace.Root
		}
		log, err = history.New(root)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		logger.Debug("history open", zap.String("path", log.Path()))
	}

	count := opts.Count
	if count <= 0 {
		count = 1
	}

	for i := 0; i < count; i++ {
		res := setup.Oracle.Ask()
		logger.Debug("draw",
			zap.Float64("value", res.Draw),
			zap.String("answer", res.Answer.String()))
		fmt.Printf("%s (%s)\n", res.Answer, res.Answer.Gloss())

		if log != nil {
			entry := history.Entry{
				ID:        uuid.New().String(),
				Timestamp: time.Now().UTC(),
				Question:  question,
				Draw:      res.Draw,
				Answer:    res.Answer,
				Profile:   setup.Source,
				Seed:      setup.Seed,
			}
			if err := log.Record(entry); err != nil {
				return fmt.Errorf("record history: %w", err)
			}
		}
	}
	return nil
}
