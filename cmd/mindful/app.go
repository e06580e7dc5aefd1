package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/amonks/mindful/board"
	"github.com/amonks/mindful/internal/config"
	"github.com/amonks/mindful/internal/paths"
	"github.com/amonks/mindful/internal/state"
	internalstrings "github.com/amonks/mindful/internal/strings"
	"github.com/amonks/mindful/store"
	"github.com/amonks/mindful/task"
)

// settings is the resolved configuration shared by every command.
type settings struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend string
	dataDir string
}

// app bundles what a command needs to work on the board.
type app struct {
	settings
	store  store.Store
	board  *board.Board
	state  *state.Store
	key    string
	loaded state.BoardState
	policy task.CheckInPolicy
}

// loadSettings reads configuration, applies flag overrides, installs the
// logger and makes sure the data directory exists.
func loadSettings() (settings, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return settings{}, err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return settings{}, err
	}
	if rootDataDir != "" {
		cfg.Store.Dir = rootDataDir
	}
	if rootStore != "" {
		cfg.Store.Backend = rootStore
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return settings{}, err
	}
	slog.SetDefault(logger)

	dataDir, err := cfg.DataDir()
	if err != nil {
		return settings{}, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return settings{}, fmt.Errorf("create data dir: %w", err)
	}

	return settings{
		cfg:     cfg,
		logger:  logger,
		backend: internalstrings.NormalizeLowerTrimSpace(cfg.Store.Backend),
		dataDir: dataDir,
	}, nil
}

func (s settings) storeConfig() store.Config {
	return store.Config{Backend: s.backend, Dir: s.dataDir, Logger: s.logger}
}

// openApp loads configuration, opens the store, and restores the board
// with any start or check-in left pending by an earlier command.
func openApp(ctx context.Context) (*app, error) {
	set, err := loadSettings()
	if err != nil {
		return nil, err
	}

	st, err := store.Open(set.storeConfig())
	if err != nil {
		return nil, err
	}

	stateDir, err := paths.DefaultStateDir()
	if err != nil {
		st.Close()
		return nil, err
	}
	states := state.NewStore(stateDir)
	key := state.BoardKey(set.backend, set.dataDir)
	saved, err := states.Board(key)
	if err != nil {
		set.logger.Warn("load board state", "error", err)
		saved = state.BoardState{}
	}

	policy, err := checkInPolicy(set.cfg, saved.Completions)
	if err != nil {
		st.Close()
		return nil, err
	}

	b := board.Load(ctx, board.Options{
		Store:          st,
		Logger:         set.logger,
		Policy:         policy,
		PendingStart:   saved.PendingStart,
		PendingCheckIn: saved.PendingCheckIn,
	})

	return &app{
		settings: set,
		store:    st,
		board:    b,
		state:    states,
		key:      key,
		loaded:   saved,
		policy:   policy,
	}, nil
}

// Close records the pending prompts this command changed and releases the
// store. Prompts it left alone are not written back, so a command that ran
// meanwhile keeps its answer. State write failures are logged.
func (a *app) Close() error {
	var current state.BoardState
	if pending, ok := a.board.PendingStart(); ok {
		current.PendingStart = pending.ID
	}
	if checkIn, ok := a.board.PendingCheckIn(); ok {
		current.PendingCheckIn = checkIn
	}
	if every, ok := a.policy.(*task.EveryNthPolicy); ok {
		current.Completions = every.Count()
	} else {
		current.Completions = a.loaded.Completions
	}
	if err := a.state.MergeBoard(a.key, a.loaded, current); err != nil {
		a.logger.Warn("save board state", "error", err)
	}
	return a.store.Close()
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// checkInPolicy builds the configured policy. An every-N policy resumes
// from the completions counted by earlier commands.
func checkInPolicy(cfg *config.Config, completions int) (task.CheckInPolicy, error) {
	name := internalstrings.NormalizeLowerTrimSpace(cfg.CheckIn.Policy)
	probability := cfg.CheckIn.Probability
	if probability == 0 {
		probability = task.DefaultCheckInProbability
	}
	every := cfg.CheckIn.Every
	if every == 0 {
		every = defaultCheckInEvery
	}
	policy, err := task.PolicyByName(name, probability, every)
	if err != nil {
		return nil, err
	}
	if _, ok := policy.(*task.EveryNthPolicy); ok {
		return task.NewEveryNthPolicy(every, completions), nil
	}
	return policy, nil
}

const defaultCheckInEvery = 3

func (a *app) backlogLimit() int {
	if a.cfg.Display.BacklogLimit > 0 {
		return a.cfg.Display.BacklogLimit
	}
	return task.DefaultVisibleLimit
}

func (a *app) doneLimit() int {
	if a.cfg.Display.DoneLimit > 0 {
		return a.cfg.Display.DoneLimit
	}
	return task.DefaultVisibleLimit
}

// resolveID expands a unique ID prefix.
func (a *app) resolveID(prefix string) (string, error) {
	return a.board.Resolve(internalstrings.TrimSpace(prefix))
}
