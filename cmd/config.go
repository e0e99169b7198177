package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/progress"
	"github.com/abhisek/tutor/internal/question"
	"github.com/abhisek/tutor/internal/store"
)

const (
	defaultBankPath = "data/questions.json"
	defaultUser     = "Student"
)

// loadDotEnv reads .env from the working directory into the process
// environment. Variables already set win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("error reading .env", "error", err)
	}
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// setupLanguage loads the message catalog and stores a localizer for the
// configured language in the command context.
func setupLanguage(cmd *cobra.Command) error {
	lang := viperForCmd(cmd).GetString("lang")
	if err := i18n.Init(lang); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(i18n.WithLang(ctx, lang))
	return nil
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("TUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("tutor")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tutor")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// resolveDBPath returns the database path using --db (or TUTOR_DB through
// viper), then the default XDG path.
func resolveDBPath(v *viper.Viper) (string, error) {
	if p := v.GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// env is everything a command needs to talk to the domain packages.
type env struct {
	ctx     context.Context
	v       *viper.Viper
	user    string
	bank    []question.Question
	store   *store.Store
	tracker *progress.Tracker
}

// openEnv loads the bank and opens the stores. Callers must Close it.
func openEnv(cmd *cobra.Command) (*env, error) {
	v := viperForCmd(cmd)

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var attempts store.AttemptRepo
	switch backend := strings.ToLower(v.GetString("progress-backend")); backend {
	case "", "sqlite":
		attempts = st.AttemptRepo()
	case "json":
		path := v.GetString("progress-file")
		if path == "" {
			path = filepath.Join(filepath.Dir(dbPath), "progress.json")
		}
		doc, err := store.OpenDocument(path)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("open progress document: %w", err)
		}
		attempts = doc
	default:
		st.Close()
		return nil, fmt.Errorf("unknown progress backend %q (want sqlite or json)", backend)
	}

	user := strings.TrimSpace(v.GetString("user"))
	if user == "" {
		user = defaultUser
	}

	return &env{
		ctx:     cmd.Context(),
		v:       v,
		user:    user,
		bank:    loadBank(v.GetString("bank")),
		store:   st,
		tracker: progress.NewTracker(attempts),
	}, nil
}

// loadBank reads the bank at path. The default path falls back to the
// built-in sample bank when no such file exists.
func loadBank(path string) []question.Question {
	if path == defaultBankPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			slog.Debug("no question bank file, using the built-in sample", "path", path)
			return question.Sample()
		}
	}
	return question.Load(path)
}

func (e *env) Close() error {
	return e.store.Close()
}
