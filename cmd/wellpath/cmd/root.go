package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jcarver/wellpath/client"
	"github.com/jcarver/wellpath/config"
	"github.com/jcarver/wellpath/session"
	bboltstore "github.com/jcarver/wellpath/store/bbolt"
)

// Version is stamped by the release build.
var Version = "0.9.0-dev"

var (
	apiURL  string
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "wellpath",
	Short: "WellPath is a health program participant tracker",
	Long: `A client for the WellPath participant tracking service: look up
participants, review their visit and measurement history, and run
researcher queries from the terminal.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides WELLPATH_API_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for the session store (overrides WELLPATH_DATA_DIR)")
}

// appConfig merges environment configuration with command-line overrides.
func appConfig() (config.App, error) {
	var cfg config.App
	if err := config.Load(&cfg); err != nil {
		return config.App{}, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.App{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".wellpath")
	}
	return cfg, nil
}

func newLogger(cfg config.App) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		}
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// env bundles what every command needs: configuration, logging, the
// session manager over the on-disk store, and an API client wired to it.
type env struct {
	cfg     config.App
	logger  *slog.Logger
	client  *client.Client
	manager *session.Manager
	close   func()
}

// newEnv opens the session store and restores any persisted session.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := appConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	passphrase := cfg.StorePassphrase
	if passphrase == "" {
		passphrase, err = promptLine(cmd, "Store passphrase: ")
		if err != nil {
			return nil, err
		}
	}

	st, err := bboltstore.Open(filepath.Join(cfg.DataDir, "session.db"), passphrase, nil)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	// Manager and client reference each other: the client signs requests
	// with the manager's key, and the manager tells the server about
	// logouts through the client. NotifierFunc breaks the cycle.
	var c *client.Client
	manager := session.NewManager(st,
		session.WithLogger(logger),
		session.WithLogoutNotifier(session.NotifierFunc(func(ctx context.Context) error {
			return c.NotifyLogout(ctx)
		})),
	)
	c = client.New(cfg.APIURL,
		client.WithLogger(logger),
		client.WithTokenSource(manager),
	)

	e := &env{
		cfg:     cfg,
		logger:  logger,
		client:  c,
		manager: manager,
		close:   func() { st.Close() },
	}

	if _, err := e.manager.Restore(cmd.Context()); err != nil {
		st.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}
	return e, nil
}

// newAuthedEnv is newEnv plus a check that a live session exists.
func newAuthedEnv(cmd *cobra.Command) (*env, error) {
	e, err := newEnv(cmd)
	if err != nil {
		return nil, err
	}
	if !e.manager.IsValid() {
		e.close()
		return nil, fmt.Errorf("not logged in (run \"wellpath login\" first)")
	}
	return e, nil
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// printJSON renders a value as indented JSON on the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
