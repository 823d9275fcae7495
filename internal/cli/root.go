// Package cli is the artfolio terminal client: directory search, the news
// feed, a microsite browser and a development token helper.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/utafrali/artfolio/internal/client"
	pkgconfig "github.com/utafrali/artfolio/pkg/config"
	"github.com/utafrali/artfolio/pkg/logger"
)

const envPrefix = "ARTFOLIO_"

// Config is read from ARTFOLIO_* variables; flags win when set.
type Config struct {
	APIURL   string        `env:"API_URL" envDefault:"http://localhost:8080"`
	Token    string        `env:"TOKEN"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile  string        `env:"LOG_FILE"`
	Refresh  time.Duration `env:"REFRESH" envDefault:"30s"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"artfolio-dev-secret"`
	JWTIssuer   string `env:"JWT_ISSUER"`
	JWTAudience string `env:"JWT_AUDIENCE"`
}

type programRunner func(ctx context.Context, m tea.Model) error

type cli struct {
	cfg     Config
	flags   Config
	logger  *slog.Logger
	logFile *os.File
	run     programRunner
}

// NewRootCommand builds the artfolio command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&cli{run: runProgram})
}

func newRootCommand(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "artfolio",
		Short: "Browse artist portfolios from the terminal",
		Long: `artfolio talks to the public artfolio API.

Settings come from ARTFOLIO_* environment variables (ARTFOLIO_API_URL,
ARTFOLIO_TOKEN, ARTFOLIO_LOG_LEVEL, ...) and are overridden by flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) { c.teardown() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.APIURL, "api", "", "API base URL (env ARTFOLIO_API_URL)")
	pf.StringVar(&c.flags.Token, "token", "", "bearer token (env ARTFOLIO_TOKEN)")
	pf.StringVar(&c.flags.LogLevel, "log-level", "", "debug, info, warn or error (env ARTFOLIO_LOG_LEVEL)")
	pf.StringVar(&c.flags.LogFile, "log-file", "", "write logs to this file (env ARTFOLIO_LOG_FILE)")

	root.AddCommand(
		c.artistsCommand(),
		c.newsCommand(),
		c.browseCommand(),
		c.tokenCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := pkgconfig.LoadWithPrefix(&c.cfg, envPrefix); err != nil {
		return err
	}
	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("api", &c.cfg.APIURL, c.flags.APIURL)
	override("token", &c.cfg.Token, c.flags.Token)
	override("log-level", &c.cfg.LogLevel, c.flags.LogLevel)
	override("log-file", &c.cfg.LogFile, c.flags.LogFile)

	// Stdout belongs to the output (or the UI), so logs go to stderr or a file.
	var w io.Writer = cmd.ErrOrStderr()
	if c.cfg.LogFile != "" {
		f, err := os.OpenFile(c.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		c.logFile = f
		w = f
	}
	c.logger = logger.NewText("artfolio-cli", c.cfg.LogLevel, w)
	return nil
}

func (c *cli) teardown() {
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

func (c *cli) client() *client.Client {
	var opts []client.Option
	if c.cfg.Token != "" {
		opts = append(opts, client.WithToken(c.cfg.Token))
	}
	return client.NewDefault(c.cfg.APIURL, c.logger, opts...)
}

func runProgram(ctx context.Context, m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}
