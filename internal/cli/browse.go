package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/internal/tui"
	"github.com/utafrali/artfolio/pkg/logger"
)

func (c *cli) browseCommand() *cobra.Command {
	var refresh time.Duration
	cmd := &cobra.Command{
		Use:   "browse <username>",
		Short: "Open an artist's microsite in the terminal",
		Long: `Shows the artist's profile, gallery, more works and news. Press enter on
an artwork to open the lightbox; left/right move through the listing it was
opened from and esc closes it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := domain.NormalizeUsername(args[0])
			if username == "" {
				return errors.New("username must not be empty")
			}
			if cmd.Flags().Changed("refresh") {
				c.cfg.Refresh = refresh
			}
			// The UI owns the terminal.
			if c.cfg.LogFile == "" {
				c.logger = logger.NewText("artfolio-cli", c.cfg.LogLevel, io.Discard)
			}

			model := tui.New(c.client(), username, tui.WithRefresh(c.cfg.Refresh))
			if err := c.run(cmd.Context(), model); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", 0, "re-fetch interval, 0 to disable (env ARTFOLIO_REFRESH)")
	return cmd
}
