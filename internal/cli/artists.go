package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/utafrali/artfolio/internal/domain"
	"github.com/utafrali/artfolio/pkg/pagination"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameCol     = lipgloss.NewStyle().Width(28)
	userCol     = lipgloss.NewStyle().Width(20)
	placeCol    = lipgloss.NewStyle().Width(20)
)

func (c *cli) artistsCommand() *cobra.Command {
	var (
		query   domain.DirectoryQuery
		page    int
		perPage int
	)
	cmd := &cobra.Command{
		Use:   "artists",
		Short: "Search the artist directory",
		Example: `  artfolio artists
  artfolio artists --location berlin --style ink`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := pagination.Params{Page: page, PerPage: perPage}
			result, err := c.client().Artists(cmd.Context(), query, params)
			if err != nil {
				return err
			}
			printArtists(cmd.OutOrStdout(), result)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&query.Q, "q", "q", "", "match name or username")
	f.StringVar(&query.Location, "location", "", "filter by location")
	f.StringVar(&query.Style, "style", "", "filter by style")
	f.IntVar(&page, "page", 1, "page number")
	f.IntVar(&perPage, "per-page", pagination.DefaultPerPage, "results per page")
	return cmd
}

func printArtists(w io.Writer, result pagination.Result[domain.ArtistSummary]) {
	if len(result.Data) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No artists found."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(row("NAME", "USERNAME", "LOCATION", "STYLE")))
	for _, a := range result.Data {
		fmt.Fprintln(w, row(a.DisplayName(), "@"+a.Username, a.Location, a.Style))
	}
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("page %d of %d, %d artists", result.Page, max(1, result.TotalPages), result.TotalCount)))
}

func row(name, username, location, style string) string {
	return strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top,
		nameCol.Render(name),
		userCol.Render(username),
		placeCol.Render(location),
		style,
	), " ")
}
