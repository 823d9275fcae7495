package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utafrali/artfolio/pkg/pagination"
)

func (c *cli) newsCommand() *cobra.Command {
	var params pagination.Params
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show the latest published news across all artists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.client().News(cmd.Context(), params)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(result.Data) == 0 {
				fmt.Fprintln(w, mutedStyle.Render("No news yet."))
				return nil
			}
			for _, item := range result.Data {
				date := ""
				if item.PublishedAt != nil {
					date = item.PublishedAt.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s  %s  %s\n", mutedStyle.Render(date), headerStyle.Render(item.Title), mutedStyle.Render("@"+item.Author.Username))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.PerPage, "per-page", pagination.DefaultPerPage, "posts per page")
	return cmd
}
