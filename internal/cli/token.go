package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/utafrali/artfolio/internal/auth"
)

func (c *cli) tokenCommand() *cobra.Command {
	var (
		subject string
		email   string
		name    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token",
		Long: `Signs an HS256 token with ARTFOLIO_JWT_SECRET for local development, where
no identity provider runs. The server must share the same secret, issuer and
audience.`,
		Example: `  export ARTFOLIO_TOKEN=$(artfolio token --subject auth0|dev --name "Dev Artist")`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var opts []auth.Option
			if c.cfg.JWTAudience != "" {
				opts = append(opts, auth.WithAudience(c.cfg.JWTAudience))
			}
			verifier := auth.NewVerifier(c.cfg.JWTSecret, c.cfg.JWTIssuer, opts...)

			token, err := verifier.Issue(subject, email, name, ttl)
			if err != nil {
				return err
			}
			c.logger.Debug("issued development token", "subject", subject, "ttl", ttl)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&subject, "subject", "", "artist id (token subject)")
	f.StringVar(&email, "email", "", "email claim")
	f.StringVar(&name, "name", "", "name claim")
	f.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
