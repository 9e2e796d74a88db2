package main

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/spf13/cobra"

	"ocean-predict/internal/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	Long:  "Signs an HS256 access token with JWT_SECRET so the API can be called locally.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var (
	tokenUser   string
	tokenEmail  string
	tokenSecret string
	tokenTTL    time.Duration
)

// tokenEnv lee los mismos nombres que config.Config sin exigir DATABASE_URL.
type tokenEnv struct {
	Secret   string `env:"JWT_SECRET"`
	Issuer   string `env:"JWT_ISSUER"`
	Audience string `env:"JWT_AUDIENCE"`
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "Subject user ID (required)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim")
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "Signing secret (defaults to JWT_SECRET)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")

	if err := tokenCmd.MarkFlagRequired("user"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(tokenCmd)
}

type tokenOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func runToken(cmd *cobra.Command, _ []string) error {
	var cfg tokenEnv
	if err := env.Parse(&cfg); err != nil {
		return err
	}
	if tokenSecret != "" {
		cfg.Secret = tokenSecret
	}
	out, err := issueToken(cfg, tokenUser, tokenEmail, tokenTTL, time.Now().UTC())
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func issueToken(cfg tokenEnv, user, email string, ttl time.Duration, now time.Time) (tokenOutput, error) {
	if cfg.Secret == "" {
		return tokenOutput{}, errors.New("no signing secret: pass --secret or set JWT_SECRET")
	}
	jwtSvc := service.NewJWTService(cfg.Secret, cfg.Issuer, cfg.Audience, ttl)
	token, err := jwtSvc.IssueAccessToken(user, email)
	if err != nil {
		return tokenOutput{}, err
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return tokenOutput{AccessToken: token, ExpiresAt: now.Add(ttl).Truncate(time.Second)}, nil
}
