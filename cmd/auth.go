package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/plexiform/gdocs-cli/internal/auth"
)

func init() {
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

var authCmd = &cobra.Command{
	Use:   "auth [code]",
	Short: "Authorize access to Google APIs",
	Long: `Without arguments, prints the consent URL to open in a browser.
With an authorization code, exchanges it for tokens and stores them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return emitError("auth", err)
		}
		paths, err := credentialPaths(cfg)
		if err != nil {
			return emitError("auth", err)
		}
		clientCfg, err := auth.LoadClientConfig(paths.Credentials)
		if err != nil {
			return emitError("auth", err)
		}

		if len(args) == 0 {
			authURL, err := auth.BuildAuthURL(clientCfg, auth.SharedScopes)
			if err != nil {
				return emitError("auth", err)
			}
			return emitResult(map[string]any{
				"status":    "success",
				"operation": "auth",
				"auth_url":  authURL,
				"instructions": "Open auth_url in a browser, approve access, " +
					"then run: gdocs auth <code>",
			})
		}

		// A prior token's refresh_token survives re-auth if Google omits a
		// new one from the response.
		existingRefresh := ""
		if tok, err := auth.LoadToken(paths.Token); err == nil {
			existingRefresh = tok.RefreshToken
		}

		tok, err := auth.CompleteAuthorization(context.Background(), clientCfg, args[0], existingRefresh)
		if err != nil {
			return emitError("auth", err)
		}
		if err := auth.SaveToken(paths.Token, tok); err != nil {
			return emitError("auth", err)
		}
		return emitResult(map[string]any{
			"status":     "success",
			"operation":  "auth",
			"token_path": paths.Token,
			"scopes":     []string(tok.Scope),
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored token's state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return emitError("auth_status", err)
		}
		paths, err := credentialPaths(cfg)
		if err != nil {
			return emitError("auth_status", err)
		}

		tok, err := auth.LoadToken(paths.Token)
		if err != nil {
			return emitResult(map[string]any{
				"status":     "success",
				"operation":  "auth_status",
				"authorized": false,
				"token_path": paths.Token,
			})
		}

		return emitResult(map[string]any{
			"status":      "success",
			"operation":   "auth_status",
			"authorized":  true,
			"token_path":  paths.Token,
			"expired":     tok.Expired(time.Now()),
			"expires_at":  time.UnixMilli(tok.ExpirationTimeMillis).UTC().Format(time.RFC3339),
			"has_refresh": tok.RefreshToken != "",
			"scopes":      []string(tok.Scope),
		})
	},
}
