package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sonatafm/podium/internal/server"
	"github.com/sonatafm/podium/internal/shared"
	"github.com/urfave/cli/v3"
)

const loginTimeout = 5 * time.Minute

// AuthLogin runs the OAuth flow: it starts the local callback server, opens
// the provider's consent page in a browser and persists the exchanged token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	state := shared.GenerateID()
	addr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)

	srv := server.NewCallbackServer(addr, r.session.OAuthConfig(), state, r.logger)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := r.session.AuthURL(state)
	r.logger.Info("waiting for login", "callback", srv.Addr())
	r.writePlain("Opening browser for login...\n")
	r.writePlain("If nothing happens, open this URL yourself:\n\n  %s\n\n", authURL)

	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser", "error", err)
	}

	select {
	case result := <-srv.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
		}
		if err := r.session.SaveToken(result.Token); err != nil {
			return err
		}
	case <-time.After(loginTimeout):
		return fmt.Errorf("%w: no login completed within %s", shared.ErrTimeout, loginTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	user, err := r.session.CurrentUser(ctx)
	if err != nil {
		r.logger.Warn("logged in but failed to resolve account", "error", err)
		return r.writePlain("✓ Logged in\n")
	}

	return r.writePlain("✓ Logged in as %s (%s)\n", user.DisplayName(), user.Role)
}

// AuthStatus reports whether a session exists and who it belongs to.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if !r.session.Authenticated() {
		return r.writePlain("✗ Not logged in\nRun 'podium auth login' to authenticate.\n")
	}

	if err := r.session.EnsureFresh(ctx); err != nil {
		r.logger.Warn("token refresh failed", "error", err)
	}

	r.writePlain("✓ Session found\n")

	if expiry, err := r.session.TokenExpiry(); err == nil {
		r.writePlain("Token expires: %s\n", expiry.Local().Format(time.RFC1123))
	}

	user, err := r.session.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("%w: session token rejected by the platform", shared.ErrNotAuthenticated)
	}

	r.writePlain("Account: %s (%s)\n", user.DisplayName(), user.Role)
	return nil
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	if err := r.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	r.logger.Info("session cleared")
	return r.writePlain("✓ Logged out\n")
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in to the platform with OAuth",
				Action: r.AuthLogin,
			},
			{
				Name:    "status",
				Aliases: []string{"whoami"},
				Usage:   "Check current authentication state",
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Clear the stored session",
				Action: r.AuthLogout,
			},
		},
	}
}
