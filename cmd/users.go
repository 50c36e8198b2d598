package main

import (
	"context"

	"github.com/sonatafm/podium/internal/formatter"
	"github.com/urfave/cli/v3"
)

// UsersList lists platform accounts with optional role and search filters.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Role = cmd.String("role")

	page, err := r.catalog.ListUsers(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.UserTable(page.Results))
	r.writePlain("\n%d of %d users\n", len(page.Results), page.Count)
	return nil
}

// UsersGet shows a single account.
func (r *Runner) UsersGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	user, err := r.catalog.GetUser(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	return r.writeJSON(user, true)
}

// UsersSetActive toggles an account's active state.
func (r *Runner) UsersSetActive(ctx context.Context, cmd *cli.Command, active bool) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	user, err := r.catalog.SetUserActive(ctx, cmd.StringArg("id"), active)
	if err != nil {
		return err
	}

	verb := "activated"
	if !active {
		verb = "deactivated"
	}
	r.writePlain("✓ User %s: %s\n", verb, user.DisplayName())
	return nil
}

// UsersDelete removes an account.
func (r *Runner) UsersDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeleteUser(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ User deleted: %s\n", id)
	return nil
}

// ArtistsList lists artist profiles.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	page, err := r.catalog.ListArtists(ctx, listFilter(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.ArtistTable(page.Results))
	r.writePlain("\n%d of %d artists\n", len(page.Results), page.Count)
	return nil
}

// ArtistsVerify marks an artist profile as verified.
func (r *Runner) ArtistsVerify(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	artist, err := r.catalog.VerifyArtist(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Artist verified: %s\n", artist.StageName)
	return nil
}

// usersCommand handles account and artist operations
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"user"},
		Usage:   "Account and artist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List platform accounts",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "role", Usage: "Filter by role (user, artist, admin)"},
				),
				Action: r.UsersList,
			},
			{
				Name:      "get",
				Usage:     "Show a single account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.UsersGet,
			},
			{
				Name:      "activate",
				Usage:     "Reactivate an account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.UsersSetActive(ctx, cmd, true)
				},
			},
			{
				Name:      "deactivate",
				Usage:     "Deactivate an account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.UsersSetActive(ctx, cmd, false)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an account",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.UsersDelete,
			},
			{
				Name:  "artists",
				Usage: "Artist profile operations",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List artist profiles",
						Flags:  listFlags(),
						Action: r.ArtistsList,
					},
					{
						Name:      "verify",
						Usage:     "Verify an artist profile",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Action:    r.ArtistsVerify,
					},
				},
			},
		},
	}
}
