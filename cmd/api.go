package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sonatafm/podium/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request against the platform API.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	pretty := cmd.Bool("pretty")

	r.logger.Info("GET request", "path", path)

	var data any
	if err := r.api.Get(ctx, path, &data); err != nil {
		return err
	}

	return r.writeJSON(data, pretty)
}

// APIPost makes a direct POST request with a JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	var payload any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("POST request", "path", path)

	var result any
	if err := r.api.Post(ctx, path, payload, &result); err != nil {
		return err
	}

	return r.writeJSON(result, true)
}

// apiCommand handles direct API calls for debugging
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls against the platform",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET, prints raw JSON",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output", Value: true},
				},
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: []cli.Argument{&cli.StringArg{Name: "path"}},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "JSON body to send", Required: true},
				},
				Action: r.APIPost,
			},
		},
	}
}
