package main

import (
	"context"

	"github.com/sonatafm/podium/internal/formatter"
	"github.com/sonatafm/podium/internal/models"
	"github.com/urfave/cli/v3"
)

// SubsList lists subscriptions with an optional status filter.
func (r *Runner) SubsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	filter := listFilter(cmd)
	filter.Status = cmd.String("status")

	page, err := r.catalog.ListSubscriptions(ctx, filter)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.SubscriptionTable(page.Results))
	r.writePlain("\n%d of %d subscriptions\n", len(page.Results), page.Count)
	return nil
}

// SubsCancel cancels an active subscription.
func (r *Runner) SubsCancel(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	sub, err := r.catalog.CancelSubscription(ctx, cmd.StringArg("id"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Subscription cancelled: %s (user %s)\n", sub.SubscriptionID, sub.UserID)
	return nil
}

// PlansList lists subscription plans.
func (r *Runner) PlansList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	page, err := r.catalog.ListPlans(ctx, listFilter(cmd))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	r.writePlain("%s", formatter.PlanTable(page.Results))
	r.writePlain("\n%d of %d plans\n", len(page.Results), page.Count)
	return nil
}

// planUpload builds a plan payload from the create and update flags.
func planUpload(cmd *cli.Command) models.PlanUpload {
	return models.PlanUpload{
		Name:         cmd.String("name"),
		Price:        cmd.Float("price"),
		Currency:     cmd.String("currency"),
		DurationDays: int(cmd.Int("days")),
		AdsFree:      cmd.Bool("ads-free"),
		HighQuality:  cmd.Bool("high-quality"),
		Offline:      cmd.Bool("offline"),
		IsActive:     !cmd.Bool("inactive"),
	}
}

// PlansCreate creates a subscription plan.
func (r *Runner) PlansCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	plan, err := r.catalog.CreatePlan(ctx, planUpload(cmd))
	if err != nil {
		return err
	}

	r.writePlain("✓ Plan created: %s (%s)\n", plan.Name, plan.PlanID)
	return nil
}

// PlansUpdate updates a subscription plan.
func (r *Runner) PlansUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	plan, err := r.catalog.UpdatePlan(ctx, cmd.StringArg("id"), planUpload(cmd))
	if err != nil {
		return err
	}

	r.writePlain("✓ Plan updated: %s\n", plan.Name)
	return nil
}

// PlansDelete removes a subscription plan.
func (r *Runner) PlansDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if err := r.catalog.DeletePlan(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Plan deleted: %s\n", id)
	return nil
}

// planFlags returns the flags shared by plan create and update.
func planFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Plan name", Required: true},
		&cli.FloatFlag{Name: "price", Usage: "Plan price", Required: true},
		&cli.StringFlag{Name: "currency", Usage: "Price currency", Value: "USD"},
		&cli.IntFlag{Name: "days", Usage: "Plan duration in days", Value: 30},
		&cli.BoolFlag{Name: "ads-free", Usage: "Ad-free listening"},
		&cli.BoolFlag{Name: "high-quality", Usage: "High quality audio"},
		&cli.BoolFlag{Name: "offline", Usage: "Offline playback"},
		&cli.BoolFlag{Name: "inactive", Usage: "Create in inactive state"},
	}
}

// subsCommand handles subscription and plan operations
func subsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "subs",
		Aliases: []string{"subscriptions"},
		Usage:   "Subscription and plan operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List subscriptions",
				Flags: append(listFlags(),
					&cli.StringFlag{Name: "status", Usage: "Filter by status (active, cancelled, expired)"},
				),
				Action: r.SubsList,
			},
			{
				Name:      "cancel",
				Usage:     "Cancel a subscription",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.SubsCancel,
			},
			{
				Name:  "plans",
				Usage: "Plan operations",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List subscription plans",
						Flags:  listFlags(),
						Action: r.PlansList,
					},
					{
						Name:   "create",
						Usage:  "Create a plan",
						Flags:  planFlags(),
						Action: r.PlansCreate,
					},
					{
						Name:      "update",
						Usage:     "Update a plan",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Flags:     planFlags(),
						Action:    r.PlansUpdate,
					},
					{
						Name:      "delete",
						Usage:     "Delete a plan",
						Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
						Action:    r.PlansDelete,
					},
				},
			},
		},
	}
}
