package resources

import (
	"context"

	"github.com/sonatafm/podium/internal/models"
	"github.com/sonatafm/podium/internal/query"
)

// ListSubscriptions returns a page of subscriptions, filterable by Status.
func (c *Catalog) ListSubscriptions(ctx context.Context, f Filter) (*models.Page[models.Subscription], error) {
	return list[models.Subscription](ctx, c, query.ResourceSubscriptions, pathSubscriptions, f)
}

// GetSubscription returns a single subscription.
func (c *Catalog) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	return get[models.Subscription](ctx, c, query.ResourceSubscriptions, pathSubscriptions, id)
}

// CancelSubscription cancels an active subscription. The users family is a
// dependent of subscriptions, so account screens reread after this settles.
func (c *Catalog) CancelSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	return query.MutateItem(ctx, c.mutator, query.ResourceSubscriptions, "Cancelling subscription",
		func(s *models.Subscription) string { return s.SubscriptionID },
		func(ctx context.Context) (*models.Subscription, error) {
			var sub models.Subscription
			path := itemPath(pathSubscriptions, id) + "cancel/"
			if err := c.api.Post(ctx, path, nil, &sub); err != nil {
				return nil, err
			}
			return &sub, nil
		})
}

// ListPlans returns the subscription plans on offer.
func (c *Catalog) ListPlans(ctx context.Context, f Filter) (*models.Page[models.SubscriptionPlan], error) {
	return list[models.SubscriptionPlan](ctx, c, query.ResourcePlans, pathPlans, f)
}

// GetPlan returns a single plan.
func (c *Catalog) GetPlan(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	return get[models.SubscriptionPlan](ctx, c, query.ResourcePlans, pathPlans, id)
}

// CreatePlan adds a subscription plan.
func (c *Catalog) CreatePlan(ctx context.Context, upload models.PlanUpload) (*models.SubscriptionPlan, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourcePlans, "Creating plan",
		func(p *models.SubscriptionPlan) string { return p.PlanID },
		func(ctx context.Context) (*models.SubscriptionPlan, error) {
			var plan models.SubscriptionPlan
			if err := c.api.Post(ctx, pathPlans, upload, &plan); err != nil {
				return nil, err
			}
			return &plan, nil
		})
}

// UpdatePlan edits a plan. Existing subscriptions keep their original terms.
func (c *Catalog) UpdatePlan(ctx context.Context, id string, upload models.PlanUpload) (*models.SubscriptionPlan, error) {
	if err := upload.Validate(); err != nil {
		return nil, err
	}

	return query.MutateItem(ctx, c.mutator, query.ResourcePlans, "Updating plan",
		func(p *models.SubscriptionPlan) string { return p.PlanID },
		func(ctx context.Context) (*models.SubscriptionPlan, error) {
			var plan models.SubscriptionPlan
			if err := c.api.Patch(ctx, itemPath(pathPlans, id), upload, &plan); err != nil {
				return nil, err
			}
			return &plan, nil
		})
}

// DeletePlan retires a plan.
func (c *Catalog) DeletePlan(ctx context.Context, id string) error {
	return c.mutator.Delete(ctx, query.ResourcePlans, "Deleting plan", id, func(ctx context.Context) error {
		return c.api.Delete(ctx, itemPath(pathPlans, id))
	})
}
