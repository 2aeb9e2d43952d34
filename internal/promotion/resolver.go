package promotion

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// SampleParams are the bounded-normal parameters for one kind of draw.
type SampleParams struct {
	Mean   float64
	StdDev float64
	Min    int
	Max    int
}

// Context bundles everything a simulated day needs: the active type, the
// latest tier set, the per-type sampling parameters and category weights.
type Context struct {
	Type     string
	Tiers    []Campaign
	Behavior SampleParams
	Quantity SampleParams
	Weights  []CategoryWeight
}

// Per-type distribution parameters. Gift days drive many low-quantity
// sessions, bulk days drive few high-quantity ones.
var samplingParams = map[string]struct {
	behavior SampleParams
	quantity SampleParams
}{
	TypeThresholdGift: {
		behavior: SampleParams{Mean: 80, StdDev: 6, Min: 60, Max: 100},
		quantity: SampleParams{Mean: 3, StdDev: 1, Min: 1, Max: 5},
	},
	TypeThresholdDiscount: {
		behavior: SampleParams{Mean: 60, StdDev: 6, Min: 40, Max: 80},
		quantity: SampleParams{Mean: 5, StdDev: 2, Min: 2, Max: 10},
	},
	TypeBulkDiscount: {
		behavior: SampleParams{Mean: 40, StdDev: 6, Min: 20, Max: 60},
		quantity: SampleParams{Mean: 8, StdDev: 2, Min: 5, Max: 15},
	},
}

// Resolver determines the promotion policy in force on a given day.
type Resolver struct {
	repo   *Repository
	logger *zap.Logger
}

func NewResolver(repo *Repository, logger *zap.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		logger: logger,
	}
}

// Resolve looks up the active promotion type for the day of week and fetches
// the latest published tier set of that type.
func (r *Resolver) Resolve(ctx context.Context, dayOfWeek int) (*Context, error) {
	promotionType, err := r.repo.ActiveTypeForDay(ctx, dayOfWeek)
	if err != nil {
		return nil, err
	}

	tiers, err := r.repo.LatestCampaigns(ctx, promotionType)
	if err != nil {
		return nil, err
	}

	params, ok := samplingParams[promotionType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, promotionType)
	}

	r.logger.Info("Resolved active promotion",
		zap.Int("day_of_week", dayOfWeek),
		zap.String("promotion_type", promotionType),
		zap.Int("tiers", len(tiers)),
	)

	return &Context{
		Type:     promotionType,
		Tiers:    tiers,
		Behavior: params.behavior,
		Quantity: params.quantity,
		Weights:  WeightsFor(promotionType),
	}, nil
}
