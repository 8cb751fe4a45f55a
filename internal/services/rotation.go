package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/honeynil/BlackMarketService/internal/infrastructure/observability"
	"github.com/honeynil/BlackMarketService/internal/models"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Rotate demotes up to batchSize randomly chosen Normal listings to the black
// market. A listing that changed since the snapshot is skipped and does not
// count toward the batch. The count of listings actually moved is returned
// even when the run stops early on a store outage.
func (s *marketService) Rotate(ctx context.Context, batchSize int) (int, error) {
	ctx, span := otel.Tracer("marketplace-service").Start(ctx, "Rotate")
	defer span.End()
	span.SetAttributes(attribute.Int("batch_size", batchSize))

	if batchSize <= 0 {
		observability.RotationRuns.WithLabelValues("invalid").Inc()
		return 0, fmt.Errorf("%w: batch size must be positive, got %d", pkgerrors.ErrInvalidInput, batchSize)
	}

	normal := models.TierNormal
	candidates, err := s.listings.GetAll(ctx, &normal)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		observability.RotationRuns.WithLabelValues("failed").Inc()
		slog.Error("failed to snapshot listings for rotation", "error", err)
		return 0, err
	}

	moved := 0
	for _, i := range s.perm(len(candidates)) {
		if moved >= batchSize {
			break
		}
		if err := ctx.Err(); err != nil {
			observability.RotationRuns.WithLabelValues("cancelled").Inc()
			return moved, err
		}

		candidate := candidates[i]
		updated, ok, err := s.listings.CompareAndSwap(ctx, candidate.ID, candidate.Version, s.pricing.Demote)
		if err != nil {
			if stderrors.Is(err, pkgerrors.ErrStoreUnavailable) {
				span.RecordError(err)
				span.SetStatus(codes.Error, "store unavailable")
				observability.RotationRuns.WithLabelValues("failed").Inc()
				slog.Error("rotation stopped: store unavailable", "moved", moved, "error", err)
				return moved, err
			}
			slog.Warn("skipping listing during rotation", "listing_id", candidate.ID, "error", err)
			continue
		}
		if !ok {
			slog.Debug("listing changed since snapshot, skipping", "listing_id", candidate.ID)
			continue
		}

		moved++
		observability.RotatedListings.Inc()
		logNotifyFailure(models.EventListingRotated, s.notifier.ListingRotated(ctx, *updated, candidate.Price), "listing_id", updated.ID)
	}

	observability.RotationRuns.WithLabelValues("ok").Inc()
	span.SetAttributes(attribute.Int("moved", moved))
	slog.Info("black market rotation finished", "candidates", len(candidates), "moved", moved)
	return moved, nil
}
