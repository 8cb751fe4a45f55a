package repository

import (
	"context"

	"github.com/honeynil/BlackMarketService/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/honeynil/BlackMarketService/internal/repository ListingRepository,TransactionRepository

// ListingRepository stores listings under optimistic concurrency control.
// A version mismatch is reported as ok=false, never as an error.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) (string, error)
	GetAll(ctx context.Context, tier *models.Tier) ([]models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	CompareAndSwap(ctx context.Context, id string, expectedVersion int64, mutate func(*models.Listing) error) (*models.Listing, bool, error)
	Delete(ctx context.Context, id string, expectedVersion int64) (*models.Listing, bool, error)
}
