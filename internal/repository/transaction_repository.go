package repository

import (
	"context"

	"github.com/honeynil/BlackMarketService/internal/models"
)

// TransactionRepository is append-only: there is no update or delete.
type TransactionRepository interface {
	Record(ctx context.Context, tx *models.Transaction) (string, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	History(ctx context.Context, participantID string) ([]models.Transaction, error)
}
