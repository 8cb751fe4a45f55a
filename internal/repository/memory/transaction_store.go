package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/repository"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
)

type TransactionStore struct {
	availability
	mu           sync.RWMutex
	transactions []models.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) Record(_ context.Context, tx *models.Transaction) (string, error) {
	if err := s.check("record transaction"); err != nil {
		return "", err
	}
	if err := repository.ValidateTransaction(tx); err != nil {
		return "", err
	}

	tx.ID = uuid.NewString()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	stored := *tx
	stored.ItemPayload = append([]byte(nil), tx.ItemPayload...)

	s.mu.Lock()
	s.transactions = append(s.transactions, stored)
	s.mu.Unlock()
	return tx.ID, nil
}

func (s *TransactionStore) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	if err := s.check("get transaction by id"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.transactions {
		if tx.ID == id {
			out := tx
			return &out, nil
		}
	}
	return nil, pkgerrors.ErrTransactionNotFound
}

func (s *TransactionStore) History(_ context.Context, participantID string) ([]models.Transaction, error) {
	if err := s.check("get transaction history"); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Transaction{}
	for _, tx := range s.transactions {
		if tx.BuyerID == participantID || tx.SellerID == participantID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Len reports how many transactions have been recorded.
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

var (
	_ repository.ListingRepository     = (*ListingStore)(nil)
	_ repository.TransactionRepository = (*TransactionStore)(nil)
)
