package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/BlackMarketService/internal/models"
	"github.com/honeynil/BlackMarketService/internal/repository"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const transactionColumns = `id, listing_id, buyer_id, seller_id, item_payload, price, seller_credit, tier, created_at`

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var tx models.Transaction
	err := row.Scan(&tx.ID, &tx.ListingID, &tx.BuyerID, &tx.SellerID, &tx.ItemPayload, &tx.Price, &tx.SellerCredit, &tx.Tier, &tx.Timestamp)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *PostgresTransactionRepository) Record(ctx context.Context, tx *models.Transaction) (txID string, err error) {
	ctx, span := otel.Tracer("transaction-repository").Start(ctx, "RecordTransaction")
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "RecordTransaction", start, err) }()

	if err = repository.ValidateTransaction(tx); err != nil {
		slog.Error("invalid transaction", "method", "Record", "error", err)
		return "", err
	}

	txID = uuid.NewString()
	timestamp := tx.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	span.SetAttributes(
		attribute.String("transaction_id", txID),
		attribute.String("listing_id", tx.ListingID),
		attribute.String("buyer_id", tx.BuyerID),
		attribute.String("seller_id", tx.SellerID),
		attribute.String("price", tx.Price.String()),
	)

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err = wrapStoreError("begin transaction", err)
		slog.Error("failed to begin transaction", "method", "Record", "error", err)
		return "", err
	}

	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = dbTx.ExecContext(ctx, query, txID, tx.ListingID, tx.BuyerID, tx.SellerID, tx.ItemPayload, tx.Price, tx.SellerCredit, tx.Tier, timestamp)
	if err != nil {
		if rbErr := dbTx.Rollback(); rbErr != nil {
			err = fmt.Errorf("rollback failed: %v; original error: %w", rbErr, err)
			slog.Error("rollback failed", "method", "Record", "error", rbErr)
		} else {
			slog.Error("failed to record transaction", "method", "Record", "buyer_id", tx.BuyerID, "seller_id", tx.SellerID, "error", err)
		}
		err = wrapStoreError("record transaction", err)
		return "", err
	}

	if err = dbTx.Commit(); err != nil {
		err = wrapStoreError("commit transaction", err)
		slog.Error("failed to commit transaction", "method", "Record", "error", err)
		return "", err
	}

	tx.ID = txID
	tx.Timestamp = timestamp
	slog.Info("transaction recorded", "method", "Record", "id", txID, "listing_id", tx.ListingID, "buyer_id", tx.BuyerID, "seller_id", tx.SellerID, "price", tx.Price.String())
	return txID, nil
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (tx *models.Transaction, err error) {
	ctx, span := otel.Tracer("transaction-repository").Start(ctx, "GetTransactionByID")
	span.SetAttributes(attribute.String("transaction_id", id))
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "GetTransactionByID", start, err) }()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err = scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if stderrors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
		slog.Error("transaction not found", "method", "GetByID", "transaction_id", id, "error", err)
		err = pkgerrors.ErrTransactionNotFound
		return nil, err
	}
	if err != nil {
		err = wrapStoreError("get transaction by id", err)
		slog.Error("failed to get transaction by id", "method", "GetByID", "transaction_id", id, "error", err)
		return nil, err
	}

	slog.Info("transaction retrieved", "method", "GetByID", "transaction_id", id, "buyer_id", tx.BuyerID)
	return tx, nil
}

func (r *PostgresTransactionRepository) History(ctx context.Context, participantID string) (history []models.Transaction, err error) {
	ctx, span := otel.Tracer("transaction-repository").Start(ctx, "TransactionHistory")
	span.SetAttributes(attribute.String("participant_id", participantID))
	defer span.End()
	start := time.Now()
	defer func() { finishCall(span, "TransactionHistory", start, err) }()

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE buyer_id = $1 OR seller_id = $1`
	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		err = wrapStoreError("get transaction history", err)
		slog.Error("failed to get transaction history", "method", "History", "participant_id", participantID, "error", err)
		return nil, err
	}
	defer rows.Close()

	history = []models.Transaction{}
	for rows.Next() {
		tx, scanErr := scanTransaction(rows)
		if scanErr != nil {
			err = fmt.Errorf("failed to scan transaction: %w", scanErr)
			slog.Error("failed to scan transaction", "method", "History", "error", err)
			return nil, err
		}
		history = append(history, *tx)
	}
	if err = rows.Err(); err != nil {
		err = wrapStoreError("iterate transactions", err)
		return nil, err
	}

	slog.Info("transaction history retrieved", "method", "History", "participant_id", participantID, "count", len(history))
	return history, nil
}
