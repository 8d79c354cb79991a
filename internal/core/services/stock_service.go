package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
)

// stockService is the stock ledger. Every mutation locks the stock line row,
// recomputes the valuation and appends the matching movement inside one
// transaction, so the on-hand view and the movement log can never diverge.
type stockService struct {
	stockRepo    portsrepo.StockRepositoryWithTx
	movementRepo portsrepo.MovementRepositoryFacade
}

// NewStockService creates a new StockSvc.
func NewStockService(stockRepo portsrepo.StockRepositoryWithTx, movementRepo portsrepo.MovementRepositoryFacade) portssvc.StockSvc {
	return &stockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

var _ portssvc.StockSvc = (*stockService)(nil)

// runInTx wraps one ledger operation in a transaction with rollback on error.
func (s *stockService) runInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.stockRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.stockRepo.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return s.stockRepo.Commit(ctx, tx)
}

// GetAvailable returns on-hand minus reserved; a pair that never held stock
// has zero available.
func (s *stockService) GetAvailable(ctx context.Context, enterpriseID, productID, warehouseID string) (decimal.Decimal, error) {
	line, err := s.stockRepo.FindStockLine(ctx, enterpriseID, productID, warehouseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read stock line: %w", err)
	}
	return line.Available(), nil
}

func (s *stockService) GetStock(ctx context.Context, enterpriseID, productID string, warehouseID *string) ([]domain.StockLine, error) {
	if warehouseID == nil {
		return s.stockRepo.ListStockByProduct(ctx, enterpriseID, productID)
	}
	line, err := s.stockRepo.FindStockLine(ctx, enterpriseID, productID, *warehouseID)
	if err != nil {
		return nil, err
	}
	return []domain.StockLine{*line}, nil
}

func (s *stockService) ListStockByWarehouse(ctx context.Context, enterpriseID, warehouseID string) ([]domain.StockLine, error) {
	return s.stockRepo.ListStockByWarehouse(ctx, enterpriseID, warehouseID)
}

func (s *stockService) GetProductCost(ctx context.Context, enterpriseID, productID string) (*domain.ProductCost, error) {
	return s.stockRepo.AggregateProductCost(ctx, enterpriseID, productID)
}

func (s *stockService) ListMovements(ctx context.Context, enterpriseID string, filter portsrepo.MovementFilter) ([]domain.Movement, error) {
	return s.movementRepo.ListMovements(ctx, enterpriseID, filter)
}

func (s *stockService) ListBelowMinimum(ctx context.Context, enterpriseID string) ([]domain.StockLine, error) {
	return s.stockRepo.ListBelowMinimum(ctx, enterpriseID)
}

// ApplyEntry records goods in, blending the entry cost into the running
// weighted-average unit cost.
func (s *stockService) ApplyEntry(ctx context.Context, p portssvc.EntryParams) error {
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		return s.ApplyEntryInTx(ctx, tx, p)
	})
}

func (s *stockService) ApplyEntryInTx(ctx context.Context, tx pgx.Tx, p portssvc.EntryParams) error {
	if p.Quantity.Sign() <= 0 {
		return fmt.Errorf("%w: entry quantity must be positive", apperrors.ErrValidation)
	}
	if p.UnitCost.Sign() < 0 {
		return fmt.Errorf("%w: entry unit cost must not be negative", apperrors.ErrValidation)
	}

	line, err := s.stockRepo.FindOrCreateStockLineForUpdate(ctx, tx, p.EnterpriseID, p.ProductID, p.WarehouseID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to lock stock line: %w", err)
	}

	qty := domain.TruncQuantity(p.Quantity)
	line.UnitCost = domain.BlendUnitCost(line.OnHand, line.UnitCost, qty, p.UnitCost)
	line.OnHand = domain.TruncQuantity(line.OnHand.Add(qty))
	line.Revalue()
	occurred := p.OccurredAt
	line.LastMovementAt = &occurred
	line.Touch(p.UserID, occurred)

	if err := s.stockRepo.SaveStockLineInTx(ctx, tx, *line); err != nil {
		return fmt.Errorf("failed to save stock line: %w", err)
	}

	movement := domain.Movement{
		MovementID:     uuid.NewString(),
		EnterpriseID:   p.EnterpriseID,
		ProductID:      p.ProductID,
		DestinationID:  &p.WarehouseID,
		Type:           domain.MovementEntry,
		Quantity:       qty,
		UnitCost:       domain.RoundMoney(p.UnitCost),
		TotalCost:      domain.RoundMoney(qty.Mul(p.UnitCost)),
		Reference:      p.Reference,
		Description:    p.Description,
		OccurredAt:     occurred,
		RecordedByUser: p.UserID,
	}
	return s.appendMovement(ctx, tx, movement)
}

// ApplyExit records goods out at the current weighted-average cost. The unit
// cost of the line is preserved.
func (s *stockService) ApplyExit(ctx context.Context, p portssvc.ExitParams) error {
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		return s.ApplyExitInTx(ctx, tx, p)
	})
}

func (s *stockService) ApplyExitInTx(ctx context.Context, tx pgx.Tx, p portssvc.ExitParams) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if p.Quantity.Sign() <= 0 {
		return fmt.Errorf("%w: exit quantity must be positive", apperrors.ErrValidation)
	}

	line, err := s.stockRepo.FindOrCreateStockLineForUpdate(ctx, tx, p.EnterpriseID, p.ProductID, p.WarehouseID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to lock stock line: %w", err)
	}

	qty := domain.TruncQuantity(p.Quantity)
	if line.OnHand.LessThan(qty) {
		if !p.AllowNegative {
			return fmt.Errorf("%w: on hand %s, requested %s", apperrors.ErrInsufficientStock, line.OnHand, qty)
		}
		logger.Warn("Stock driven negative by compensating exit",
			slog.String("product_id", p.ProductID),
			slog.String("warehouse_id", p.WarehouseID),
			slog.String("reason", string(p.Reason)),
			slog.String("reference", p.Reference),
		)
	}

	line.OnHand = domain.TruncQuantity(line.OnHand.Sub(qty))
	line.Revalue()
	occurred := p.OccurredAt
	line.LastMovementAt = &occurred
	line.Touch(p.UserID, occurred)

	if err := s.stockRepo.SaveStockLineInTx(ctx, tx, *line); err != nil {
		return fmt.Errorf("failed to save stock line: %w", err)
	}

	movement := domain.Movement{
		MovementID:     uuid.NewString(),
		EnterpriseID:   p.EnterpriseID,
		ProductID:      p.ProductID,
		SourceID:       &p.WarehouseID,
		Type:           domain.MovementExit,
		Quantity:       qty.Neg(),
		UnitCost:       line.UnitCost,
		TotalCost:      domain.RoundMoney(qty.Neg().Mul(line.UnitCost)),
		Reference:      p.Reference,
		Description:    p.Description,
		OccurredAt:     occurred,
		RecordedByUser: p.UserID,
	}
	return s.appendMovement(ctx, tx, movement)
}

// ApplyAdjustment adds a signed quantity to a line. A positive adjustment
// with an explicit unit cost blends by weighted average; negative results are
// forbidden outside inventory corrections.
func (s *stockService) ApplyAdjustment(ctx context.Context, p portssvc.AdjustmentParams) error {
	if p.Quantity.Sign() == 0 {
		return fmt.Errorf("%w: adjustment quantity must not be zero", apperrors.ErrValidation)
	}
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		line, err := s.stockRepo.FindOrCreateStockLineForUpdate(ctx, tx, p.EnterpriseID, p.ProductID, p.WarehouseID, p.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock stock line: %w", err)
		}

		qty := domain.TruncQuantity(p.Quantity)
		newOnHand := domain.TruncQuantity(line.OnHand.Add(qty))
		if newOnHand.Sign() < 0 && p.Reason != domain.ReasonInventoryCorrection {
			return fmt.Errorf("%w: adjustment would leave %s on hand", apperrors.ErrNegativeStockForbidden, newOnHand)
		}

		if qty.Sign() > 0 && p.UnitCost != nil {
			line.UnitCost = domain.BlendUnitCost(line.OnHand, line.UnitCost, qty, *p.UnitCost)
		}
		line.OnHand = newOnHand
		line.Revalue()
		occurred := p.OccurredAt
		line.LastMovementAt = &occurred
		line.Touch(p.UserID, occurred)

		if err := s.stockRepo.SaveStockLineInTx(ctx, tx, *line); err != nil {
			return fmt.Errorf("failed to save stock line: %w", err)
		}

		unitCost := line.UnitCost
		if p.UnitCost != nil {
			unitCost = domain.RoundMoney(*p.UnitCost)
		}
		description := string(p.Reason)
		if p.Description != "" {
			description = description + ": " + p.Description
		}
		movement := domain.Movement{
			MovementID:     uuid.NewString(),
			EnterpriseID:   p.EnterpriseID,
			ProductID:      p.ProductID,
			SourceID:       &p.WarehouseID,
			Type:           domain.MovementAdjustment,
			Quantity:       qty,
			UnitCost:       unitCost,
			TotalCost:      domain.RoundMoney(qty.Mul(unitCost)),
			Reference:      domain.AdjustRefPrefix + uuid.NewString(),
			Description:    description,
			OccurredAt:     occurred,
			RecordedByUser: p.UserID,
		}
		return s.appendMovement(ctx, tx, movement)
	})
}

// ApplyTransfer moves quantity between two warehouses atomically. The
// destination inherits the source's current unit cost, and the two linked
// movements share the caller's reference.
func (s *stockService) ApplyTransfer(ctx context.Context, p portssvc.TransferParams) error {
	if p.Quantity.Sign() <= 0 {
		return fmt.Errorf("%w: transfer quantity must be positive", apperrors.ErrValidation)
	}
	if p.SourceID == p.DestinationID {
		return fmt.Errorf("%w: transfer warehouses must differ", apperrors.ErrValidation)
	}

	return s.runInTx(ctx, func(tx pgx.Tx) error {
		// Lock the two lines in warehouse-id order so two opposing transfers
		// cannot deadlock.
		first, second := p.SourceID, p.DestinationID
		if second < first {
			first, second = second, first
		}
		lines := make(map[string]*domain.StockLine, 2)
		for _, wh := range []string{first, second} {
			line, err := s.stockRepo.FindOrCreateStockLineForUpdate(ctx, tx, p.EnterpriseID, p.ProductID, wh, p.UserID)
			if err != nil {
				return fmt.Errorf("failed to lock stock line: %w", err)
			}
			lines[wh] = line
		}
		source, dest := lines[p.SourceID], lines[p.DestinationID]

		qty := domain.TruncQuantity(p.Quantity)
		if source.OnHand.LessThan(qty) {
			return fmt.Errorf("%w: on hand %s, requested %s", apperrors.ErrInsufficientStock, source.OnHand, qty)
		}
		transferCost := source.UnitCost
		occurred := p.OccurredAt

		source.OnHand = domain.TruncQuantity(source.OnHand.Sub(qty))
		source.Revalue()
		source.LastMovementAt = &occurred
		source.Touch(p.UserID, occurred)

		dest.UnitCost = domain.BlendUnitCost(dest.OnHand, dest.UnitCost, qty, transferCost)
		dest.OnHand = domain.TruncQuantity(dest.OnHand.Add(qty))
		dest.Revalue()
		dest.LastMovementAt = &occurred
		dest.Touch(p.UserID, occurred)

		for _, line := range []*domain.StockLine{source, dest} {
			if err := s.stockRepo.SaveStockLineInTx(ctx, tx, *line); err != nil {
				return fmt.Errorf("failed to save stock line: %w", err)
			}
		}

		pair := []domain.Movement{
			{
				MovementID:     uuid.NewString(),
				EnterpriseID:   p.EnterpriseID,
				ProductID:      p.ProductID,
				SourceID:       &p.SourceID,
				DestinationID:  &p.DestinationID,
				Type:           domain.MovementTransfer,
				Quantity:       qty.Neg(),
				UnitCost:       transferCost,
				TotalCost:      domain.RoundMoney(qty.Neg().Mul(transferCost)),
				Reference:      p.Reference,
				Description:    p.Description,
				OccurredAt:     occurred,
				RecordedByUser: p.UserID,
			},
			{
				MovementID:     uuid.NewString(),
				EnterpriseID:   p.EnterpriseID,
				ProductID:      p.ProductID,
				SourceID:       &p.SourceID,
				DestinationID:  &p.DestinationID,
				Type:           domain.MovementTransfer,
				Quantity:       qty,
				UnitCost:       transferCost,
				TotalCost:      domain.RoundMoney(qty.Mul(transferCost)),
				Reference:      p.Reference,
				Description:    p.Description,
				OccurredAt:     occurred,
				RecordedByUser: p.UserID,
			},
		}
		for _, movement := range pair {
			if err := s.appendMovement(ctx, tx, movement); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reserve holds available quantity without emitting a movement.
func (s *stockService) Reserve(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error {
	if qty.Sign() <= 0 {
		return fmt.Errorf("%w: reservation quantity must be positive", apperrors.ErrValidation)
	}
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		line, err := s.stockRepo.FindStockLineForUpdate(ctx, tx, enterpriseID, productID, warehouseID)
		if err != nil {
			return err
		}
		reserved := domain.TruncQuantity(line.Reserved.Add(qty))
		if reserved.GreaterThan(line.OnHand) {
			return fmt.Errorf("%w: available %s, requested %s", apperrors.ErrInsufficientStock, line.Available(), qty)
		}
		line.Reserved = reserved
		line.Touch(userID, time.Now().UTC())
		return s.stockRepo.SaveStockLineInTx(ctx, tx, *line)
	})
}

// Release frees previously reserved quantity.
func (s *stockService) Release(ctx context.Context, enterpriseID, productID, warehouseID string, qty decimal.Decimal, userID string) error {
	if qty.Sign() <= 0 {
		return fmt.Errorf("%w: release quantity must be positive", apperrors.ErrValidation)
	}
	return s.runInTx(ctx, func(tx pgx.Tx) error {
		line, err := s.stockRepo.FindStockLineForUpdate(ctx, tx, enterpriseID, productID, warehouseID)
		if err != nil {
			return err
		}
		reserved := domain.TruncQuantity(line.Reserved.Sub(qty))
		if reserved.Sign() < 0 {
			return fmt.Errorf("%w: only %s reserved, release of %s requested", apperrors.ErrValidation, line.Reserved, qty)
		}
		line.Reserved = reserved
		line.Touch(userID, time.Now().UTC())
		return s.stockRepo.SaveStockLineInTx(ctx, tx, *line)
	})
}

func (s *stockService) appendMovement(ctx context.Context, tx pgx.Tx, movement domain.Movement) error {
	if err := movement.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if _, err := s.movementRepo.AppendMovementInTx(ctx, tx, movement); err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}
	return nil
}
