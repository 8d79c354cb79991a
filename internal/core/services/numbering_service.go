package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	portsrepo "github.com/gescom-erp/gescom_backend/internal/core/ports/repositories"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
)

// numberingService issues PREFIX-YYYYMMDD-NNNN document numbers. A per-prefix
// mutex serializes callers in-process; the counter row lock serializes
// across processes.
type numberingService struct {
	repo portsrepo.NumberingRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewNumberingService creates a new NumberingSvc.
func NewNumberingService(repo portsrepo.NumberingRepository) portssvc.NumberingSvc {
	return &numberingService{
		repo:  repo,
		locks: make(map[string]*sync.Mutex),
	}
}

var _ portssvc.NumberingSvc = (*numberingService)(nil)

func (s *numberingService) prefixLock(enterpriseID, prefix string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := enterpriseID + "/" + prefix
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// NextNumberInTx returns the next unused number for (prefix, day of at)
// within the caller's transaction. A counter conflict (serialization failure
// or deadlock abort) poisons that transaction, so no retry can succeed here;
// ErrConflict surfaces and the caller decides whether to rerun the whole
// transaction.
func (s *numberingService) NextNumberInTx(ctx context.Context, tx pgx.Tx, enterpriseID, prefix string, at time.Time) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: document prefix is required", apperrors.ErrValidation)
	}

	lock := s.prefixLock(enterpriseID, prefix)
	lock.Lock()
	defer lock.Unlock()

	seq, err := s.repo.NextSequenceInTx(ctx, tx, enterpriseID, prefix, at)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, at.UTC().Format("20060102"), seq), nil
}
