package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/core/domain"
	portssvc "github.com/gescom-erp/gescom_backend/internal/core/ports/services"
	"github.com/gescom-erp/gescom_backend/internal/core/services"
)

type WarehouseServiceTestSuite struct {
	suite.Suite
	mockRepo *MockWarehouseRepository
	service  portssvc.WarehouseSvc

	ctx          context.Context
	enterpriseID string
}

func (s *WarehouseServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockWarehouseRepository)
	s.service = services.NewWarehouseService(s.mockRepo, nil)
	s.ctx = context.Background()
	s.enterpriseID = "ent-1"
}

func (s *WarehouseServiceTestSuite) warehouse(code string) *domain.Warehouse {
	return &domain.Warehouse{
		WarehouseID:  "wh-" + code,
		EnterpriseID: s.enterpriseID,
		Code:         code,
		Type:         domain.WarehousePointOfSale,
		IsActive:     true,
	}
}

func (s *WarehouseServiceTestSuite) TestResolveWarehouse_DefaultRouting() {
	s.mockRepo.On("FindWarehouseByCode", s.ctx, s.enterpriseID, "POS_2").Return(s.warehouse("POS_2"), nil).Once()

	warehouse, err := s.service.ResolveWarehouse(s.ctx, s.enterpriseID, "boutique")

	s.Require().NoError(err)
	s.Equal("POS_2", warehouse.Code)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *WarehouseServiceTestSuite) TestResolveWarehouse_UnknownHandle() {
	_, err := s.service.ResolveWarehouse(s.ctx, s.enterpriseID, "cafeteria")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownPointOfSale)
	s.mockRepo.AssertNotCalled(s.T(), "FindWarehouseByCode", mock.Anything, mock.Anything, mock.Anything)
}

func (s *WarehouseServiceTestSuite) TestResolveWarehouse_MissingWarehousePropagates() {
	s.mockRepo.On("FindWarehouseByCode", s.ctx, s.enterpriseID, "MAG_1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ResolveWarehouse(s.ctx, s.enterpriseID, "principal")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *WarehouseServiceTestSuite) TestSetRouting_ReplacesTheTable() {
	s.service.SetRouting(map[string]string{"kiosk": "POS_9"})

	s.mockRepo.On("FindWarehouseByCode", s.ctx, s.enterpriseID, "POS_9").Return(s.warehouse("POS_9"), nil).Once()

	warehouse, err := s.service.ResolveWarehouse(s.ctx, s.enterpriseID, "kiosk")
	s.Require().NoError(err)
	s.Equal("POS_9", warehouse.Code)

	// The previous default handles are gone.
	_, err = s.service.ResolveWarehouse(s.ctx, s.enterpriseID, "boutique")
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownPointOfSale)
}

func TestWarehouseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WarehouseServiceTestSuite))
}
