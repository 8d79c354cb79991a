package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gescom-erp/gescom_backend/internal/apperrors"
	"github.com/gescom-erp/gescom_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError translates the service error taxonomy into HTTP responses.
// Unknown errors are logged and hidden behind a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrUnknownPointOfSale):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrCannotCancelPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock),
		errors.Is(err, apperrors.ErrNegativeStockForbidden),
		errors.Is(err, apperrors.ErrOverpayment),
		errors.Is(err, apperrors.ErrAccountingUnconfigured):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requestIdentity pulls the enterprise path param and the authenticated user.
// It writes the 401 itself when the identity is missing.
func requestIdentity(c *gin.Context) (enterpriseID, userID string, ok bool) {
	enterpriseID = c.Param("enterpriseID")
	userID, ok = middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return enterpriseID, userID, true
}
