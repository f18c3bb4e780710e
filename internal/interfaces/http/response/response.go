package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "borderlesspay.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Plain domain sentinels are mapped to
// their HTTP status; anything unrecognized is a 500.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message, // Backward compatibility
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrInsufficientFunds):
		return domainerrors.InsufficientFunds(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrInvalidTransition),
		errors.Is(err, domainerrors.ErrWalletInactive):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired),
		errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.NewAppError(http.StatusForbidden, "ERR_FORBIDDEN", err.Error(), err)
	default:
		return domainerrors.InternalError(err)
	}
}
