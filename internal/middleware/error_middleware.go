package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/models/dto"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to the standard error body. Unknown
// errors always produce a generic 500 message; internal detail never reaches
// the client.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err, dto.ErrorCodeInvalidCredentials)
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrInvalidDownloadToken):
		respondError(c, http.StatusUnauthorized, err, dto.ErrorCodeInvalidToken)
	case apperrors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, err, dto.ErrorCodeExpiredToken)
	case apperrors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, err, dto.ErrorCodeAccountDisabled)
	case apperrors.Is(err, apperrors.ErrInvalidAdminPassword):
		respondError(c, http.StatusUnauthorized, err, dto.ErrorCodeInvalidAdminKey)
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrProfessorNotFound,
		apperrors.ErrProjectNotFound,
		apperrors.ErrProjectFileNotFound,
		apperrors.ErrApplicationNotFound,
		apperrors.ErrResumeNotFound,
		apperrors.ErrTrackingTokenNotFound):
		respondError(c, http.StatusNotFound, err, dto.ErrorCodeResourceNotFound)
	case apperrors.Is(err, apperrors.ErrEmailAlreadyExists, apperrors.ErrResourceAlreadyExists, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, err, dto.ErrorCodeResourceAlreadyExists)
	case apperrors.Is(err, apperrors.ErrInvalidFile):
		respondError(c, http.StatusBadRequest, err, dto.ErrorCodeInvalidFile)
	case apperrors.Is(err, apperrors.ErrProjectNotAcceptingApplications):
		respondError(c, http.StatusBadRequest, err, dto.ErrorCodeNotAccepting)
	case apperrors.Is(err, apperrors.ErrDeadlinePassed):
		respondError(c, http.StatusBadRequest, err, dto.ErrorCodeDeadlinePassed)
	case apperrors.Is(err, apperrors.ErrInvalidStatusTransition):
		respondError(c, http.StatusBadRequest, err, dto.ErrorCodeInvalidTransition)
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, err, dto.ErrorCodeValidationFailed)
	default:
		body := dto.NewErrorResponse(http.StatusInternalServerError,
			c.Request.URL.Path, c.Request.Method,
			"Internal server error", dto.ErrorCodeInternalServer)
		if id := c.GetHeader("X-Request-ID"); id != "" {
			body.WithRequestID(id)
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// RespondValidationError reports a malformed or invalid request payload.
func RespondValidationError(c *gin.Context, err error) {
	body := dto.NewErrorResponse(http.StatusBadRequest,
		c.Request.URL.Path, c.Request.Method,
		"Validation failed", dto.ErrorCodeValidationFailed).
		WithDetails(err.Error())
	if id := c.GetHeader("X-Request-ID"); id != "" {
		body.WithRequestID(id)
	}
	c.JSON(http.StatusBadRequest, body)
}

func respondError(c *gin.Context, status int, err error, code dto.ErrorCode) {
	message := err.Error()
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		message = ce.Message
	}

	body := dto.NewErrorResponse(status, c.Request.URL.Path, c.Request.Method, message, code)
	if errors.As(err, &ce) {
		if ce.Code != "" {
			body.Code = dto.ErrorCode(ce.Code)
		}
		if ce.Details != nil {
			body.WithDetails(ce.Details)
		}
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		body.WithRequestID(id)
	}

	c.JSON(status, body)
}
