package api

import (
	"net/http"

	xerrors "github.com/ClipFinance/oft-client/common/errors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type errorResponse struct {
	Error  string `json:"error"`
	Field  string `json:"field,omitempty"`
	TxHash string `json:"txHash,omitempty"`
}

// statusFor maps the client error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var validation *xerrors.ValidationError
	var stale *xerrors.StaleEstimateError

	switch {
	case errors.Is(err, xerrors.ErrSendInProgress):
		return http.StatusConflict
	case errors.As(err, &stale):
		return http.StatusConflict
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrNoSession):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrProviderNotFound):
		return http.StatusNotFound
	case xerrors.IsConnection(err), xerrors.IsTransferExecution(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) abort(c *gin.Context, err error) {
	resp := errorResponse{Error: err.Error()}

	var validation *xerrors.ValidationError
	var stale *xerrors.StaleEstimateError
	var execErr *xerrors.TransferExecutionError
	if errors.As(err, &validation) {
		resp.Field = validation.Field
	} else if errors.As(err, &stale) {
		resp.Field = stale.Field
	} else if errors.As(err, &execErr) {
		resp.TxHash = execErr.TxHash
	}

	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.WithField("path", c.FullPath()).WithError(err).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, resp)
}
