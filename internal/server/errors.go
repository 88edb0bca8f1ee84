package server

import (
	"errors"
	"net/http"

	"github.com/10543610-ai/WealthFlow-AI/internal/ledger"
	"github.com/10543610-ai/WealthFlow-AI/internal/session"
)

// Sentinels for records missing from the live aggregate.
var (
	errAccountNotFound     = errors.New("account not found")
	errTransactionNotFound = errors.New("transaction not found")
	errHoldingNotFound     = errors.New("holding not found")
)

// writeAggregateError maps session/aggregate errors to HTTP responses.
func writeAggregateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrSessionClosed):
		WriteError(w, http.StatusConflict, "session closed")
	case errors.Is(err, errAccountNotFound),
		errors.Is(err, errTransactionNotFound),
		errors.Is(err, errHoldingNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrNoSuchAccount):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		WriteError(w, http.StatusBadRequest, err.Error())
	}
}
