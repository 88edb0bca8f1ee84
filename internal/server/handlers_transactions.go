package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/ledger"
	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

type transactionRequest struct {
	AccountID   string  `json:"account_id" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description" validate:"max=500"`
}

// handleTransactions handles GET/POST /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r)
	case http.MethodPost:
		s.handleTransactionCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Snapshot()
	if err != nil {
		WriteError(w, http.StatusConflict, "session closed")
		return
	}

	type transactionView struct {
		models.Transaction
		AccountName string `json:"account_name"`
	}
	views := make([]transactionView, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		views = append(views, transactionView{
			Transaction: tx,
			AccountName: ledger.AccountLabel(tx.AccountID, snap.Accounts),
		})
	}
	WriteJSON(w, http.StatusOK, views)
}

// handleTransactionCreate posts a transaction: the record and its
// balance adjustment land in one update, so no observer sees one
// without the other.
func (s *Server) handleTransactionCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	var req transactionRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	txType, err := models.ParseTransactionType(req.Type)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	date, err := models.ParseDate(req.Date)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tx := models.Transaction{
		ID:          uuid.New().String(),
		AccountID:   req.AccountID,
		Date:        date,
		Amount:      decimal.NewFromFloat(req.Amount),
		Type:        txType,
		Category:    models.NormalizeCategory(req.Category),
		Description: req.Description,
	}

	err = sess.Update(func(agg *models.Aggregate) error {
		accounts, err := ledger.PostTransaction(tx, agg.Accounts)
		if err != nil {
			return err
		}
		agg.Accounts = accounts
		agg.Transactions = append([]models.Transaction{tx}, agg.Transactions...)
		return nil
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, tx)
}

// routeTransactionByID dispatches DELETE /api/transactions/{id}.
func (s *Server) routeTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/transactions/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	// Deleting a transaction removes the record only; the account
	// balance keeps the posted adjustment.
	err := sess.Update(func(agg *models.Aggregate) error {
		for i := range agg.Transactions {
			if agg.Transactions[i].ID == id {
				agg.Transactions = append(agg.Transactions[:i], agg.Transactions[i+1:]...)
				return nil
			}
		}
		return errTransactionNotFound
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
