package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

type accountRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Type     string  `json:"type" validate:"required"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

// handleAccounts handles GET/POST /api/accounts.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleAccountList(w, r)
	case http.MethodPost:
		s.handleAccountCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleAccountList(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Snapshot()
	if err != nil {
		WriteError(w, http.StatusConflict, "session closed")
		return
	}
	WriteJSON(w, http.StatusOK, snap.Accounts)
}

func (s *Server) handleAccountCreate(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	var req accountRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	accountType, err := models.ParseAccountType(req.Type)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "TWD"
	}

	account := models.Account{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Type:     accountType,
		Balance:  decimal.NewFromFloat(req.Balance),
		Currency: currency,
	}

	if err := sess.Update(func(agg *models.Aggregate) error {
		agg.Accounts = append(agg.Accounts, account)
		return nil
	}); err != nil {
		WriteError(w, http.StatusConflict, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

// routeAccountByID dispatches PUT/DELETE /api/accounts/{id}.
func (s *Server) routeAccountByID(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/accounts/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "account id is required in path")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.handleAccountUpdate(w, r, id)
	case http.MethodDelete:
		s.handleAccountDelete(w, r, id)
	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handleAccountUpdate(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	var req accountRequest
	if !DecodeValid(w, r, &req) {
		return
	}
	accountType, err := models.ParseAccountType(req.Type)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var updated models.Account
	err = sess.Update(func(agg *models.Aggregate) error {
		for i := range agg.Accounts {
			if agg.Accounts[i].ID != id {
				continue
			}
			agg.Accounts[i].Name = req.Name
			agg.Accounts[i].Type = accountType
			agg.Accounts[i].Balance = decimal.NewFromFloat(req.Balance)
			if req.Currency != "" {
				agg.Accounts[i].Currency = req.Currency
			}
			updated = agg.Accounts[i]
			return nil
		}
		return errAccountNotFound
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// handleAccountDelete removes the account record only. Transactions
// that reference it stay behind and render with the unknown-account
// placeholder.
func (s *Server) handleAccountDelete(w http.ResponseWriter, r *http.Request, id string) {
	sess, _ := s.requireSession(w, r)
	if sess == nil {
		return
	}

	err := sess.Update(func(agg *models.Aggregate) error {
		for i := range agg.Accounts {
			if agg.Accounts[i].ID == id {
				agg.Accounts = append(agg.Accounts[:i], agg.Accounts[i+1:]...)
				return nil
			}
		}
		return errAccountNotFound
	})
	if err != nil {
		writeAggregateError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
