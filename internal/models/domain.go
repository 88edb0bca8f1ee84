// Package models defines the WealthFlow domain types.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType is the closed set of account categories.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash"
)

// ParseAccountType validates a raw string against the account type enum.
func ParseAccountType(raw string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case AccountChecking, AccountSavings, AccountCredit, AccountInvestment, AccountCash:
		return t, nil
	}
	return "", fmt.Errorf("unknown account type %q", raw)
}

// TransactionType is the closed set of transaction kinds. The sign of a
// transaction is carried by its type, never by the amount field.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
	// TransactionTransfer is part of the enum but has no balance effect.
	TransactionTransfer TransactionType = "transfer"
)

// ParseTransactionType validates a raw string against the transaction type enum.
func ParseTransactionType(raw string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case TransactionIncome, TransactionExpense, TransactionTransfer:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", raw)
}

// Account is a bank, credit, investment or cash account. Balance is a
// stored running total: it changes only through explicit edits and
// transaction postings, and is never recomputed from transaction history.
type Account struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// Transaction is an immutable income/expense record. Amount is unsigned;
// AccountID may dangle after the owning account is deleted; dangling
// references are tolerated and display under an "unknown account" label.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// StockHolding is a position in a single listed security. MarketValue,
// gain/loss and gain/loss percent are derived and never stored.
type StockHolding struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Shares       decimal.Decimal `json:"shares"`
	AvgCost      decimal.Decimal `json:"avg_cost"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Market       string          `json:"market"`
}

// Aggregate is the combined financial state for one identity, persisted
// as a single document. It is the unit of ownership and of merge writes.
type Aggregate struct {
	Accounts     []Account      `json:"accounts"`
	Transactions []Transaction  `json:"transactions"`
	Stocks       []StockHolding `json:"stocks"`
}

// Clone returns a deep-enough copy of the aggregate: fresh slices over
// value elements, safe to hand out while the original keeps mutating.
func (a *Aggregate) Clone() *Aggregate {
	c := &Aggregate{
		Accounts:     make([]Account, len(a.Accounts)),
		Transactions: make([]Transaction, len(a.Transactions)),
		Stocks:       make([]StockHolding, len(a.Stocks)),
	}
	copy(c.Accounts, a.Accounts)
	copy(c.Transactions, a.Transactions)
	copy(c.Stocks, a.Stocks)
	return c
}

// FindAccount returns the account with the given ID, or nil.
func (a *Aggregate) FindAccount(id string) *Account {
	for i := range a.Accounts {
		if a.Accounts[i].ID == id {
			return &a.Accounts[i]
		}
	}
	return nil
}

// Suggested transaction categories. Category remains a free string; this
// set only seeds pickers and bounds AI suggestions.
var Categories = []string{
	"Food", "Transport", "Salary", "Housing", "Entertainment",
	"Medical", "Investment", "Shopping", "Other",
}

// CategoryFallback is used when an AI suggestion is missing or not in the
// suggested set.
const CategoryFallback = "Other"

// NormalizeCategory maps a raw suggestion onto the suggested set,
// falling back to CategoryFallback for anything unrecognized.
func NormalizeCategory(raw string) string {
	candidate := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(candidate, c) {
			return c
		}
	}
	return CategoryFallback
}

// UnknownAccountLabel is displayed for transactions whose account was
// deleted after posting.
const UnknownAccountLabel = "unknown account"
