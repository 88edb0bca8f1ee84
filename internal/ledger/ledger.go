// Package ledger computes balances, income/expense totals, and category
// breakdowns from the domain model. All functions are pure: inputs are
// never mutated and results are freshly allocated.
package ledger

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/10543610-ai/WealthFlow-AI/internal/models"
)

// ErrNoSuchAccount signals a transaction posted against an account ID
// that matches no account in the supplied set.
var ErrNoSuchAccount = errors.New("no such account")

// TotalBalance sums all account balances. Mixed currencies are summed
// as-is; there is no conversion.
func TotalBalance(accounts []models.Account) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

// IncomeExpenseTotals sums transaction amounts by type over the full
// supplied set. Callers filter to a period beforehand if they need one;
// the engine itself is period-agnostic.
func IncomeExpenseTotals(transactions []models.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionIncome:
			income = income.Add(tx.Amount)
		case models.TransactionExpense:
			expense = expense.Add(tx.Amount)
		}
	}
	return income, expense
}

// CategoryBreakdown maps each category to its summed expense amount.
// Only expense transactions contribute; categories without any expense
// are absent from the result rather than zero-valued.
func CategoryBreakdown(transactions []models.Transaction) map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if tx.Type != models.TransactionExpense {
			continue
		}
		breakdown[tx.Category] = breakdown[tx.Category].Add(tx.Amount)
	}
	return breakdown
}

// PostTransaction returns a new account slice with the owning account's
// balance adjusted by the transaction: +amount for income, -amount for
// expense, unchanged for transfer. When the account ID matches nothing
// the input is returned untouched alongside ErrNoSuchAccount; the caller
// must then also withhold the transaction from its collection so the
// posting stays atomic.
func PostTransaction(tx models.Transaction, accounts []models.Account) ([]models.Account, error) {
	idx := -1
	for i := range accounts {
		if accounts[i].ID == tx.AccountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return accounts, ErrNoSuchAccount
	}

	adjusted := make([]models.Account, len(accounts))
	copy(adjusted, accounts)

	switch tx.Type {
	case models.TransactionIncome:
		adjusted[idx].Balance = adjusted[idx].Balance.Add(tx.Amount)
	case models.TransactionExpense:
		adjusted[idx].Balance = adjusted[idx].Balance.Sub(tx.Amount)
	}
	return adjusted, nil
}

// AccountLabel resolves the display label for a transaction's account,
// tolerating dangling references to deleted accounts.
func AccountLabel(accountID string, accounts []models.Account) string {
	for i := range accounts {
		if accounts[i].ID == accountID {
			return accounts[i].Name
		}
	}
	return models.UnknownAccountLabel
}
