package models

import "github.com/shopspring/decimal"

// SampleAggregate returns the fixed demonstration dataset written for a
// brand-new identity on first sign-in. This is the new-user bootstrap
// path, not an error fallback: the seed is written to the store once and
// then treated as the just-loaded state.
func SampleAggregate() *Aggregate {
	today := Today()
	return &Aggregate{
		Accounts: []Account{
			{
				ID:       "acc_demo_1",
				Name:     "Salary Account",
				Type:     AccountSavings,
				Balance:  decimal.NewFromInt(52000),
				Currency: "TWD",
			},
			{
				ID:       "acc_demo_2",
				Name:     "Main Credit Card",
				Type:     AccountCredit,
				Balance:  decimal.NewFromInt(-8500),
				Currency: "TWD",
			},
		},
		Transactions: []Transaction{
			{
				ID:          "tx_demo_1",
				AccountID:   "acc_demo_1",
				Date:        today,
				Amount:      decimal.NewFromInt(65000),
				Type:        TransactionIncome,
				Category:    "Salary",
				Description: "Monthly salary",
			},
			{
				ID:          "tx_demo_2",
				AccountID:   "acc_demo_2",
				Date:        today,
				Amount:      decimal.NewFromInt(250),
				Type:        TransactionExpense,
				Category:    "Food",
				Description: "Business lunch",
			},
			{
				ID:          "tx_demo_3",
				AccountID:   "acc_demo_2",
				Date:        today,
				Amount:      decimal.NewFromInt(1200),
				Type:        TransactionExpense,
				Category:    "Transport",
				Description: "High-speed rail ticket",
			},
		},
		Stocks: []StockHolding{
			{
				ID:           "st_demo_1",
				Symbol:       "2330",
				Name:         "TSMC",
				Shares:       decimal.NewFromInt(1000),
				AvgCost:      decimal.NewFromInt(550),
				CurrentPrice: decimal.NewFromInt(780),
				Market:       "TWSE",
			},
			{
				ID:           "st_demo_2",
				Symbol:       "AAPL",
				Name:         "Apple Inc.",
				Shares:       decimal.NewFromInt(10),
				AvgCost:      decimal.NewFromInt(150),
				CurrentPrice: decimal.NewFromInt(185),
				Market:       "NASDAQ",
			},
		},
	}
}
