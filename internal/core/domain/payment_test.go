package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

func TestIncomingFund_SignedAmount(t *testing.T) {
	tests := []struct {
		name string
		fund domain.IncomingFund
		want decimal.Decimal
	}{
		{
			name: "payment keeps its sign",
			fund: domain.IncomingFund{Reference: domain.FundPayment, Amount: decimal.NewFromInt(50000)},
			want: decimal.NewFromInt(50000),
		},
		{
			name: "refund is negated",
			fund: domain.IncomingFund{Reference: domain.FundRefund, Amount: decimal.NewFromInt(20000)},
			want: decimal.NewFromInt(-20000),
		},
		{
			name: "zero amount stays zero",
			fund: domain.IncomingFund{Reference: domain.FundRefund, Amount: decimal.Zero},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fund.SignedAmount()
			assert.True(t, tt.want.Equal(got), "expected %s, got %s", tt.want, got)
		})
	}
}

func TestBankAccount_IsUndepositedFunds(t *testing.T) {
	tests := []struct {
		name    string
		account domain.BankAccount
		want    bool
	}{
		{
			name:    "undeposited funds detail type",
			account: domain.BankAccount{DetailType: domain.DetailTypeUndepositedFunds},
			want:    true,
		},
		{
			name:    "ordinary bank",
			account: domain.BankAccount{DetailType: "Bank"},
			want:    false,
		},
		{
			name:    "empty detail type",
			account: domain.BankAccount{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.IsUndepositedFunds())
		})
	}
}

func TestSumPlotCost(t *testing.T) {
	plots := []domain.Plot{
		{CostPrice: decimal.NewFromInt(250000)},
		{CostPrice: decimal.NewFromInt(350000)},
	}
	assert.True(t, decimal.NewFromInt(600000).Equal(domain.SumPlotCost(plots)))
	assert.True(t, domain.SumPlotCost(nil).IsZero())
}
