package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EstateBooks/plot_booking_app/internal/core/domain"
)

func TestRecomputeIsDeposit(t *testing.T) {
	banked := &domain.BankAccount{AccountID: "bank", DetailType: "Bank"}
	undeposited := &domain.BankAccount{AccountID: "udf", DetailType: domain.DetailTypeUndepositedFunds}

	tests := []struct {
		name    string
		prior   bool
		oldBank *domain.BankAccount
		newBank *domain.BankAccount
		want    bool
	}{
		{
			name:    "new banked account forces true",
			prior:   false,
			oldBank: undeposited,
			newBank: banked,
			want:    true,
		},
		{
			name:    "moving banked into undeposited funds forces false",
			prior:   true,
			oldBank: banked,
			newBank: undeposited,
			want:    false,
		},
		{
			name:    "undeposited to undeposited keeps prior false",
			prior:   false,
			oldBank: undeposited,
			newBank: undeposited,
			want:    false,
		},
		{
			name:    "unchanged undeposited bank keeps prior true",
			prior:   true,
			oldBank: nil,
			newBank: undeposited,
			want:    true,
		},
		{
			name:    "nil new bank keeps prior",
			prior:   true,
			oldBank: banked,
			newBank: nil,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recomputeIsDeposit(tt.prior, tt.oldBank, tt.newBank)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReceivedFlags(t *testing.T) {
	banked := &domain.BankAccount{AccountID: "bank", DetailType: "Bank"}
	undeposited := &domain.BankAccount{AccountID: "udf", DetailType: domain.DetailTypeUndepositedFunds}

	tests := []struct {
		name         string
		bank         *domain.BankAccount
		method       string
		wantDeposit  bool
		wantChqClear bool
	}{
		{"cash into bank", banked, "Cash", true, true},
		{"cheque into bank", banked, domain.PaymentMethodCheque, true, false},
		{"cash into undeposited funds", undeposited, "Cash", false, true},
		{"cheque into undeposited funds", undeposited, domain.PaymentMethodCheque, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isDeposit, isChequeClear := receivedFlags(tt.bank, tt.method)
			assert.Equal(t, tt.wantDeposit, isDeposit)
			assert.Equal(t, tt.wantChqClear, isChequeClear)
		})
	}
}
