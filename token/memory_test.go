package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferFrom(t *testing.T) {
	l := NewMemoryLedger()
	l.Credit("payer", 1000)
	l.Approve("payer", 600)

	require.NoError(t, l.TransferFrom("payer", 600))
	assert.Equal(t, uint64(400), l.BalanceOf("payer"))
	assert.Equal(t, uint64(600), l.PoolBalance())
}

func TestTransferFrom_Errors(t *testing.T) {
	l := NewMemoryLedger()
	l.Credit("payer", 100)

	err := l.TransferFrom("payer", 50)
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	l.Approve("payer", 500)
	err = l.TransferFrom("payer", 500)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	err = l.TransferFrom("payer", 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
}

func TestTransfer(t *testing.T) {
	l := NewMemoryLedger()
	l.Credit("payer", 100)
	l.Approve("payer", 100)
	require.NoError(t, l.TransferFrom("payer", 100))

	require.NoError(t, l.Transfer("recipient", 40))
	assert.Equal(t, uint64(40), l.BalanceOf("recipient"))
	assert.Equal(t, uint64(60), l.PoolBalance())

	err := l.Transfer("recipient", 61)
	assert.ErrorIs(t, err, ErrInsufficientPoolFunds)
}

func TestResolver(t *testing.T) {
	r := NewMemoryResolver()
	usd := r.Register("USD")
	usd.Credit("payer", 10)

	got, err := r.Ledger("USD")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got.BalanceOf("payer"))

	_, err = r.Ledger("EUR")
	assert.ErrorIs(t, err, ErrUnknownCurrency)
}

func TestMinter(t *testing.T) {
	m := NewMemoryMinter()
	require.NoError(t, m.Mint("alice", "asset-1", 600))
	require.NoError(t, m.Mint("alice", "asset-1", 100))
	assert.Equal(t, uint64(700), m.Minted("asset-1", "alice"))

	err := m.Mint("alice", "asset-1", 0)
	assert.ErrorIs(t, err, ErrZeroAmount)
}
