package revenue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/token"
)

const testAsset = ownership.AssetID("asset-1")

func newTestPool(t *testing.T) (*Pool, *token.MemoryResolver) {
	t.Helper()
	owners := ownership.NewLedger()
	require.NoError(t, owners.CreateAsset(ownership.Asset{ID: testAsset}))
	require.NoError(t, owners.RegisterOwnership(testAsset,
		[]ownership.Address{"alice", "bob", "carol"},
		[]uint64{50, 40, 10},
		[]uint64{500, 400, 100}))

	payments := token.NewMemoryResolver()
	usd := payments.Register("USD")
	usd.Credit("payer", 1_000_000)
	usd.Approve("payer", 1_000_000)

	return NewPool(owners, payments), payments
}

func TestReceive(t *testing.T) {
	p, payments := newTestPool(t)

	require.NoError(t, p.Receive("payer", testAsset, "USD", 1000))

	a := p.AccountInfo(testAsset, "USD")
	assert.Equal(t, uint64(1000), a.TotalReceived)
	assert.Equal(t, uint64(1000), a.Accumulated)
	assert.Equal(t, uint64(0), a.TotalDistributed)
	assert.Equal(t, uint64(1000), payments.Memory("USD").PoolBalance())
}

func TestReceive_Errors(t *testing.T) {
	p, _ := newTestPool(t)

	assert.ErrorIs(t, p.Receive("payer", testAsset, "USD", 0), ErrZeroAmount)
	assert.ErrorIs(t, p.Receive("payer", "ghost", "USD", 10), ErrNoOwnership)
	assert.ErrorIs(t, p.Receive("payer", testAsset, "EUR", 10), token.ErrUnknownCurrency)
	assert.ErrorIs(t, p.Receive("stranger", testAsset, "USD", 10), token.ErrInsufficientAllowance)

	// Failed pulls leave the account untouched.
	assert.Equal(t, Account{}, p.AccountInfo(testAsset, "USD"))
}

func TestDistribute_ExactSplit(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 1000))

	require.NoError(t, p.Distribute("alice", testAsset, "USD", 1000))

	// 50/40/10 of 1000 divides evenly: 500/400/100, no residue.
	assert.Equal(t, uint64(500), p.Pending(testAsset, "alice", "USD"))
	assert.Equal(t, uint64(400), p.Pending(testAsset, "bob", "USD"))
	assert.Equal(t, uint64(100), p.Pending(testAsset, "carol", "USD"))

	a := p.AccountInfo(testAsset, "USD")
	assert.Equal(t, uint64(0), a.Accumulated)
	assert.Equal(t, uint64(1000), a.TotalDistributed)
	assert.Equal(t, uint64(1), a.DistributionCount)
}

func TestDistribute_ResidueStaysInPool(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 105))

	require.NoError(t, p.Distribute("alice", testAsset, "USD", 105))

	// floor(105*50/100)=52, floor(105*40/100)=42, floor(105*10/100)=10
	// distributed = 104, residue 1 stays accumulated.
	assert.Equal(t, uint64(52), p.Pending(testAsset, "alice", "USD"))
	assert.Equal(t, uint64(42), p.Pending(testAsset, "bob", "USD"))
	assert.Equal(t, uint64(10), p.Pending(testAsset, "carol", "USD"))

	a := p.AccountInfo(testAsset, "USD")
	assert.Equal(t, uint64(1), a.Accumulated)
	assert.Equal(t, uint64(104), a.TotalDistributed)
}

func TestDistribute_Errors(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 100))
	require.NoError(t, p.SetMinimumDistribution("alice", testAsset, "USD", 50))

	assert.ErrorIs(t, p.Distribute("alice", testAsset, "USD", 0), ErrZeroAmount)
	assert.ErrorIs(t, p.Distribute("stranger", testAsset, "USD", 60), ErrNotOwner)
	assert.ErrorIs(t, p.Distribute("alice", testAsset, "USD", 101), ErrInsufficientAccumulated)
	assert.ErrorIs(t, p.Distribute("alice", testAsset, "USD", 49), ErrBelowMinimum)

	// Nothing was credited by the failed attempts.
	assert.Equal(t, uint64(0), p.Pending(testAsset, "alice", "USD"))
}

func TestDistributeAll(t *testing.T) {
	p, _ := newTestPool(t)

	// Zero accumulated is a no-op.
	require.NoError(t, p.DistributeAll("alice", testAsset, "USD"))
	assert.Equal(t, uint64(0), p.AccountInfo(testAsset, "USD").DistributionCount)

	require.NoError(t, p.Receive("payer", testAsset, "USD", 300))
	require.NoError(t, p.DistributeAll("alice", testAsset, "USD"))
	assert.Equal(t, uint64(150), p.Pending(testAsset, "alice", "USD"))
	assert.Equal(t, uint64(0), p.AccountInfo(testAsset, "USD").Accumulated)
}

func TestDistributeAll_OwnerGated(t *testing.T) {
	p, _ := newTestPool(t)

	assert.ErrorIs(t, p.DistributeAll("stranger", testAsset, "USD"), ErrNotOwner)
	assert.ErrorIs(t, p.DistributeAll("alice", "ghost", "USD"), ErrNotOwner)

	// The zero-accumulated no-op allocates no account record.
	require.NoError(t, p.DistributeAll("alice", testAsset, "USD"))
	assert.Empty(t, p.accounts)
}

func TestWithdraw(t *testing.T) {
	p, payments := newTestPool(t)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 1000))
	require.NoError(t, p.Distribute("alice", testAsset, "USD", 1000))

	amount, err := p.Withdraw("bob", testAsset, "USD")
	require.NoError(t, err)
	assert.Equal(t, uint64(400), amount)
	assert.Equal(t, uint64(400), payments.Memory("USD").BalanceOf("bob"))

	b := p.BalanceInfo(testAsset, "bob", "USD")
	assert.Equal(t, uint64(0), b.Pending)
	assert.Equal(t, uint64(400), b.TotalEarned)
	assert.Equal(t, uint64(400), b.TotalWithdrawn)

	// Second withdrawal with nothing pending fails.
	_, err = p.Withdraw("bob", testAsset, "USD")
	assert.ErrorIs(t, err, ErrNothingPending)
}

func TestWithdraw_NotOwner(t *testing.T) {
	p, _ := newTestPool(t)
	_, err := p.Withdraw("stranger", testAsset, "USD")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestRouteFee(t *testing.T) {
	p, _ := newTestPool(t)

	// Fee of 333: floor shares 166/133/33 = 332, residue 1 accumulates.
	require.NoError(t, p.RouteFee(testAsset, "USD", 333))

	assert.Equal(t, uint64(166), p.Pending(testAsset, "alice", "USD"))
	assert.Equal(t, uint64(133), p.Pending(testAsset, "bob", "USD"))
	assert.Equal(t, uint64(33), p.Pending(testAsset, "carol", "USD"))

	a := p.AccountInfo(testAsset, "USD")
	assert.Equal(t, uint64(333), a.TotalReceived)
	assert.Equal(t, uint64(332), a.TotalDistributed)
	assert.Equal(t, uint64(1), a.Accumulated)
}

func TestRouteFee_BypassesMinimum(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.SetMinimumDistribution("alice", testAsset, "USD", 10_000))

	require.NoError(t, p.RouteFee(testAsset, "USD", 100))
	assert.Equal(t, uint64(50), p.Pending(testAsset, "alice", "USD"))
}

func TestSetMinimumDistribution_NotOwner(t *testing.T) {
	p, _ := newTestPool(t)
	err := p.SetMinimumDistribution("stranger", testAsset, "USD", 5)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestZeroPercentOwnerGetsNothing(t *testing.T) {
	owners := ownership.NewLedger()
	require.NoError(t, owners.CreateAsset(ownership.Asset{ID: testAsset}))
	require.NoError(t, owners.RegisterOwnership(testAsset,
		[]ownership.Address{"alice", "bob"},
		[]uint64{100, 0},
		[]uint64{10, 0}))

	payments := token.NewMemoryResolver()
	usd := payments.Register("USD")
	usd.Credit("payer", 100)
	usd.Approve("payer", 100)

	p := NewPool(owners, payments)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 100))
	require.NoError(t, p.Distribute("alice", testAsset, "USD", 100))

	assert.Equal(t, uint64(100), p.Pending(testAsset, "alice", "USD"))
	assert.Equal(t, uint64(0), p.Pending(testAsset, "bob", "USD"))
}

func TestPoolSnapshotRestore(t *testing.T) {
	p, _ := newTestPool(t)
	require.NoError(t, p.Receive("payer", testAsset, "USD", 1000))
	require.NoError(t, p.Distribute("alice", testAsset, "USD", 500))

	snap := p.Snapshot()

	owners := ownership.NewLedger()
	restored := NewPool(owners, token.NewMemoryResolver())
	restored.Restore(snap)

	assert.Equal(t, p.AccountInfo(testAsset, "USD"), restored.AccountInfo(testAsset, "USD"))
	assert.Equal(t, p.Pending(testAsset, "alice", "USD"), restored.Pending(testAsset, "alice", "USD"))
}
