package ownership

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	require.NoError(t, l.CreateAsset(Asset{ID: "asset-1", Type: "music", TotalSupply: 1000}))
	return l
}

func registerThree(t *testing.T, l *Ledger) {
	t.Helper()
	err := l.RegisterOwnership("asset-1",
		[]Address{"alice", "bob", "carol"},
		[]uint64{60, 30, 10},
		[]uint64{600, 300, 100})
	require.NoError(t, err)
}

func percentageSum(l *Ledger, asset AssetID) uint64 {
	var sum uint64
	for _, addr := range l.Owners(asset) {
		sum += l.Percentage(asset, addr)
	}
	return sum
}

func TestRegisterOwnership(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
	assert.Equal(t, 3, l.OwnerCount("asset-1"))
	assert.True(t, l.IsOwner("asset-1", "alice"))
	assert.Equal(t, uint64(60), l.Percentage("asset-1", "alice"))
	assert.Equal(t, uint64(300), l.Weight("asset-1", "bob"))
	assert.Equal(t, uint64(1000), l.TotalWeight("asset-1"))
}

func TestRegisterOwnership_Replaces(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	err := l.RegisterOwnership("asset-1",
		[]Address{"dave"}, []uint64{100}, []uint64{50})
	require.NoError(t, err)

	assert.Equal(t, 1, l.OwnerCount("asset-1"))
	assert.False(t, l.IsOwner("asset-1", "alice"))
	assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
}

func TestRegisterOwnership_Validation(t *testing.T) {
	l := newTestLedger(t)

	tests := []struct {
		name    string
		owners  []Address
		pcts    []uint64
		weights []uint64
		wantErr error
	}{
		{"length mismatch", []Address{"a", "b"}, []uint64{50}, []uint64{1, 2}, ErrLengthMismatch},
		{"empty list", []Address{}, []uint64{}, []uint64{}, ErrNoOwners},
		{"sum under 100", []Address{"a", "b"}, []uint64{50, 40}, []uint64{1, 2}, ErrPercentageSum},
		{"sum over 100", []Address{"a", "b"}, []uint64{60, 50}, []uint64{1, 2}, ErrPercentageSum},
		{"duplicate owner", []Address{"a", "a"}, []uint64{50, 50}, []uint64{1, 2}, ErrDuplicateOwner},
		{"empty address", []Address{"a", ""}, []uint64{50, 50}, []uint64{1, 2}, ErrEmptyAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.RegisterOwnership("asset-1", tt.owners, tt.pcts, tt.weights)
			assert.ErrorIs(t, err, tt.wantErr)
			// No partial writes on failure.
			assert.Equal(t, 0, l.OwnerCount("asset-1"))
		})
	}
}

func TestRegisterOwnership_UnknownAsset(t *testing.T) {
	l := NewLedger()
	err := l.RegisterOwnership("missing", []Address{"a"}, []uint64{100}, []uint64{1})
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestCreateAsset_Duplicate(t *testing.T) {
	l := newTestLedger(t)
	err := l.CreateAsset(Asset{ID: "asset-1"})
	assert.ErrorIs(t, err, ErrAssetExists)
}

func TestCreateAsset_EmptyID(t *testing.T) {
	l := NewLedger()
	assert.ErrorIs(t, l.CreateAsset(Asset{}), ErrEmptyAssetID)
}

func TestTransferShare(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	// 60/30/10 with weights 600/300/100; alice moves 10 points to bob.
	require.NoError(t, l.TransferShare("asset-1", "alice", "bob", 10))

	assert.Equal(t, uint64(50), l.Percentage("asset-1", "alice"))
	assert.Equal(t, uint64(40), l.Percentage("asset-1", "bob"))
	assert.Equal(t, uint64(10), l.Percentage("asset-1", "carol"))

	// weightMoved = floor(600 * 10 / 60) = 100
	assert.Equal(t, uint64(500), l.Weight("asset-1", "alice"))
	assert.Equal(t, uint64(400), l.Weight("asset-1", "bob"))

	// Conservation.
	assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
	assert.Equal(t, uint64(1000), l.TotalWeight("asset-1"))
}

func TestTransferShare_NewOwner(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	require.NoError(t, l.TransferShare("asset-1", "alice", "dave", 15))

	assert.Equal(t, 4, l.OwnerCount("asset-1"))
	assert.True(t, l.IsOwner("asset-1", "dave"))
	assert.Equal(t, uint64(15), l.Percentage("asset-1", "dave"))
	// floor(600 * 15 / 60) = 150
	assert.Equal(t, uint64(150), l.Weight("asset-1", "dave"))
	assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
}

func TestTransferShare_WeightRounding(t *testing.T) {
	l := newTestLedger(t)
	err := l.RegisterOwnership("asset-1",
		[]Address{"alice", "bob"}, []uint64{70, 30}, []uint64{100, 0})
	require.NoError(t, err)

	// floor(100 * 23 / 70) = 32; moved weight never exceeds sender's.
	require.NoError(t, l.TransferShare("asset-1", "alice", "bob", 23))
	assert.Equal(t, uint64(68), l.Weight("asset-1", "alice"))
	assert.Equal(t, uint64(32), l.Weight("asset-1", "bob"))
	assert.Equal(t, uint64(100), l.TotalWeight("asset-1"))
}

func TestTransferShare_ToZeroKeepsEnumeration(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	require.NoError(t, l.TransferShare("asset-1", "carol", "alice", 10))

	assert.Equal(t, uint64(0), l.Percentage("asset-1", "carol"))
	// Append-only owner sets: carol stays enumerated and keeps membership.
	assert.Equal(t, 3, l.OwnerCount("asset-1"))
	assert.True(t, l.IsOwner("asset-1", "carol"))
	assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
}

func TestTransferShare_Errors(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)

	tests := []struct {
		name    string
		from    Address
		to      Address
		pct     uint64
		wantErr error
	}{
		{"insufficient share", "carol", "alice", 11, ErrInsufficientShare},
		{"not an owner", "mallory", "alice", 5, ErrNotOwner},
		{"zero percentage", "alice", "bob", 0, ErrZeroPercentage},
		{"self transfer", "alice", "alice", 5, ErrSelfTransfer},
		{"empty recipient", "alice", "", 5, ErrEmptyAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.TransferShare("asset-1", tt.from, tt.to, tt.pct)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, uint64(100), percentageSum(l, "asset-1"))
		})
	}
}

func TestGovernanceRights(t *testing.T) {
	l := newTestLedger(t)
	err := l.RegisterOwnership("asset-1",
		[]Address{"alice", "bob"}, []uint64{50, 50}, []uint64{100, 0})
	require.NoError(t, err)

	assert.True(t, l.HasGovernanceRights("asset-1", "alice"))
	assert.False(t, l.HasGovernanceRights("asset-1", "bob"))
	assert.False(t, l.HasGovernanceRights("asset-1", "mallory"))
}

func TestHashText(t *testing.T) {
	h1 := HashText("ipfs://terms-v1")
	h2 := HashText("ipfs://terms-v2")
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, HashText("ipfs://terms-v1"))
}

func TestSnapshotRestore(t *testing.T) {
	l := newTestLedger(t)
	registerThree(t, l)
	require.NoError(t, l.TransferShare("asset-1", "alice", "dave", 15))

	snap := l.Snapshot()

	restored := NewLedger()
	restored.Restore(snap)

	assert.Equal(t, l.Owners("asset-1"), restored.Owners("asset-1"))
	assert.Equal(t, uint64(45), restored.Percentage("asset-1", "alice"))
	assert.Equal(t, uint64(1000), restored.TotalWeight("asset-1"))

	a, err := restored.Asset("asset-1")
	require.NoError(t, err)
	assert.Equal(t, "music", a.Type)
}
