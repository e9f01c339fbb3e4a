package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coiporg/libcoip-go/config"
	"github.com/coiporg/libcoip-go/governance"
	"github.com/coiporg/libcoip-go/ledger"
	"github.com/coiporg/libcoip-go/license"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/token"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "engine.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// newEngine builds an engine with one asset, a distributed revenue balance,
// an active license with reported usage, and an open governance proposal.
func newEngine(t *testing.T) (*ledger.Ledger, ownership.AssetID) {
	t.Helper()
	payments := token.NewMemoryResolver()
	usd := payments.Register("USD")
	usd.Credit("payer", 100_000)
	usd.Approve("payer", 100_000)
	usd.Credit("licensee", 100_000)
	usd.Approve("licensee", 100_000)

	engine, err := ledger.New(payments, nil, config.DefaultParams())
	require.NoError(t, err)
	engine.Clock = func() int64 { return 1_700_000_000 }

	asset, err := engine.RegisterAsset("music", "ipfs://meta", 0,
		[]ownership.Address{"alice", "bob"},
		[]uint64{60, 40},
		[]uint64{600, 400})
	require.NoError(t, err)

	require.NoError(t, engine.ReceiveRevenue("payer", asset, "USD", 1000))
	require.NoError(t, engine.DistributeAllRevenue("alice", asset, "USD"))

	licID, err := engine.CreateLicenseOffer("alice", license.Offer{
		Asset: asset, Licensee: "licensee", RoyaltyRateBps: 500, Currency: "USD",
	})
	require.NoError(t, err)
	require.NoError(t, engine.ExecuteLicense("licensee", licID))
	require.NoError(t, engine.ReportUsage("licensee", licID, 10_000, 3))

	_, err = engine.CreateProposal("bob", asset, governance.CategoryAssetManagement,
		governance.Payload{AssetManagement: &governance.AssetManagementPayload{
			MetadataRef: "ipfs://meta-v2",
		}}, 0, "refresh")
	require.NoError(t, err)

	return engine, asset
}

func TestLoadEmpty(t *testing.T) {
	s := openTestStore(t)

	state, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Ownership)
	assert.Empty(t, state.Licenses.Licenses)
	assert.False(t, state.Paused)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	engine, asset := newEngine(t)
	engine.SetPaused(true)
	snap, err := engine.Snapshot()
	require.NoError(t, err)

	s := openTestStore(t)
	require.NoError(t, s.Save(snap))

	loaded, err := s.Load()
	require.NoError(t, err)

	restored, err := ledger.New(token.NewMemoryResolver(), nil, config.DefaultParams())
	require.NoError(t, err)
	require.NoError(t, restored.Restore(loaded))

	assert.True(t, restored.Paused())

	owners := restored.Ownership()
	assert.Equal(t, uint64(60), owners.Percentage(asset, "alice"))
	assert.Equal(t, uint64(400), owners.Weight(asset, "bob"))
	rec, err := owners.Asset(asset)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://meta", rec.MetadataRef)

	pool := restored.Revenue()
	assert.Equal(t, uint64(600), pool.Pending(asset, "alice", "USD"))
	assert.Equal(t, uint64(400), pool.Pending(asset, "bob", "USD"))
	assert.Equal(t, uint64(1), pool.AccountInfo(asset, "USD").DistributionCount)

	ids := restored.Licenses().ByAsset(asset)
	require.Len(t, ids, 1)
	lic, err := restored.Licenses().Get(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ownership.Address("licensee"), lic.Licensee)
	assert.True(t, lic.Active)
	due, err := restored.Licenses().DueRoyalties(ids[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(500), due)

	// The open proposal survives with its voter set intact.
	assert.Len(t, loaded.Governance.Proposals, 1)
	for id := range loaded.Governance.Proposals {
		assert.False(t, restored.Governance().HasVoted(id, "alice"))
		require.NoError(t, restored.Governance().Vote("alice", id, true, 1_700_000_001))
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	engine, _ := newEngine(t)
	snap, err := engine.Snapshot()
	require.NoError(t, err)

	s := openTestStore(t)
	require.NoError(t, s.Save(snap))

	// A fresh engine's snapshot wipes the earlier records.
	empty, err := ledger.New(token.NewMemoryResolver(), nil, config.DefaultParams())
	require.NoError(t, err)
	emptySnap, err := empty.Snapshot()
	require.NoError(t, err)
	require.NoError(t, s.Save(emptySnap))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Ownership)
	assert.Empty(t, loaded.Licenses.Licenses)
	assert.Empty(t, loaded.Governance.Proposals)
}

func TestReopenPersists(t *testing.T) {
	engine, asset := newEngine(t)
	snap, err := engine.Snapshot()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "engine.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(snap))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Contains(t, loaded.Ownership, asset)
	assert.Len(t, loaded.Licenses.Licenses, 1)
}
