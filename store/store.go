// Package store persists the full engine state in a bbolt database: one
// bucket per record family, gob-encoded records, composite keys joined with
// a NUL separator where a record is identified by more than one field.
//
// Save rewrites the whole state; Load reads it back for ledger.Restore.
// The engine mutates in memory, so persistence is checkpoint-style rather
// than write-through.
package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/coiporg/libcoip-go/governance"
	"github.com/coiporg/libcoip-go/ledger"
	"github.com/coiporg/libcoip-go/license"
	"github.com/coiporg/libcoip-go/ownership"
	"github.com/coiporg/libcoip-go/revenue"
)

var (
	bucketAssets           = []byte("assets")
	bucketRevenueAccounts  = []byte("revenue_accounts")
	bucketRevenueBalances  = []byte("revenue_balances")
	bucketLicenses         = []byte("licenses")
	bucketLicenseTerms     = []byte("license_terms")
	bucketRoyalties        = []byte("royalties")
	bucketLicenseProposals = []byte("license_proposals")
	bucketGovProposals     = []byte("governance_proposals")
	bucketGovSettings      = []byte("governance_settings")
	bucketMeta             = []byte("meta")
)

var allBuckets = [][]byte{
	bucketAssets,
	bucketRevenueAccounts,
	bucketRevenueBalances,
	bucketLicenses,
	bucketLicenseTerms,
	bucketRoyalties,
	bucketLicenseProposals,
	bucketGovProposals,
	bucketGovSettings,
	bucketMeta,
}

var keyPaused = []byte("paused")

// Store wraps a bbolt database holding one engine's state.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("store: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

var keySep = []byte{0}

// compositeKey joins key parts with a NUL separator. The parts are
// addresses, asset IDs and currency codes, none of which contain NUL.
func compositeKey(parts ...string) []byte {
	var out [][]byte
	for _, p := range parts {
		out = append(out, []byte(p))
	}
	return bytes.Join(out, keySep)
}

// splitKey undoes compositeKey.
func splitKey(k []byte) []string {
	parts := bytes.Split(k, keySep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// putAll gob-encodes every record of m into the bucket under the key
// produced by keyFn.
func putAll[K comparable, V any](b *bbolt.Bucket, m map[K]V, keyFn func(K) []byte) error {
	for k, v := range m {
		data, err := encodeGob(v)
		if err != nil {
			return fmt.Errorf("store: encode record: %w", err)
		}
		if err := b.Put(keyFn(k), data); err != nil {
			return fmt.Errorf("store: put record: %w", err)
		}
	}
	return nil
}

// clearBucket recreates the bucket empty.
func clearBucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	if err := tx.DeleteBucket(name); err != nil {
		return nil, fmt.Errorf("store: clear bucket %q: %w", name, err)
	}
	b, err := tx.CreateBucket(name)
	if err != nil {
		return nil, fmt.Errorf("store: recreate bucket %q: %w", name, err)
	}
	return b, nil
}

// Save checkpoints the full engine state, replacing whatever the database
// held before, in one write transaction.
func (s *Store) Save(state ledger.State) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := clearBucket(tx, bucketAssets)
		if err != nil {
			return err
		}
		if err := putAll(b, state.Ownership, func(id ownership.AssetID) []byte {
			return []byte(id)
		}); err != nil {
			return err
		}

		if b, err = clearBucket(tx, bucketRevenueAccounts); err != nil {
			return err
		}
		if err := putAll(b, state.Revenue.Accounts, func(k revenue.AccountKey) []byte {
			return compositeKey(string(k.Asset), k.Currency)
		}); err != nil {
			return err
		}

		if b, err = clearBucket(tx, bucketRevenueBalances); err != nil {
			return err
		}
		if err := putAll(b, state.Revenue.Balances, func(k revenue.BalanceKey) []byte {
			return compositeKey(string(k.Asset), string(k.Owner), k.Currency)
		}); err != nil {
			return err
		}

		stringKey := func(id string) []byte { return []byte(id) }

		if b, err = clearBucket(tx, bucketLicenses); err != nil {
			return err
		}
		if err := putAll(b, state.Licenses.Licenses, stringKey); err != nil {
			return err
		}
		if b, err = clearBucket(tx, bucketLicenseTerms); err != nil {
			return err
		}
		if err := putAll(b, state.Licenses.Terms, stringKey); err != nil {
			return err
		}
		if b, err = clearBucket(tx, bucketRoyalties); err != nil {
			return err
		}
		if err := putAll(b, state.Licenses.Royalties, stringKey); err != nil {
			return err
		}
		if b, err = clearBucket(tx, bucketLicenseProposals); err != nil {
			return err
		}
		if err := putAll(b, state.Licenses.Proposals, stringKey); err != nil {
			return err
		}

		if b, err = clearBucket(tx, bucketGovProposals); err != nil {
			return err
		}
		if err := putAll(b, state.Governance.Proposals, stringKey); err != nil {
			return err
		}
		if b, err = clearBucket(tx, bucketGovSettings); err != nil {
			return err
		}
		if err := putAll(b, state.Governance.Settings, func(id ownership.AssetID) []byte {
			return []byte(id)
		}); err != nil {
			return err
		}

		paused := []byte{0}
		if state.Paused {
			paused[0] = 1
		}
		if err := tx.Bucket(bucketMeta).Put(keyPaused, paused); err != nil {
			return fmt.Errorf("store: put paused flag: %w", err)
		}
		return nil
	})
}

// loadAll decodes every record of the bucket into m under the key produced
// by keyFn from the raw bucket key.
func loadAll[K comparable, V any](b *bbolt.Bucket, m map[K]V, keyFn func([]byte) (K, error)) error {
	return b.ForEach(func(k, v []byte) error {
		key, err := keyFn(k)
		if err != nil {
			return err
		}
		var rec V
		if err := decodeGob(v, &rec); err != nil {
			return fmt.Errorf("store: decode record: %w", err)
		}
		m[key] = rec
		return nil
	})
}

// Load reads the full engine state back. An empty database yields an empty
// state.
func (s *Store) Load() (ledger.State, error) {
	state := ledger.State{
		Ownership: make(map[ownership.AssetID]ownership.AssetState),
		Revenue: revenue.PoolState{
			Accounts: make(map[revenue.AccountKey]revenue.Account),
			Balances: make(map[revenue.BalanceKey]revenue.Balance),
		},
		Licenses: license.RegistryState{
			Licenses:  make(map[string]license.License),
			Terms:     make(map[string]license.Terms),
			Royalties: make(map[string]license.RoyaltySchedule),
			Proposals: make(map[string]license.Proposal),
		},
		Governance: governance.EngineState{
			Proposals: make(map[string]governance.Proposal),
			Settings:  make(map[ownership.AssetID]governance.Settings),
		},
	}

	assetKey := func(k []byte) (ownership.AssetID, error) {
		return ownership.AssetID(k), nil
	}
	stringKey := func(k []byte) (string, error) {
		return string(k), nil
	}

	err := s.db.View(func(tx *bbolt.Tx) error {
		if err := loadAll(tx.Bucket(bucketAssets), state.Ownership, assetKey); err != nil {
			return err
		}

		err := loadAll(tx.Bucket(bucketRevenueAccounts), state.Revenue.Accounts, func(k []byte) (revenue.AccountKey, error) {
			parts := splitKey(k)
			if len(parts) != 2 {
				return revenue.AccountKey{}, fmt.Errorf("store: malformed account key %q", k)
			}
			return revenue.AccountKey{Asset: ownership.AssetID(parts[0]), Currency: parts[1]}, nil
		})
		if err != nil {
			return err
		}

		err = loadAll(tx.Bucket(bucketRevenueBalances), state.Revenue.Balances, func(k []byte) (revenue.BalanceKey, error) {
			parts := splitKey(k)
			if len(parts) != 3 {
				return revenue.BalanceKey{}, fmt.Errorf("store: malformed balance key %q", k)
			}
			return revenue.BalanceKey{
				Asset:    ownership.AssetID(parts[0]),
				Owner:    ownership.Address(parts[1]),
				Currency: parts[2],
			}, nil
		})
		if err != nil {
			return err
		}

		if err := loadAll(tx.Bucket(bucketLicenses), state.Licenses.Licenses, stringKey); err != nil {
			return err
		}
		if err := loadAll(tx.Bucket(bucketLicenseTerms), state.Licenses.Terms, stringKey); err != nil {
			return err
		}
		if err := loadAll(tx.Bucket(bucketRoyalties), state.Licenses.Royalties, stringKey); err != nil {
			return err
		}
		if err := loadAll(tx.Bucket(bucketLicenseProposals), state.Licenses.Proposals, stringKey); err != nil {
			return err
		}
		if err := loadAll(tx.Bucket(bucketGovProposals), state.Governance.Proposals, stringKey); err != nil {
			return err
		}
		if err := loadAll(tx.Bucket(bucketGovSettings), state.Governance.Settings, assetKey); err != nil {
			return err
		}

		state.Paused = bytes.Equal(tx.Bucket(bucketMeta).Get(keyPaused), []byte{1})
		return nil
	})
	if err != nil {
		return ledger.State{}, err
	}
	return state, nil
}
