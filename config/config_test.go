package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, uint64(500), p.ApprovalFeeThreshold)
	assert.Equal(t, uint64(5000), p.DefaultQuorumBps)
	assert.Equal(t, uint64(3000), p.EmergencyQuorumBps)
	assert.Equal(t, int64(3*24*3600), p.DefaultVotingDuration)
	assert.Equal(t, int64(24*3600), p.ExecutionDelay)
	assert.NoError(t, ValidateParams(p))
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{"quorum over 10000", func(p *Params) { p.DefaultQuorumBps = 10001 }, ErrQuorumOutOfRange},
		{"emergency above default", func(p *Params) { p.EmergencyQuorumBps = 6000 }, ErrEmergencyQuorumTooHigh},
		{"delay below minimum", func(p *Params) { p.ExecutionDelay = 3599 }, ErrExecutionDelayTooShort},
		{"zero voting duration", func(p *Params) { p.DefaultVotingDuration = 0 }, ErrInvalidVotingDuration},
		{"zero license window", func(p *Params) { p.LicenseVotingWindow = 0 }, ErrInvalidLicenseWindow},
		{"zero royalty interval", func(p *Params) { p.RoyaltyInterval = 0 }, ErrInvalidRoyaltyInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.ErrorIs(t, ValidateParams(p), tt.wantErr)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params")

	p := DefaultParams()
	p.ApprovalFeeThreshold = 750
	p.EmergencyVotingDuration = 6 * 3600
	require.NoError(t, SaveParams(path, p))

	loaded, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestSaveParamsCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "params")
	require.NoError(t, SaveParams(path, DefaultParams()))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadParamsNotFound(t *testing.T) {
	_, err := LoadParams(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrParamsNotFound)
}

func TestLoadParamsPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params")
	require.NoError(t, os.WriteFile(path, []byte("# comment\napproval_fee_threshold=900\n"), 0600))

	p, err := LoadParams(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(900), p.ApprovalFeeThreshold)
	assert.Equal(t, DefaultParams().DefaultQuorumBps, p.DefaultQuorumBps)
}

func TestLoadParamsInvalidLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no equals", "approval_fee_threshold 900", ErrInvalidParamLine},
		{"non-numeric", "approval_fee_threshold=abc", ErrInvalidParamLine},
		{"unknown key", "mystery_knob=1", ErrUnknownParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "params")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))
			_, err := LoadParams(path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
