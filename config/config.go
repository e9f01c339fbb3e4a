// Package config holds the tunable engine parameters: governance quorum
// defaults and windows, the license approval fee threshold, and royalty
// scheduling intervals. Parameters are stored as a plain key=value file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Params are the engine parameters. Durations and windows are in seconds,
// quorum fractions in basis points (10000 = 100%).
type Params struct {
	// ApprovalFeeThreshold is the license fee above which owner approval
	// is always required, regardless of license type.
	ApprovalFeeThreshold uint64

	// RoyaltyInterval is the royalty payment interval; a license's first
	// due date is activation time plus one interval.
	RoyaltyInterval int64

	// LicenseVotingWindow bounds voting on license proposals.
	LicenseVotingWindow int64

	// LicenseExecutionWindow bounds execution after a license proposal's
	// voting window closes.
	LicenseExecutionWindow int64

	// DefaultQuorumBps applies to asset-management and revenue-policy
	// proposals.
	DefaultQuorumBps uint64

	// EmergencyQuorumBps applies to emergency proposals; must not exceed
	// DefaultQuorumBps.
	EmergencyQuorumBps uint64

	// LicenseQuorumBps applies to the license registry's proposal flow.
	LicenseQuorumBps uint64

	// DefaultVotingDuration applies when a proposal does not override it.
	DefaultVotingDuration int64

	// EmergencyVotingDuration applies to emergency proposals that do not
	// override the duration.
	EmergencyVotingDuration int64

	// ExecutionDelay is the window after the voting deadline during which
	// a passed proposal may execute.
	ExecutionDelay int64
}

// MinExecutionDelay is the smallest permitted execution delay.
const MinExecutionDelay = 3600 // 1 hour

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		ApprovalFeeThreshold:    500,
		RoyaltyInterval:         30 * 24 * 3600,
		LicenseVotingWindow:     3 * 24 * 3600,
		LicenseExecutionWindow:  24 * 3600,
		DefaultQuorumBps:        5000,
		EmergencyQuorumBps:      3000,
		LicenseQuorumBps:        5000,
		DefaultVotingDuration:   3 * 24 * 3600,
		EmergencyVotingDuration: 24 * 3600,
		ExecutionDelay:          24 * 3600,
	}
}

// ValidateParams checks that all parameters are within acceptable ranges and
// returns the first error encountered, or nil if valid.
func ValidateParams(p Params) error {
	if p.DefaultQuorumBps > 10000 || p.EmergencyQuorumBps > 10000 || p.LicenseQuorumBps > 10000 {
		return ErrQuorumOutOfRange
	}
	if p.EmergencyQuorumBps > p.DefaultQuorumBps {
		return ErrEmergencyQuorumTooHigh
	}
	if p.ExecutionDelay < MinExecutionDelay {
		return fmt.Errorf("%w: minimum %d seconds", ErrExecutionDelayTooShort, MinExecutionDelay)
	}
	if p.DefaultVotingDuration <= 0 || p.EmergencyVotingDuration <= 0 {
		return ErrInvalidVotingDuration
	}
	if p.LicenseVotingWindow <= 0 || p.LicenseExecutionWindow <= 0 {
		return ErrInvalidLicenseWindow
	}
	if p.RoyaltyInterval <= 0 {
		return ErrInvalidRoyaltyInterval
	}
	return nil
}

// SaveParams writes parameters to path as key=value lines, creating parent
// directories as needed.
func SaveParams(path string, p Params) error {
	kv := encodeParams(p)
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# libcoip engine parameters\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%d\n", k, kv[k])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write params: %w", err)
	}
	return nil
}

// LoadParams reads parameters from path. Missing keys keep their defaults.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Params{}, fmt.Errorf("%w: %s", ErrParamsNotFound, path)
		}
		return Params{}, fmt.Errorf("config: read params: %w", err)
	}

	p := DefaultParams()
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Params{}, fmt.Errorf("%w: line %d: %q", ErrInvalidParamLine, i+1, line)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 63)
		if err != nil {
			return Params{}, fmt.Errorf("%w: line %d: %q", ErrInvalidParamLine, i+1, line)
		}
		if err := setParam(&p, strings.TrimSpace(key), n); err != nil {
			return Params{}, fmt.Errorf("%w: line %d: %q", err, i+1, line)
		}
	}
	return p, nil
}

func encodeParams(p Params) map[string]uint64 {
	return map[string]uint64{
		"approval_fee_threshold":    p.ApprovalFeeThreshold,
		"royalty_interval":          uint64(p.RoyaltyInterval),
		"license_voting_window":     uint64(p.LicenseVotingWindow),
		"license_execution_window":  uint64(p.LicenseExecutionWindow),
		"default_quorum_bps":        p.DefaultQuorumBps,
		"emergency_quorum_bps":      p.EmergencyQuorumBps,
		"license_quorum_bps":        p.LicenseQuorumBps,
		"default_voting_duration":   uint64(p.DefaultVotingDuration),
		"emergency_voting_duration": uint64(p.EmergencyVotingDuration),
		"execution_delay":           uint64(p.ExecutionDelay),
	}
}

func setParam(p *Params, key string, value uint64) error {
	switch key {
	case "approval_fee_threshold":
		p.ApprovalFeeThreshold = value
	case "royalty_interval":
		p.RoyaltyInterval = int64(value)
	case "license_voting_window":
		p.LicenseVotingWindow = int64(value)
	case "license_execution_window":
		p.LicenseExecutionWindow = int64(value)
	case "default_quorum_bps":
		p.DefaultQuorumBps = value
	case "emergency_quorum_bps":
		p.EmergencyQuorumBps = value
	case "license_quorum_bps":
		p.LicenseQuorumBps = value
	case "default_voting_duration":
		p.DefaultVotingDuration = int64(value)
	case "emergency_voting_duration":
		p.EmergencyVotingDuration = int64(value)
	case "execution_delay":
		p.ExecutionDelay = int64(value)
	default:
		return ErrUnknownParam
	}
	return nil
}
