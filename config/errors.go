package config

import "errors"

var (
	// ErrQuorumOutOfRange indicates a quorum fraction above 10000 bps.
	ErrQuorumOutOfRange = errors.New("config: quorum fraction out of range (max 10000 bps)")

	// ErrEmergencyQuorumTooHigh indicates the emergency quorum exceeds the default quorum.
	ErrEmergencyQuorumTooHigh = errors.New("config: emergency quorum must not exceed default quorum")

	// ErrExecutionDelayTooShort indicates the execution delay is below the minimum.
	ErrExecutionDelayTooShort = errors.New("config: execution delay too short")

	// ErrInvalidVotingDuration indicates a non-positive voting duration.
	ErrInvalidVotingDuration = errors.New("config: voting durations must be positive")

	// ErrInvalidLicenseWindow indicates a non-positive license proposal window.
	ErrInvalidLicenseWindow = errors.New("config: license proposal windows must be positive")

	// ErrInvalidRoyaltyInterval indicates a non-positive royalty interval.
	ErrInvalidRoyaltyInterval = errors.New("config: royalty interval must be positive")

	// ErrParamsNotFound indicates the parameters file does not exist.
	ErrParamsNotFound = errors.New("config: parameters file not found")

	// ErrInvalidParamLine indicates a line in the parameters file is malformed.
	ErrInvalidParamLine = errors.New("config: invalid parameter line")

	// ErrUnknownParam indicates an unrecognized parameter key.
	ErrUnknownParam = errors.New("config: unknown parameter")
)
