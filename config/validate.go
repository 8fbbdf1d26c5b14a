package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/untrading/libnfr-go/fixmath"
	"github.com/untrading/libnfr-go/royalty"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered, or nil.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if err := validateAddr(cfg.ListenAddr); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListenAddr, err)
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	// Default FR parameters are optional, but when a generation count is
	// set the whole triple must be a valid FRInfo.
	if cfg.DefaultGenerations > 0 {
		info, err := DefaultFRInfo(cfg)
		if err != nil {
			return err
		}
		if err := royalty.ValidateFRInfo(info); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDefaultFR, err)
		}
	}

	return nil
}

// DefaultFRInfo parses the configured default FR parameter triple.
func DefaultFRInfo(cfg Config) (royalty.FRInfo, error) {
	percent, err := fixmath.Parse(cfg.DefaultPercent)
	if err != nil {
		return royalty.FRInfo{}, fmt.Errorf("%w: percent: %w", ErrInvalidDefaultFR, err)
	}
	ratio, err := fixmath.Parse(cfg.DefaultRatio)
	if err != nil {
		return royalty.FRInfo{}, fmt.Errorf("%w: ratio: %w", ErrInvalidDefaultFR, err)
	}
	return royalty.FRInfo{
		NumGenerations:  cfg.DefaultGenerations,
		PercentOfProfit: percent,
		SuccessiveRatio: ratio,
	}, nil
}

// validateAddr checks that addr is a valid host:port address.
func validateAddr(addr string) error {
	_, _, err := net.SplitHostPort(addr)
	return err
}
