// Package utils provides internal utility functions for the fleet tracker.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Time formatting helpers
//   - Great-circle distance and coordinate clamping
//   - A Clock abstraction so tickers can be driven by tests
package utils
