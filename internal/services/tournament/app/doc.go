// Package app runs a configured tournament end to end.
//
// It resolves the seed, builds the roster, plays the bracket inside a trace
// span and returns a Report with the final standings. Progress is logged
// through the configured logger when verbose output is enabled.
package app
