package common

import (
	"github.com/rs/zerolog"
)

// logger backs GetLogger/SetLogger: the one logger every package reaches
// for to report a documented non-fatal condition (a tokenizer span that
// failed to encode, an unrecognized pinyin syllable) rather than aborting
// the request. Defaults to a no-op logger so packages stay silent until
// cmd/ttsserver wires a real one at startup.
var logger zerolog.Logger = zerolog.Nop()

// SetLogger installs the logger every package's non-fatal branches report
// through. Called once, at process startup.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// GetLogger returns the logger installed by SetLogger.
func GetLogger() zerolog.Logger {
	return logger
}