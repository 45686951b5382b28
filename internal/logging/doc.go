// Package logging wraps log/slog with the handlers and attribute helpers
// StarSound uses everywhere.
//
// Components receive a *slog.Logger and tag their records with a
// component attribute via NewComponentLogger. Output is either a
// human-oriented console format (colorized when stdout is a terminal) or
// line-delimited JSON for log files.
package logging
