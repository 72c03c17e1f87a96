package logger

import "go.uber.org/zap"

// Symbol-aware logging helpers.
// These functions log with the symbol as a structured field, not in the message.
//
// Usage:
//
//	// Instead of:
//	logger.Infow(logger.SymbolSession + " participant joined", "participant_id", id)
//
//	// Use:
//	logger.SessionInfow("participant joined", "participant_id", id)
//
// This makes logs queryable by symbol and keeps messages clean.

// Domain symbols, one per major subsystem that logs through this package.
const (
	SymbolSession     = "◉" // session lifecycle: join, leave, crash
	SymbolSync        = "⇄" // intent fan-out and client reconcile
	SymbolMaterialize = "⊞" // filesystem materializer walk
	SymbolTransport   = "≈" // websocket frame send/receive
)

// SessionInfow logs an info message with the session symbol (◉)
func SessionInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolSession}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// SessionWarnw logs a warning message with the session symbol (◉)
func SessionWarnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolSession}, keysAndValues...)
		Logger.Warnw(msg, fields...)
	}
}

// SessionErrorw logs an error message with the session symbol (◉)
func SessionErrorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolSession}, keysAndValues...)
		Logger.Errorw(msg, fields...)
	}
}

// SyncDebugw logs a debug message with the sync symbol (⇄)
// Used for intent fan-out and client-side reconcile steps.
func SyncDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolSync}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// SyncInfow logs an info message with the sync symbol (⇄)
func SyncInfow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolSync}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}

// MaterializeDebugw logs a debug message with the materializer symbol (⊞)
func MaterializeDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolMaterialize}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// TransportDebugw logs a debug message with the transport symbol (≈)
func TransportDebugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, SymbolTransport}, keysAndValues...)
		Logger.Debugw(msg, fields...)
	}
}

// WithSymbol returns a logger with the given symbol as a field.
// For ad-hoc symbol usage not covered by the helpers above.
//
// Example:
//
//	symbolLogger := logger.WithSymbol(logger.SymbolMaterialize)
//	symbolLogger.Infow("walking directory", "path", dir)
func WithSymbol(symbol string) *zap.SugaredLogger {
	return Logger.With(FieldSymbol, symbol)
}

// SymbolInfow logs with any symbol - for dynamic symbol usage
func SymbolInfow(symbol, msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		fields := append([]interface{}{FieldSymbol, symbol}, keysAndValues...)
		Logger.Infow(msg, fields...)
	}
}
