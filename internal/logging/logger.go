// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ LoggerInterface = (*Logger)(nil)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

// Security returns the security audit logger facet.
func (l *Logger) Security() *SecurityLogger {
	return l.security
}

// NewLogger creates a JSON zap logger at the given level. An unparsable
// level string falls back to error.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: l.Sugar(),
		security:      &SecurityLogger{l: l},
	}
}

// SecurityLogger emits structured audit events for security-relevant
// operations. Events always log at info level regardless of the
// configured level so audit trails survive a quiet configuration.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) AuthnSuccess(subject string) {
	s.event("authn_success", zap.String("subject", subject))
}

func (s *SecurityLogger) AuthnFailure(subject string) {
	s.event("authn_failure", zap.String("subject", subject))
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.event("authz_failure", zap.String("subject", subject), zap.String("action", action))
}

func (s *SecurityLogger) QuotaDenied(tenant string) {
	s.event("quota_denied", zap.String("tenant", tenant))
}

func (s *SecurityLogger) SystemStartup() {
	s.event("system_startup")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("system_shutdown")
}

func (s *SecurityLogger) event(name string, fields ...zap.Field) {
	s.l.Info("security_event", append([]zap.Field{zap.String("event", name)}, fields...)...)
}
