// logging_zap.go: structured Logger adapter backed by zap
//
// Grounded on edirooss-zmux-server, the one other repo in the retrieval
// pack with a genuine structured-logging dependency (go.uber.org/zap),
// wired here so a host that already runs zap doesn't have to hand-roll
// an adapter for the store's minimal Logger interface.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

import "go.uber.org/zap"

// ZapLogger adapts a *zap.Logger to the store's Logger interface.
type ZapLogger struct {
	log *zap.Logger
}

// NewZapLogger wraps an existing zap logger. Passing nil uses
// zap.NewNop(), matching NoOpLogger's behavior.
func NewZapLogger(log *zap.Logger) *ZapLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapLogger{log: log}
}

func (z *ZapLogger) Debug(msg string, keyvals ...interface{}) {
	z.log.Sugar().Debugw(msg, keyvals...)
}

func (z *ZapLogger) Info(msg string, keyvals ...interface{}) {
	z.log.Sugar().Infow(msg, keyvals...)
}

func (z *ZapLogger) Warn(msg string, keyvals ...interface{}) {
	z.log.Sugar().Warnw(msg, keyvals...)
}

func (z *ZapLogger) Error(msg string, keyvals ...interface{}) {
	z.log.Sugar().Errorw(msg, keyvals...)
}
