// errors.go: structured error taxonomy for node store operations
//
// Follows the teacher library's pattern of typed error codes, retry
// flags, and errors.As-based predicate helpers built on go-errors,
// adapted to the store's own status taxonomy (§6, §7) instead of the
// cache's (BALIOS_CACHE_FULL, BALIOS_LOADER_*, ...).
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package nodestore

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes surfaced by node store operations (§6, §7).
const (
	ErrCodeOutOfMemory   errors.ErrorCode = "NODESTORE_OUT_OF_MEMORY"
	ErrCodeNodeIDUnknown errors.ErrorCode = "NODESTORE_NODE_ID_UNKNOWN"
	ErrCodeNodeIDExists  errors.ErrorCode = "NODESTORE_NODE_ID_EXISTS"
	ErrCodeInternal      errors.ErrorCode = "NODESTORE_INTERNAL"
	ErrCodeBadEncoding   errors.ErrorCode = "NODESTORE_BAD_ENCODING"
)

const (
	msgOutOfMemory   = "node store: allocation failed"
	msgNodeIDUnknown = "node store: node id not found"
	msgNodeIDExists  = "node store: node id already present"
	msgInternal      = "node store: internal consistency error"
	msgBadEncoding   = "node store: malformed node encoding"
)

// errOutOfMemory reports a capacity failure during BorrowCopy or a table
// allocation (§7 Capacity). Insert reports a failed pre-expand as an
// Internal error that wraps this one.
func errOutOfMemory(operation string, cause interface{}) error {
	return errors.NewWithContext(ErrCodeOutOfMemory, msgOutOfMemory, map[string]interface{}{
		"operation": operation,
		"cause":     fmt.Sprintf("%v", cause),
	}).AsRetryable()
}

// errNodeIDUnknown reports a key-state miss (§7 Key state). Never
// retried internally.
func errNodeIDUnknown(id fmt.Stringer) error {
	return errors.NewWithField(ErrCodeNodeIDUnknown, msgNodeIDUnknown, "node_id", id.String())
}

// errNodeIDExists reports that the identifier is already present, or
// that numeric-id assignment exhausted its candidate set (§4.4 insert).
func errNodeIDExists(id fmt.Stringer) error {
	return errors.NewWithField(ErrCodeNodeIDExists, msgNodeIDExists, "node_id", id.String())
}

// errInternal reports a losing CAS: on Replace this specifically
// indicates a stale copy and the error is retryable — the caller is
// expected to re-read via BorrowCopy and retry (§7 Concurrency).
func errInternal(operation, reason string) error {
	return errors.NewWithContext(ErrCodeInternal, msgInternal, map[string]interface{}{
		"operation": operation,
		"reason":    reason,
	}).AsRetryable().WithSeverity("warning")
}

// IsNotFound reports whether err is a NodeIdUnknown error.
func IsNotFound(err error) bool { return errors.HasCode(err, ErrCodeNodeIDUnknown) }

// IsNodeIDExists reports whether err is a NodeIdExists error.
func IsNodeIDExists(err error) bool { return errors.HasCode(err, ErrCodeNodeIDExists) }

// IsOutOfMemory reports whether err is a capacity error.
func IsOutOfMemory(err error) bool { return errors.HasCode(err, ErrCodeOutOfMemory) }

// IsInternal reports whether err is an Internal (CAS-lost) error — the
// caller should retry via BorrowCopy+Replace if this came from Replace.
func IsInternal(err error) bool { return errors.HasCode(err, ErrCodeInternal) }

// IsRetryable reports whether the error can be retried by the caller.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the structured error code from err, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
