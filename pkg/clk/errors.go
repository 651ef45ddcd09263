// Copyright (c) 2023 Seagate Technology LLC and/or its Affiliates

package clk

import "errors"

var (
	ErrUnknownClockID         = errors.New("unknown clock id")
	ErrInvalidParentSelection = errors.New("mux selects an unavailable parent")
	ErrInvalidCandidate       = errors.New("invalid mux candidate")
	ErrCycleDetected          = errors.New("clock tree cycle detected")
	ErrHardwareNotReady       = errors.New("hardware not ready")
	ErrResourceUnavailable    = errors.New("resource unavailable")
	ErrNotGateable            = errors.New("clock has no gate")
	ErrInvalidTree            = errors.New("invalid clock tree")
	ErrWrongKind              = errors.New("operation does not apply to this clock kind")
)
