// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "errors"

// ErrDevice matches every *DeviceError via errors.Is.
var ErrDevice = errors.New("gpu: device error")

// DeviceError wraps a failure of the underlying GPU command interface.
// There is no degraded fallback for these; callers should treat them as
// fatal.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	if e.Err == nil {
		return "gpu: " + e.Op + " failed"
	}
	return "gpu: " + e.Op + ": " + e.Err.Error()
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDevice.
func (e *DeviceError) Is(target error) bool { return target == ErrDevice }

// StatusError reports a failed compile or link along with the driver's
// info log.
type StatusError struct {
	Log string
}

func (e *StatusError) Error() string {
	if e.Log == "" {
		return "gpu: status check failed"
	}
	return "gpu: " + e.Log
}
