// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package remap

import "errors"

// errUnknownType is wrapped by every lookup failure in
// [ClientTypeTable]; test with errors.Is(err, ErrUnknownType).
var errUnknownType = errors.New("remap: unknown type")

// ErrUnknownType is returned (wrapped) when a client index or global
// id has no counterpart in the current [ClientTypeTable].
var ErrUnknownType = errUnknownType
