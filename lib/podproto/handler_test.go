// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podproto

import (
	"context"
	"errors"
	"testing"

	"github.com/graphpod/pod/lib/remap"
)

func TestRegistryLookupAndDispatch(t *testing.T) {
	r := NewRegistry()
	var gotObjectID uint32
	r.Handle(1, 0, 2, func(ctx context.Context, client *Client, objectID uint32, body []byte) error {
		gotObjectID = objectID
		return nil
	})

	if _, ok := r.Lookup(1, 0, 2); !ok {
		t.Fatalf("Lookup(1, 0, 2) not found")
	}

	global := remap.NewGlobalTypeTable([]string{"Spa:Id"})
	client := NewClient(global)
	if err := r.Dispatch(context.Background(), client, 1, 0, 2, 42, 7, nil); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if gotObjectID != 42 {
		t.Fatalf("objectID = %d, want 42", gotObjectID)
	}
}

func TestRegistryHandlePanicsOnDuplicate(t *testing.T) {
	r := NewRegistry()
	r.Handle(1, 0, 2, func(context.Context, *Client, uint32, []byte) error { return nil })

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate Handle")
		}
	}()
	r.Handle(1, 0, 2, func(context.Context, *Client, uint32, []byte) error { return nil })
}

func TestDispatchUnknownInterfaceVersionIsVersionMismatch(t *testing.T) {
	r := NewRegistry()
	r.Handle(1, 0, 2, func(context.Context, *Client, uint32, []byte) error { return nil })

	global := remap.NewGlobalTypeTable(nil)
	client := NewClient(global)
	err := r.Dispatch(context.Background(), client, 1, 1, 2, 0, 0, nil)
	var coreErr *CoreError
	if !errors.As(err, &coreErr) || coreErr.Errno != ErrVersionMismatch {
		t.Fatalf("err = %v, want CoreError{Errno: VERSION_MISMATCH}", err)
	}
}

func TestDispatchUnknownOpcodeIsProtocolError(t *testing.T) {
	r := NewRegistry()
	r.Handle(1, 0, 2, func(context.Context, *Client, uint32, []byte) error { return nil })

	global := remap.NewGlobalTypeTable(nil)
	client := NewClient(global)
	err := r.Dispatch(context.Background(), client, 1, 0, 99, 0, 0, nil)
	var coreErr *CoreError
	if !errors.As(err, &coreErr) || coreErr.Errno != ErrProtocolError {
		t.Fatalf("err = %v, want CoreError{Errno: PROTOCOL_ERROR}", err)
	}
}

func TestDispatchHandlerErrorBecomesCoreError(t *testing.T) {
	r := NewRegistry()
	sentinel := errors.New("boom")
	r.Handle(1, 0, 2, func(context.Context, *Client, uint32, []byte) error { return sentinel })

	global := remap.NewGlobalTypeTable(nil)
	client := NewClient(global)
	err := r.Dispatch(context.Background(), client, 1, 0, 2, 5, 9, nil)
	var coreErr *CoreError
	if !errors.As(err, &coreErr) {
		t.Fatalf("err = %v, want *CoreError", err)
	}
	if coreErr.TargetID != 5 || coreErr.Seq != 9 || coreErr.Errno != ErrProtocolError {
		t.Fatalf("coreErr = %+v, want target 5 seq 9 PROTOCOL_ERROR", coreErr)
	}
}
