// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podcapture

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
)

// EncryptWriter wraps w so that every byte written to it is age
// ciphertext addressed to recipient (an age1... public key string).
// Close the returned writer when done to flush the final ciphertext
// block -- it does not close w.
//
// Use this to wrap the underlying file a [Writer] writes frames to,
// when CaptureConfig.RequireEncryption (or an explicit recipient) is
// configured.
func EncryptWriter(w io.Writer, recipient string) (io.WriteCloser, error) {
	parsedRecipient, err := age.ParseX25519Recipient(recipient)
	if err != nil {
		return nil, fmt.Errorf("podcapture: parsing encryption recipient: %w", err)
	}

	encryptWriter, err := age.Encrypt(w, parsedRecipient)
	if err != nil {
		return nil, fmt.Errorf("podcapture: creating age encryptor: %w", err)
	}
	return encryptWriter, nil
}

// DecryptReader wraps r, an age-ciphertext capture file, decrypting it
// with identity (an AGE-SECRET-KEY-1... private key string).
func DecryptReader(r io.Reader, identity string) (io.Reader, error) {
	parsedIdentity, err := age.ParseX25519Identity(identity)
	if err != nil {
		return nil, fmt.Errorf("podcapture: parsing decryption identity: %w", err)
	}

	plaintext, err := age.Decrypt(r, parsedIdentity)
	if err != nil {
		return nil, fmt.Errorf("podcapture: decrypting capture: %w", err)
	}
	return plaintext, nil
}

// DecryptBytes is a convenience wrapper for small captures already
// fully read into memory (e.g. in tests).
func DecryptBytes(ciphertext []byte, identity string) ([]byte, error) {
	plaintext, err := DecryptReader(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(plaintext)
}
