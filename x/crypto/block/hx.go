// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package block

import "github.com/sixafter/symcrypt/x/crypto/digest"

// expandHX implements the HX extended key-schedule construction shared by
// RHX, SHX, and THX: the user key is fed into an HMAC keyed by
// that same user key, with a one-byte counter as the message; successive
// HMAC outputs are concatenated and truncated to outBytes, then
// reinterpreted as the cipher's round-key schedule.
func expandHX(d digest.Kind, key []byte, outBytes int) ([]byte, error) {
	newDigest := digest.NewFunc(d)

	out := make([]byte, 0, outBytes+64)
	var counter byte
	for len(out) < outBytes {
		sum, err := digest.HMAC(newDigest, key, []byte{counter})
		if err != nil {
			return nil, err
		}
		out = append(out, sum...)
		counter++
	}
	return out[:outBytes], nil
}
