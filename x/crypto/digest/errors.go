// Copyright (c) 2024-2025 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package digest

import "errors"

// ErrUnknownDigest is returned by New for an unrecognized Kind.
var ErrUnknownDigest = errors.New("digest: unknown kind")
