// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "errors"

var (
	// ErrInvalidToken covers every way a token can fail verification:
	// missing, malformed, bad signature, expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnknownIdentity means the token verified but the user behind it
	// no longer exists.
	ErrUnknownIdentity = errors.New("unknown identity")
	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
