// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth identifies callers by signed bearer tokens.

# Bearer Tokens

Tokens are HS256 JWTs whose subject is the caller's address:

	token, err := auth.IssueToken(secret, "GARTIST...", 24*time.Hour)
	address, err := auth.ParseToken(secret, token)

Only HS256 is accepted when parsing. Expired tokens and tokens without a
subject fail with ErrInvalidToken.

# Caller Context

middleware.WithCaller verifies the Authorization header and stores the
address in the request context:

	ctx = auth.WithCaller(ctx, address)
	address, ok := auth.CallerFrom(ctx)

# Authorization

Authorizer implements competition.Authorizer. Require succeeds only when the
context's caller is exactly the identity the operation acts for:

	err := auth.Authorizer{}.Require(ctx, voter)
	// errors.Is(err, competition.ErrUnauthorized) when it does not match

Admin checks are layered on top by the competition service, which compares
the caller against the stored admin pair before calling Require.
*/
package auth
