// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token implements competition.TokenService.

# HTTP Client

Client talks JSON to an external ledger:

	GET  /tokens/{token}/decimals            -> {"decimals": 7}
	GET  /tokens/{token}/balances/{address}  -> {"balance": 12500000}
	POST /tokens/{token}/transfers           <- {"from": "...", "to": "...", "amount": 10000000}

Amounts are minor units. Any non-2xx answer is a *StatusError. Calls share a
circuit breaker that opens after five consecutive failures and half-opens
after 30 seconds; while open, calls fail with gobreaker.ErrOpenState without
reaching the ledger. Decimals are cached for an hour per token.

# In-Memory Ledger

Ledger keeps balances in memory. The server only uses it when started with
-dev-ledger, since its balances do not survive a restart. Tests use it
directly:

	ledger := token.NewLedger()
	ledger.SetDecimals("USDC", 7)
	ledger.Mint("USDC", escrow, 1_000_0000000)
	ledger.FailTransfersTo(artistAddress, errors.New("account frozen"))

Tokens without explicit decimals use DefaultDecimals.
*/
package token
