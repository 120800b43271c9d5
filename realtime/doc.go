// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package realtime pushes competition events to websocket clients.

A Hub implements competition.Notifier. The service publishes after each
committed change, and every client subscribed to that competition receives
the event as JSON:

	{"type": "vote_cast", "competition_id": "spring-2025", "payload": {"artist": "Ada", "votes": 3}}

Event types are vote_cast, submission, artist_removed, finalized and
distributed.

Publish never blocks the caller. Each client has a small buffer; a client
that falls behind is disconnected rather than slowing down voting.
*/
package realtime
