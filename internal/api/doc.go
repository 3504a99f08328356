// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api is the client for the remote sentiment-chat service.
//
// The service exposes four endpoints the front end consumes:
//
//	POST /chat                  {"message": "..."} -> {"reply": "..."}
//	POST /auth/login            credentials -> bearer token (JWT variant)
//	GET  /users/me              session/credential validation
//	GET  /chat/history/{user}   prior exchanges for import
//
// Error responses carry {"detail": "..."} and the HTTP status
// distinguishes authentication failure (401/403) from everything else.
// Authentication itself is pluggable: the Credentials interface covers
// both the Basic-auth and the JWT-bearer deployment variants without
// the client caring which is in play.
package api
