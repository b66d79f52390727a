// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the SmartSchool conversation service.
//
// The session manager consumes the Service interface, never the concrete
// HTTP client, so tests can script the server side without a network. The
// Client implements Service over HTTP/JSON with a shared pooled transport,
// bounded response reads, and typed error mapping.
package api
