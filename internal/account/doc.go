// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

// Package account provides the identity and session core for Quillhub.
//
// # Domain Types
//
// User and Session are persisted through repository interfaces implemented
// in the postgres subpackage. Identifiers are UUIDs generated in-process;
// timestamps are set in-process so a freshly created record has
// CreatedAt == UpdatedAt.
//
// # Services
//
// Service types coordinate domain operations:
//   - Directory - uniqueness-enforced user store with partial updates
//   - Sessions - bearer-token session lifecycle (create, validate, renew,
//     soft expire)
//   - Authenticator - email/password login with uniform failure messaging
//
// Every error a service returns carries one of the four apperr kinds.
package account
