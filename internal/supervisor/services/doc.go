// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package services adapts Learnmate components to suture.Service.
//
//   - HTTPServerService: net/http server with graceful shutdown
//   - SessionCleanupService: periodic sweep of expired sessions
package services
