// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package main is the entry point for the Learnmate server.
//
// Learnmate recommends learning content that matches the interests a user
// gave at registration and offers a chat box backed by a text generation
// model.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, .env and environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Database: DuckDB file with the users and content tables, seeded on first run
//  4. Sessions: memory, BadgerDB or signed-cookie store
//  5. Models: Hugging Face Inference API client behind a circuit breaker, or the offline embedder
//  6. Recommendations: the content embedding table, built before the listener starts
//  7. HTTP Server: chi router under a suture supervisor tree
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT=5000
//	DUCKDB_PATH=data/learning_data.duckdb
//	SESSION_STORE=memory|badger|cookie
//	MODEL_PROVIDER=huggingface|offline
//	HF_API_TOKEN=hf_...
//	LOG_LEVEL=info
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server stops
// accepting connections and waits up to HTTP_SHUTDOWN_TIMEOUT for in-flight
// requests before the database and session store are closed.
//
// # Example Usage
//
// Local development without network access to the model API:
//
//	export MODEL_PROVIDER=offline
//	export LOG_FORMAT=console
//	./learnmate
package main
