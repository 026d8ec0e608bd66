// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with a custom byte-length rule and
// user-friendly error messages suitable for showing on the login and
// registration pages.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Field names taken from `form` or `json` tags, so messages name what the user typed into
//   - The maxbytes rule, used to keep passwords inside bcrypt's 72-byte input limit
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type RegisterRequest struct {
//	    Username string `form:"username" validate:"required,alphanum,min=3,max=32"`
//	    Password string `form:"password" validate:"required,min=8,maxbytes=72"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    renderRegister(w, http.StatusBadRequest, verr.First().Error())
//	    return
//	}
//
// # Thread Safety
//
// GetValidator and ValidateStruct are safe for concurrent use.
package validation
