// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

/*
Package auth provides password hashing and cookie sessions for Learnmate.

# Passwords

Passwords are hashed with bcrypt (golang.org/x/crypto/bcrypt) at the configured
cost. CheckPassword compares in constant time; DummyCompare spends the same work
for unknown usernames so response time does not reveal which accounts exist.

# Sessions

A session binds the session cookie to a username. Three SessionStore
implementations are available:

  - MemorySessionStore: in-process map, lost on restart (default)
  - BadgerSessionStore: BadgerDB on disk, survives restarts
  - CookieSessionStore: stateless HS256 JWT carried in the cookie itself

The store is chosen with SESSION_STORE and built by SessionStoreFactory.

# Middleware

SessionMiddleware.Authenticate resolves the cookie into a Session and stores it
in the request context. RequireAuth redirects browsers to the login page and
answers JSON clients with 401. CreateSession always issues a new session ID and
drops the previous one, which prevents session fixation.

Example:

	factory, err := auth.NewSessionStoreFactory(&cfg.Security)
	if err != nil {
	    return err
	}
	defer factory.Close()
	store, err := factory.CreateStore()
	if err != nil {
	    return err
	}
	sessions := auth.NewSessionMiddleware(store, auth.SessionMiddlewareConfigFrom(&cfg.Security))
	r.With(sessions.RequireAuth).Get("/dashboard", h.Dashboard)
*/
package auth
