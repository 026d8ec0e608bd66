// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityEvent is an account-related event written to the audit stream.
type SecurityEvent struct {
	// Event is the event name, e.g. "login", "logout", "register".
	Event     string
	Username  string
	SessionID string
	IPAddress string
	UserAgent string
	Success   bool
	Reason    string
}

// SecurityLogger writes account events with usernames and session IDs masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on top of the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("security")}
}

// NewSecurityLoggerWithLogger creates a security logger writing to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "security").Logger()}
}

// LogEvent writes a single event. Failed events are logged at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	status := "success"
	if !event.Success {
		e = l.logger.Warn()
		status = "failed"
	}

	e = e.Str("event", event.Event).Str("status", status)
	if event.Username != "" {
		e = e.Str("username", SanitizeUsername(event.Username))
	}
	if event.SessionID != "" {
		e = e.Str("session_id", SanitizeSessionID(event.SessionID))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}
	if event.Reason != "" && !event.Success {
		e = e.Str("reason", event.Reason)
	}
	e.Msg("security event")
}

// LogLogin records a login attempt.
func (l *SecurityLogger) LogLogin(username, ip, userAgent string, success bool, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     "login",
		Username:  username,
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   success,
		Reason:    reason,
	})
}

// LogLogout records a logout.
func (l *SecurityLogger) LogLogout(username, sessionID, ip string) {
	l.LogEvent(&SecurityEvent{
		Event:     "logout",
		Username:  username,
		SessionID: sessionID,
		IPAddress: ip,
		Success:   true,
	})
}

// LogRegister records a registration attempt.
func (l *SecurityLogger) LogRegister(username, ip string, success bool, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     "register",
		Username:  username,
		IPAddress: ip,
		Success:   success,
		Reason:    reason,
	})
}

// SanitizeSessionID masks a session ID, keeping the first and last 4 characters.
// Example: "abc123def456ghi7" -> "abc1...ghi7"
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 12 {
		return "***"
	}
	return sessionID[:4] + "..." + sessionID[len(sessionID)-4:]
}

// SanitizeUsername masks a username, keeping the first 2 characters.
// Example: "johndoe" -> "jo***"
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
