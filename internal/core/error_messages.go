// Package core provides the business logic for the job application tracker.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
//
// # Application Errors (APP001-APP099)
//
//	APP001 - Not found: No application matched the search
//	         Action: Check the company name or loosen the sub-field
//	APP002 - Ambiguous: Several applications matched the search
//	         Action: Add a uniquely identifying sub-field
//	APP003 - Too many matches: More than ten applications matched
//	         Action: Add a sub-field such as Listing Job Title or Applied Date
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid date: Invalid date format detected
//	VAL002 - Invalid number: Invalid number format detected
//	VAL003 - Required input: A required input is missing or blank
//	VAL004 - Missing column: A column is missing from the sheet header
//
// # Storage Errors (DB001-DB099, TBL001-TBL099)
//
//	DB001 - Duplicate key
//	DB004 - Connection refused
//	DB006 - Timeout
//	TBL001 - Table not found
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Typed errors from this package are matched with errors.Is first. Anything
// else falls through to case-insensitive substring patterns, first match wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "No application matched your search",
		Action:  "Check the company name or loosen the sub-field value",
		Code:    "APP001",
	}
	msgAmbiguous = UserMessage{
		Message: "Multiple applications matched your search",
		Action:  "Try using a uniquely identifying sub-field",
		Code:    "APP002",
	}
	msgTooMany = UserMessage{
		Message: "Too many applications matched your search",
		Action:  "Add a sub-field such as Listing Job Title or Applied Date",
		Code:    "APP003",
	}
	msgInvalidInput = UserMessage{
		Message: "A required input is missing or blank",
		Action:  "Fill in every required field and try again",
		Code:    "VAL003",
	}
	msgMissingColumn = UserMessage{
		Message: "A column is missing from the sheet",
		Action:  "Check that the sheet header matches the expected column names exactly",
		Code:    "VAL004",
	}
	msgTableNotFound = UserMessage{
		Message: "Table not found",
		Action:  "Run init to create the tracker tables",
		Code:    "TBL001",
	}
)

// sentinelMessages maps package sentinels to user messages.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrNotFound, msgNotFound},
	{ErrAmbiguousMatch, msgAmbiguous},
	{ErrTooManyMatches, msgTooMany},
	{ErrMissingColumn, msgMissingColumn},
	{ErrInvalidInput, msgInvalidInput},
	{ErrTableNotFound, msgTableNotFound},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns catches errors that did not originate from this package,
// typically driver or file errors. Order matters: specific before general.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Log the record again so a new ID is generated",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the data store",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "DB006",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format detected",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Remove currency symbols and use standard decimal format",
			Code:    "VAL002",
		},
	},
	{
		pattern: "no such file",
		msg:     msgTableNotFound,
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
