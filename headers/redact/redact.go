// headers/redact/redact.go
package redact

import "strings"

// RedactedValue replaces sensitive values in log output.
const RedactedValue = "REDACTED"

// sensitiveKeys are compared case-insensitively, since header names arrive canonicalised
// while JSON and form keys do not.
var sensitiveKeys = map[string]bool{
	"accesstoken":   true,
	"access_token":  true,
	"refreshtoken":  true,
	"refresh_token": true,
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"password":      true,
}

// IsSensitiveKey reports whether values stored under key must never be logged in clear.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && IsSensitiveKey(key) {
		return RedactedValue
	}
	return value
}
