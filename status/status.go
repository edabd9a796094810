// status.go
// Package status classifies HTTP status codes and translates them into human-readable messages.
package status

import (
	"fmt"
	"net/http"
)

// IsSuccess reports whether statusCode is in the 2xx range.
func IsSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// IsAuthFailure reports whether statusCode signals an expired or missing access token.
// Only 401 qualifies; 403 means the credentials are valid but lack permission and is
// never recovered by refreshing.
func IsAuthFailure(statusCode int) bool {
	return statusCode == http.StatusUnauthorized
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
// Redirect status codes instruct the client to make a new request to a different URI, as defined in the response's Location header.
//
// - 301 Moved Permanently
// - 302 Found
// - 303 See Other: retrieved with GET regardless of the original method.
// - 307 Temporary Redirect: method and body are preserved.
// - 308 Permanent Redirect: method and body are preserved.
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// IsPermanentRedirect checks if the provided HTTP status code is one of the permanent redirect codes.
func IsPermanentRedirect(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

var statusMessages = map[int]string{
	http.StatusOK:                            "Request successful.",
	http.StatusCreated:                       "Request to create or update resource successful.",
	http.StatusAccepted:                      "The request was accepted for processing, but the processing has not completed.",
	http.StatusNoContent:                     "Request successful. No content to send for this request.",
	http.StatusBadRequest:                    "Bad request. Verify the syntax of the request.",
	http.StatusUnauthorized:                  "Authentication failed. Verify the credentials being used for the request.",
	http.StatusForbidden:                     "Invalid permissions. Verify the account has the proper permissions for the resource.",
	http.StatusNotFound:                      "Resource not found. Verify the URL path is correct.",
	http.StatusMethodNotAllowed:              "Method not allowed. The method specified is not allowed for the resource.",
	http.StatusNotAcceptable:                 "Not acceptable. The server cannot produce a response matching the list of acceptable values.",
	http.StatusRequestTimeout:                "Request timeout. The server timed out waiting for the request.",
	http.StatusConflict:                      "Conflict. The request could not be processed because of conflict in the request.",
	http.StatusGone:                          "Gone. The resource requested is no longer available and will not be available again.",
	http.StatusRequestEntityTooLarge:         "Payload too large. The request is larger than the server is willing or able to process.",
	http.StatusUnsupportedMediaType:          "Unsupported media type. The request entity has a media type which the server or resource does not support.",
	http.StatusUnprocessableEntity:           "Unprocessable entity. The server understands the content type and syntax of the request but was unable to process the contained instructions.",
	http.StatusTooManyRequests:               "Too many requests. The user has sent too many requests in a given amount of time.",
	http.StatusInternalServerError:           "Internal server error. The server encountered an unexpected condition that prevented it from fulfilling the request.",
	http.StatusNotImplemented:                "Not implemented. The server does not support the functionality required to fulfill the request.",
	http.StatusBadGateway:                    "Bad gateway. The server received an invalid response from the upstream server while trying to fulfill the request.",
	http.StatusServiceUnavailable:            "Service unavailable. The server is currently unable to handle the request due to temporary overloading or maintenance.",
	http.StatusGatewayTimeout:                "Gateway timeout. The server did not receive a timely response from the upstream server.",
	http.StatusNetworkAuthenticationRequired: "Network authentication required. The client needs to authenticate to gain network access.",
}

// TranslateStatusCode provides a human-readable message for HTTP status codes.
// A zero status code means no response was received at all.
func TranslateStatusCode(statusCode int) string {
	if statusCode == 0 {
		return "No status code received, possible network or connection error."
	}
	if message, exists := statusMessages[statusCode]; exists {
		return message
	}
	return fmt.Sprintf("Unknown status code: %d", statusCode)
}
