// response/parse.go
package response

import (
	"net/url"
	"strings"
)

// ParseContentTypeHeader parses the Content-Type header and returns the MIME type and any parameters.
func ParseContentTypeHeader(header string) (string, map[string]string) {
	return parseHeader(header)
}

// ParseContentDisposition parses the Content-Disposition header and returns the type and any parameters.
func ParseContentDisposition(header string) (string, map[string]string) {
	return parseHeader(header)
}

// FilenameFromDisposition returns the download filename advertised by a Content-Disposition header.
// The RFC 5987 form (filename*=UTF-8''...) wins over the plain filename parameter.
func FilenameFromDisposition(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	_, params := parseHeader(header)

	if extended, ok := params["filename*"]; ok {
		value := extended
		if idx := strings.Index(value, "''"); idx >= 0 {
			value = value[idx+2:]
		}
		if decoded, err := url.PathUnescape(value); err == nil && decoded != "" {
			return decoded, true
		}
	}

	if filename, ok := params["filename"]; ok && filename != "" {
		if decoded, err := url.PathUnescape(filename); err == nil {
			return decoded, true
		}
		return filename, true
	}
	return "", false
}

// parseHeader generalizes the parsing of headers like Content-Type and Content-Disposition.
// It extracts the main value (e.g., MIME type for Content-Type) and any parameters (like charset).
// Parameter names are lower-cased.
func parseHeader(header string) (string, map[string]string) {
	parts := strings.SplitN(header, ";", 2)
	mainValue := strings.ToLower(strings.TrimSpace(parts[0]))

	params := make(map[string]string)
	if len(parts) > 1 {
		for _, part := range strings.Split(parts[1], ";") {
			kv := strings.SplitN(part, "=", 2)
			if len(kv) == 2 {
				params[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.Trim(strings.TrimSpace(kv[1]), "\"")
			}
		}
	}

	return mainValue, params
}
