// response/error.go
// Package response turns HTTP responses into decoded values or structured errors.
package response

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	jsoniter "github.com/json-iterator/go"
	"github.com/simbuah/go-api-http-client/logger"
	"github.com/simbuah/go-api-http-client/status"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HTTPError is returned for any non-2xx response that the client does not recover from.
// Body holds the server payload verbatim.
type HTTPError struct {
	StatusCode  int      `json:"status_code"`       // HTTP status code
	Method      string   `json:"method"`            // HTTP method used for the request
	URL         string   `json:"url"`               // The URL of the HTTP request
	Message     string   `json:"message"`           // Summary of the error
	Details     []string `json:"details,omitempty"` // Detailed error messages, if any
	ContentType string   `json:"content_type,omitempty"`
	Body        []byte   `json:"-"`
}

// Error returns a string representation of the HTTPError, making it compatible with the error interface.
func (e *HTTPError) Error() string {
	message := e.Message
	if message == "" {
		message = http.StatusText(e.StatusCode)
	}
	if e.Method == "" {
		return fmt.Sprintf("API Error: StatusCode=%d, Message=%s", e.StatusCode, message)
	}
	return fmt.Sprintf("API Error: %s %s: StatusCode=%d, Message=%s", e.Method, e.URL, e.StatusCode, message)
}

// RawBody returns the server payload as a string.
func (e *HTTPError) RawBody() string {
	return string(e.Body)
}

// HandleAPIErrorResponse reads the error body of resp and builds an HTTPError from it.
// The body is consumed but not closed.
func HandleAPIErrorResponse(resp *http.Response, log logger.Logger) *HTTPError {
	apiError := &HTTPError{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.Request != nil {
		apiError.Method = resp.Request.Method
		apiError.URL = resp.Request.URL.String()
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiError.Message = "Failed to read response body"
		log.Warn("Failed to read error response body", zap.String("url", apiError.URL), zap.Error(err))
		return apiError
	}
	apiError.Body = bodyBytes

	mimeType, _ := parseHeader(apiError.ContentType)
	switch mimeType {
	case "application/json":
		parseJSONResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLResponse(bodyBytes, apiError)
	default:
		parseTextResponse(bodyBytes, apiError)
	}

	if apiError.Message == "" {
		apiError.Message = http.StatusText(resp.StatusCode)
	}

	log.Debug("API error response",
		zap.String("method", apiError.Method),
		zap.String("url", apiError.URL),
		zap.Int("status_code", apiError.StatusCode),
		zap.String("message", apiError.Message),
		zap.String("description", status.TranslateStatusCode(apiError.StatusCode)),
	)

	return apiError
}

// jsonErrorBody covers the shapes the backend uses: {"msg": ...}, {"message": ...},
// {"error": "..."} and {"error": {"message": ...}}.
type jsonErrorBody struct {
	Msg     string              `json:"msg"`
	Message string              `json:"message"`
	Error   jsoniter.RawMessage `json:"error"`
	Details []string            `json:"details"`
	Errors  []struct {
		Field       string `json:"field"`
		Description string `json:"description"`
		Message     string `json:"message"`
	} `json:"errors"`
}

// parseJSONResponse extracts the message and details of a JSON error body.
func parseJSONResponse(bodyBytes []byte, apiError *HTTPError) {
	var body jsonErrorBody
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		apiError.Message = strings.TrimSpace(string(bodyBytes))
		return
	}

	switch {
	case body.Msg != "":
		apiError.Message = body.Msg
	case body.Message != "":
		apiError.Message = body.Message
	case len(body.Error) > 0:
		apiError.Message = errorFieldMessage(body.Error)
	}

	apiError.Details = append(apiError.Details, body.Details...)
	for _, e := range body.Errors {
		detail := e.Description
		if detail == "" {
			detail = e.Message
		}
		if e.Field != "" {
			detail = e.Field + ": " + detail
		}
		if detail != "" {
			apiError.Details = append(apiError.Details, detail)
		}
	}
}

func errorFieldMessage(raw jsoniter.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.Message != "" {
			return nested.Message
		}
		return nested.Code
	}
	return ""
}

// parseXMLResponse dynamically parses XML error responses and accumulates potential error messages.
func parseXMLResponse(bodyBytes []byte, apiError *HTTPError) {
	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		apiError.Message = strings.TrimSpace(string(bodyBytes))
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseTextResponse uses a plain text body as the message.
func parseTextResponse(bodyBytes []byte, apiError *HTTPError) {
	apiError.Message = strings.TrimSpace(string(bodyBytes))
}

// parseHTMLResponse extracts meaningful information from an HTML error response,
// concatenating all text within <p> tags and links found within them.
func parseHTMLResponse(bodyBytes []byte, apiError *HTTPError) {
	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				if c.Type == html.TextNode {
					pContent.WriteString(strings.TrimSpace(c.Data) + " ")
				} else if c.Type == html.ElementNode && c.Data == "a" {
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if finalContent := strings.TrimSpace(pContent.String()); finalContent != "" {
				messages = append(messages, finalContent)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}
