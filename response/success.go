// response/success.go
/* Responsible for handling successful API responses. It reads the response body, logs the raw response details,
and unmarshals the response based on the content type (JSON or XML). */
package response

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/simbuah/go-api-http-client/logger"
	"go.uber.org/zap"
)

// contentHandler defines the signature for unmarshaling content from an io.Reader.
type contentHandler func(io.Reader, any, logger.Logger, string) error

// responseUnmarshallers maps MIME types to the corresponding contentHandler functions.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse reads the response body and unmarshals it into out based on the content type.
// A nil out discards the body. Empty bodies (204, or a DELETE without payload) are not an error.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return log.Error("Failed to read response body", zap.Error(err))
	}

	log.Debug("Raw HTTP Response", zap.Int("status_code", resp.StatusCode), zap.Int("body_bytes", len(bodyBytes)))

	if out == nil || len(bodyBytes) == 0 || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	bodyReader := bytes.NewReader(bodyBytes)
	contentType := resp.Header.Get("Content-Type")
	contentDisposition := resp.Header.Get("Content-Disposition")

	if isBinaryData(contentType, contentDisposition) {
		return handleBinaryData(bodyReader, log, out, contentDisposition)
	}

	contentTypeNoParams, _ := parseHeader(contentType)
	if handler, ok := responseUnmarshallers[contentTypeNoParams]; ok {
		return handler(bodyReader, out, log, contentType)
	}

	// raw byte and writer targets accept anything the server sends
	switch out.(type) {
	case *[]byte, io.Writer:
		return handleBinaryData(bodyReader, log, out, contentDisposition)
	}

	return log.Error("Unmarshal error", zap.String("content_type", contentType), zap.Error(fmt.Errorf("unexpected MIME type: %s", contentType)))
}

// handlerUnmarshalJSON unmarshals JSON content from an io.Reader into the provided output structure.
func handlerUnmarshalJSON(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(out); err != nil {
		log.Warn("JSON Unmarshal error", zap.String("content_type", mimeType), zap.Error(err))
		return fmt.Errorf("decoding JSON response: %w", err)
	}
	return nil
}

// handlerUnmarshalXML unmarshals XML content from an io.Reader into the provided output structure.
func handlerUnmarshalXML(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	decoder := xml.NewDecoder(reader)
	if err := decoder.Decode(out); err != nil {
		log.Warn("XML Unmarshal error", zap.String("content_type", mimeType), zap.Error(err))
		return fmt.Errorf("decoding XML response: %w", err)
	}
	return nil
}

// isBinaryData checks if the MIME type or Content-Disposition indicates binary data.
func isBinaryData(contentType, contentDisposition string) bool {
	mimeType, _ := parseHeader(contentType)
	switch {
	case mimeType == "application/octet-stream",
		mimeType == "application/pdf",
		strings.HasPrefix(mimeType, "application/vnd."),
		strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentDisposition)), "attachment"):
		return true
	}
	return false
}

// handleBinaryData reads binary data from an io.Reader and stores it in *[]byte or streams it to an io.Writer.
func handleBinaryData(reader io.Reader, log logger.Logger, out any, contentDisposition string) error {
	switch out := out.(type) {
	case *[]byte:
		data, err := io.ReadAll(reader)
		if err != nil {
			return log.Error("Failed to read binary data", zap.Error(err))
		}
		*out = data

	case io.Writer:
		if _, err := io.Copy(out, reader); err != nil {
			return log.Error("Failed to stream binary data to io.Writer", zap.Error(err))
		}

	default:
		return errors.New("output parameter is not suitable for binary data (*[]byte or io.Writer)")
	}

	if filename, ok := FilenameFromDisposition(contentDisposition); ok {
		log.Debug("Extracted filename from Content-Disposition", zap.String("filename", filename))
	}

	return nil
}
