// httpclient/headers.go
package httpclient

import (
	"net/http"

	"github.com/simbuah/go-api-http-client/headers"
	"github.com/simbuah/go-api-http-client/version"
)

// applyHeaders sets the standard headers, then the caller's, then the credential.
// The credential is set last so a caller header cannot replace the stored token.
func (c *Client) applyHeaders(req *http.Request, desc *RequestDescriptor, bearer string) {
	handler := headers.NewHeaderHandler(req, c.Logger)

	handler.SetUserAgent(version.GetUserAgentHeader())
	handler.SetContentType(DefaultContentType)
	if desc.ResponseType == ResponseBlob {
		handler.SetAccept("*/*")
	} else {
		handler.SetAccept("application/json, text/plain, */*")
	}

	handler.SetCustomHeaders(desc.Header)
	handler.SetAuthorization(bearer)

	handler.LogHeaders(c.config.HideSensitiveData)
}
