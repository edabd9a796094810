// httpclient/methods.go
package httpclient

import (
	"net/http"
	"strings"
)

/* Ref: https://www.rfc-editor.org/rfc/rfc7231#section-8.1.3

+---------+------+------------+-----------+
| Method  | Safe | Idempotent | Supported |
+---------+------+------------+-----------+
| DELETE  | no   | yes        | yes       |
| GET     | yes  | yes        | yes       |
| PATCH   | no   | no         | yes       |
| POST    | no   | no         | yes       |
| PUT     | no   | yes        | yes       |
+---------+------+------------+-----------+
*/

var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// normalizeMethod upper-cases method and rejects anything the client does not send.
func normalizeMethod(method string) (string, error) {
	method = strings.ToUpper(method)
	if !supportedMethods[method] {
		return "", ErrUnsupportedMethod
	}
	return method, nil
}

// isSafeHTTPMethod reports whether method is read-only, so a cached permanent
// redirect can be applied to it.
func isSafeHTTPMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}
