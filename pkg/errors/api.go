package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-openapi/errors"
)

var DefaultHTTPCode = http.StatusBadRequest

// apiError 与 response.Response 结构一致, 错误时 count 为 -1.
type apiError struct {
	Count    int32       `json:"count"`
	Previous string      `json:"previous"`
	Next     string      `json:"next"`
	Result   interface{} `json:"results"`
	Detail   string      `json:"detail"`
}

func (a *apiError) Error() string {
	return a.Detail
}

func errorAsJSON(err *apiError) []byte {
	//nolint:errchkjson
	b, _ := json.Marshal(err)
	return b
}

func New(message string, args ...interface{}) *apiError {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &apiError{Count: -1, Detail: message}
}

func flattenComposite(errs *errors.CompositeError) *errors.CompositeError {
	var res []error
	for _, er := range errs.Errors {
		switch e := er.(type) {
		case *errors.CompositeError:
			if e != nil && len(e.Errors) > 0 {
				flat := flattenComposite(e)
				if len(flat.Errors) > 0 {
					res = append(res, flat.Errors...)
				}
			}
		default:
			if e != nil {
				res = append(res, e)
			}
		}
	}
	return errors.CompositeValidationError(res...)
}

// ServeError writes err as a JSON envelope. Composite errors are flattened and
// only the first one is reported; go-openapi codes become the HTTP status.
func ServeError(rw http.ResponseWriter, r *http.Request, err error) {
	rw.Header().Set("Content-Type", "application/json")
	switch e := err.(type) {
	case *errors.CompositeError:
		er := flattenComposite(e)
		// strips composite errors to first element only
		if len(er.Errors) > 0 {
			ServeError(rw, r, er.Errors[0])
		} else {
			// guard against empty CompositeError (invalid construct)
			ServeError(rw, r, nil)
		}
	case *errors.MethodNotAllowedError:
		rw.Header().Add("Allow", strings.Join(e.Allowed, ","))
		rw.WriteHeader(asHTTPCode(int(e.Code())))
		if r == nil || r.Method != http.MethodHead {
			_, _ = rw.Write(errorAsJSON(New(e.Error())))
		}
	case errors.Error:
		value := reflect.ValueOf(e)
		if value.Kind() == reflect.Ptr && value.IsNil() {
			rw.WriteHeader(http.StatusInternalServerError)
			_, _ = rw.Write(errorAsJSON(New("Unknown error")))
			return
		}
		rw.WriteHeader(asHTTPCode(int(e.Code())))
		if r == nil || r.Method != http.MethodHead {
			_, _ = rw.Write(errorAsJSON(New(e.Error())))
		}
	case nil:
		rw.WriteHeader(http.StatusInternalServerError)
		_, _ = rw.Write(errorAsJSON(New("Unknown error")))
	default:
		rw.WriteHeader(http.StatusInternalServerError)
		if r == nil || r.Method != http.MethodHead {
			_, _ = rw.Write(errorAsJSON(New(err.Error())))
		}
	}
}

// Abort 以 ServeError 的格式响应 err 并终止后续 handler.
func Abort(c *gin.Context, err error) {
	ServeError(c.Writer, c.Request, err)
	c.Abort()
}

// Collect 合并非 nil 的校验错误, 全部为 nil 时返回 nil.
func Collect(errs ...error) error {
	var res []error
	for _, err := range errs {
		if err != nil && !isNilError(err) {
			res = append(res, err)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return errors.CompositeValidationError(res...)
}

func isNilError(err error) bool {
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

const maximumValidHTTPCode = 600

func asHTTPCode(input int) int {
	if input >= maximumValidHTTPCode {
		return DefaultHTTPCode
	}
	return input
}
