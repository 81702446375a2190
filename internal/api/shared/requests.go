package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Validate is the shared validator instance for request payloads.
var Validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields and trailing
// data are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return fmt.Errorf("request body must contain a single JSON object")
	}
	return nil
}

// ValidateRequest runs the struct tags of v through the validator.
func ValidateRequest(v interface{}) error {
	return Validate.Struct(v)
}
