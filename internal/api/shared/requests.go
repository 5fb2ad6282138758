package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before file parts spill to disk.
const multipartMemory = 8 << 20

// ErrEmptyBody is returned by DecodeJSON when the request has no body.
var ErrEmptyBody = errors.New("request body is empty")

var validate = validator.New()

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// ValidateRequest validates v with its own Validate method when it has one,
// and with its struct tags otherwise.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return validate.Struct(v)
}

// LimitBody caps the request body at maxBytes. Reads past the limit fail
// with *http.MaxBytesError.
func LimitBody(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
}

// ParseMultipart parses a multipart/form-data body of at most maxBytes.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	LimitBody(w, r, maxBytes)

	memory := int64(multipartMemory)
	if maxBytes > 0 && maxBytes < memory {
		memory = maxBytes
	}
	return r.ParseMultipartForm(memory)
}

// FormFile reads the named file part of a parsed multipart form. A missing
// part yields nil data and no error.
func FormFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read form file %q: %w", field, err)
	}
	defer func(f multipart.File) {
		_ = f.Close()
	}(file)

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read form file %q: %w", field, err)
	}
	return data, header.Header.Get("Content-Type"), nil
}
