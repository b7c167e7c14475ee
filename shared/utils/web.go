package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/msgboard/msgboard/shared/api"
	"github.com/msgboard/msgboard/shared/errors"
	"github.com/msgboard/msgboard/shared/logger"
)

const maxBodySize = 1 << 20

var (
	errInvalidBody    = &errors.Validation{Message: "Body is invalid"}
	errRequiredFields = &errors.Validation{Message: "Required fields missing"}

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// DecodeValidate fills body from a JSON or form-encoded request and checks its
// validate tags. Form fields are matched by the json tag names.
func DecodeValidate(r *http.Request, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return errRequiredFields
	}
	return nil
}

func Decode(r *http.Request, body any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	switch mediaType {
	case "application/x-www-form-urlencoded":
		err = decodeURLEncoded(r, body)
	case "multipart/form-data":
		err = decodeMultipart(r, body)
	default:
		err = json.NewDecoder(r.Body).Decode(body)
		if err == io.EOF {
			// empty body: every field stays zero, unknown ids end up as NotFound
			err = nil
		}
	}
	if err != nil {
		logger.Log.Debug("request body decoding failed", "content_type", mediaType, "error", err)
		return errInvalidBody
	}
	return nil
}

// r.ParseForm ignores DELETE bodies, so the body is parsed by hand
func decodeURLEncoded(r *http.Request, body any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return err
	}
	return decodeValues(values, body)
}

func decodeMultipart(r *http.Request, body any) error {
	if err := r.ParseMultipartForm(maxBodySize); err != nil {
		return err
	}
	return decodeValues(r.MultipartForm.Value, body)
}

func decodeValues(values map[string][]string, body any) error {
	fields := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("re-encode form: %w", err)
	}
	return json.Unmarshal(raw, body)
}

// WriteJSON always answers 200, logical failures included.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func WriteText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		logger.Log.Error("failed to write response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, message string) {
	WriteJSON(w, api.ErrorResponse{Error: message})
}
