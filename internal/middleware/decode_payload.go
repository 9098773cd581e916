package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

// DecodePayload decodes a single JSON object of type T from the body, limited to bodySize bytes,
// and stores it in the request context for web.ParamsFromContext.
func DecodePayload[T any](bodySize int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Debug("Decoding json payload...")
			r.Body = http.MaxBytesReader(w, r.Body, bodySize)
			decoder := json.NewDecoder(r.Body)
			decoder.DisallowUnknownFields()
			var decoded T
			if err := decoder.Decode(&decoded); err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					web.RespondRequestEntityTooLarge(w, err)
					return
				}

				const fieldErr = "json: unknown field "
				if fieldName, ok := strings.CutPrefix(err.Error(), fieldErr); ok {
					details := map[string]string{"field": strings.Trim(fieldName, `"`)}
					web.RespondUnprocessableEntity(w, err, "Unknown field in payload.", details)
					return
				}

				var typeErr *json.UnmarshalTypeError
				if errors.As(err, &typeErr) && typeErr.Field != "" {
					details := map[string]string{typeErr.Field: typeErr.Field + " must be a " + typeErr.Type.String()}
					web.RespondBadRequest(w, err, message.InvalidInput, details)
					return
				}

				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
				web.RespondBadRequest(w, errors.New("trailing data after json payload"), message.InvalidInput, nil)
				return
			}

			ctx := web.NewContextWithParams(r.Context(), decoded)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
