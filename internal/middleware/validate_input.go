package middleware

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/validation"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidateInput validates the payload stored by DecodePayload and responds 422 with
// field errors when it is invalid.
func ValidateInput[T any](validator validation.Validator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, err := web.ParamsFromContext[T](r.Context())
			if err != nil {
				web.RespondBadRequest(w, err, message.InvalidInput, nil)
				return
			}

			if errs := validator.ValidateStruct(params); errs != nil {
				web.RespondUnprocessableEntity(w, ErrInvalidInput, message.InvalidInput, errs)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
