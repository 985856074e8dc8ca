package middlewares

import (
	"context"
	"net/http"
	"reflect"
	"strings"

	apierrors "api/internal/errors"
	"api/internal/helpers"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func InitValidator() {
	validate = validator.New()
}

// QueryParamsKey is the context key under which decoded query params are
// stored by ValidateQuery.
type QueryParamsKey struct{}

// ValidateQuery decodes URL query parameters into T by json tag (string
// fields only) and validates the result. The decoded struct is stored in
// the request context for handlers to pick up with GetQueryParams.
func ValidateQuery[T any](next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		var params T

		value := reflect.ValueOf(&params).Elem()
		structType := value.Type()
		query := r.URL.Query()

		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "" || name == "-" || field.Type.Kind() != reflect.String {
				continue
			}
			value.Field(i).SetString(query.Get(name))
		}

		if err := validate.Struct(params); err != nil {
			helpers.RespondWithError(w, 400, []string{apierrors.ErrInvalidQuery})
			return
		}

		ctx := context.WithValue(r.Context(), QueryParamsKey{}, params)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

// GetQueryParams returns the params decoded by ValidateQuery. The zero
// value is returned when the middleware did not run for this route.
func GetQueryParams[T any](r *http.Request) T {
	params, _ := r.Context().Value(QueryParamsKey{}).(T)
	return params
}
