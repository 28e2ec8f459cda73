package echomw

import (
	"github.com/labstack/echo/v4"

	"github.com/reoring/jsonguard"
	"github.com/reoring/jsonguard/middleware"
)

// ValidateJSON parses the request body with p, stores the T in the request
// context on success, or answers with the Issues payload (400/413/422).
func ValidateJSON[T any](p *jsonguard.Parser[T], opt jsonguard.DecodeOpt) echo.MiddlewareFunc {
	if opt == (jsonguard.DecodeOpt{}) {
		opt = middleware.DefaultDecodeOpt()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v, err := p.ParseReader(c.Request().Body, opt)
			if err != nil {
				return c.JSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithValue(c.Request().Context(), v)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetValue fetches the parsed T from echo.Context.
func GetValue[T any](c echo.Context) (T, bool) {
	return middleware.ValueFromContext[T](c.Request().Context())
}
