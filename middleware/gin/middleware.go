package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/jsonguard"
	"github.com/reoring/jsonguard/middleware"
)

// ValidateJSON parses the incoming JSON with p using opt (or DefaultDecodeOpt when zero value),
// stores the T in the request context, and on failure aborts with the Issues payload.
func ValidateJSON[T any](p *jsonguard.Parser[T], opt jsonguard.DecodeOpt) gin.HandlerFunc {
	if opt == (jsonguard.DecodeOpt{}) {
		opt = middleware.DefaultDecodeOpt()
	}
	return func(c *gin.Context) {
		v, err := p.ParseReader(c.Request.Body, opt)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusFor(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithValue(c.Request.Context(), v))
		c.Next()
	}
}

// GetValue fetches the parsed T from gin.Context.
func GetValue[T any](c *gin.Context) (T, bool) {
	return middleware.ValueFromContext[T](c.Request.Context())
}
