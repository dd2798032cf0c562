package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Gorani9/matzip-sub000/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ErrorHandler maps the search error taxonomy onto HTTP responses. Parameter
// errors are the client's fault; everything else is reported without detail.
func ErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var invalid *utils.InvalidParameterError
		if errors.As(err, &invalid) {
			_ = c.JSON(http.StatusBadRequest, map[string]string{
				"error": invalid.Message,
				"field": invalid.Field,
			})
			return
		}

		if errors.Is(err, utils.ErrQueryTimeout) {
			_ = c.JSON(http.StatusGatewayTimeout, map[string]string{"error": "search timed out"})
			return
		}

		var persistence *utils.PersistenceError
		if errors.As(err, &persistence) {
			_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "search failed"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, map[string]string{"error": fmt.Sprintf("%v", he.Message)})
			return
		}

		if errors.Is(err, utils.ErrInvalidPlan) {
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("Invalid search plan")
		} else {
			log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("Unhandled error")
		}
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
