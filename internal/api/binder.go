package api

import (
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/ougirez/covidtrack/internal/pkg/constants"
)

// Binder decodes JSON bodies with sonic and falls back to echo's
// default binder for everything else.
type Binder struct {
	fallback echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return nil
	}

	contentType := req.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		return b.fallback.Bind(i, c)
	}

	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(i); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, err.Error())
	}

	return nil
}
