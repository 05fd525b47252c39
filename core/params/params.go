package params

import (
	"strconv"

	"artwalk-api/core/constants"

	"github.com/labstack/echo/v4"
)

// QueryParams carries the common list-endpoint query values.
type QueryParams struct {
	PageNumber int
	PageSize   int
	Search     string
}

// FromEchoContext parses pagination and search params with sane bounds.
func FromEchoContext(ctx echo.Context) QueryParams {
	p := QueryParams{
		PageNumber: constants.DefaultPageNumber,
		PageSize:   constants.DefaultPageSize,
		Search:     ctx.QueryParam("search"),
	}

	if v, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(ctx.QueryParam("page_size")); err == nil && v > 0 {
		if v > constants.MaxPageSize {
			v = constants.MaxPageSize
		}
		p.PageSize = v
	}

	return p
}
