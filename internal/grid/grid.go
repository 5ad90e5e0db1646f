// Package grid implements the server side of the DataTables list-view
// contract shared by every entity: paging, sorting, filtering and the
// draw-counter echo.
package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-backoffice/internal/filter"
)

// Request carries one grid page query.
type Request struct {
	Draw    int
	Start   int
	Length  int
	SortBy  string
	SortDir string
	Filter  *filter.Group
}

// Response is the DataTables reply envelope.
type Response[T any] struct {
	Draw            int    `json:"draw"`
	RecordsTotal    int64  `json:"recordsTotal"`
	RecordsFiltered int64  `json:"recordsFiltered"`
	Data            []T    `json:"data"`
	Error           string `json:"error,omitempty"`
}

// Fail builds an error envelope that still echoes the draw counter.
func Fail[T any](draw int, msg string) Response[T] {
	return Response[T]{Draw: draw, Data: []T{}, Error: msg}
}

// ParseRequest reads the form-encoded DataTables fields plus the
// application's FilterJson payload. Sorting arrives either as sortBy/sortDir
// or as order[0][column] resolved through columns[i][data].
func ParseRequest(c *fiber.Ctx) (Request, error) {
	req := Request{
		SortBy:  c.FormValue("sortBy"),
		SortDir: c.FormValue("sortDir"),
	}
	req.Draw = atoiDefault(c.FormValue("draw"), 0)
	req.Start = atoiDefault(c.FormValue("start"), 0)
	if req.Start < 0 {
		req.Start = 0
	}
	req.Length = atoiDefault(c.FormValue("length"), 0)

	if req.SortBy == "" {
		if colIdx := c.FormValue("order[0][column]"); colIdx != "" {
			idx := atoiDefault(colIdx, -1)
			if idx >= 0 {
				req.SortBy = c.FormValue(fmt.Sprintf("columns[%d][data]", idx))
				req.SortDir = c.FormValue("order[0][dir]")
			}
		}
	}

	group, err := filter.Parse(c.FormValue("FilterJson"))
	if err != nil {
		return req, err
	}
	req.Filter = group
	return req, nil
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
