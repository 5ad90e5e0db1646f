package grid

import (
	"strings"

	"gorm.io/gorm"

	"go-backoffice/internal/filter"
)

// Page-size bounds shared by every grid.
const (
	DefaultPageSize = 10
	MinPageSize     = 1
	MaxPageSize     = 200
)

// ClampLength bounds a requested page length. Non-positive lengths take the
// default so a missing field never means "everything".
func ClampLength(n int) int {
	if n <= 0 {
		n = DefaultPageSize
	}
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// Definition wires one entity type into the grid pipeline.
type Definition[E any, T any] struct {
	// Schema resolves filter rule fields for this entity.
	Schema filter.Schema
	// Sortable whitelists sort fields (lower-cased exposed name -> column).
	Sortable map[string]string
	// DefaultSort is the column used when no or an unknown sort field is
	// requested.
	DefaultSort string
	// Project maps an entity row into its grid row shape.
	Project func(*E) T
}

// OrderClause resolves the requested sort against the whitelist. An
// unrecognized field silently degrades to the default ordering.
func (d Definition[E, T]) OrderClause(sortBy, sortDir string) string {
	if col, ok := d.Sortable[strings.ToLower(sortBy)]; ok {
		if strings.EqualFold(sortDir, "desc") {
			return col + " desc"
		}
		return col + " asc"
	}
	return d.DefaultSort + " asc"
}

// Run executes the full pipeline over base, which must already be the
// tenant-scoped query set: total count, filter, filtered count, sort, page,
// project.
func Run[E any, T any](base *gorm.DB, def Definition[E, T], req Request) (Response[T], error) {
	var entity E
	scoped := base.Model(&entity)

	var total int64
	if err := scoped.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Fail[T](req.Draw, "count failed"), err
	}

	filtered, err := filter.Apply(scoped.Session(&gorm.Session{}), def.Schema, req.Filter)
	if err != nil {
		return Fail[T](req.Draw, err.Error()), err
	}

	var filteredTotal int64
	if err := filtered.Session(&gorm.Session{}).Count(&filteredTotal).Error; err != nil {
		return Fail[T](req.Draw, "count failed"), err
	}

	var rows []E
	err = filtered.
		Order(def.OrderClause(req.SortBy, req.SortDir)).
		Offset(req.Start).
		Limit(ClampLength(req.Length)).
		Find(&rows).Error
	if err != nil {
		return Fail[T](req.Draw, "query failed"), err
	}

	data := make([]T, len(rows))
	for i := range rows {
		data[i] = def.Project(&rows[i])
	}
	return Response[T]{
		Draw:            req.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filteredTotal,
		Data:            data,
	}, nil
}

// RunAll executes the filter and default-order steps without paging; exports
// reuse it to serialize every matching row.
func RunAll[E any, T any](base *gorm.DB, def Definition[E, T], group *filter.Group) ([]T, error) {
	var entity E
	scoped := base.Model(&entity)

	filtered, err := filter.Apply(scoped, def.Schema, group)
	if err != nil {
		return nil, err
	}
	var rows []E
	if err := filtered.Order(def.DefaultSort + " asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	data := make([]T, len(rows))
	for i := range rows {
		data[i] = def.Project(&rows[i])
	}
	return data, nil
}
