// Package pipeline composes aggregation queries as a sequence of stages
// (match, lookup, project, group, sort, page) that the database executes
// as one statement. Pipelines are values; every stage returns a new one.
package pipeline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/hszk-dev/vidtube/internal/pagination"
)

// ErrInvalidSortField is returned when a sort key is not a plain column reference.
var ErrInvalidSortField = errors.New("invalid sort field")

var columnRef = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// SortKey orders results by one column.
type SortKey struct {
	Field string
	Desc  bool
}

// Asc and Desc build sort keys.
func Asc(field string) SortKey  { return SortKey{Field: field} }
func Desc(field string) SortKey { return SortKey{Field: field, Desc: true} }

func (k SortKey) clause() (string, error) {
	if !columnRef.MatchString(k.Field) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortField, k.Field)
	}
	if k.Desc {
		return k.Field + " DESC", nil
	}
	return k.Field + " ASC", nil
}

// Pipeline is an immutable query under construction.
type Pipeline struct {
	base sq.SelectBuilder
	sort []SortKey
	page *pagination.Request
}

// From starts a pipeline over a table expression such as "videos v".
func From(table string) Pipeline {
	return Pipeline{base: sq.Select().From(table)}
}

// Match filters rows.
func (p Pipeline) Match(pred sq.Sqlizer) Pipeline {
	p.base = p.base.Where(pred)
	return p
}

// Lookup inner-joins another source.
func (p Pipeline) Lookup(join string, args ...any) Pipeline {
	p.base = p.base.Join(join, args...)
	return p
}

// LeftLookup left-joins another source, keeping rows without a match.
func (p Pipeline) LeftLookup(join string, args ...any) Pipeline {
	p.base = p.base.LeftJoin(join, args...)
	return p
}

// LookupSub left-joins a sub-pipeline under an alias. The sub-pipeline's
// sort and page stages are ignored.
func (p Pipeline) LookupSub(sub Pipeline, alias, on string) Pipeline {
	p.base = p.base.JoinClause(sub.base.Prefix("LEFT JOIN (").Suffix(") "+alias+" ON "+on))
	return p
}

// LookupLateral left-joins a sub-pipeline evaluated once per row. The
// sub-pipeline may reference columns of the outer sources.
func (p Pipeline) LookupLateral(sub Pipeline, alias string) Pipeline {
	p.base = p.base.JoinClause(sub.base.Prefix("LEFT JOIN LATERAL (").Suffix(") " + alias + " ON true"))
	return p
}

// Project appends output columns.
func (p Pipeline) Project(columns ...string) Pipeline {
	p.base = p.base.Columns(columns...)
	return p
}

// ProjectExpr appends a computed output column with bound arguments.
func (p Pipeline) ProjectExpr(expr sq.Sqlizer, alias string) Pipeline {
	p.base = p.base.Column(sq.Alias(expr, alias))
	return p
}

// Group collapses rows sharing the given columns.
func (p Pipeline) Group(columns ...string) Pipeline {
	p.base = p.base.GroupBy(columns...)
	return p
}

// Sort replaces the ordering.
func (p Pipeline) Sort(keys ...SortKey) Pipeline {
	p.sort = append([]SortKey(nil), keys...)
	return p
}

// Page limits the output to one page.
func (p Pipeline) Page(req pagination.Request) Pipeline {
	p.page = &req
	return p
}

// ToSQL renders the full pipeline with PostgreSQL placeholders.
func (p Pipeline) ToSQL() (string, []any, error) {
	b := p.base
	for _, k := range p.sort {
		clause, err := k.clause()
		if err != nil {
			return "", nil, err
		}
		b = b.OrderBy(clause)
	}
	if p.page != nil {
		b = b.Limit(p.page.Limit()).Offset(p.page.Offset())
	}
	return b.PlaceholderFormat(sq.Dollar).ToSql()
}

// CountSQL renders a query counting every row the pipeline matches,
// ignoring the sort and page stages.
func (p Pipeline) CountSQL() (string, []any, error) {
	return sq.Select("COUNT(*)").
		FromSelect(p.base, "sub").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// Sqlizer exposes the pipeline for embedding in another statement.
func (p Pipeline) Sqlizer() sq.Sqlizer {
	return p.base
}

// ContainsFold matches rows where any column contains term, ignoring case.
// LIKE wildcards in term match literally.
func ContainsFold(term string, columns ...string) sq.Sqlizer {
	pattern := "%" + EscapeLike(term) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, c := range columns {
		or = append(or, sq.ILike{c: pattern})
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters using the default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
