package repositories

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListOptions carries ordering and skip/take for list reads. OrderBy must be
// one of the keys a repository whitelists; unknown keys fall back to the
// repository's default ordering.
type ListOptions struct {
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

type queryBuilder struct {
	conditions []string
	args       []any
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1, args: make([]any, 0)}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg any) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

// addRaw appends a predicate that takes no argument.
func (qb *queryBuilder) addRaw(condition string) {
	qb.conditions = append(qb.conditions, condition)
}

// addUUIDIn filters fieldName to ids. A non-nil empty slice matches nothing;
// a nil slice adds no predicate.
func (qb *queryBuilder) addUUIDIn(fieldName string, ids []uuid.UUID) {
	if ids == nil {
		return
	}
	qb.addCondition("%s = ANY($%d::uuid[])", fieldName, uuidStrings(ids))
}

func (qb *queryBuilder) addTimeRange(fieldName string, from, to *time.Time) {
	if from != nil {
		qb.addCondition("%s >= $%d", fieldName, *from)
	}
	if to != nil {
		qb.addCondition("%s < $%d", fieldName, *to)
	}
}

// build returns the WHERE clause, ORDER BY / LIMIT / OFFSET tail and args.
func (qb *queryBuilder) build(opts ListOptions, orderColumns map[string]string, defaultOrder string) (string, string, []any) {
	where := ""
	if len(qb.conditions) > 0 {
		where = " WHERE " + strings.Join(qb.conditions, " AND ")
	}

	var tail strings.Builder
	col, ok := orderColumns[opts.OrderBy]
	if !ok {
		tail.WriteString(" ORDER BY " + defaultOrder)
	} else {
		tail.WriteString(" ORDER BY " + col)
		if opts.Desc {
			tail.WriteString(" DESC")
		}
	}
	args := qb.args
	if opts.Limit > 0 {
		tail.WriteString(fmt.Sprintf(" LIMIT $%d", qb.argID))
		args = append(args, opts.Limit)
		qb.argID++
	}
	if opts.Offset > 0 {
		tail.WriteString(fmt.Sprintf(" OFFSET $%d", qb.argID))
		args = append(args, opts.Offset)
		qb.argID++
	}
	return where, tail.String(), args
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
