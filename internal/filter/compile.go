package filter

import (
	"strings"

	"gorm.io/gorm"
)

// Apply composes the compiled group onto query. A nil or empty group returns
// the query unchanged; prior constraints (tenant scope included) are always
// preserved because composition is conjunctive.
func Apply(query *gorm.DB, schema Schema, group *Group) (*gorm.DB, error) {
	sql, args, err := Compile(schema, group)
	if err != nil {
		return nil, err
	}
	if sql == "" {
		return query, nil
	}
	return query.Where(sql, args...), nil
}

// Compile translates the group into one parenthesized SQL condition plus its
// arguments. Rules naming unknown fields are skipped; rules whose operator
// does not fit the field's kind contribute no constraint.
func Compile(schema Schema, group *Group) (string, []any, error) {
	if group == nil || len(group.Rules) == 0 {
		return "", nil, nil
	}

	joiner := " AND "
	if strings.EqualFold(group.Logic, "or") {
		joiner = " OR "
	}

	var conds []string
	var args []any
	for _, rule := range group.Rules {
		field, ok := schema.Resolve(rule.Field)
		if !ok {
			continue
		}
		sql, ruleArgs, err := compileRule(field, rule)
		if err != nil {
			return "", nil, err
		}
		if sql == "" {
			continue
		}
		conds = append(conds, sql)
		args = append(args, ruleArgs...)
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return "(" + strings.Join(conds, joiner) + ")", args, nil
}

func compileRule(f Field, rule Rule) (string, []any, error) {
	op := strings.ToLower(rule.Op)
	switch op {
	case "eq", "ne":
		return compileEquality(f, rule, op)
	case "lt", "le", "gt", "ge":
		return compileComparison(f, rule, op)
	case "contains", "starts", "ends":
		return compileLike(f, rule, op)
	case "in":
		return compileIn(f, rule)
	}
	return "", nil, nil
}

func compileEquality(f Field, rule Rule, op string) (string, []any, error) {
	neg := op == "ne"
	if rule.Value == nil {
		// Null carries IS NULL semantics for strings and the type's zero
		// value for everything else.
		if f.Kind == String {
			if neg {
				return f.Column + " IS NOT NULL", nil, nil
			}
			return f.Column + " IS NULL", nil, nil
		}
		if neg {
			return f.Column + " <> ?", []any{f.Kind.zero()}, nil
		}
		return f.Column + " = ?", []any{f.Kind.zero()}, nil
	}
	v, err := f.Kind.coerce(*rule.Value)
	if err != nil {
		return "", nil, &ValueError{Field: rule.Field, Value: *rule.Value, Err: err}
	}
	if neg {
		return f.Column + " <> ?", []any{v}, nil
	}
	return f.Column + " = ?", []any{v}, nil
}

var comparisonOps = map[string]string{"lt": "<", "le": "<=", "gt": ">", "ge": ">="}

func compileComparison(f Field, rule Rule, op string) (string, []any, error) {
	if !f.Kind.comparable() || rule.Value == nil {
		return "", nil, nil
	}
	v, err := f.Kind.coerce(*rule.Value)
	if err != nil {
		return "", nil, &ValueError{Field: rule.Field, Value: *rule.Value, Err: err}
	}
	return f.Column + " " + comparisonOps[op] + " ?", []any{v}, nil
}

// likeEscaper neutralizes LIKE metacharacters in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func compileLike(f Field, rule Rule, op string) (string, []any, error) {
	// Substring operators only apply to string fields; a non-string target
	// produces no constraint, which the caller can observe as a gap.
	if f.Kind != String || rule.Value == nil {
		return "", nil, nil
	}
	v := likeEscaper.Replace(*rule.Value)
	switch op {
	case "starts":
		v += "%"
	case "ends":
		v = "%" + v
	default:
		v = "%" + v + "%"
	}
	return f.Column + ` LIKE ? ESCAPE '\'`, []any{v}, nil
}

func compileIn(f Field, rule Rule) (string, []any, error) {
	if rule.Value == nil {
		return "", nil, nil
	}
	var args []any
	for _, token := range strings.Split(*rule.Value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		v, err := f.Kind.coerce(token)
		if err != nil {
			return "", nil, &ValueError{Field: rule.Field, Value: token, Err: err}
		}
		args = append(args, v)
	}
	if len(args) == 0 {
		return "", nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	return f.Column + " IN (" + placeholders + ")", args, nil
}
