package graph

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/service"

	"github.com/graphql-go/graphql"
)

// listArgs are the pagination arguments shared by every list field. Defaults
// are applied here; values are deliberately not clamped server-side.
func listArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"page": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: 1,
		},
		"limit": &graphql.ArgumentConfig{
			Type:         graphql.Int,
			DefaultValue: 10,
		},
		"orderBy": &graphql.ArgumentConfig{
			Type:         graphql.String,
			DefaultValue: "desc",
		},
	}
}

func listParams(p graphql.ResolveParams) models.ListParams {
	params := models.ListParams{Page: 1, Limit: 10, Order: "desc"}
	if v, ok := p.Args["page"].(int); ok {
		params.Page = v
	}
	if v, ok := p.Args["limit"].(int); ok {
		params.Limit = v
	}
	if v, ok := p.Args["orderBy"].(string); ok {
		params.Order = v
	}
	return params
}

func uintArg(p graphql.ResolveParams, name string) uint {
	v, _ := p.Args[name].(int)
	return uint(v)
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	m, _ := p.Args["input"].(map[string]interface{})
	return m
}

func strField(m map[string]interface{}, key string) string {
	v, _ := m[key].(string)
	return v
}

func strPtrField(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

func intField(m map[string]interface{}, key string) int {
	v, _ := m[key].(int)
	return v
}

func intPtrField(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func strSliceField(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func locationField(m map[string]interface{}, key string) *service.LocationInput {
	loc, ok := m[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return &service.LocationInput{
		Street:   strField(loc, "street"),
		City:     strField(loc, "city"),
		State:    strField(loc, "state"),
		Country:  strField(loc, "country"),
		Timezone: strField(loc, "timezone"),
	}
}

// instrument wraps a top-level resolver with operation metrics.
func instrument(name string, resolve graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		start := time.Now()
		out, err := resolve(p)
		if err != nil {
			observability.GraphQLErrorsTotal.WithLabelValues(models.ErrorCode(err)).Inc()
			observability.RecordGraphQLOperation(name, "error", start)
			return nil, err
		}
		observability.RecordGraphQLOperation(name, "ok", start)
		return out, nil
	}
}

func userSource(src interface{}) *models.User {
	switch v := src.(type) {
	case *models.User:
		return v
	case models.User:
		return &v
	}
	return nil
}

func postSource(src interface{}) *models.Post {
	switch v := src.(type) {
	case *models.Post:
		return v
	case models.Post:
		return &v
	}
	return nil
}

func commentSource(src interface{}) *models.Comment {
	switch v := src.(type) {
	case *models.Comment:
		return v
	case models.Comment:
		return &v
	}
	return nil
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
