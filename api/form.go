package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"favorite-app-service/features"
)

// formValues collects submitted fields from a urlencoded or multipart body,
// keeping repeated keys in submission order.
func formValues(c *fiber.Ctx) features.Values {
	vals := features.Values{}
	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		for k, vs := range mf.Value {
			vals[k] = append(vals[k], vs...)
		}
		return vals
	}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		vals.Add(string(k), string(v))
	})
	return vals
}

// valuesFromMap converts decoded JSON (or protobuf Struct) fields into form
// values. Lists become repeated values; nested objects and nulls are dropped.
func valuesFromMap(m map[string]any) features.Values {
	vals := features.Values{}
	for k, v := range m {
		if list, ok := v.([]any); ok {
			for _, item := range list {
				if s, ok := scalarString(item); ok {
					vals.Add(k, s)
				}
			}
			continue
		}
		if s, ok := scalarString(v); ok {
			vals.Add(k, s)
		}
	}
	return vals
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
