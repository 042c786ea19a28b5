package composer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout formats time values substituted into documents.
const DateLayout = "02/01/2006"

// Context is the data substituted into region templates. Values may be nested
// maps; keys are looked up literally first and then as dotted paths, so both
// {"loja.nome": ..} and {"loja": {"nome": ..}} satisfy "loja.nome".
type Context map[string]any

// Lookup returns the raw value for key. Nil values count as absent.
func (c Context) Lookup(key string) (any, bool) {
	if v, ok := c[key]; ok {
		return v, v != nil
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}
	var cur any = map[string]any(c)
	for _, part := range strings.Split(key, ".") {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case Context:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]string:
			v, ok := m[part]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// Text returns the display text of key.
func (c Context) Text(key string) (string, bool) {
	v, ok := c.Lookup(key)
	if !ok {
		return "", false
	}
	return formatValue(v), true
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(DateLayout)
	case []string:
		return strings.Join(t, ", ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if item != nil {
				parts = append(parts, formatValue(item))
			}
		}
		return strings.Join(parts, ", ")
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
