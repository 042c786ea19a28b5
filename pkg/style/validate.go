package style

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-lodgedoc/pkg/css"
	"github.com/goliatone/go-lodgedoc/pkg/markup"
)

// BorderStyles lists the accepted border styles.
var BorderStyles = []string{"solid", "double", "dashed", "dotted", "groove", "ridge", "none"}

// Issue describes one invalid configuration value.
type Issue struct {
	Path   string `json:"path"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("style: %s %q: %s", i.Path, i.Value, i.Reason)
}

type checker struct {
	reason string
	valid  func(string) bool
}

var checks = map[string]checker{
	"pagesize":    {"must be A4 or A5", func(v string) bool { return v == SizeA4 || v == SizeA5 }},
	"orientation": {"must be portrait or landscape", func(v string) bool { return v == Portrait || v == Landscape }},
	"length":      {"must be a length in " + strings.Join(css.Units, ", "), css.Length},
	"box":         {"must be one to four lengths", css.Box},
	"color":       {"must be a hex color or transparent", css.Color},
	"image":       {"must be none or an image URL", css.Image},
	"font":        {"font family not offered", markup.ValidFont},
	"fontsize":    {"font size not offered", markup.ValidSize},
	"align":       {"must be left, center, right or justify", markup.ValidAlign},
	"lineheight":  {"line height not offered", markup.ValidLineHeight},
	"borderstyle": {"unknown border style", func(v string) bool { return slices.Contains(BorderStyles, v) }},
}

// Validate reports every set field whose value is outside its allowed set.
func Validate(cfg Config) []Issue {
	var issues []Issue
	walk(reflect.ValueOf(&cfg).Elem(), "", func(path, rule string, v reflect.Value) {
		if issue, ok := check(path, rule, v); !ok {
			issues = append(issues, issue)
		}
	})
	return issues
}

// Sanitize clears invalid fields so the merge falls back to defaults for them,
// and returns what it cleared.
func Sanitize(cfg Config) (Config, []Issue) {
	var issues []Issue
	walk(reflect.ValueOf(&cfg).Elem(), "", func(path, rule string, v reflect.Value) {
		if issue, ok := check(path, rule, v); !ok {
			issues = append(issues, issue)
			v.Set(reflect.Zero(v.Type()))
		}
	})
	return cfg, issues
}

func walk(v reflect.Value, prefix string, visit func(path, rule string, v reflect.Value)) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" {
			name = field.Name
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			walk(fv, path, visit)
			continue
		}
		if rule := field.Tag.Get("check"); rule != "" {
			visit(path, rule, fv)
		}
	}
}

func check(path, rule string, v reflect.Value) (Issue, bool) {
	switch v.Kind() {
	case reflect.String:
		value := v.String()
		if value == "" {
			return Issue{}, true
		}
		c, ok := checks[rule]
		if !ok || c.valid(value) {
			return Issue{}, true
		}
		return Issue{Path: path, Value: value, Reason: c.reason}, false
	case reflect.Pointer:
		if v.IsNil() || rule != "opacity" {
			return Issue{}, true
		}
		f := v.Elem().Float()
		if css.Opacity(f) {
			return Issue{}, true
		}
		return Issue{Path: path, Value: strconv.FormatFloat(f, 'g', -1, 64), Reason: "must be between 0 and 1"}, false
	}
	return Issue{}, true
}
