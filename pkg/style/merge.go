package style

import "reflect"

// Merge strategies, selected per field with a `merge` struct tag. Structs
// merge deeply by default; everything else is replaced when set.
const (
	strategyDeep    = "deep"
	strategyReplace = "replace"
)

// MergeDefaults fills every unset field of stored from defaults. Set fields of
// stored always win, and siblings of a set field keep their default values.
func MergeDefaults(stored, defaults Config) Config {
	out := merge(reflect.ValueOf(stored), reflect.ValueOf(defaults), strategyDeep)
	return out.Interface().(Config)
}

// Resolve applies the fallback chain: stored overrides, then the kind
// defaults, then the global defaults.
func Resolve(stored, kind, global Config) Config {
	return MergeDefaults(MergeDefaults(stored, kind), global)
}

func merge(stored, defaults reflect.Value, strategy string) reflect.Value {
	if stored.Kind() != reflect.Struct {
		if stored.IsZero() {
			return defaults
		}
		return stored
	}
	if strategy == strategyReplace {
		if stored.IsZero() {
			return defaults
		}
		return stored
	}

	out := reflect.New(stored.Type()).Elem()
	t := stored.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldStrategy := field.Tag.Get("merge")
		if fieldStrategy == "" {
			fieldStrategy = strategyDeep
		}
		out.Field(i).Set(merge(stored.Field(i), defaults.Field(i), fieldStrategy))
	}
	return out
}
