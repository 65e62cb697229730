package bitwarden

import "github.com/spf13/cast"

// object wraps the loosely-typed parsed document. Accessors return zero
// values on missing keys or type mismatches; the mapper relies on that
// permissiveness throughout.
type object map[string]any

func asObject(v any) object {
	if m, ok := v.(map[string]any); ok {
		return object(m)
	}
	return nil
}

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

func (o object) str(key string) string {
	return cast.ToString(o[key])
}

func (o object) boolean(key string) bool {
	return cast.ToBool(o[key])
}

func (o object) integer(key string) int {
	return cast.ToInt(o[key])
}

func (o object) list(key string) []any {
	v, _ := o[key].([]any)
	return v
}

func (o object) strings(key string) []string {
	var out []string
	for _, v := range o.list(key) {
		out = append(out, cast.ToString(v))
	}
	return out
}

func (o object) child(key string) object {
	return asObject(o[key])
}
