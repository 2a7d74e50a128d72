package strata

import (
	"reflect"
	"strconv"
	"strings"
)

// parseNumeric parses a numeric-looking string such as "12", "-3.5" or
// "1e3".
func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIncrement recognises "+=N" and "-=N" and returns the signed delta.
func parseIncrement(s string) (float64, bool) {
	if len(s) < 3 || s[1] != '=' || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	n, ok := parseNumeric(s[2:])
	if !ok {
		return 0, false
	}
	if s[0] == '-' {
		n = -n
	}
	return n, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		return parseNumeric(n)
	}
	return 0, false
}

// coerce converts v to the field type t. Numeric-looking strings become
// numbers for numeric fields; the text field always stays a string.
func coerce(name string, v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		return reflect.Zero(t), true
	}
	switch t.Kind() {
	case reflect.Float64, reflect.Int:
		n, ok := toFloat(v)
		if !ok {
			return reflect.Value{}, false
		}
		if t.Kind() == reflect.Int {
			return reflect.ValueOf(int(n)), true
		}
		return reflect.ValueOf(n), true
	case reflect.String:
		switch s := v.(type) {
		case string:
			return reflect.ValueOf(s), true
		case float64:
			if name == "text" {
				return reflect.ValueOf(strconv.FormatFloat(s, 'f', -1, 64)), true
			}
		case int:
			if name == "text" {
				return reflect.ValueOf(strconv.Itoa(s)), true
			}
		}
		return reflect.Value{}, false
	case reflect.Bool:
		b, ok := v.(bool)
		return reflect.ValueOf(b), ok
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, true
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), true
	}
	return reflect.Value{}, false
}

// asHandler extracts a Handler from a patch value.
func asHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case Handler:
		return h, true
	case func(*Event):
		return Handler(h), true
	}
	return nil, false
}

// applyPatch writes p onto l. "+=N"/"-=N" strings adjust the current
// numeric value, which is the default for a freshly built layer. It returns
// the subset of p that actually changed a value, with coerced values.
func (l *Layer) applyPatch(p Patch) Patch {
	changed := Patch{}
	for name, v := range p {
		if h, ok := asHandler(v); ok {
			if l.Handlers == nil {
				l.Handlers = make(map[string]Handler)
			}
			l.Handlers[name] = h
			changed[name] = v
			continue
		}
		old, had := l.Get(name)
		if s, ok := v.(string); ok && name != "text" {
			if delta, inc := parseIncrement(s); inc {
				cur, numeric := l.Number(name)
				if numeric {
					v = cur + delta
				} else if !had {
					v = delta
				}
			}
		}
		if name == "source" {
			v = l.resolveSource(v)
		}
		v = cloneValue(v)
		if !l.Set(name, v) {
			Logger().Debug("strata: ignored property", "name", name, "layer", l.Name)
			continue
		}
		now, _ := l.Get(name)
		if !had || !reflect.DeepEqual(old, now) {
			changed[name] = now
		}
	}
	return changed
}

// cloneValue copies slices and maps so a layer never aliases caller data.
func cloneValue(v any) any {
	switch x := v.(type) {
	case []string:
		return append([]string(nil), x...)
	case []float64:
		return append([]float64(nil), x...)
	case []PathPoint:
		return append([]PathPoint(nil), x...)
	case map[string]string:
		out := make(map[string]string, len(x))
		for k, s := range x {
			out[k] = s
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, s := range x {
			out[k] = cloneValue(s)
		}
		return out
	}
	return v
}
