package validation

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sync"
	"time"
	"unicode/utf8"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	errRequired = ozzo.NewError("validation_required", "is required")

	patternCache sync.Map
)

// Validate checks input against schema and reports every violation at once.
// A JSON null counts as absent.
func Validate(input map[string]any, schema Schema) error {
	errs := ozzo.Errors{}

	collect(normalizeMap(input), schema, "", errs)

	return fromOzzo(errs)
}

func collect(input map[string]any, schema Schema, prefix string, errs ozzo.Errors) {
	for name, constraint := range schema {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		value, present := input[name]
		if !present || value == nil {
			if constraint.Required {
				errs[path] = errRequired
			}

			continue
		}

		check(value, constraint, path, errs)
	}
}

func check(value any, constraint Constraint, path string, errs ozzo.Errors) {
	if err := ozzo.Validate(value, constraint.rules()...); err != nil {
		errs[path] = err

		return
	}

	switch v := value.(type) {
	case map[string]any:
		if constraint.Properties != nil {
			collect(v, constraint.Properties, path, errs)
		}
	case []any:
		if constraint.Items == nil {
			return
		}

		for index, item := range v {
			itemPath := fmt.Sprintf("%s[%d]", path, index)

			if item == nil {
				if constraint.Items.Type != "" && constraint.Items.Type != TypeAny {
					errs[itemPath] = typeError(constraint.Items.Type)
				}

				continue
			}

			check(item, *constraint.Items, itemPath, errs)
		}
	}
}

func (c Constraint) rules() []ozzo.Rule {
	rules := []ozzo.Rule{ozzo.By(typeRule(c.Type))}

	if len(c.Enum) > 0 {
		rules = append(rules, ozzo.By(enumRule(c.Enum)))
	}

	if c.Min != nil || c.Max != nil {
		rules = append(rules, ozzo.By(boundsRule(c.Min, c.Max)))
	}

	if c.MinLength != nil || c.MaxLength != nil {
		rules = append(rules, ozzo.By(lengthRule(c.MinLength, c.MaxLength)))
	}

	if c.Pattern != "" {
		rules = append(rules, ozzo.Match(compile(c.Pattern)))
	}

	switch c.Format {
	case FormatEmail:
		rules = append(rules, is.EmailFormat)
	case FormatURL:
		rules = append(rules, is.URL)
	case FormatDateTime:
		rules = append(rules, ozzo.Date(time.RFC3339).Error("must be an RFC 3339 date-time"))
	case FormatDate:
		rules = append(rules, ozzo.Date(time.DateOnly).Error("must be a date in YYYY-MM-DD form"))
	}

	return rules
}

func typeError(t Type) ozzo.Error {
	return ozzo.NewError("validation_type", fmt.Sprintf("must be of type %s", t))
}

func typeRule(t Type) ozzo.RuleFunc {
	return func(value any) error {
		ok := true

		switch t {
		case TypeString:
			_, ok = value.(string)
		case TypeNumber:
			_, ok = value.(float64)
		case TypeInteger:
			f, isNumber := value.(float64)
			ok = isNumber && f == math.Trunc(f)
		case TypeBoolean:
			_, ok = value.(bool)
		case TypeArray:
			_, ok = value.([]any)
		case TypeObject:
			_, ok = value.(map[string]any)
		}

		if !ok {
			return typeError(t)
		}

		return nil
	}
}

func enumRule(enum []any) ozzo.RuleFunc {
	allowed := make([]any, len(enum))
	for index, value := range enum {
		allowed[index] = normalize(value)
	}

	return func(value any) error {
		for _, candidate := range allowed {
			if reflect.DeepEqual(candidate, value) {
				return nil
			}
		}

		return ozzo.NewError("validation_in_invalid", fmt.Sprintf("must be one of %v", enum))
	}
}

func boundsRule(lower, upper *float64) ozzo.RuleFunc {
	return func(value any) error {
		number, ok := value.(float64)
		if !ok {
			return nil
		}

		if lower != nil && number < *lower {
			return ozzo.NewError("validation_min_too_small", fmt.Sprintf("must be no less than %v", *lower))
		}

		if upper != nil && number > *upper {
			return ozzo.NewError("validation_max_too_big", fmt.Sprintf("must be no greater than %v", *upper))
		}

		return nil
	}
}

func lengthRule(lower, upper *int) ozzo.RuleFunc {
	return func(value any) error {
		var length int

		switch v := value.(type) {
		case string:
			length = utf8.RuneCountInString(v)
		case []any:
			length = len(v)
		default:
			return nil
		}

		if lower != nil && length < *lower {
			return ozzo.NewError("validation_length_too_short", fmt.Sprintf("the length must be no less than %d", *lower))
		}

		if upper != nil && length > *upper {
			return ozzo.NewError("validation_length_too_long", fmt.Sprintf("the length must be no more than %d", *upper))
		}

		return nil
	}
}

func compile(pattern string) *regexp.Regexp {
	if cached, ok := patternCache.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}

	re := regexp.MustCompile(pattern)
	patternCache.Store(pattern, re)

	return re
}

// normalize converts Go values into the shapes encoding/json produces:
// float64 numbers, []any arrays and map[string]any objects.
func normalize(value any) any {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case string, bool, float64:
		return v
	case map[string]any:
		return normalizeMap(v)
	case []any:
		out := make([]any, len(v))
		for index, item := range v {
			out[index] = normalize(item)
		}

		return out
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for index := range out {
			out[index] = normalize(rv.Index(index).Interface())
		}

		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value
		}

		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()

		for iter.Next() {
			out[iter.Key().String()] = normalize(iter.Value().Interface())
		}

		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}

		return normalize(rv.Elem().Interface())
	default:
		return value
	}
}

func normalizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = normalize(value)
	}

	return out
}
