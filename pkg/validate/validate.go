// Package validate checks request DTOs against their `validate` struct tags.
//
// Rules, comma separated:
//
//	required     field must be present and non-empty
//	nullable     an empty field skips the remaining rules
//	alpha_dash   letters, digits, hyphens and underscores
//	objectid     24-character hex document id
//	min=N        strings: at least N characters, numbers: at least N
//	max=N        strings: at most N characters, numbers: at most N
//	gte=N        number >= N
//	in=a,b,c     one of the listed values; must be the last rule in the tag
//
// Pointer fields are dereferenced first. A nil pointer is empty, so patch
// fields are pointers tagged nullable, and numbers that must be sent are
// pointers tagged required (a present 0 then satisfies required).
//
//	type ProductInput struct {
//	    Name     string `json:"name"     validate:"required,max=200"`
//	    Quantity *int   `json:"quantity" validate:"required,gte=0"`
//	    Status   string `json:"status"   validate:"nullable,in=Pending,Completed"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Struct validates every tagged field of v and returns field → message for
// the first failing rule of each field. An empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" {
			continue
		}
		if msg := checkField(jsonName(sf), rv.Field(i), parseRules(tag)); msg != "" {
			errs[jsonName(sf)] = msg
		}
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

type rule struct {
	name  string
	param string
}

type ruleSet []rule

func (rs ruleSet) has(name string) bool {
	for _, r := range rs {
		if r.name == name {
			return true
		}
	}
	return false
}

func checkField(name string, v reflect.Value, rules ruleSet) string {
	nullable := rules.has("nullable")
	presentNumber := false

	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			if rules.has("required") && !nullable {
				return requiredMsg(name)
			}
			return ""
		}
		v = v.Elem()
		presentNumber = isNumber(v)
	}

	if nullable && isEmpty(v) {
		return ""
	}

	for _, r := range rules {
		switch {
		case r.name == "nullable":
		case r.name == "required" && presentNumber:
		default:
			fn, ok := checks[r.name]
			if !ok {
				continue
			}
			if msg := fn(name, v, r.param); msg != "" {
				return msg
			}
		}
	}
	return ""
}

type checkFunc func(field string, v reflect.Value, param string) string

var objectIDRE = regexp.MustCompile(`(?i)^[0-9a-f]{24}$`)

var checks = map[string]checkFunc{
	"required": func(field string, v reflect.Value, _ string) string {
		if isEmpty(v) {
			return requiredMsg(field)
		}
		return ""
	},
	"alpha_dash": func(field string, v reflect.Value, _ string) string {
		for _, c := range text(v) {
			if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
				return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
			}
		}
		return ""
	},
	"objectid": func(field string, v reflect.Value, _ string) string {
		if !objectIDRE.MatchString(text(v)) {
			return fmt.Sprintf("The %s must be a valid id.", field)
		}
		return ""
	},
	"min": func(field string, v reflect.Value, param string) string {
		n := number(param)
		if isNumber(v) {
			if toFloat(v) < n {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
		} else if float64(len([]rune(text(v)))) < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return ""
	},
	"max": func(field string, v reflect.Value, param string) string {
		n := number(param)
		if isNumber(v) {
			if toFloat(v) > n {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
		} else if float64(len([]rune(text(v)))) > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
		return ""
	},
	"gte": func(field string, v reflect.Value, param string) string {
		if toFloat(v) < number(param) {
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		}
		return ""
	},
	"in": func(field string, v reflect.Value, param string) string {
		got := text(v)
		for _, allowed := range strings.Split(param, ",") {
			if got == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field)
	},
}

func requiredMsg(field string) string {
	return fmt.Sprintf("The %s field is required.", field)
}

// parseRules splits a tag into rules. Everything after in= belongs to its
// value list.
func parseRules(tag string) ruleSet {
	var out ruleSet
	parts := strings.Split(tag, ",")
	for i := 0; i < len(parts); i++ {
		name, param, _ := strings.Cut(strings.TrimSpace(parts[i]), "=")
		if name == "in" {
			param = strings.Join(append([]string{param}, parts[i+1:]...), ",")
			out = append(out, rule{name: name, param: param})
			break
		}
		out = append(out, rule{name: name, param: param})
	}
	return out
}

func text(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return number(text(v))
}

func number(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}
