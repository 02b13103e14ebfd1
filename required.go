package jwt

import (
	"reflect"
	"strings"
)

// HasRequiredJSONTag reports whether a struct field has the "required" JSON tag.
//
// Example:
//
//	type Claims struct {
//	    Username string `json:"username,required"`
//	    Email    string `json:"email"`
//	}
//
//	field, _ := reflect.TypeOf(Claims{}).FieldByName("Username")
//	isRequired := jwt.HasRequiredJSONTag(field) // returns true
func HasRequiredJSONTag(field reflect.StructField) bool {
	if isExported := field.PkgPath == ""; !isExported {
		return false
	}

	tag := field.Tag.Get("json")
	return strings.Contains(tag, ",required")
}

// jsonFieldName returns the claim name of a struct field, as encoding/json does.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}

	return name
}

// meetRequirements validates that all required fields of a struct are non-zero,
// the error names the claim of the first zero field.
func meetRequirements(val reflect.Value) error {
	val = reflect.Indirect(val)
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		// skip unexported fields here.
		if isExported := field.PkgPath == ""; !isExported {
			continue
		}

		if fieldTyp := indirectType(field.Type); fieldTyp.Kind() == reflect.Struct {
			if err := meetRequirements(val.Field(i)); err != nil {
				return err
			}

			continue
		}

		if HasRequiredJSONTag(field) {
			if val.Field(i).IsZero() {
				return missingClaim(jsonFieldName(field))
			}
		}
	}

	return nil
}

// indirectType returns the underlying type for pointer and container types.
func indirectType(typ reflect.Type) reflect.Type {
	switch typ.Kind() {
	case reflect.Ptr, reflect.Array, reflect.Chan, reflect.Map, reflect.Slice:
		return typ.Elem()
	}
	return typ
}
