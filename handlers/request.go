package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/anjiri1684/trivia_api/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// body is a JSON object decoded one level deep so that each field can be
// checked on its own.
type body map[string]json.RawMessage

func parseBody(c *fiber.Ctx) (body, error) {
	var b body
	if err := c.BodyParser(&b); err != nil {
		return nil, apperrors.BadRequest(fmt.Errorf("parse body: %w", err))
	}
	if b == nil {
		return nil, apperrors.BadRequest(errors.New("body must be a JSON object"))
	}
	return b, nil
}

func (b body) has(key string) bool {
	_, ok := b[key]
	return ok
}

// bind decodes every field of dst from b, then validates dst. All type
// mismatches and failed rules are reported together in one validation error.
func (b body) bind(dst any) error {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()

	var problems []string
	mistyped := make(map[string]bool)
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		raw, ok := b[name]
		if !ok || string(raw) == "null" {
			continue
		}

		if err := json.Unmarshal(raw, rv.Field(i).Addr().Interface()); err != nil {
			problems = append(problems, typeProblem(name, field.Type, err))
			mistyped[name] = true
		}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.BadRequest(err)
		}
		for _, fe := range verrs {
			name := fieldPath(fe)
			if mistyped[strings.SplitN(name, ".", 2)[0]] {
				continue
			}
			problems = append(problems, ruleProblem(name, fe))
		}
	}

	if len(problems) > 0 {
		return apperrors.Validation(problems)
	}
	return nil
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func typeProblem(name string, t reflect.Type, err error) string {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return fmt.Sprintf("%s.%s must be %s", name, ute.Field, describeType(ute.Type))
	}
	return fmt.Sprintf("%s must be %s", name, describeType(t))
}

func ruleProblem(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return name + " must not be empty"
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s rule", name, fe.Tag())
	}
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list of " + strings.TrimPrefix(strings.TrimPrefix(describeType(t.Elem()), "an "), "a ") + "s"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a " + t.Kind().String()
	}
}

// pathID reads a positive integer identifier from a route parameter.
func pathID(c *fiber.Ctx, param string) (int, error) {
	raw := c.Params(param)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.BadRequest(fmt.Errorf("%s %q is not an integer", param, raw))
	}
	if id < 1 {
		return 0, apperrors.BadRequest(fmt.Errorf("%s %d is not positive", param, id))
	}
	return id, nil
}
