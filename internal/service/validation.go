package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateCatInput is the payload accepted when adding a cat.
type CreateCatInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Age             int     `json:"age" validate:"gte=0,lte=2147483647"`
	Breed           string  `json:"breed" validate:"max=100"`
	Weight          float64 `json:"weight" validate:"gte=0"`
	HasClippedClaws *bool   `json:"hasClippedClaws"`
}

// CreateDogInput is the payload accepted when adding a dog.
type CreateDogInput struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Age      int     `json:"age" validate:"gte=0,lte=2147483647"`
	Breed    string  `json:"breed" validate:"max=100"`
	Weight   float64 `json:"weight" validate:"gte=0"`
	WagsTail *bool   `json:"wagsTail"`
}

// CreateOwnerInput is the payload accepted when adding an owner.
// Referenced ids are not checked against the pet collections.
type CreateOwnerInput struct {
	Name string   `json:"name" validate:"required,max=100"`
	Age  int      `json:"age" validate:"gte=0,lte=2147483647"`
	Cats []string `json:"cats" validate:"dive,required"`
	Dogs []string `json:"dogs" validate:"dive,required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so clients see what they sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and folds failures into one invalid input error.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return NewInvalidInputError(ferrs)
}

// fieldPath drops the struct name from the namespace: "CreateOwnerInput.cats[1]" -> "cats[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("length must be <= %s", fe.Param())
		}
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func trimmedID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return NewInvalidInputError([]FieldError{{Field: field, Message: "must not be empty"}})
	}
	return nil
}
