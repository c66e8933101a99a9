package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/menye94/park-pricing/internal/pricing"
)

var registerOnce sync.Once

// registerValidators teaches gin's validator the domain tags and makes it
// report json field names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("taxbehavior", validateTaxBehavior)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func validateTaxBehavior(fl validator.FieldLevel) bool {
	_, err := pricing.ParseTaxBehavior(fl.Field().String())
	return err == nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field %s is required", fe.Field())
	case "gt", "min":
		return fmt.Sprintf("field %s must be at least %s", fe.Field(), minimumFor(fe))
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s]", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("field %s must be at most %s characters", fe.Field(), fe.Param())
	case "taxbehavior":
		return fmt.Sprintf("field %s must be inclusive, exclusive or a tax code 1-4", fe.Field())
	default:
		return fmt.Sprintf("field %s is not valid", fe.Field())
	}
}

func minimumFor(fe validator.FieldError) string {
	if fe.Tag() == "gt" && fe.Param() == "0" {
		return "1"
	}
	return fe.Param()
}

// bindError reports a failed ShouldBind. Validation failures name every
// offending field; anything else is a malformed body.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, validationMessage(fe))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: strings.Join(msgs, ", "),
		Field: verrs[0].Field(),
	})
}
