package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report json/form names instead of Go field names in validation details.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	}
}

const msgRequestValidationFailed = "Request validation failed"

// requireJSON rejects request bodies that are not application/json.
func requireJSON(c *gin.Context) error {
	if c.ContentType() != binding.MIMEJSON {
		return utils.NewNotAcceptableError(fmt.Sprintf("Invalid content type (%s)", c.ContentType()))
	}
	return nil
}

// bindingError turns a gin binding failure into a ValidationError with one
// detail per offending field.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]utils.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			detail := utils.ErrorDetail{
				Code:    strings.ToUpper(fe.Tag()),
				Message: fmt.Sprintf("Invalid value for %s", fe.Field()),
				Path:    []string{fe.Field()},
			}
			if fe.Tag() == "required" {
				detail.Message = fmt.Sprintf("Missing required property: %s", fe.Field())
			}
			details = append(details, detail)
		}
		return utils.NewValidationError(msgRequestValidationFailed, details...)
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return utils.NewValidationError(msgRequestValidationFailed, utils.ErrorDetail{
			Code:    "INVALID_TYPE",
			Message: fmt.Sprintf("Invalid type for %s: expected %s", typeErr.Field, jsonTypeName(typeErr.Type)),
			Path:    []string{typeErr.Field},
		})
	}
	// Decoder messages name Go types and offsets; keep them out of responses.
	return utils.NewValidationError(msgRequestValidationFailed, utils.ErrorDetail{
		Code:    "INVALID_REQUEST",
		Message: "Request body is not valid JSON",
		Path:    []string{},
	})
}

// jsonTypeName names the JSON type a Go destination type decodes from.
func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return "value"
}

func formatError(field, format string) error {
	return utils.NewValidationError(msgRequestValidationFailed, utils.ErrorDetail{
		Code:    "INVALID_FORMAT",
		Message: fmt.Sprintf("Object didn't pass validation for format %s", format),
		Path:    []string{field},
	})
}

// parseDateParam parses a "YYYY-MM-DD" request value.
func parseDateParam(field, value string) (time.Time, error) {
	day, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, formatError(field, "date")
	}
	return day, nil
}

// parseDateTimeParam parses an RFC 3339 request value.
func parseDateTimeParam(field, value string) (time.Time, error) {
	t, err := utils.ParseDateTime(value)
	if err != nil {
		return time.Time{}, formatError(field, "date-time")
	}
	return t, nil
}

// abortWithError hands err to the error middleware.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// respondList writes 204 for an empty listing and 200 with the items otherwise.
func respondList[T any](c *gin.Context, items []T) {
	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, items)
}
