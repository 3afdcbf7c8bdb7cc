package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tutorhive/tutorhive/internal/app/models/dto"
)

var validate = validator.New()

// ValidateRequest binds the request body into a fresh instance of obj's type
// and validates it. The validated body is stored under "validatedBody".
func ValidateRequest(obj interface{}) gin.HandlerFunc {
	objType := reflect.TypeOf(obj)
	if objType.Kind() == reflect.Ptr {
		objType = objType.Elem()
	}

	return func(c *gin.Context) {
		body := reflect.New(objType).Interface()

		if err := c.ShouldBindJSON(body); err != nil {
			errorDetail := dto.HandleValidationError(err)
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			c.Abort()
			return
		}

		if err := validate.Struct(body); err != nil {
			errorDetail := dto.HandleValidationError(err)
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			c.Abort()
			return
		}

		c.Set("validatedBody", body)
		c.Next()
	}
}

// ValidatedBody retrieves the body stored by ValidateRequest
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	value, exists := c.Get("validatedBody")
	if !exists {
		return nil, false
	}
	body, ok := value.(*T)
	return body, ok
}
