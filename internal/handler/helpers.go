package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/apierror"
	"github.com/Sarahknupp/controlai-gerenciador-sub000/internal/fault"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeFault maps the error taxonomy onto HTTP statuses:
// validation → 400, state → 409, dependency → 502, anything else → 500.
func writeFault(c *gin.Context, err error) {
	if f, ok := err.(*fault.Fault); ok {
		var status int
		switch f.Kind {
		case fault.Validation:
			status = http.StatusBadRequest
		case fault.State:
			status = http.StatusConflict
		case fault.Dependency:
			status = http.StatusBadGateway
		default:
			status = http.StatusInternalServerError
		}
		c.JSON(status, apierror.NewWithEntities(f.Message, f.Entities))
		return
	}
	c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
}
