package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/butcher/internal/domain/errs"
	"github.com/mamadbah2/butcher/internal/domain/yield"
)

// fieldReasons maps request fields to the reason codes used by the domain errors.
var fieldReasons = map[string]string{
	"weight":       "invalid_weight",
	"type":         "unknown_animal_type",
	"customerName": "empty_customer",
	"items":        "empty_cart",
}

// RegisterValidators installs the custom binding tags on gin's validator engine
// and reports fields by their JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return v.RegisterValidation("animaltype", func(fl validator.FieldLevel) bool {
		_, err := yield.Parse(fl.Field().String())
		return err == nil
	})
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Field  string `json:"field,omitempty"`
}

// writeBindError answers a request rejected before it reached the core.
func writeBindError(c *gin.Context, logger *zap.Logger, err error) {
	resp := errorResponse{Error: "invalid request body", Reason: "invalid_request"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		resp.Field = fe.Field()
		resp.Error = fe.Field() + " failed " + fe.Tag() + " validation"
		if reason, ok := fieldReasons[fe.Field()]; ok {
			resp.Reason = reason
		}
	}

	logger.Warn("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, resp)
}

// writeError maps core errors to HTTP responses.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errs.IsNotFound(err):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), Reason: errs.Reason(err)})
	case errs.IsValidation(err):
		resp := errorResponse{Error: err.Error(), Reason: errs.Reason(err)}
		var v *errs.ValidationError
		if errors.As(err, &v) {
			resp.Field = v.Field
		}
		c.JSON(http.StatusBadRequest, resp)
	case errs.IsStorage(err):
		logger.Error("storage failure", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable", Reason: "storage_error"})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
