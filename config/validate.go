package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError 汇总字段校验失败信息，键为字段路径（如 Providers.OpenAI.Temperature）
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "config validation errors: " + strings.Join(parts, "; ")
}

// Validate 验证配置
func (c *Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Config.")
		fields[path] = describe(path, fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(path string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", path)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", path, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", path, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", path, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", path, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", path, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", path)
	default:
		return fmt.Sprintf("%s validation failed on '%s' tag", path, fe.Tag())
	}
}
