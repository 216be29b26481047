package binder

import (
	"github.com/go-playground/validator/v10"
	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/harmonia-music/harmonia/pkg/search"
)

// categoryValidator ensures the value is a known search category name or
// "all". The empty string is allowed so that optional filter params can be
// omitted; combine with `required` when the param is mandatory.
func categoryValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == search.FilterAll {
		return true
	}
	for _, category := range search.Categories {
		if value == category {
			return true
		}
	}
	return false
}

// mediaTypeValidator ensures the value is a known media type.
func mediaTypeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return media.Type(value).Valid()
}
