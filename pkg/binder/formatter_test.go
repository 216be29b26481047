package binder

import (
	"testing"

	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
)

func TestFormatUnmarshalTypeError(t *testing.T) {
	t.Parallel()

	err := &json.UnmarshalTypeError{Field: "limit.", Type: intType()}
	assert.Equal(t, `"limit" should be of type int`, formatUnmarshalTypeError(err))
}

func TestFormatSchemaConversionError(t *testing.T) {
	t.Parallel()

	err := schema.ConversionError{Key: "limit", Type: intType()}
	assert.Equal(t, `"limit" should be of type int`, formatSchemaConversionError(err))
}
