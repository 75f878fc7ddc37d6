package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	n, err := ToInt64("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = ToInt64("abc")
	assert.Error(t, err)

	_, err = ToInt64("")
	assert.Error(t, err)
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("yes"))
	assert.True(t, ToBool("on"))
	assert.False(t, ToBool("0"))
	assert.False(t, ToBool("false"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool("TRUE"))
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, "Not found", 404)

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Not found"}`, rec.Body.String())
}
