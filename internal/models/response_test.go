package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseUnmarshal(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		var r Response
		require.NoError(t, json.Unmarshal([]byte(`"Paris"`), &r))
		assert.False(t, r.IsList)
		assert.Equal(t, "Paris", r.Scalar)
	})

	t.Run("Array", func(t *testing.T) {
		var r Response
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &r))
		assert.True(t, r.IsList)
		assert.Equal(t, []string{"a", "b"}, r.List)
	})

	t.Run("Number", func(t *testing.T) {
		var r Response
		assert.Error(t, json.Unmarshal([]byte(`42`), &r))
	})

	t.Run("InsideMap", func(t *testing.T) {
		var responses map[string]Response
		payload := `{"q1":"True","q2":["x","y"]}`
		require.NoError(t, json.Unmarshal([]byte(payload), &responses))
		assert.Equal(t, ScalarResponse("True"), responses["q1"])
		assert.Equal(t, ListResponse("x", "y"), responses["q2"])
	})
}

func TestResponseMarshal(t *testing.T) {
	scalar, err := json.Marshal(ScalarResponse("abc"))
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(scalar))

	list, err := json.Marshal(ListResponse("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(list))

	empty, err := json.Marshal(Response{IsList: true})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(empty), "nil list marshals as empty array")
}

func TestResponseEmptyAndValues(t *testing.T) {
	assert.True(t, Response{}.IsEmpty())
	assert.True(t, ListResponse().IsEmpty())
	assert.False(t, ScalarResponse("x").IsEmpty())
	assert.False(t, ListResponse("x").IsEmpty())

	assert.Nil(t, Response{}.Values())
	assert.Equal(t, []string{"x"}, ScalarResponse("x").Values())
	assert.Equal(t, []string{"a", "b"}, ListResponse("a", "b").Values())
}
