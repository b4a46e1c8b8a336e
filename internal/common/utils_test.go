package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSONPlain(t *testing.T) {
	got, err := ParseJSON[payload](`{"name": "a", "count": 2}`)
	require.NoError(t, err)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestParseJSONWrappedInProse(t *testing.T) {
	resp := "Here is the result:\n```json\n{\"name\": \"b\", \"count\": 7}\n```\nLet me know if you need more."
	got, err := ParseJSON[payload](resp)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	assert.Equal(t, 7, got.Count)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[payload]("no json here")
	assert.Error(t, err)
}

func TestParseJSONMalformed(t *testing.T) {
	_, err := ParseJSON[payload]("{not valid}")
	assert.Error(t, err)
}
