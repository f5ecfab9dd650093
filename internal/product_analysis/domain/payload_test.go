package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadAccessors(t *testing.T) {
	p, err := DecodePayload([]byte(`{
		"name": "Test Soap",
		"count": 3,
		"score": "7.5",
		"flag": true,
		"nothing": null,
		"scores": {"health": 8},
		"strengths": ["clear labels", 4, "audited"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "Test Soap", p.StringOr("name", "N/A"))
	assert.Equal(t, "3", p.StringOr("count", "N/A"))
	assert.Equal(t, "true", p.StringOr("flag", "N/A"))
	assert.Equal(t, "N/A", p.StringOr("missing", "N/A"))
	assert.Equal(t, "N/A", p.StringOr("scores", "N/A"))

	f, ok := p.Float("score")
	assert.True(t, ok)
	assert.Equal(t, 7.5, f)
	assert.Equal(t, -1.0, p.FloatOr("name", -1))

	assert.True(t, p.Has("name"))
	assert.False(t, p.Has("nothing"))
	assert.False(t, p.Has("missing"))

	assert.Equal(t, 8.0, p.Object("scores").FloatOr("health", 0))
	assert.Nil(t, p.Object("name"))
	assert.Equal(t, []string{"clear labels", "audited"}, p.Strings("strengths"))
	assert.Nil(t, p.Strings("name"))
}

func TestNilPayloadIsSafe(t *testing.T) {
	var p Payload
	assert.False(t, p.Has("x"))
	assert.Equal(t, "d", p.StringOr("x", "d"))
	assert.Nil(t, p.Object("x").Strings("y"))
	_, ok := p.Object("scores").Float("health")
	assert.False(t, ok)
}

func TestDecodePayload(t *testing.T) {
	p, err := DecodePayload([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = DecodePayload([]byte(`[1,2]`))
	assert.Error(t, err)
}
