package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Decode(t *testing.T) {
	p := Params{
		"to_email":   "ops@example.com",
		"subject":    "hello",
		"max_emails": 3,
	}

	var target struct {
		To      string `mapstructure:"to_email"`
		Subject string `mapstructure:"subject"`
		Max     int    `mapstructure:"max_emails"`
	}

	require.NoError(t, p.Decode(&target))
	assert.Equal(t, "ops@example.com", target.To)
	assert.Equal(t, "hello", target.Subject)
	assert.Equal(t, 3, target.Max)
}

func TestParams_Getters(t *testing.T) {
	p := Params{"s": "v", "n": 9, "l": []any{1}, "d": map[string]any{"k": 1}}

	assert.Equal(t, "v", p.String("s"))
	assert.Equal(t, "", p.String("absent"))
	assert.Equal(t, 9, p.Int("n", 0))
	assert.Equal(t, 4, p.Int("absent", 4))
	assert.Len(t, p.List("l"), 1)
	assert.Len(t, p.Dict("d"), 1)
}
