package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRef(t *testing.T) {
	ref, ok := ParseRef("$emailgetter.emails")
	require.True(t, ok)
	assert.Equal(t, "emailgetter", ref.Step)
	assert.Equal(t, "emails", ref.Field)

	for _, s := range []string{"plain", "$nofield", "$.field", "$step.", ""} {
		_, ok := ParseRef(s)
		assert.False(t, ok, "%q should not parse as a reference", s)
	}
}

func TestInput_UnmarshalYAML(t *testing.T) {
	var m map[string]Input
	src := `
max_emails: 3
table: emails
records: $getter.emails
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &m))

	assert.Equal(t, 3, m["max_emails"].Literal)
	assert.Nil(t, m["max_emails"].Ref)
	assert.Equal(t, "emails", m["table"].Literal)
	require.NotNil(t, m["records"].Ref)
	assert.Equal(t, "getter", m["records"].Ref.Step)
	assert.Equal(t, "emails", m["records"].Ref.Field)
}

func TestChainSpec_Validate(t *testing.T) {
	t.Run("forward reference rejected", func(t *testing.T) {
		spec := ChainSpec{
			Name: "bad",
			Steps: []ChainStep{
				{Node: "dbwriter", Inputs: map[string]Input{
					"emails": {Ref: &StepRef{Step: "emailgetter", Field: "emails"}},
				}},
				{Node: "emailgetter"},
			},
		}
		err := spec.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an earlier step")
	})

	t.Run("self reference rejected", func(t *testing.T) {
		spec := ChainSpec{
			Name: "selfref",
			Steps: []ChainStep{
				{Node: "dbwriter", Inputs: map[string]Input{
					"emails": {Ref: &StepRef{Step: "dbwriter", Field: "count"}},
				}},
			},
		}
		assert.Error(t, spec.Validate())
	})

	t.Run("duplicate step name needs alias", func(t *testing.T) {
		spec := ChainSpec{
			Name:  "dup",
			Steps: []ChainStep{{Node: "dbwriter"}, {Node: "dbwriter"}},
		}
		err := spec.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "alias")

		spec.Steps[1].Alias = "dbwriter2"
		assert.NoError(t, spec.Validate())
	})

	t.Run("empty chain rejected", func(t *testing.T) {
		assert.Error(t, ChainSpec{Name: "empty"}.Validate())
	})

	t.Run("valid backward reference", func(t *testing.T) {
		spec := ChainSpec{
			Name: "ok",
			Steps: []ChainStep{
				{Node: "emailgetter"},
				{Node: "dbwriter", Inputs: map[string]Input{
					"emails": {Ref: &StepRef{Step: "emailgetter", Field: "emails"}},
				}},
			},
		}
		assert.NoError(t, spec.Validate())
	})
}
