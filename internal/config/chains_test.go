package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChains(t *testing.T) {
	path := writeFile(t, "chains.yaml", `
chains:
  emailgetter_to_db:
    description: fetch and persist
    steps:
      - node: emailgetter
        inputs:
          max_emails: 3
      - node: dbwriter
        inputs:
          emails: $emailgetter.emails
          table: emails
`)

	chains, err := LoadChains(path)
	require.NoError(t, err)
	require.Contains(t, chains, "emailgetter_to_db")

	spec := chains["emailgetter_to_db"]
	require.Len(t, spec.Steps, 2)
	assert.Equal(t, 3, spec.Steps[0].Inputs["max_emails"].Literal)

	emailsInput := spec.Steps[1].Inputs["emails"]
	require.NotNil(t, emailsInput.Ref)
	assert.Equal(t, "emailgetter", emailsInput.Ref.Step)
	assert.Equal(t, "emails", emailsInput.Ref.Field)
	assert.Equal(t, "emails", spec.Steps[1].Inputs["table"].Literal)
}

func TestLoadChains_ForwardReferenceRejected(t *testing.T) {
	path := writeFile(t, "chains.yaml", `
chains:
  broken:
    steps:
      - node: dbwriter
        inputs:
          emails: $emailgetter.emails
      - node: emailgetter
`)

	_, err := LoadChains(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an earlier step")
}

func TestLoadChains_MissingFile(t *testing.T) {
	chains, err := LoadChains("/does/not/exist/chains.yaml")
	require.NoError(t, err)
	assert.Empty(t, chains)
}

func TestDefaultChains(t *testing.T) {
	chains := DefaultChains()
	require.Contains(t, chains, "emailgetter_to_db")
	require.NoError(t, chains["emailgetter_to_db"].Validate())
}
