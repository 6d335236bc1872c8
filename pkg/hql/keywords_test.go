package hql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("SELECT"))
	assert.True(t, IsKeyword("select"))
	assert.True(t, IsKeyword("Between"))
	assert.False(t, IsKeyword("user_id"))
	assert.False(t, IsKeyword(""))
}

func TestKeywordsIsACopy(t *testing.T) {
	ks := Keywords()
	assert.NotEmpty(t, ks)

	ks[0] = "mutated"
	assert.NotEqual(t, ks[0], Keywords()[0])
}

func TestVariableNamespaces(t *testing.T) {
	ns := VariableNamespaces()
	assert.Equal(t, []string{"hiveconf", "hivevar", "env", "system", "define"}, ns)

	ns[0] = "mutated"
	assert.Equal(t, "hiveconf", VariableNamespaces()[0])
}
