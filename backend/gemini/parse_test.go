package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSalvageJSONPlainObject(t *testing.T) {
	var out map[string]string
	assert.True(t, SalvageJSON(`{"name":"Writer"}`, &out))
	assert.Equal(t, "Writer", out["name"])
}

func TestSalvageJSONFencedBlock(t *testing.T) {
	raw := "```json\n[{\"name\":\"A\"},{\"name\":\"B\"}]\n```"
	var out []map[string]string
	assert.True(t, SalvageJSON(raw, &out))
	assert.Len(t, out, 2)
}

func TestSalvageJSONBareFence(t *testing.T) {
	raw := "```\n{\"name\":\"C\"}\n```"
	var out map[string]string
	assert.True(t, SalvageJSON(raw, &out))
	assert.Equal(t, "C", out["name"])
}

func TestSalvageJSONEmbeddedInProse(t *testing.T) {
	raw := `Here are the tools you asked for:

[{"name":"A"},{"name":"B"}]

Let me know if you need more.`
	var out []map[string]string
	assert.True(t, SalvageJSON(raw, &out))
	assert.Len(t, out, 2)
}

func TestSalvageJSONPrefersArrayOverObject(t *testing.T) {
	// Objects inside the array must not confuse the bracket matching
	raw := `The result {"note":"ignored"} is: [{"id":"x"}]`
	var out []map[string]string
	assert.True(t, SalvageJSON(raw, &out))
	assert.Equal(t, "x", out[0]["id"])
}

func TestSalvageJSONFailure(t *testing.T) {
	var out []map[string]string
	assert.False(t, SalvageJSON("I could not produce any data today.", &out))
	assert.False(t, SalvageJSON("", &out))
	assert.False(t, SalvageJSON("[[broken", &out))
}
