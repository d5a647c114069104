package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_UnmarshalKeepsOpaqueFields(t *testing.T) {
	var c Chat
	err := json.Unmarshal([]byte(`{"id":-1001234567890,"isTakeOver":true,"title":"Main","members":{"count":3}}`), &c)
	require.NoError(t, err)

	assert.Equal(t, int64(-1001234567890), c.ID)
	assert.True(t, c.IsTakeOver)
	assert.Equal(t, "Main", c.Title())
	assert.JSONEq(t, `{"count":3}`, string(c.Fields["members"]))
	assert.NotContains(t, c.Fields, "id")
	assert.NotContains(t, c.Fields, "isTakeOver")
}

func TestChat_UnmarshalMissingID(t *testing.T) {
	var c Chat
	assert.Error(t, json.Unmarshal([]byte(`{"isTakeOver":true}`), &c))
}

func TestChat_UnmarshalNullTakeOver(t *testing.T) {
	var c Chat
	require.NoError(t, json.Unmarshal([]byte(`{"id":5,"isTakeOver":null}`), &c))
	assert.False(t, c.IsTakeOver)
	assert.Nil(t, c.Fields)
}

func TestChat_UnmarshalInvalidTakeOver(t *testing.T) {
	var c Chat
	assert.Error(t, json.Unmarshal([]byte(`{"id":5,"isTakeOver":"yes"}`), &c))
}

func TestChat_MarshalPreservesFields(t *testing.T) {
	in := `{"id":-7,"isTakeOver":false,"title":"Side","zeta":[1,2],"alpha":null}`
	var c Chat
	require.NoError(t, json.Unmarshal([]byte(in), &c))

	out, err := json.Marshal(&c)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestChat_MarshalIgnoresShadowedKeys(t *testing.T) {
	c := Chat{
		ID:         1,
		IsTakeOver: true,
		Fields:     map[string]json.RawMessage{"id": json.RawMessage(`99`)},
	}
	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"isTakeOver":true}`, string(out))
}

func TestChat_CloneIsDeep(t *testing.T) {
	c := &Chat{ID: 1, Fields: map[string]json.RawMessage{"title": json.RawMessage(`"a"`)}}
	cp := c.Clone()
	cp.Fields["title"][1] = 'b'
	cp.IsTakeOver = true

	assert.Equal(t, "a", c.Title())
	assert.False(t, c.IsTakeOver)
	assert.Nil(t, (*Chat)(nil).Clone())
}

func TestChat_TitleAbsent(t *testing.T) {
	assert.Equal(t, "", (&Chat{ID: 1}).Title())
	assert.Equal(t, "", (*Chat)(nil).Title())
}
