package jsoncompat

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Id    int      `json:"id"`
	Name  string   `json:"name,omitempty"`
	Tags  []string `json:"tags"`
	Extra *int     `json:"extra,omitempty"`
}

func TestMarshalUsesStdTags(t *testing.T) {
	b, err := Marshal(sample{Id: 1, Tags: []string{"a"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"tags":["a"]}`, string(b))
}

func TestDecoderIgnoresUnknownFields(t *testing.T) {
	var s sample
	err := NewDecoder(bytes.NewBufferString(`{"id":2,"name":"x","other":true}`)).Decode(&s)
	require.NoError(t, err)
	assert.Equal(t, sample{Id: 2, Name: "x"}, s)
}

func TestEncoderWritesNewline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder(&buf).Encode(map[string]int{"a": 1}))
	assert.Equal(t, "{\"a\":1}\n", buf.String())
}
