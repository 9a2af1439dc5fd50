package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	msg, err := Encode(VocabularyChange{Categories: []string{"makes"}})
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.JSONEq(t, `{"categories":["makes"]}`, string(msg.Body))
}

func TestHandle(t *testing.T) {
	var got VocabularyChange
	err := Handle([]byte(`{"categories":["models","makes"]}`), func(c VocabularyChange) error {
		got = c
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"models", "makes"}, got.Categories)

	err = Handle([]byte(`not json`), func(VocabularyChange) error { return nil })
	assert.Error(t, err)

	failed := errors.New("failed")
	err = Handle([]byte(`{}`), func(VocabularyChange) error { return failed })
	assert.ErrorIs(t, err, failed)
}

func TestGetName(t *testing.T) {
	assert.Equal(t, "global_tracking", getName("global", TrackingTopic))
}
