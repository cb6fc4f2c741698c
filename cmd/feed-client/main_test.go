package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	raw := []byte(`{"type":"news.created","news_id":3}`)

	assert.Equal(t, string(raw), format(raw, false))
	assert.Equal(t, "{\n  \"news_id\": 3,\n  \"type\": \"news.created\"\n}", format(raw, true))
	assert.Equal(t, "hello", format([]byte("hello"), true))
}
