package category_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xnews/internal/category"
	"xnews/pkg/models"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, category.WriteCSV(&buf, []models.Category{{ID: 1, Name: "World"}, {ID: 2, Name: "Arts, Culture"}}))

	assert.Equal(t, "id,name\n1,World\n2,\"Arts, Culture\"\n", buf.String())
}
