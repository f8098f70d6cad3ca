package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentID_Deterministic(t *testing.T) {
	url := "https://www.bseindia.com/xml-data/corpfiling/AttachLive/abc.pdf"

	id1 := DocumentID(url)
	id2 := DocumentID(url)
	assert.Equal(t, id1, id2)

	parsed, err := uuid.Parse(id1)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestDocumentID_DistinctURLs(t *testing.T) {
	a := DocumentID("https://example.com/a.pdf")
	b := DocumentID("https://example.com/b.pdf")
	assert.NotEqual(t, a, b)
}
