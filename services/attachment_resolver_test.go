package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HSouheill/barrim_admin/models"
)

func TestAttachmentLabel(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "Photo ID"},
		{1, "Utility Bill"},
		{2, "Other Document 1"},
		{3, "Other Document 2"},
		{5, "Other Document 4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, AttachmentLabel(tt.index))
	}
	assert.Equal(t, "Attachment 3", FallbackAttachmentLabel(2))
}

func TestAttachmentResolver_EmptyInput(t *testing.T) {
	resolver := NewAttachmentResolver(newFakeFileStore())

	got := resolver.Resolve(context.Background(), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAttachmentResolver_KeepsInputOrder(t *testing.T) {
	files := newFakeFileStore()
	// the first lookups finish last
	files.delays["a"] = 30 * time.Millisecond
	files.delays["b"] = 20 * time.Millisecond
	files.delays["c"] = 10 * time.Millisecond

	got := NewAttachmentResolver(files).Resolve(context.Background(), []string{"a", "b", "c", "d"})
	require.Len(t, got, 4)
	assert.Equal(t, []models.Attachment{
		{Label: "Photo ID", URL: "https://files.test/a/preview"},
		{Label: "Utility Bill", URL: "https://files.test/b/preview"},
		{Label: "Other Document 1", URL: "https://files.test/c/preview"},
		{Label: "Other Document 2", URL: "https://files.test/d/preview"},
	}, got)
}

func TestAttachmentResolver_FailedLookupFallsBack(t *testing.T) {
	files := newFakeFileStore()
	files.failPreview["b"] = errors.New("access denied")

	got := NewAttachmentResolver(files).Resolve(context.Background(), []string{"a", "b", "c"})
	require.Len(t, got, 3)
	assert.Equal(t, "Photo ID", got[0].Label)
	assert.Equal(t, models.Attachment{Label: "Attachment 2", URL: ""}, got[1])
	assert.Equal(t, "Other Document 1", got[2].Label)
	assert.NotEmpty(t, got[2].URL)
}
