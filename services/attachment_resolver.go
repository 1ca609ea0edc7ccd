package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/storage"
)

// maxConcurrentLookups bounds the parallel preview lookups of one batch
const maxConcurrentLookups = 8

// AttachmentLabel names an attachment by its position in the request
func AttachmentLabel(index int) string {
	switch index {
	case 0:
		return "Photo ID"
	case 1:
		return "Utility Bill"
	}
	return fmt.Sprintf("Other Document %d", index-1)
}

// FallbackAttachmentLabel names an attachment whose preview could not be
// resolved
func FallbackAttachmentLabel(index int) string {
	return fmt.Sprintf("Attachment %d", index+1)
}

// AttachmentResolver turns attachment file ids into labeled preview links
type AttachmentResolver struct {
	files storage.FileStore
}

func NewAttachmentResolver(files storage.FileStore) *AttachmentResolver {
	return &AttachmentResolver{files: files}
}

// Resolve looks up every preview concurrently. The result has one entry per
// id in input order; a failed lookup yields a fallback entry with an empty
// URL instead of failing the batch.
func (r *AttachmentResolver) Resolve(ctx context.Context, fileIDs []string) []models.Attachment {
	attachments := make([]models.Attachment, len(fileIDs))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for i, fileID := range fileIDs {
		i, fileID := i, fileID
		g.Go(func() error {
			url, err := r.files.PreviewURL(ctx, fileID)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"fileId": fileID,
					"index":  i,
				}).WithError(err).Warn("Error getting attachment preview")
				attachmentFailuresTotal.Inc()
				attachments[i] = models.Attachment{Label: FallbackAttachmentLabel(i), URL: ""}
				return nil
			}
			attachments[i] = models.Attachment{Label: AttachmentLabel(i), URL: url}
			return nil
		})
	}
	// Lookups never fail the group
	_ = g.Wait()

	return attachments
}
