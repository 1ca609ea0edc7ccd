package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/HSouheill/barrim_admin/models"
)

// PresignExpiry is the lifetime of presigned object URLs
const PresignExpiry = time.Hour

// S3Store keeps files in an S3-compatible bucket and hands out presigned
// URLs, or public URLs when the bucket is served publicly
type S3Store struct {
	Client        *s3.Client
	PresignClient *s3.PresignClient
	Bucket        string
	PublicURL     string
}

func NewS3Store(client *s3.Client, bucket, publicURL string) *S3Store {
	return &S3Store{
		Client:        client,
		PresignClient: s3.NewPresignClient(client),
		Bucket:        bucket,
		PublicURL:     strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3Store) Upload(ctx context.Context, name string, body io.Reader, contentType string) (models.FileMetadata, error) {
	name = CleanFilename(name)
	id := uuid.New().String() + strings.ToLower(filepath.Ext(name))

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(id),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"name": name},
	}

	// Seekable bodies keep their length so the SDK can sign the payload
	var size int64
	counter := &countingReader{r: body}
	if seeker, ok := body.(io.ReadSeeker); ok {
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return models.FileMetadata{}, err
		}
		if _, err := seeker.Seek(0, io.SeekStart); err != nil {
			return models.FileMetadata{}, err
		}
		size = end
		input.Body = seeker
		input.ContentLength = aws.Int64(size)
	} else {
		input.Body = counter
	}

	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return models.FileMetadata{}, fmt.Errorf("failed to upload to S3: %w", err)
	}
	if input.ContentLength == nil {
		size = counter.n
	}

	var err error
	meta := models.FileMetadata{ID: id, Name: name, Size: size, MimeType: contentType}
	if meta.PreviewURL, err = s.objectURL(ctx, id, ""); err != nil {
		return meta, err
	}
	meta.DownloadURL, err = s.objectURL(ctx, id, name)
	return meta, err
}

func (s *S3Store) Delete(ctx context.Context, id string) error {
	if err := s.head(ctx, id); err != nil {
		return err
	}
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (s *S3Store) PreviewURL(ctx context.Context, id string) (string, error) {
	if err := s.head(ctx, id); err != nil {
		return "", err
	}
	return s.objectURL(ctx, id, "")
}

func (s *S3Store) DownloadURL(ctx context.Context, id string) (string, error) {
	if err := s.head(ctx, id); err != nil {
		return "", err
	}
	return s.objectURL(ctx, id, id)
}

func (s *S3Store) Open(ctx context.Context, id string) (io.ReadCloser, models.FileMetadata, error) {
	resp, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return nil, models.FileMetadata{}, s.wrapErr(id, err)
	}

	meta := models.FileMetadata{ID: id, Name: id, MimeType: "application/octet-stream"}
	if resp.ContentType != nil {
		meta.MimeType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		meta.Size = *resp.ContentLength
	}
	if name, ok := resp.Metadata["name"]; ok && name != "" {
		meta.Name = name
	}
	return resp.Body, meta, nil
}

func (s *S3Store) head(ctx context.Context, id string) error {
	_, err := s.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return s.wrapErr(id, err)
	}
	return nil
}

// objectURL builds a public URL when one is configured, otherwise a
// presigned GET. A non-empty attachmentName forces a download disposition.
func (s *S3Store) objectURL(ctx context.Context, id, attachmentName string) (string, error) {
	if s.PublicURL != "" {
		u := fmt.Sprintf("%s/%s", s.PublicURL, url.PathEscape(id))
		return u, nil
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(id),
	}
	if attachmentName != "" {
		input.ResponseContentDisposition = aws.String(fmt.Sprintf("attachment; filename=%q", attachmentName))
	}
	presigned, err := s.PresignClient.PresignGetObject(ctx, input, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return presigned.URL, nil
}

func (s *S3Store) wrapErr(id string, err error) error {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: file %s", models.ErrNotFound, id)
	}
	return fmt.Errorf("s3 object %s: %w", id, err)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
