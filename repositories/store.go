package repositories

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/HSouheill/barrim_admin/models"
)

// Collection names
const (
	WholesaleRequestsCollection = "wholesale_account_requests"
	UsersCollection             = "users"
	BannersCollection           = "banners"
	VouchersCollection          = "vouchers"
	GeneralDataCollection       = "general_data"
	SubscribersCollection       = "subscribers"
	AdminsCollection            = "admins"
)

// Document is an untyped store record. The record id is held under "id".
type Document map[string]interface{}

// ID returns the record id, or "" when the document has none
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// Filter is an equality filter: it matches when the record field equals one
// of Values.
type Filter struct {
	Field  string
	Values []interface{}
}

// Equal builds an equality filter on field
func Equal(field string, values ...interface{}) Filter {
	return Filter{Field: field, Values: values}
}

// ListOptions narrows a List call. Records are returned in insertion order;
// CursorAfter starts the page after the record with that id.
type ListOptions struct {
	Filters     []Filter
	Limit       int
	Offset      int
	CursorAfter string
}

// ListResult is one page of documents. Total counts every match of the
// filters, regardless of the page window.
type ListResult struct {
	Documents []Document
	Total     int64
}

// DocumentStore is the remote document database the back office reads and
// writes. Implementations return models.ErrNotFound for unknown ids.
type DocumentStore interface {
	List(ctx context.Context, collection string, opts ListOptions) (*ListResult, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	Update(ctx context.Context, collection, id string, patch Document) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}

// normalizer is implemented by every model decoded from the store
type normalizer interface {
	Normalize() error
}

// DecodeDocument decodes a store document into a typed model
func DecodeDocument(doc Document, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// EncodeDocument turns a typed model into a store document
func EncodeDocument(v interface{}) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return Document(m), nil
}

// decodeRecord decodes and normalizes a single record
func decodeRecord[T any, PT interface {
	*T
	normalizer
}](doc Document) (T, error) {
	var v T
	if err := DecodeDocument(doc, PT(&v)); err != nil {
		return v, fmt.Errorf("%w: %v", models.ErrInvalidRecord, err)
	}
	if err := PT(&v).Normalize(); err != nil {
		return v, err
	}
	return v, nil
}

// decodeList decodes a page of records, skipping the ones that fail the
// model's normalization. Skipped records are logged and never returned.
func decodeList[T any, PT interface {
	*T
	normalizer
}](collection string, docs []Document) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := decodeRecord[T, PT](doc)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"collection": collection,
				"id":         doc.ID(),
				"error":      err,
			}).Warn("Skipping malformed record")
			continue
		}
		out = append(out, v)
	}
	return out
}
