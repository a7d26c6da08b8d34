package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ghuser/stockroom/pkg/blobstore"
	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/telemetry"
	"github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
)

// AttachmentService keeps document rows and blob content in step.
//
// Uploads write the blob before the row, so a crash in between leaves an
// unreferenced blob (reclaimed by OrphanSweeper) and never a row without
// content. Deletes remove the blob before the row. A blob is shared by every
// document uploaded under the same sanitized name and is only removed together
// with the last row referencing it.
type AttachmentService struct {
	docs    repositories.DocumentRepository
	items   repositories.ItemRepository
	blobs   blobstore.Store
	metrics *telemetry.Metrics
	log     logger.Logger
}

// NewAttachmentService wires an AttachmentService. metrics may be nil.
func NewAttachmentService(
	docs repositories.DocumentRepository,
	items repositories.ItemRepository,
	blobs blobstore.Store,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *AttachmentService {
	return &AttachmentService{docs: docs, items: items, blobs: blobs, metrics: metrics, log: log}
}

// Upload attaches content to item itemID under the sanitized filename. An
// existing blob with that name is overwritten.
//
// It returns (nil, nil) without writing anything when the sanitized name is
// empty or content is empty.
func (s *AttachmentService) Upload(ctx context.Context, itemID int64, filename string, content io.Reader) (*models.Document, error) {
	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("check item: %w", err)
	}
	if !exists {
		return nil, domain.ErrItemNotFound
	}

	name := blobstore.SecureFilename(filename)
	if name == "" {
		return nil, nil
	}

	body := bufio.NewReader(content)
	if _, err := body.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read upload: %w", err)
	}

	doc := models.NewDocument(itemID, name)
	if err := domainsvcs.ValidateDocumentForCreation(doc); err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	size, err := s.blobs.Put(ctx, name, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
	}

	if err := s.docs.Save(ctx, doc); err != nil {
		s.discardBlob(ctx, name)
		return nil, fmt.Errorf("save document: %w", err)
	}

	s.metrics.DocumentUploaded(ctx, size)
	s.log.InfoContext(ctx, "document uploaded", "item_id", itemID, "document_id", doc.ID, "stored_name", name, "bytes", size)
	return doc, nil
}

// List returns the documents attached to itemID in upload order.
func (s *AttachmentService) List(ctx context.Context, itemID int64) ([]*models.Document, error) {
	docs, err := s.docs.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes document docID and, unless another document still uses it,
// its blob. A document that does not exist is not an error; the returned
// document is nil in that case.
func (s *AttachmentService) Delete(ctx context.Context, docID int64) (*models.Document, error) {
	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := s.remove(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DeleteAllForItem runs every document of itemID through the single delete
// path. It stops at the first failure, leaving the remaining rows in place.
func (s *AttachmentService) DeleteAllForItem(ctx context.Context, itemID int64) error {
	docs, err := s.List(ctx, itemID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.remove(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// Open returns the content stored under storedName. The blob must be
// referenced by at least one document; anything else is ErrDocumentNotFound.
func (s *AttachmentService) Open(ctx context.Context, storedName string) (*blobstore.Object, error) {
	if storedName == "" || blobstore.SecureFilename(storedName) != storedName {
		return nil, domain.ErrDocumentNotFound
	}

	refs, err := s.docs.CountByStoredName(ctx, storedName)
	if err != nil {
		return nil, fmt.Errorf("count documents: %w", err)
	}
	if refs == 0 {
		return nil, domain.ErrDocumentNotFound
	}

	obj, err := s.blobs.Open(ctx, storedName)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotExist) || errors.Is(err, blobstore.ErrInvalidName) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
	}
	return obj, nil
}

func (s *AttachmentService) remove(ctx context.Context, doc *models.Document) error {
	refs, err := s.docs.CountByStoredName(ctx, doc.StoredName)
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}

	removeBlob := refs <= 1
	if removeBlob {
		if err := s.blobs.Remove(ctx, doc.StoredName); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrStorageIO, err)
		}
	}

	if err := s.docs.Delete(ctx, doc.ID); err != nil && !errors.Is(err, domain.ErrDocumentNotFound) {
		return fmt.Errorf("delete document: %w", err)
	}

	s.metrics.DocumentDeleted(ctx, removeBlob)
	s.log.InfoContext(ctx, "document deleted", "item_id", doc.ItemID, "document_id", doc.ID, "blob_removed", removeBlob)
	return nil
}

// discardBlob removes a blob whose row could not be inserted, unless an
// earlier upload under the same name still references it.
func (s *AttachmentService) discardBlob(ctx context.Context, name string) {
	refs, err := s.docs.CountByStoredName(ctx, name)
	if err != nil {
		s.log.WarnContext(ctx, "blob left for sweep", "stored_name", name, "error", err)
		return
	}
	if refs > 0 {
		return
	}
	if err := s.blobs.Remove(ctx, name); err != nil {
		s.log.WarnContext(ctx, "blob left for sweep", "stored_name", name, "error", err)
	}
}
