package paperless

import (
	"context"
	"strconv"
	"strings"
)

// Document is the backend's document resource, passed through largely
// unchanged. Optional relations are pointers so PATCH bodies can clear
// or omit them independently.
type Document struct {
	ID                  int        `json:"id"`
	Title               string     `json:"title"`
	Content             string     `json:"content,omitempty"`
	TagIDs              []int      `json:"tags"`
	CorrespondentID     *int       `json:"correspondent"`
	DocumentTypeID      *int       `json:"document_type"`
	StoragePathID       *int       `json:"storage_path"`
	Created             string     `json:"created_date,omitempty"`
	Added               string     `json:"added,omitempty"`
	ArchiveSerialNumber *int       `json:"archive_serial_number"`
	OriginalFileName    string     `json:"original_file_name,omitempty"`
	ArchivedFileName    string     `json:"archived_file_name,omitempty"`
	PageCount           *int       `json:"page_count,omitempty"`
	Notes               []Note     `json:"notes,omitempty"`
	SearchHit           *SearchHit `json:"__search_hit__,omitempty"`
}

type Note struct {
	ID      int    `json:"id"`
	Note    string `json:"note"`
	Created string `json:"created"`
}

// SearchHit is attached by the backend on full-text search results.
type SearchHit struct {
	Score      float64 `json:"score"`
	Highlights string  `json:"highlights,omitempty"`
	Rank       int     `json:"rank"`
}

// DocumentUpdate is a partial PATCH body; nil fields are not sent.
type DocumentUpdate struct {
	Title               *string `json:"title,omitempty"`
	CorrespondentID     *int    `json:"correspondent,omitempty"`
	DocumentTypeID      *int    `json:"document_type,omitempty"`
	StoragePathID       *int    `json:"storage_path,omitempty"`
	TagIDs              *[]int  `json:"tags,omitempty"`
	ArchiveSerialNumber *int    `json:"archive_serial_number,omitempty"`
}

// DocumentFilter narrows ListDocuments. Query engages the backend's
// full-text search; the id filters translate to the backend's
// double-underscore query params.
type DocumentFilter struct {
	Query           string
	TagIDs          []int
	CorrespondentID int
	DocumentTypeID  int
	StoragePathID   int
	Page            int
	PageSize        int
}

func (c *Client) ListDocuments(ctx context.Context, f DocumentFilter) (*Paginated[Document], error) {
	q := pageQuery(f.Page, f.PageSize)
	if f.Query != "" {
		q.Set("query", f.Query)
	}
	if len(f.TagIDs) > 0 {
		ids := make([]string, len(f.TagIDs))
		for i, id := range f.TagIDs {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("tags__id__in", strings.Join(ids, ","))
	}
	if f.CorrespondentID > 0 {
		q.Set("correspondent__id", strconv.Itoa(f.CorrespondentID))
	}
	if f.DocumentTypeID > 0 {
		q.Set("document_type__id", strconv.Itoa(f.DocumentTypeID))
	}
	if f.StoragePathID > 0 {
		q.Set("storage_path__id", strconv.Itoa(f.StoragePathID))
	}
	return listPage[Document](c, ctx, "/api/documents/", q)
}

func (c *Client) GetDocument(ctx context.Context, id int) (*Document, error) {
	return getOne[Document](c, ctx, entityPath("documents", id))
}

func (c *Client) UpdateDocument(ctx context.Context, id int, u DocumentUpdate) (*Document, error) {
	return updateOne[Document](c, ctx, entityPath("documents", id), u)
}

func (c *Client) DeleteDocument(ctx context.Context, id int) error {
	return deleteOne(c, ctx, entityPath("documents", id))
}
