// ABOUTME: Tests for knowledge document and chunk storage
// ABOUTME: Verifies tenant isolation, case-insensitive search, and cascade delete

package sqlite

import (
	"fmt"
	"testing"

	"github.com/brezcode/coach/internal/models"
)

func saveTestDocument(t *testing.T, store *KnowledgeStore, avatarID string, contents ...string) *models.KnowledgeDocument {
	t.Helper()
	doc, err := models.NewKnowledgeDocument(avatarID, "test doc")
	if err != nil {
		t.Fatalf("NewKnowledgeDocument() error = %v", err)
	}

	chunks := make([]models.KnowledgeChunk, len(contents))
	for i, content := range contents {
		chunks[i] = models.KnowledgeChunk{
			ChunkID:    models.GenerateChunkID(),
			DocumentID: doc.DocumentID,
			AvatarID:   avatarID,
			Index:      i,
			Content:    content,
		}
	}

	if err := store.SaveDocument(doc, chunks); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}
	return doc
}

func TestKnowledgeStore_SaveAndGet(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	doc := saveTestDocument(t, store, "dr_sakura", "mammogram guidance", "self exam steps")

	got, err := store.GetDocument(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if got.ChunkCount != 2 {
		t.Errorf("ChunkCount = %d, want 2", got.ChunkCount)
	}

	chunks, err := store.GetChunksByDocument(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetChunksByDocument() error = %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if chunks[0].Index != 0 || chunks[1].Index != 1 {
		t.Errorf("chunk indexes = %d, %d, want 0, 1", chunks[0].Index, chunks[1].Index)
	}
}

func TestKnowledgeStore_SearchCaseInsensitive(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	saveTestDocument(t, store, "dr_sakura", "Mammogram screening is recommended annually", "Diet and exercise matter")

	for _, query := range []string{"mammogram", "MAMMOGRAM", "Mammogram"} {
		results, err := store.Search("dr_sakura", query, 10)
		if err != nil {
			t.Fatalf("Search(%q) error = %v", query, err)
		}
		if len(results) != 1 {
			t.Errorf("Search(%q) returned %d chunks, want 1", query, len(results))
		}
	}
}

func TestKnowledgeStore_SearchTenantIsolation(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	saveTestDocument(t, store, "dr_sakura", "shared keyword wellness plan")
	saveTestDocument(t, store, "maya_skin", "shared keyword skincare routine")

	results, err := store.Search("dr_sakura", "shared keyword", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search() returned %d chunks, want 1", len(results))
	}
	if results[0].AvatarID != "dr_sakura" {
		t.Errorf("AvatarID = %q, want dr_sakura only", results[0].AvatarID)
	}
}

func TestKnowledgeStore_SearchLimit(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	contents := make([]string, 15)
	for i := range contents {
		contents[i] = fmt.Sprintf("wellness tip number %d", i)
	}
	saveTestDocument(t, store, "dr_sakura", contents...)

	results, err := store.Search("dr_sakura", "wellness", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != MaxSearchResults {
		t.Errorf("Search() returned %d chunks, want capped at %d", len(results), MaxSearchResults)
	}

	// Insertion order preserved
	if results[0].Content != "wellness tip number 0" {
		t.Errorf("first result = %q, want insertion order", results[0].Content)
	}
}

func TestKnowledgeStore_DeleteCascades(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	doc := saveTestDocument(t, store, "dr_sakura", "chunk one", "chunk two")

	if err := store.DeleteDocument(doc.DocumentID); err != nil {
		t.Fatalf("DeleteDocument() error = %v", err)
	}

	chunks, err := store.GetChunksByDocument(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetChunksByDocument() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("got %d chunks after document delete, want 0", len(chunks))
	}
}

func TestKnowledgeStore_ListDocuments(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	store := NewKnowledgeStore(db)
	saveTestDocument(t, store, "dr_sakura", "a")
	saveTestDocument(t, store, "dr_sakura", "b")
	saveTestDocument(t, store, "maya_skin", "c")

	docs, err := store.ListDocuments("dr_sakura")
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("got %d documents, want 2", len(docs))
	}
}
