package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilaria3312/MyLibrary/internal/catalog"
)

var sampleYAML = []byte(`
- id: 0190a1b2-0000-7000-8000-000000000001
  title: "Dune"
  author: "Frank Herbert"
  genre: Science Fiction
  publisher: Chilton Books
  rating: 5
  cover: .covers/0190a1b2-0000-7000-8000-000000000001.jpg
  meta:
    added_at: "2026-01-01T00:00:00Z"

- id: 0190a1b2-0000-7000-8000-000000000002
  title: "Dune Messiah"
  author: "Frank Herbert"
  genre: Science Fiction
  rating: 3
`)

const (
	duneID    = "0190a1b2-0000-7000-8000-000000000001"
	messiahID = "0190a1b2-0000-7000-8000-000000000002"
)

// --- Parse / Marshal round-trip ---

func TestParse_ValidYAML(t *testing.T) {
	books, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
	if books[0].ID != duneID {
		t.Errorf("books[0].ID = %q, want %q", books[0].ID, duneID)
	}
	if books[0].Publisher != "Chilton Books" {
		t.Errorf("books[0].Publisher = %q, want %q", books[0].Publisher, "Chilton Books")
	}
	if books[1].Rating != 3 {
		t.Errorf("books[1].Rating = %d, want 3", books[1].Rating)
	}
	if books[0].CoverImage != nil {
		t.Error("CoverImage must never be decoded from YAML")
	}
}

func TestParse_Empty(t *testing.T) {
	books, err := catalog.Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected 0 books, got %d", len(books))
	}
}

func TestParse_EmptyList(t *testing.T) {
	books, err := catalog.Parse([]byte("[]\n"))
	if err != nil {
		t.Fatalf("Parse []: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected 0 books, got %d", len(books))
	}
}

func TestParse_ClampsRating(t *testing.T) {
	books, err := catalog.Parse([]byte("- id: a\n  title: A\n  author: B\n  rating: 9\n- id: b\n  title: C\n  author: D\n  rating: -2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if books[0].Rating != 5 || books[1].Rating != 0 {
		t.Errorf("ratings = %d, %d; want 5, 0", books[0].Rating, books[1].Rating)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := catalog.Parse([]byte(":: bad yaml ["))
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	books, err := catalog.Parse(sampleYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := catalog.Marshal(books)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	books2, err := catalog.Parse(data)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	if len(books2) != len(books) {
		t.Fatalf("round-trip length: got %d, want %d", len(books2), len(books))
	}
	for i := range books {
		if !catalog.Equal(books[i], books2[i]) {
			t.Errorf("[%d] round-trip mismatch: %+v vs %+v", i, books[i], books2[i])
		}
	}
}

func TestMarshal_NilSlice(t *testing.T) {
	data, err := catalog.Marshal(nil)
	if err != nil {
		t.Fatalf("Marshal nil: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("Marshal nil = %q, want %q", data, "[]\n")
	}
}

// --- Load / Save ---

func TestLoad_MissingFile(t *testing.T) {
	books, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected empty library, got %d books", len(books))
	}
}

func TestSave_ThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	books, _ := catalog.Parse(sampleYAML)
	if err := catalog.Save(path, books); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	loaded, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ids(loaded); len(got) != 2 || got[0] != duneID || got[1] != messiahID {
		t.Errorf("loaded ids = %v", got)
	}
}

// --- Append / Replace / Remove ---

func TestAppend_New(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	books = catalog.Append(books, catalog.Book{ID: "newbook", Title: "Children of Dune"})
	if len(books) != 3 {
		t.Errorf("expected 3 after append, got %d", len(books))
	}
	if books[2].ID != "newbook" {
		t.Errorf("last book ID = %q, want %q", books[2].ID, "newbook")
	}
}

func TestAppend_ReplacesExisting(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	books = catalog.Append(books, catalog.Book{ID: duneID, Title: "Dune (updated)"})
	if len(books) != 2 {
		t.Errorf("expected 2 after update, got %d", len(books))
	}
	if books[0].Title != "Dune (updated)" {
		t.Errorf("title not updated: %q", books[0].Title)
	}
}

func TestReplace(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	if !catalog.Replace(books, messiahID, catalog.Book{ID: messiahID, Title: "Messiah"}) {
		t.Fatal("Replace returned false for existing book")
	}
	if books[1].Title != "Messiah" {
		t.Errorf("books[1].Title = %q, want %q", books[1].Title, "Messiah")
	}
	if catalog.Replace(books, "missing", catalog.Book{ID: "missing"}) {
		t.Error("Replace returned true for missing book")
	}
}

func TestRemove_Existing(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	books, ok := catalog.Remove(books, duneID)
	if !ok {
		t.Error("Remove returned ok=false for existing book")
	}
	if len(books) != 1 {
		t.Errorf("expected 1 book after remove, got %d", len(books))
	}
	if books[0].ID != messiahID {
		t.Errorf("remaining book = %q, want %q", books[0].ID, messiahID)
	}
}

func TestRemove_Missing(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	books, ok := catalog.Remove(books, "nope")
	if ok {
		t.Error("Remove returned ok=true for missing book")
	}
	if len(books) != 2 {
		t.Errorf("expected 2 books after no-op remove, got %d", len(books))
	}
}

func TestDedupe(t *testing.T) {
	in := []catalog.Book{
		{ID: "a", Title: "first"},
		{ID: "b", Title: "B"},
		{ID: "a", Title: "second"},
	}
	out := catalog.Dedupe(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 books, got %d", len(out))
	}
	if out[0].ID != "a" || out[0].Title != "second" {
		t.Errorf("out[0] = %+v, want a/second", out[0])
	}
}

// --- ByID ---

func TestByID_Found(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	b := catalog.ByID(books, messiahID)
	if b == nil {
		t.Fatal("ByID returned nil for existing book")
	}
	if b.Title != "Dune Messiah" {
		t.Errorf("Title = %q, want %q", b.Title, "Dune Messiah")
	}
}

func TestByID_NotFound(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	if b := catalog.ByID(books, "missing"); b != nil {
		t.Errorf("ByID returned non-nil for missing book")
	}
}

// --- Filter ---

func TestFilter_BySearch_CaseInsensitive(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{Search: "dune messiah"}.Apply(books)
	if len(result) != 1 || result[0].ID != messiahID {
		t.Errorf("search by title failed: got %v", ids(result))
	}
}

func TestFilter_BySearch_IgnoresAuthor(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{Search: "herbert"}.Apply(books)
	if len(result) != 0 {
		t.Errorf("author must not match a title search: got %v", ids(result))
	}
}

func TestFilter_ByGenre(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{Genre: "science fiction"}.Apply(books)
	if len(result) != 2 {
		t.Errorf("genre filter: expected 2, got %d", len(result))
	}
}

func TestFilter_Empty(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{}.Apply(books)
	if len(result) != 2 {
		t.Errorf("empty filter should return all books, got %d", len(result))
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	books, _ := catalog.Parse(sampleYAML)
	result := catalog.Filter{Search: "DUNE"}.Apply(books)
	if got := ids(result); len(got) != 2 || got[0] != duneID || got[1] != messiahID {
		t.Errorf("order not preserved: %v", got)
	}
}

// --- Helpers ---

func TestClampRating(t *testing.T) {
	cases := map[int]int{-1: 0, 0: 0, 3: 3, 5: 5, 6: 5}
	for in, want := range cases {
		if got := catalog.ClampRating(in); got != want {
			t.Errorf("ClampRating(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestStars(t *testing.T) {
	if got := catalog.Stars(2); got != "★★☆☆☆" {
		t.Errorf("Stars(2) = %q", got)
	}
}

func TestIsComplete(t *testing.T) {
	if (catalog.Book{Title: "Dune", Author: "  "}).IsComplete() {
		t.Error("blank author should be incomplete")
	}
	if !(catalog.Book{Title: "Dune", Author: "Herbert"}).IsComplete() {
		t.Error("title and author set should be complete")
	}
}

func ids(books []catalog.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}

func TestParse_AssignsMissingIDs(t *testing.T) {
	books, err := catalog.Parse([]byte("- title: A\n  author: B\n- title: C\n  author: D\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("got %d books, want 2", len(books))
	}
	if books[0].ID == "" || books[1].ID == "" {
		t.Fatalf("ids not assigned: %q %q", books[0].ID, books[1].ID)
	}
	if books[0].ID == books[1].ID {
		t.Errorf("assigned ids collide: %q", books[0].ID)
	}
}

func TestParse_CollapsesDuplicateIDs(t *testing.T) {
	books, err := catalog.Parse([]byte("- id: x\n  title: First\n  author: A\n- id: x\n  title: Second\n  author: A\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}
	if books[0].Title != "Second" {
		t.Errorf("Title = %q, want the later entry", books[0].Title)
	}
}
