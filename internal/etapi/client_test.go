package etapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateNote(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"note":{"noteId":"abc123"},"branch":{"branchId":"b1"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", nil)
	id, err := c.CreateNote(CreateNoteParams{
		ParentNoteID: "root",
		Title:        "Intro",
		Type:         "text",
		Content:      "<p>hi</p>",
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "abc123" {
		t.Errorf("id=%q", id)
	}
	if gotAuth != "secret-token" {
		t.Errorf("auth header=%q", gotAuth)
	}
	if gotPath != "/etapi/create-note" {
		t.Errorf("path=%q", gotPath)
	}
	if gotBody["parentNoteId"] != "root" || gotBody["title"] != "Intro" {
		t.Errorf("body=%v", gotBody)
	}
	if _, present := gotBody["mime"]; present {
		t.Error("empty mime should be omitted")
	}
}

func TestCreateNoteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":400,"message":"parent not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	if _, err := c.CreateNote(CreateNoteParams{Title: "x", Type: "text"}); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestCreateNoteMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	if _, err := c.CreateNote(CreateNoteParams{Title: "x", Type: "text"}); err == nil {
		t.Fatal("expected error for response without note ID")
	}
}

func TestCreateAttribute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/etapi/attributes" {
			t.Errorf("path=%q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"attributeId":"attr1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	id, err := c.CreateAttribute(CreateAttributeParams{
		NoteID: "n1",
		Type:   "label",
		Name:   "readOnly",
	})
	if err != nil {
		t.Fatal(err)
	}
	if id != "attr1" {
		t.Errorf("id=%q", id)
	}
}

func TestSearchByTitle(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		_, _ = w.Write([]byte(`{"results":[{"noteId":"n9","title":"Orphans"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	results, err := c.SearchByTitle("Orphans")
	if err != nil {
		t.Fatal(err)
	}
	if gotQuery != "note.title = 'Orphans'" {
		t.Errorf("query=%q", gotQuery)
	}
	if len(results) != 1 || results[0].NoteID != "n9" {
		t.Errorf("results=%v", results)
	}
}

func TestUpdateNoteContent(t *testing.T) {
	var gotMethod, gotPath, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotContent = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "t", nil)
	if err := c.UpdateNoteContent("n1", "<p>updated</p>"); err != nil {
		t.Fatal(err)
	}
	if gotMethod != http.MethodPut || gotPath != "/etapi/notes/n1/content" {
		t.Errorf("%s %s", gotMethod, gotPath)
	}
	if gotContent != "<p>updated</p>" {
		t.Errorf("content=%q", gotContent)
	}
}
