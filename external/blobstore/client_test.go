package blobstore

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Upload(t *testing.T) {
	t.Parallel()

	var gotPath, gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:   server.URL,
		Bucket:    "waivers",
		AccessKey: "key-test",
	})

	url, err := client.Upload(t.Context(), "waivers/reg-1/abc-waiver.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if gotPath != "/waivers/waivers/reg-1/abc-waiver.pdf" {
		t.Fatalf("unexpected object path: %s", gotPath)
	}
	if gotContentType != "application/pdf" {
		t.Fatalf("unexpected content type: %s", gotContentType)
	}
	if string(gotBody) != "%PDF-1.4" {
		t.Fatalf("unexpected body: %q", gotBody)
	}
	if url != server.URL+"/waivers/waivers/reg-1/abc-waiver.pdf" {
		t.Fatalf("unexpected public url: %s", url)
	}
}

func TestClient_UploadRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Bucket: "waivers"})

	if _, err := client.Upload(t.Context(), "key.pdf", "application/pdf", []byte("data")); err == nil {
		t.Fatal("expected error for rejected upload")
	}
}

func TestClient_UploadValidation(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://storage.invalid", Bucket: "waivers"})

	if _, err := client.Upload(t.Context(), "  ", "application/pdf", []byte("data")); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := client.Upload(t.Context(), "key.pdf", "application/pdf", nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}
