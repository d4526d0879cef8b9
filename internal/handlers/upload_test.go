package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func TestSafeDeleteUploadRejectsTraversal(t *testing.T) {
	root := t.TempDir()

	cases := []string{
		"uploads/../secrets.txt",
		"../etc/passwd",
		"settings.json",
		"uploads/../../etc/passwd",
	}
	for _, p := range cases {
		if err := safeDeleteUpload(root, p); err == nil {
			t.Fatalf("expected refusal for %q", p)
		}
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(dir, "img.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := safeDeleteUpload(root, "uploads/products/img.png"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected file to be removed")
	}
}

func TestSafeDeleteUploadMissingFileIsNoop(t *testing.T) {
	root := t.TempDir()
	if err := safeDeleteUpload(root, "uploads/products/missing.png"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
	if err := safeDeleteUpload(root, "   "); err != nil {
		t.Fatalf("expected nil for blank path, got %v", err)
	}
}

func TestValidateImageFile(t *testing.T) {
	ext, err := validateImageFile(&multipart.FileHeader{Filename: "photo.JPG", Size: 1024})
	if err != nil {
		t.Fatalf("expected jpg to pass, got %v", err)
	}
	if ext != ".jpg" {
		t.Fatalf("expected lowercased extension, got %q", ext)
	}

	if _, err := validateImageFile(&multipart.FileHeader{Filename: "archive.zip", Size: 1024}); err == nil {
		t.Fatalf("expected rejection for .zip")
	}
	if _, err := validateImageFile(&multipart.FileHeader{Filename: "noext", Size: 1024}); err == nil {
		t.Fatalf("expected rejection for missing extension")
	}
	if _, err := validateImageFile(&multipart.FileHeader{Filename: "big.png", Size: maxImageSize + 1}); err == nil {
		t.Fatalf("expected rejection for oversized file")
	}
}
