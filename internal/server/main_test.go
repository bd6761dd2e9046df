package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"esperanca/internal/config"
	"esperanca/internal/database"
	"esperanca/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a server on an in-memory database with a throwaway
// upload root and no Redis.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Port:              "0",
		Env:               "test",
		JWTSecret:         "test-secret",
		UploadRoot:        t.TempDir(),
		MaxUploadSizeMB:   16,
		StoreDataFilename: "produtos.json",
	}
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := NewServerWithDeps(cfg, db, nil, testLogger)
	if err != nil {
		t.Fatalf("failed to build test server: %v", err)
	}
	return srv
}

// adminToken creates an admin account and returns a bearer token for it.
func adminToken(t *testing.T, srv *Server) string {
	t.Helper()
	return tokenFor(t, srv, "admin", true)
}

func tokenFor(t *testing.T, srv *Server, username string, isAdmin bool) string {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@esperanca.org",
		IsActive: true,
		IsAdmin:  isAdmin,
	}
	if err := user.SetPassword("senha-segura"); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := srv.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	token, err := srv.generateToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

type filePart struct {
	field    string
	filename string
	data     []byte
}

// multipartRequest builds a multipart form request with text fields and
// optional file parts.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...filePart) *http.Request {
	t.Helper()

	body := bytes.NewBuffer(nil)
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	for _, part := range files {
		fw, err := writer.CreateFormFile(part.field, part.filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := fw.Write(part.data); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close form writer: %v", err)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func doRequest(t *testing.T, srv *Server, req *http.Request) *http.Response {
	t.Helper()
	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func tinyPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}
