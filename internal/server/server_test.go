package server

import (
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"esperanca/internal/config"
	"esperanca/internal/content"
	"esperanca/internal/models"
)

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	resp := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)
	tokenFor(t, srv, "maria", true)

	body := strings.NewReader(`{"username":"maria","password":"senha-segura"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeJSON(t, resp, &out)
	if out.Token == "" {
		t.Fatal("expected a token in the login response")
	}
	if out.User.Username != "maria" {
		t.Fatalf("expected user maria, got %q", out.User.Username)
	}

	// Wrong password gets the same generic message as an unknown user.
	body = strings.NewReader(`{"username":"maria","password":"errada"}`)
	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/parceiros", nil)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	viewer := tokenFor(t, srv, "viewer", false)
	req = httptest.NewRequest(http.MethodGet, "/api/admin/parceiros", nil)
	req.Header.Set("Authorization", "Bearer "+viewer)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
}

func TestPartnerCreateAndOrderedList(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	// "Zzz Recentes" is created last and sorts last alphabetically, so the
	// assertion below can only pass on creation-time order.
	for _, name := range []string{"Aurora Doações", "Zulu Alimentos", "Zzz Recentes"} {
		req := multipartRequest(t, http.MethodPost, "/api/admin/parceiros",
			map[string]string{"nome": name, "descricao": "Parceiro de longa data"})
		req.Header.Set("Authorization", "Bearer "+token)
		resp := doRequest(t, srv, req)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201 for %q, got %d", name, resp.StatusCode)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/parceiros", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Partners []models.Partner `json:"partners"`
	}
	decodeJSON(t, resp, &out)
	if len(out.Partners) != 3 {
		t.Fatalf("expected 3 partners, got %d", len(out.Partners))
	}
	if out.Partners[0].Name != "Zzz Recentes" {
		t.Fatalf("expected the newest partner first, got %q", out.Partners[0].Name)
	}
	if out.Partners[2].Slug != "aurora-doacoes" {
		t.Fatalf("expected the oldest partner last, got slug %q", out.Partners[2].Slug)
	}
}

func TestPartnerLogoStoredAtNativeSize(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	// Logos skip the resize pipeline, so even a wide upload keeps its
	// original dimensions on disk.
	req := multipartRequest(t, http.MethodPost, "/api/admin/parceiros",
		map[string]string{"nome": "Padaria Central"},
		filePart{field: "logo", filename: "logo.png", data: tinyPNG(t, 1000, 200)})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var out struct {
		Partner models.Partner `json:"partner"`
	}
	decodeJSON(t, resp, &out)
	if out.Partner.LogoPath == "" {
		t.Fatal("expected a stored logo path")
	}

	abs, err := srv.uploadSvc.Resolve(out.Partner.LogoPath)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		t.Fatalf("stored logo missing: %v", err)
	}
	defer f.Close()
	decoded, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("stored logo is not a valid image: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 1000 || b.Dy() != 200 {
		t.Fatalf("logo was processed, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestTextSlugCannotCollideWithReservedSections(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	req := multipartRequest(t, http.MethodPost, "/api/admin/textos",
		map[string]string{
			"titulo":   "Página de abertura",
			"slug":     "inicio",
			"conteudo": "Tentativa de sobrescrever a seção inicial.",
		})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 creating text with reserved slug, got %d", resp.StatusCode)
	}
	var errOut struct {
		Fields map[string]string `json:"fields"`
	}
	decodeJSON(t, resp, &errOut)
	if errOut.Fields["slug"] == "" {
		t.Fatalf("expected a slug field error, got %v", errOut.Fields)
	}

	// A free page cannot be renamed onto a reserved slug either.
	req = multipartRequest(t, http.MethodPost, "/api/admin/textos",
		map[string]string{
			"titulo":   "Nossa História",
			"slug":     "historia",
			"conteudo": "Como tudo começou.",
		})
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for a free slug, got %d", resp.StatusCode)
	}
	var createOut struct {
		Text models.Text `json:"text"`
	}
	decodeJSON(t, resp, &createOut)

	req = multipartRequest(t, http.MethodPut, "/api/admin/textos/"+itoa(createOut.Text.ID),
		map[string]string{
			"titulo":   "Nossa História",
			"slug":     "contato",
			"conteudo": "Como tudo começou.",
		})
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 renaming onto a reserved slug, got %d", resp.StatusCode)
	}
	decodeJSON(t, resp, &errOut)
	if errOut.Fields["slug"] == "" {
		t.Fatalf("expected a slug field error, got %v", errOut.Fields)
	}
}

func TestCreateBannerCorruptImageLeavesNothingBehind(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	req := multipartRequest(t, http.MethodPost, "/api/admin/banners",
		map[string]string{"titulo": "Campanha do agasalho"},
		filePart{field: "imagem", filename: "banner.png", data: []byte("definitely not a png")})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for corrupt image, got %d", resp.StatusCode)
	}

	var listing struct {
		Banners []models.Banner `json:"banners"`
	}
	req = httptest.NewRequest(http.MethodGet, "/api/admin/banners", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	decodeJSON(t, doRequest(t, srv, req), &listing)
	if len(listing.Banners) != 0 {
		t.Fatalf("expected no banner rows, got %d", len(listing.Banners))
	}

	entries, err := os.ReadDir(filepath.Join(srv.config.UploadRoot, config.BannerFolder))
	if err == nil && len(entries) > 0 {
		t.Fatalf("expected no orphan files, found %d", len(entries))
	}
}

func TestBannerLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	req := multipartRequest(t, http.MethodPost, "/api/admin/banners",
		map[string]string{"titulo": "Destaque", "ordem": "2"},
		filePart{field: "imagem", filename: "destaque.png", data: tinyPNG(t, 1600, 500)})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var createOut struct {
		Banner models.Banner `json:"banner"`
	}
	decodeJSON(t, resp, &createOut)
	if createOut.Banner.Order != 2 {
		t.Fatalf("expected order 2, got %d", createOut.Banner.Order)
	}
	if createOut.Banner.ImagePath == "" {
		t.Fatal("expected a stored image path")
	}

	// The stored image is served over the uploads route.
	resp = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/uploads/"+createOut.Banner.ImagePath, nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 serving the banner image, got %d", resp.StatusCode)
	}

	// Deleting removes both the row and the file.
	req = httptest.NewRequest(http.MethodDelete, "/api/admin/banners/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 deleting banner, got %d", resp.StatusCode)
	}
	abs, err := srv.uploadSvc.Resolve(createOut.Banner.ImagePath)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if _, err := os.Stat(abs); !os.IsNotExist(err) {
		t.Fatalf("expected banner file to be removed, stat err: %v", err)
	}
}

func TestReservedTextCannotBeDeletedOrRenamed(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	var listing struct {
		Texts []models.Text `json:"texts"`
	}
	req := httptest.NewRequest(http.MethodGet, "/api/admin/textos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	decodeJSON(t, doRequest(t, srv, req), &listing)
	if len(listing.Texts) != len(content.Sections) {
		t.Fatalf("expected %d seeded texts, got %d", len(content.Sections), len(listing.Texts))
	}

	var inicio models.Text
	for _, text := range listing.Texts {
		if text.Slug == "inicio" {
			inicio = text
		}
	}
	if inicio.ID == 0 {
		t.Fatal("seeded inicio section not found")
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/textos/"+itoa(inicio.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 deleting reserved text, got %d", resp.StatusCode)
	}

	// An update may change the content but the slug stays put.
	req = multipartRequest(t, http.MethodPut, "/api/admin/textos/"+itoa(inicio.ID),
		map[string]string{
			"titulo":   "Bem-vindos",
			"slug":     "outro-slug",
			"conteudo": "Novo texto de abertura.",
		})
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 updating reserved text, got %d", resp.StatusCode)
	}
	var updated struct {
		Text models.Text `json:"text"`
	}
	decodeJSON(t, resp, &updated)
	if updated.Text.Slug != "inicio" {
		t.Fatalf("reserved slug must not change, got %q", updated.Text.Slug)
	}
	if updated.Text.Content != "Novo texto de abertura." {
		t.Fatalf("content not updated: %q", updated.Text.Content)
	}
}

func TestProductLifecycleAndPublicCatalog(t *testing.T) {
	srv := newTestServer(t)
	token := adminToken(t, srv)

	req := multipartRequest(t, http.MethodPost, "/api/admin/produtos",
		map[string]string{
			"nome":      "Caneca Solidária",
			"descricao": "Caneca esmaltada do projeto.",
			"preco":     "39,90",
			"frete":     "12,00",
		},
		filePart{field: "imagem", filename: "caneca.png", data: tinyPNG(t, 1400, 900)})
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, srv, req)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var createOut struct {
		Product models.Product `json:"product"`
	}
	decodeJSON(t, resp, &createOut)
	if createOut.Product.ID == "" {
		t.Fatal("expected a generated product id")
	}
	if !strings.HasPrefix(createOut.Product.ImagePath, config.StoreImageFolder) {
		t.Fatalf("unexpected product image path %q", createOut.Product.ImagePath)
	}

	var catalog struct {
		Items []struct {
			models.Product
			DisplaySlug  string `json:"display_slug"`
			PriceDisplay string `json:"price_display"`
			TotalDisplay string `json:"total_display"`
		} `json:"items"`
	}
	decodeJSON(t, doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/public/loja", nil)), &catalog)
	if len(catalog.Items) != 1 {
		t.Fatalf("expected 1 catalog item, got %d", len(catalog.Items))
	}
	item := catalog.Items[0]
	if item.DisplaySlug != "caneca-solidaria" {
		t.Fatalf("unexpected display slug %q", item.DisplaySlug)
	}
	if item.PriceDisplay != "R$ 39,90" {
		t.Fatalf("unexpected price display %q", item.PriceDisplay)
	}
	if item.TotalDisplay != "R$ 51,90" {
		t.Fatalf("unexpected total display %q", item.TotalDisplay)
	}

	resp = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/public/loja/caneca-solidaria", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for product page, got %d", resp.StatusCode)
	}
	resp = doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/public/loja/nao-existe", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/produtos/"+createOut.Product.ID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, srv, req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 deleting product, got %d", resp.StatusCode)
	}
	decodeJSON(t, doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/public/loja", nil)), &catalog)
	if len(catalog.Items) != 0 {
		t.Fatalf("expected empty catalog, got %d items", len(catalog.Items))
	}
}

func TestPublicHomeFallsBackToPlaceholders(t *testing.T) {
	srv := newTestServer(t)

	resp := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/api/public/home", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Sections map[string]struct {
			Title string `json:"title"`
			Body  string `json:"body"`
		} `json:"sections"`
	}
	decodeJSON(t, resp, &out)
	intro, ok := out.Sections["inicio"]
	if !ok {
		t.Fatal("expected the inicio section")
	}
	if intro.Title == "" {
		t.Fatal("expected a default title for inicio")
	}
	if intro.Body != content.Placeholder {
		t.Fatalf("expected placeholder body, got %q", intro.Body)
	}
}

func TestServeUploadUnknownPath(t *testing.T) {
	srv := newTestServer(t)
	resp := doRequest(t, srv, httptest.NewRequest(http.MethodGet, "/uploads/images/nope.png", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
