package rating

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	"github.com/GoStoreRating/GoStoreRating/internal/db/models"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/upload"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "handler.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler, Immutable: true})

	var svc Service
	svc.Init(app, &config.Config{}, storefront.New(db, upload.New(afero.NewMemMapFs(), "/uploads"), "token"))

	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(out)
}

func TestPost(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, fiber.MethodPost, "/store/corner-shop/rate",
		`{"userName":"Ann","userMobile":"555-0101","rating":5}`)
	require.Equal(t, fiber.StatusOK, code, body)

	var resp struct {
		Message string        `json:"message"`
		Rating  models.Rating `json:"rating"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, MsgRatingSubmitted, resp.Message)
	assert.Equal(t, "corner-shop", resp.Rating.StoreSlug)
	assert.Equal(t, "Ann", resp.Rating.UserName)
	assert.Equal(t, "555-0101", resp.Rating.UserMobile)
	assert.Equal(t, 5, resp.Rating.Rating)
}

func TestPostInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "rating too low", body: `{"userName":"Ann","userMobile":"1","rating":0}`},
		{name: "rating too high", body: `{"userName":"Ann","userMobile":"1","rating":6}`},
		{name: "rating missing", body: `{"userName":"Ann","userMobile":"1"}`},
		{name: "rating fraction", body: `{"userName":"Ann","userMobile":"1","rating":3.5}`},
		{name: "rating as string", body: `{"userName":"Ann","userMobile":"1","rating":"3"}`},
		{name: "no user name", body: `{"userMobile":"1","rating":3}`},
		{name: "no mobile", body: `{"userName":"Ann","rating":3}`},
		{name: "not json", body: `rating=3`},
		{name: "empty body", body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			code, body := do(t, app, fiber.MethodPost, "/store/corner-shop/rate", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.JSONEq(t, `{"error":"Invalid input"}`, body)

			code, body = do(t, app, fiber.MethodGet, "/store/corner-shop/ratings", "")
			assert.Equal(t, fiber.StatusOK, code)
			assert.JSONEq(t, `[]`, body)
		})
	}
}

func TestPostRequiresJSON(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{
			name:        "urlencoded",
			contentType: fiber.MIMEApplicationForm,
			body:        "userName=Ann&userMobile=1&rating=3",
		},
		{
			name:        "plain text",
			contentType: fiber.MIMETextPlain,
			body:        `{"userName":"Ann","userMobile":"1","rating":3}`,
		},
		{
			name:        "no content type",
			body:        `{"userName":"Ann","userMobile":"1","rating":3}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			req := httptest.NewRequest(fiber.MethodPost, "/store/corner-shop/rate", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(fiber.HeaderContentType, tt.contentType)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.JSONEq(t, `{"error":"Invalid input"}`, string(body))

			code, list := do(t, app, fiber.MethodGet, "/store/corner-shop/ratings", "")
			assert.Equal(t, fiber.StatusOK, code)
			assert.JSONEq(t, `[]`, list)
		})
	}
}

func TestPostJSONWithCharset(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/store/corner-shop/rate",
		strings.NewReader(`{"userName":"Ann","userMobile":"1","rating":3}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSlugWithSlash(t *testing.T) {
	app := newTestApp(t)

	code, body := do(t, app, fiber.MethodPost, "/store/ac%2Fdc-records/rate",
		`{"userName":"Ann","userMobile":"1","rating":4}`)
	require.Equal(t, fiber.StatusOK, code, body)
	assert.Contains(t, body, `"storeSlug":"ac/dc-records"`)

	code, body = do(t, app, fiber.MethodGet, "/store/ac%2Fdc-records/ratings", "")
	require.Equal(t, fiber.StatusOK, code)

	var ratings []models.Rating
	require.NoError(t, json.Unmarshal([]byte(body), &ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, "ac/dc-records", ratings[0].StoreSlug)
}

func TestPostTwice(t *testing.T) {
	app := newTestApp(t)

	code, _ := do(t, app, fiber.MethodPost, "/store/corner-shop/rate",
		`{"userName":"Ann","userMobile":"555-0101","rating":5}`)
	require.Equal(t, fiber.StatusOK, code)

	code, body := do(t, app, fiber.MethodPost, "/store/corner-shop/rate",
		`{"userName":"Ann","userMobile":"555-0101","rating":1}`)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.JSONEq(t, `{"error":"Already rated"}`, body)

	code, body = do(t, app, fiber.MethodGet, "/store/corner-shop/ratings", "")
	require.Equal(t, fiber.StatusOK, code)

	var ratings []models.Rating
	require.NoError(t, json.Unmarshal([]byte(body), &ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, 5, ratings[0].Rating)
}

func TestList(t *testing.T) {
	app := newTestApp(t)

	for _, b := range []string{
		`{"userName":"Ann","userMobile":"1","rating":3}`,
		`{"userName":"Bob","userMobile":"2","rating":4}`,
	} {
		code, _ := do(t, app, fiber.MethodPost, "/store/corner-shop/rate", b)
		require.Equal(t, fiber.StatusOK, code)
	}

	code, body := do(t, app, fiber.MethodGet, "/store/corner-shop/ratings", "")
	require.Equal(t, fiber.StatusOK, code)

	var ratings []models.Rating
	require.NoError(t, json.Unmarshal([]byte(body), &ratings))
	require.Len(t, ratings, 2)
	assert.Equal(t, "Ann", ratings[0].UserName)
	assert.Equal(t, "Bob", ratings[1].UserName)

	code, body = do(t, app, fiber.MethodGet, "/store/other/ratings", "")
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `[]`, body)
}
