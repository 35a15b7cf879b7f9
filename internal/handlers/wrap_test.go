package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linkgate/internal/models"

	"github.com/stretchr/testify/assert"
)

func postWrap(r http.Handler, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/wrap-link", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWrapLink(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	t.Run("Wrap normal link", func(t *testing.T) {
		w := postWrap(r, `{"url": "https://open.spotify.com/artist/abc", "platform": "spotify"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "normal", resp["kind"])
		assert.Len(t, resp["short_id"], 8)

		var link models.ShortLink
		assert.NoError(t, db.Where("short_id = ?", resp["short_id"]).First(&link).Error)
		assert.Equal(t, "spotify", link.Platform)
	})

	t.Run("Wrap sensitive link", func(t *testing.T) {
		w := postWrap(r, `{"url": "https://onlyfans.com/someone", "platform": "external"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"kind":"sensitive"`)
	})

	t.Run("Short URL scheme follows the request", func(t *testing.T) {
		post := func(forwardedProto string) map[string]interface{} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/wrap-link",
				bytes.NewBufferString(`{"url": "https://example.com/a", "platform": "external"}`))
			req.Header.Set("Content-Type", "application/json")
			req.Host = "links.example.com"
			if forwardedProto != "" {
				req.Header.Set("X-Forwarded-Proto", forwardedProto)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)

			var resp map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			return resp
		}

		plain := post("")
		assert.Equal(t, "http://links.example.com/go/"+plain["short_id"].(string), plain["short_url"])

		proxied := post("https")
		assert.Equal(t, "https://links.example.com/go/"+proxied["short_id"].(string), proxied["short_url"])
	})

	t.Run("Invalid URL is 400", func(t *testing.T) {
		for _, payload := range []string{
			`{"url": "not-a-url", "platform": "external"}`,
			`{"url": "ftp://example.com/x", "platform": "external"}`,
			`{"platform": "external"}`,
			`{broken`,
		} {
			w := postWrap(r, payload)
			assert.Equal(t, http.StatusBadRequest, w.Code, payload)
		}
	})
}

func TestLinkQR(t *testing.T) {
	h, db := setupTestHandler()
	r := setupTestRouter(h)

	createTestLink(db, "QRLINK01", "https://example.com", models.LinkKindNormal)

	t.Run("PNG for known link", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/link/QRLINK01/qr", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 0x50, 0x4E, 0x47}))
	})

	t.Run("404 unknown", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/link/NOPE/qr", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
