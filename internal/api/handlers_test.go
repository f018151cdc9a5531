package api

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/ttsdeck/internal/cards"
	"github.com/youruser/ttsdeck/internal/tts"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ix := cards.NewIndex([]cards.SetEntry{
		{
			SetID:   "01",
			SetName: "Base Set",
			SetAbbr: "BS",
			DeckAssets: map[int]*tts.AssetSheet{
				1: {FaceURL: "https://example.com/bs-1.jpg", NumWidth: 10, NumHeight: 7},
			},
			Cards: []cards.CardRef{
				{ID: 101, Name: "Charmander"},
				{ID: 102, Name: "Alakazam"},
			},
		},
		{SetName: "XY Promos", SetAbbr: "PR-XY"},
	})
	s, err := NewServer(ix, nil, ServerOptions{Append: true})
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r, s)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(testRouter(t), http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sets":2}`, w.Body.String())
}

func TestListSets(t *testing.T) {
	w := do(testRouter(t), http.MethodGet, "/api/sets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2,"sets":[
		{"setId":"01","setName":"Base Set","setAbbr":"BS","cards":2},
		{"setName":"XY Promos","setAbbr":"PR-XY","cards":0}
	]}`, w.Body.String())
}

func TestFilterSets(t *testing.T) {
	w := do(testRouter(t), http.MethodPost, "/api/sets/filter", map[string]any{"numbered": "unnumbered"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
		Sets  []setSummary
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "PR-XY", body.Sets[0].SetAbbr)
}

func TestParseDeck(t *testing.T) {
	w := do(testRouter(t), http.MethodPost, "/api/deck/parse", deckRequest{
		Decklist: "4 Charmander BS 46\n1 Fake Card XYZ 10\n3 Metal Energy Energy 0",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Groups   []json.RawMessage `json:"groups"`
		Warnings []string          `json:"warnings"`
		Errors   []string          `json:"errors"`
		Cards    int               `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Groups, 2)
	assert.Equal(t, []string{"unable to parse set: XYZ"}, body.Errors)
	assert.Equal(t, 7, body.Cards)
}

func TestParseDeckEmpty(t *testing.T) {
	r := testRouter(t)
	w := do(r, http.MethodPost, "/api/deck/parse", deckRequest{Decklist: "  \n"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/deck/parse", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportDeck(t *testing.T) {
	w := do(testRouter(t), http.MethodPost, "/api/deck/export", deckRequest{
		Decklist: "2 Charmander BS 46\n1 Alakazam BS 1\n1 Fake Card XYZ 10",
		DeckName: "Blaze",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="Blaze.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "0", w.Header().Get("X-Decklist-Warnings"))
	assert.Equal(t, "1", w.Header().Get("X-Decklist-Errors"))

	var save tts.SaveFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &save))
	require.Len(t, save.ObjectStates, 1)
	d := save.ObjectStates[0]
	assert.Equal(t, "Blaze", d.Nickname)
	assert.Equal(t, []int{101, 101, 102}, d.DeckIDs)
	assert.Len(t, d.ContainedObjects, 3)
	assert.Len(t, d.CustomDeck, 1)
}

func TestDeckLabel(t *testing.T) {
	r := testRouter(t)
	w := do(r, http.MethodPost, "/api/deck/label", deckRequest{Decklist: "4 Charmander BS 46"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	_, err := png.Decode(w.Body)
	assert.NoError(t, err)

	w = do(r, http.MethodPost, "/api/deck/label", deckRequest{Decklist: "4 Charmander XYZ 46"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCardBack(t *testing.T) {
	w := do(testRouter(t), http.MethodGet, "/api/deck/cardback", nil)
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 409, img.Bounds().Dx())
}

func TestQR(t *testing.T) {
	r := testRouter(t)

	w := do(r, http.MethodGet, "/api/qr?text=hello&size=128", nil)
	require.Equal(t, http.StatusOK, w.Code)
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())

	w = do(r, http.MethodGet, "/api/qr?text=hello&size=99999", nil)
	require.Equal(t, http.StatusOK, w.Code)
	img, err = png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, defaultQRSize, img.Bounds().Dx())

	w = do(r, http.MethodGet, "/api/qr", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
