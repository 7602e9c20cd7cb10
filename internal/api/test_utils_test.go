package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/foodmagic/backend/config"
	"github.com/foodmagic/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockIngredientService records the payload it was handed
type MockIngredientService struct {
	mu      sync.Mutex
	Result  string
	Err     error
	Payload *types.ImagePayload
}

func (m *MockIngredientService) ExtractIngredients(_ context.Context, payload *types.ImagePayload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payload = payload
	return m.Result, m.Err
}

// MockRecipeService records the ingredient list it was handed
type MockRecipeService struct {
	mu          sync.Mutex
	Result      []types.RecipeSuggestion
	Err         error
	Ingredients []string
	Calls       int
}

func (m *MockRecipeService) SuggestRecipes(_ context.Context, ingredients []string) ([]types.RecipeSuggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	m.Ingredients = ingredients
	return m.Result, m.Err
}

func setupFoodRouter(t *testing.T, ingredients *MockIngredientService, recipes *MockRecipeService, mode config.ErrorMode) *gin.Engine {
	t.Helper()
	handler := NewFoodHandler(ingredients, recipes, mode, zaptest.NewLogger(t))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

// PerformJSONRequest sends body as raw JSON
func PerformJSONRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PerformUpload sends data as a multipart file under field
func PerformUpload(t *testing.T, router *gin.Engine, path, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		header["Content-Type"] = []string{contentType}
	}
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}
