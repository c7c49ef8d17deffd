package httpapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smpn3pacet/pustaka/internal/logging"
	"github.com/smpn3pacet/pustaka/internal/server/models"
)

type fakeRepo struct {
	items     []*models.Item
	selectErr error
	upsertErr error

	upserted []*models.Item
	deleted  []string
}

func (f *fakeRepo) Upsert(ctx context.Context, item *models.Item) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, item)
	return nil
}

func (f *fakeRepo) SelectAll(ctx context.Context) ([]*models.Item, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	if f.items == nil {
		return []*models.Item{}, nil
	}
	return f.items, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestHandler(repo *fakeRepo) http.Handler {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	NewHandler(repo, log).RegisterRoutes(mux)
	return mux
}

func postMutation(t *testing.T, h http.Handler, m models.Mutation) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(m)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFetchAll_ReturnsArray(t *testing.T) {
	repo := &fakeRepo{items: []*models.Item{
		{ID: "i2", ActivityName: "Lomba", CreatedAt: 200},
		{ID: "i1", ActivityName: "Upacara", CreatedAt: 100},
	}}
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var got []*models.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "i2", got[0].ID)
}

func TestFetchAll_EmptyCollectionIsEmptyArray(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestFetchAll_StorageError(t *testing.T) {
	h := newTestHandler(&fakeRepo{selectErr: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMutate_AddAndUpdateUpsert(t *testing.T) {
	for _, action := range []models.Action{models.ActionAdd, models.ActionUpdate} {
		t.Run(string(action), func(t *testing.T) {
			repo := &fakeRepo{}
			h := newTestHandler(repo)

			rec := postMutation(t, h, models.Mutation{
				Action: action,
				Data:   &models.Item{ID: "i1", ActivityName: "Upacara", CreatedAt: 100},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, repo.upserted, 1)
			assert.Equal(t, "i1", repo.upserted[0].ID)
		})
	}
}

func TestMutate_Delete(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(repo)

	rec := postMutation(t, h, models.Mutation{
		Action: models.ActionDelete,
		Data:   &models.Item{ID: "i1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"i1"}, repo.deleted)
	assert.Empty(t, repo.upserted)
}

func TestMutate_Rejections(t *testing.T) {
	bigURL := "data:application/pdf;base64," +
		base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), models.MaxAttachmentBytes+1))

	tests := []struct {
		name       string
		mutation   models.Mutation
		wantStatus int
	}{
		{
			name:       "unknown action",
			mutation:   models.Mutation{Action: "replace", Data: &models.Item{ID: "i1", ActivityName: "a", CreatedAt: 1}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing data",
			mutation:   models.Mutation{Action: models.ActionAdd},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing id",
			mutation:   models.Mutation{Action: models.ActionAdd, Data: &models.Item{ActivityName: "a", CreatedAt: 1}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "oversized attachment",
			mutation: models.Mutation{Action: models.ActionAdd, Data: &models.Item{
				ID: "i1", ActivityName: "a", CreatedAt: 1,
				Files: []models.Attachment{{ID: "f1", URL: bigURL, Kind: "pdf"}},
			}},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			h := newTestHandler(repo)

			rec := postMutation(t, h, tt.mutation)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, repo.upserted)
			assert.Empty(t, repo.deleted)
		})
	}
}

func TestMutate_MalformedBody(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutate_StorageError(t *testing.T) {
	repo := &fakeRepo{upsertErr: errors.New("db down")}
	h := newTestHandler(repo)

	rec := postMutation(t, h, models.Mutation{
		Action: models.ActionAdd,
		Data:   &models.Item{ID: "i1", ActivityName: "a", CreatedAt: 1},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCollection_MethodNotAllowed(t *testing.T) {
	h := newTestHandler(&fakeRepo{})

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
