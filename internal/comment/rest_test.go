package comment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTStoreInsert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/Comments", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var rows []Input
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, Input{Name: "Mia", Message: "so golden"}, rows[0])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":7,"name":"Mia","message":"so golden","created_at":"2026-10-19T08:30:00.123456+00:00"}]`))
	}))
	defer srv.Close()

	store := NewRESTStore(srv.URL, "anon-key", DefaultTable, 5*time.Second)
	c, err := store.Insert(context.Background(), Input{Name: "Mia", Message: "so golden"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, "Mia", c.Name)
	assert.Equal(t, 2026, c.CreatedAt.Year())
}

func TestRESTStoreQueryAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "created_at.desc,id.desc", r.URL.Query().Get("order"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":2,"name":"Leo","message":"second one","created_at":"2026-10-19T09:00:00Z"},
			{"id":1,"name":"Mia","message":"first one","created_at":"2026-10-19T08:00:00Z"}
		]`))
	}))
	defer srv.Close()

	store := NewRESTStore(srv.URL+"/", "anon-key", DefaultTable, 5*time.Second)
	comments, err := store.QueryAll(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, int64(2), comments[0].ID)
	assert.Equal(t, "first one", comments[1].Message)
}

func TestRESTStoreErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantAbsent bool
	}{
		{
			name:       "undefined table",
			status:     http.StatusNotFound,
			body:       `{"code":"42P01","details":null,"hint":null,"message":"relation \"public.Comments\" does not exist"}`,
			wantAbsent: true,
		},
		{
			name:       "schema cache miss",
			status:     http.StatusNotFound,
			body:       `{"code":"PGRST205","message":"Could not find the table 'public.Comments' in the schema cache"}`,
			wantAbsent: true,
		},
		{
			name:       "no rows",
			status:     http.StatusNotAcceptable,
			body:       `{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`,
			wantAbsent: true,
		},
		{
			name:   "permission denied",
			status: http.StatusUnauthorized,
			body:   `{"code":"42501","message":"permission denied for table Comments"}`,
		},
		{
			name:   "bare server error",
			status: http.StatusBadGateway,
			body:   ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			store := NewRESTStore(srv.URL, "anon-key", DefaultTable, 5*time.Second)
			_, err := store.QueryAll(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantAbsent, errors.Is(err, ErrCollectionAbsent))
		})
	}
}

func TestRESTStoreUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := NewRESTStore(url, "anon-key", DefaultTable, time.Second)
	_, err := store.Insert(context.Background(), Input{Name: "Mia", Message: "hello there"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCollectionAbsent))
}
