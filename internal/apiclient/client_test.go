package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"grammarguide/internal/apiclient"
	"grammarguide/internal/handler"
	transport "grammarguide/internal/http"
	"grammarguide/internal/model"
	"grammarguide/internal/repository"
	"grammarguide/internal/repository/testutil"
	"grammarguide/internal/service"
)

// newServer runs the real Content API over a temp sqlite store.
func newServer(t *testing.T, seed ...string) *httptest.Server {
	t.Helper()
	conn := testutil.NewTestDB(t)
	for _, title := range seed {
		testutil.SeedEntry(t, conn, model.Entry{Title: title, Examples: []string{}})
	}

	svc, err := service.NewGrammarService(repository.NewEntryRepository(conn))
	require.NoError(t, err)
	router := transport.NewRouter(handler.NewGrammarHandler(svc), transport.RouterConfig{})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_List(t *testing.T) {
	srv := newServer(t, "Simple Present", "Present Continuous")
	client := apiclient.New(srv.URL+"/api/grammar/", srv.Client())

	entries, err := client.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "Present Continuous", entries[0].Title)
	require.Equal(t, "Simple Present", entries[1].Title)
	require.NotZero(t, entries[0].ID)
	require.Equal(t, model.CategoryTense, entries[0].Category)
	require.Equal(t, []string{}, entries[0].Examples)
}

func TestClient_CreateAndDuplicate(t *testing.T) {
	srv := newServer(t)
	client := apiclient.New(srv.URL+"/api/grammar", srv.Client())
	ctx := context.Background()

	notes := "Formed with had + past participle."
	req := model.NewEntry{
		Category:   model.CategoryTense,
		Title:      "Past Perfect",
		Definition: "An action completed before another past action.",
		Examples:   []string{"Ex1", "Ex2"},
		Notes:      &notes,
	}

	created, err := client.Create(ctx, req)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, "Past Perfect", created.Title)
	require.Equal(t, []string{"Ex1", "Ex2"}, created.Examples)
	require.Equal(t, notes, *created.Notes)
	require.True(t, created.CreatedAt.IsZero())

	_, err = client.Create(ctx, req)
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Failed to save new content. Title may already exist.", apiErr.Message)

	entries, err := client.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestClient_CreateMissingFields(t *testing.T) {
	srv := newServer(t)
	client := apiclient.New(srv.URL+"/api/grammar", srv.Client())

	_, err := client.Create(context.Background(), model.NewEntry{Category: model.CategoryTense, Title: "Only title"})
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Category, title, and definition are required.", apiErr.Message)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL, srv.Client()).List(context.Background())
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.Status)
	require.Empty(t, apiErr.Message)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := apiclient.New(url, &http.Client{Timeout: time.Second}).List(context.Background())
	require.ErrorIs(t, err, apiclient.ErrTransport)

	var apiErr *apiclient.APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL, &http.Client{Timeout: 50 * time.Millisecond}).List(context.Background())
	require.ErrorIs(t, err, apiclient.ErrTransport)
}

func TestAPIError_Message(t *testing.T) {
	require.Equal(t, "api error: status 500", (&apiclient.APIError{Status: 500}).Error())
	require.Equal(t, "api error: status 400: nope", (&apiclient.APIError{Status: 400, Message: "nope"}).Error())
}
