package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingplanner/internal/domain"
)

// fakeGuestbookRepo implements domain.GuestbookRepository for handler tests.
type fakeGuestbookRepo struct {
	entries []*domain.GuestbookEntry
}

func (f *fakeGuestbookRepo) Create(ctx context.Context, e *domain.GuestbookEntry) error {
	e.ID = fmt.Sprintf("entry-%d", len(f.entries)+1)
	f.entries = append([]*domain.GuestbookEntry{e}, f.entries...)
	return nil
}

func (f *fakeGuestbookRepo) List(ctx context.Context) ([]*domain.GuestbookEntry, error) {
	return f.entries, nil
}

func (f *fakeGuestbookRepo) Delete(ctx context.Context, id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func TestSignGuestbook(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		c := NewGuestbookController(testLogger, &fakeGuestbookRepo{})
		rr := postJSON(t, c.SignGuestbook, "/api/guestbook", map[string]string{"name": "Alex"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "message is required")
	})

	t.Run("creates entry", func(t *testing.T) {
		repo := &fakeGuestbookRepo{}
		c := NewGuestbookController(testLogger, repo)

		rr := postJSON(t, c.SignGuestbook, "/api/guestbook", map[string]string{
			"name":    "  Alex  ",
			"message": "Congrats!",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, repo.entries, 1)
		assert.Equal(t, "Alex", repo.entries[0].Name)
	})
}

func TestListGuestbook(t *testing.T) {
	repo := &fakeGuestbookRepo{entries: []*domain.GuestbookEntry{
		{ID: "entry-2", Name: "Sam", Message: "So happy for you"},
		{ID: "entry-1", Name: "Alex", Message: "Congrats!"},
	}}
	c := NewGuestbookController(testLogger, repo)

	rr := httptest.NewRecorder()
	c.ListGuestbook(rr, httptest.NewRequest(http.MethodGet, "/api/guestbook", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var envelope struct {
		Data []*domain.GuestbookEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "entry-2", envelope.Data[0].ID)
}

func TestDeleteGuestbookEntry(t *testing.T) {
	repo := &fakeGuestbookRepo{entries: []*domain.GuestbookEntry{
		{ID: "entry-1", Name: "Alex", Message: "Congrats!"},
	}}
	c := NewGuestbookController(testLogger, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/guestbook/entry-1", nil)
	req.SetPathValue("id", "entry-1")
	rr := httptest.NewRecorder()
	c.DeleteGuestbookEntry(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, repo.entries)

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/guestbook/entry-1", nil)
	req.SetPathValue("id", "entry-1")
	rr = httptest.NewRecorder()
	c.DeleteGuestbookEntry(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
