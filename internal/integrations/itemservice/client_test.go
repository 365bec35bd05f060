package itemservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/logger"
)

func TestClient_GetItem(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/internal/items/10", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"id":10,"name":"Дрель","description":"Аккумуляторная","available":true,"ownerId":5}`))
	})
	mux.HandleFunc("/internal/items/11", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/internal/items/12", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, logger.NewNop())

	item, err := client.GetItem(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.ID)
	assert.Equal(t, "Дрель", item.Name)
	assert.True(t, item.Available)
	assert.Equal(t, int64(5), item.OwnerID)
	assert.True(t, item.IsOwnedBy(5))

	_, err = client.GetItem(context.Background(), 11)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = client.GetItem(context.Background(), 12)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
