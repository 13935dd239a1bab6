package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/nonutti-ng/web/pkg/ctxutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deviceRequest(method string, id uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, "/api/dashboard/today", nil)
	return req.WithContext(ctxutil.WithDeviceID(req.Context(), id))
}

func TestInFlight_RejectsConcurrentMutation(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	handler := InFlight()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	}))

	id := uuid.New()
	first := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(first, deviceRequest(http.MethodPost, id))
		close(done)
	}()
	<-entered

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, deviceRequest(http.MethodPost, id))
	assert.Equal(t, http.StatusConflict, second.Code)

	var body errorBody
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, "busy", body.Code)

	close(release)
	<-done
	assert.Equal(t, http.StatusOK, first.Code)
}

func TestInFlight_ReleasesAfterCompletion(t *testing.T) {
	t.Parallel()

	handler := InFlight()(okHandler())
	id := uuid.New()

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, deviceRequest(http.MethodPost, id))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestInFlight_ReleasesAfterPanic(t *testing.T) {
	t.Parallel()

	panicking := true
	handler := InFlight()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if panicking {
			panic("boom")
		}
		w.WriteHeader(http.StatusOK)
	}))
	id := uuid.New()

	assert.Panics(t, func() {
		handler.ServeHTTP(httptest.NewRecorder(), deviceRequest(http.MethodPost, id))
	})

	panicking = false
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, deviceRequest(http.MethodPost, id))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInFlight_IgnoresReadsAndOtherDevices(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	id := uuid.New()
	handler := InFlight()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got, _ := ctxutil.DeviceIDFromCtx(r.Context()); got == id && r.Method == http.MethodPost {
			close(entered)
			<-release
		}
		w.WriteHeader(http.StatusOK)
	}))

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(httptest.NewRecorder(), deviceRequest(http.MethodPost, id))
		close(done)
	}()
	<-entered

	read := httptest.NewRecorder()
	handler.ServeHTTP(read, deviceRequest(http.MethodGet, id))
	assert.Equal(t, http.StatusOK, read.Code)

	other := httptest.NewRecorder()
	handler.ServeHTTP(other, deviceRequest(http.MethodPost, uuid.New()))
	assert.Equal(t, http.StatusOK, other.Code)

	close(release)
	<-done
}
