package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) (*httptest.Server, *Repo) {
	t.Helper()
	repo := newTestRepo(t)
	h := NewStoreHandler(repo)
	h.now = func() time.Time { return time.UnixMilli(1709366400000) }

	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, repo
}

func postForm(t *testing.T, target string, form url.Values) *http.Response {
	t.Helper()
	res, err := http.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestStoreSaveAndList(t *testing.T) {
	srv, _ := newTestStore(t)

	res := postForm(t, srv.URL+"/exec", url.Values{
		"date":      {"02/03/2024"},
		"entryTime": {"09:00"},
		"type":      {"automatic"},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, err := http.Get(srv.URL + "/exec?action=get")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Success bool           `json:"success"`
		Data    []RemoteRecord `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "09:00", body.Data[0].EntryTime)
	assert.Equal(t, Timestamp("1709366400000"), body.Data[0].Timestamp)
}

func TestStoreSaveDefaultsType(t *testing.T) {
	srv, repo := newTestStore(t)

	res := postForm(t, srv.URL+"/", url.Values{"date": {"02/03/2024"}, "exitTime": {"18:00"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	rows, err := repo.ListRecords("")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "automatic", rows[0].Type)
}

func TestStoreRejectsMissingDate(t *testing.T) {
	srv, repo := newTestStore(t)

	res := postForm(t, srv.URL+"/exec", url.Values{"entryTime": {"09:00"}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	rows, err := repo.ListRecords("")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStoreRejectsUnknownAction(t *testing.T) {
	srv, _ := newTestStore(t)

	res, err := http.Get(srv.URL + "/exec?action=delete")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestStoreHealth(t *testing.T) {
	srv, _ := newTestStore(t)

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestTrackerAgainstStoreService(t *testing.T) {
	srv, _ := newTestStore(t)
	client := NewAPIClient(srv.URL+"/exec", 2*time.Second)
	tr, _, now := newTestTracker(client)
	ctx := context.Background()

	require.NoError(t, tr.Reload(ctx))
	_, ok := tr.Today()
	assert.False(t, ok)

	task, err := tr.RegisterEntry(ctx)
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	*now = testDay.Add(8*time.Hour + 30*time.Minute)
	task, err = tr.RegisterExit(ctx)
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	today, ok := tr.Today()
	require.True(t, ok)
	assert.Equal(t, "8h 30min", WorkDuration(today))
	assert.Equal(t, "1709366400000", today.ID)
	require.Len(t, tr.Month(), 1)

	task, err = tr.SubmitManual(ctx, ManualInput{Date: "2024-03-01", EntryTime: "09:00", ExitTime: "18:00"})
	require.NoError(t, err)
	require.NoError(t, waitTask(t, task))

	month := tr.Month()
	require.Len(t, month, 2)
	assert.Equal(t, KindManual, month[1].Kind)
	assert.Equal(t, "9h 0min", WorkDuration(month[1]))
}

func TestStoreListByMonth(t *testing.T) {
	srv, repo := newTestStore(t)
	require.NoError(t, repo.SaveRecord(RemoteRecord{Date: "01/03/2024", Type: "automatic", Timestamp: "1"}))
	require.NoError(t, repo.SaveRecord(RemoteRecord{Date: "01/04/2024", Type: "automatic", Timestamp: "2"}))

	res, err := http.Get(srv.URL + "/exec?action=get&month=" + url.QueryEscape("04/2024"))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Data []RemoteRecord `json:"data"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "01/04/2024", body.Data[0].Date)
}

func TestStoreRejectsMalformedMonth(t *testing.T) {
	srv, _ := newTestStore(t)

	for _, month := range []string{"_4/2024", "%", "4/2024", "2024-04"} {
		res, err := http.Get(srv.URL + "/exec?action=get&month=" + url.QueryEscape(month))
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, month)
	}
}
