package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/dom/todo-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     uint   `json:"ownerId"`
}

func authorizedRequest(t *testing.T, ts *testutil.TestServer, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, ts.URL(path), reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestTaskHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		request        map[string]interface{}
		token          string
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful creation",
			request: map[string]interface{}{
				"title":       "buy milk",
				"description": "two liters",
			},
			token:          token,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "missing title",
			request: map[string]interface{}{
				"description": "no title here",
			},
			token:          token,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "invalid_input",
		},
		{
			name: "no token",
			request: map[string]interface{}{
				"title": "buy milk",
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := authorizedRequest(t, ts, http.MethodPost, "/todo", tt.token, tt.request)
			defer resp.Body.Close()

			if tt.expectedCode != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedCode)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if resp.StatusCode == http.StatusCreated {
				var task taskResponse
				testutil.AssertJSONResponse(t, resp, &task)
				assert.NotZero(t, task.ID)
				assert.Equal(t, "buy milk", task.Title)
				assert.Equal(t, "two liters", task.Description)
				assert.False(t, task.Completed)
			}
		})
	}
}

func TestTaskHandler_ListFilters(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	other, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	testutil.NewTaskBuilder().WithOwner(user).WithTitle("open one").Build(t, ts.DB.DB)
	testutil.NewTaskBuilder().WithOwner(user).WithTitle("done one").WithCompleted(true).Build(t, ts.DB.DB)
	testutil.NewTaskBuilder().WithOwner(user).WithTitle("open two").Build(t, ts.DB.DB)
	testutil.NewTaskBuilder().WithOwner(other).WithTitle("someone else's").Build(t, ts.DB.DB)

	fetch := func(path string) []taskResponse {
		resp := authorizedRequest(t, ts, http.MethodGet, path, token, nil)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var tasks []taskResponse
		testutil.AssertJSONResponse(t, resp, &tasks)
		return tasks
	}

	all := fetch("/todos")
	completed := fetch("/todos/completed")
	pending := fetch("/todos/pending")

	assert.Len(t, all, 3)
	assert.Len(t, completed, 1)
	assert.Len(t, pending, 2)
	assert.Equal(t, "done one", completed[0].Title)

	// completed and pending together cover exactly the full list
	ids := map[uint]bool{}
	for _, task := range append(completed, pending...) {
		assert.False(t, ids[task.ID])
		ids[task.ID] = true
	}
	assert.Len(t, ids, len(all))

	// Only the owner's tasks appear
	for _, task := range all {
		assert.Equal(t, user.ID, task.OwnerID)
	}
}

func TestTaskHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	task := testutil.NewTaskBuilder().WithOwner(user).WithTitle("mine").Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		path           string
		token          string
		expectedStatus int
	}{
		{
			name:           "owner fetches own task",
			path:           fmt.Sprintf("/todo/%d", task.ID),
			token:          token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "another user gets 404",
			path:           fmt.Sprintf("/todo/%d", task.ID),
			token:          otherToken,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown id gets 404",
			path:           fmt.Sprintf("/todo/%d", task.ID+1000),
			token:          token,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non-numeric id gets 404",
			path:           "/todo/abc",
			token:          token,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := authorizedRequest(t, ts, http.MethodGet, tt.path, tt.token, nil)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var got taskResponse
				testutil.AssertJSONResponse(t, resp, &got)
				assert.Equal(t, task.ID, got.ID)
				assert.Equal(t, "mine", got.Title)
			}
		})
	}
}

func TestTaskHandler_Update(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	task := testutil.NewTaskBuilder().
		WithOwner(user).
		WithTitle("original").
		WithDescription("keep me").
		Build(t, ts.DB.DB)

	// Partial update: only completed changes
	resp := authorizedRequest(t, ts, http.MethodPut, fmt.Sprintf("/todo/%d", task.ID), token, map[string]interface{}{
		"completed": true,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated taskResponse
	testutil.AssertJSONResponse(t, resp, &updated)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.Completed)

	// Cross-owner update is indistinguishable from a missing task
	resp = authorizedRequest(t, ts, http.MethodPut, fmt.Sprintf("/todo/%d", task.ID), otherToken, map[string]interface{}{
		"title": "hijacked",
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "not_found")

	// Explicitly empty title is rejected
	resp = authorizedRequest(t, ts, http.MethodPut, fmt.Sprintf("/todo/%d", task.ID), token, map[string]interface{}{
		"title": "",
	})
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "invalid_input")
}

func TestTaskHandler_Delete(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, otherToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	task := testutil.NewTaskBuilder().WithOwner(user).Build(t, ts.DB.DB)

	// Another user cannot delete it
	resp := authorizedRequest(t, ts, http.MethodDelete, fmt.Sprintf("/todo/%d", task.ID), otherToken, nil)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "not_found")

	// Owner deletes it
	resp = authorizedRequest(t, ts, http.MethodDelete, fmt.Sprintf("/todo/%d", task.ID), token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Second delete misses
	resp = authorizedRequest(t, ts, http.MethodDelete, fmt.Sprintf("/todo/%d", task.ID), token, nil)
	defer resp.Body.Close()
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "not_found")
}

// Full session lifecycle: register, login, create and read a task, then
// verify logout kills the token for every protected route.
func TestSessionLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// Register
	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "pw1"})
	resp, err := http.Post(ts.URL("/register"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Login
	body, _ = json.Marshal(map[string]string{"username": "alice", "password": "pw1"})
	resp, err = http.Post(ts.URL("/login"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	var login testutil.LoginResponse
	testutil.AssertJSONResponse(t, resp, &login)
	resp.Body.Close()
	require.NotEmpty(t, login.AccessToken)

	// Create a task
	resp = authorizedRequest(t, ts, http.MethodPost, "/todo", login.AccessToken, map[string]interface{}{
		"title": "buy milk",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var task taskResponse
	testutil.AssertJSONResponse(t, resp, &task)
	resp.Body.Close()
	assert.False(t, task.Completed)

	// Read it back
	resp = authorizedRequest(t, ts, http.MethodGet, fmt.Sprintf("/todo/%d", task.ID), login.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got taskResponse
	testutil.AssertJSONResponse(t, resp, &got)
	resp.Body.Close()
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "buy milk", got.Title)

	// Logout
	resp = authorizedRequest(t, ts, http.MethodDelete, "/logout", login.AccessToken, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The revoked token no longer reads the task
	resp = authorizedRequest(t, ts, http.MethodGet, fmt.Sprintf("/todo/%d", task.ID), login.AccessToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A fresh login works again
	body, _ = json.Marshal(map[string]string{"username": "alice", "password": "pw1"})
	resp, err = http.Post(ts.URL("/login"), "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	var second testutil.LoginResponse
	testutil.AssertJSONResponse(t, resp, &second)
	resp.Body.Close()

	resp = authorizedRequest(t, ts, http.MethodGet, fmt.Sprintf("/todo/%d", task.ID), second.AccessToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
