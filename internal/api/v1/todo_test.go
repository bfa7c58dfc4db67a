package v1

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTodo(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":        "Write report",
		"description": "Quarterly report",
		"status":      "todo",
		"startAt":     "2025-01-01T09:00",
		"endAt":       "2025-01-01T17:00",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	require.Equal(t, true, result["success"])
	data := result["data"].(map[string]interface{})
	assert.Greater(t, data["id"].(float64), float64(0))
	assert.Equal(t, "Write report", data["text"])
	assert.Equal(t, "Quarterly report", data["description"])
	assert.Equal(t, "todo", data["status"])
	assert.Equal(t, "2025-01-01T09:00:00Z", data["startAt"])
	assert.Equal(t, "2025-01-01T17:00:00Z", data["endAt"])
}

func TestCreateTodoDefaultsStatus(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text": "No status supplied",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	result := decodeMap(t, resp)
	data := result["data"].(map[string]interface{})
	assert.Equal(t, "todo", data["status"])
}

func TestCreateTodoValidation(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	// text kosong
	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":   "",
		"status": "todo",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// status di luar enum
	resp = doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":   "Bad status",
		"status": "archived",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTodoRoutesRequireSession(t *testing.T) {
	app := createTestApp()

	for _, rt := range []struct{ method, path string }{
		{"GET", "/api/"},
		{"POST", "/api/"},
		{"PUT", "/api/1"},
		{"PATCH", "/api/1"},
		{"DELETE", "/api/1"},
	} {
		resp := doJSON(t, app, rt.method, rt.path, map[string]interface{}{"text": "x"}, "")
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", rt.method, rt.path)
		resp.Body.Close()
	}
}

func TestListReflectsMutationsImmediately(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	// User baru mulai dari list kosong
	resp := doJSON(t, app, "GET", "/api/", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 0)

	resp = doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":   "First",
		"status": "backlog",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeMap(t, resp)["data"].(map[string]interface{})

	// List setelah create harus langsung memuat record baru (read-your-writes)
	resp = doJSON(t, app, "GET", "/api/", nil, cookie)
	todos := decodeList(t, resp)
	require.Len(t, todos, 1)
	assert.Equal(t, created["id"], todos[0]["id"])
	assert.Equal(t, "First", todos[0]["text"])
	assert.Equal(t, "backlog", todos[0]["status"])

	// Dan list kedua (yang dilayani cache) harus tetap mencerminkan delete
	resp = doJSON(t, app, "DELETE", "/api/"+floatID(created["id"]), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/", nil, cookie)
	assert.Len(t, decodeList(t, resp), 0)
}

func TestPatchChangesOnlyStatus(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":        "Ship release",
		"description": "Cut the final build",
		"status":      "todo",
		"startAt":     "2025-01-01T09:00",
		"endAt":       "2025-01-01T17:00",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeMap(t, resp)["data"].(map[string]interface{})

	resp = doJSON(t, app, "PATCH", "/api/"+floatID(created["id"]), map[string]interface{}{
		"status": "done",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decodeMap(t, resp)["data"].(map[string]interface{})

	assert.Equal(t, "done", patched["status"])
	// Semua field lain harus persis seperti sebelum patch
	assert.Equal(t, created["text"], patched["text"])
	assert.Equal(t, created["description"], patched["description"])
	assert.Equal(t, created["startAt"], patched["startAt"])
	assert.Equal(t, created["endAt"], patched["endAt"])
	assert.Equal(t, created["userId"], patched["userId"])
}

func TestPatchValidation(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text": "Patch target",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := floatID(decodeMap(t, resp)["data"].(map[string]interface{})["id"])

	// Patch kosong ditolak
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Status di luar enum ditolak
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "paused"}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Text dikosongkan ditolak
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"text": ""}, cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Status bebas berpindah ke status manapun, done -> todo legal
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "done"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "todo"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "todo", decodeMap(t, resp)["data"].(map[string]interface{})["status"])
}

func TestReplaceOverwritesAllFields(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":        "Old text",
		"description": "Old description",
		"status":      "todo",
		"startAt":     "2025-01-01T09:00",
		"endAt":       "2025-01-01T17:00",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := floatID(decodeMap(t, resp)["data"].(map[string]interface{})["id"])

	resp = doJSON(t, app, "PUT", "/api/"+id, map[string]interface{}{
		"text":        "New text",
		"description": "",
		"status":      "inprogress",
		"startAt":     "2025-02-01T08:00",
		"endAt":       "2025-02-01T12:00",
	}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// List harus menunjukkan persis t', bukan campuran t dan t'
	resp = doJSON(t, app, "GET", "/api/", nil, cookie)
	todos := decodeList(t, resp)
	require.Len(t, todos, 1)
	assert.Equal(t, "New text", todos[0]["text"])
	assert.Equal(t, "", todos[0]["description"])
	assert.Equal(t, "inprogress", todos[0]["status"])
	assert.Equal(t, "2025-02-01T08:00:00Z", todos[0]["startAt"])
	assert.Equal(t, "2025-02-01T12:00:00Z", todos[0]["endAt"])
}

func TestMutationsOnMissingIDReturnNotFound(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	body := map[string]interface{}{"text": "x", "status": "todo"}
	for _, rt := range []struct{ method, path string }{
		{"PUT", "/api/999999"},
		{"PATCH", "/api/999999"},
		{"DELETE", "/api/999999"},
	} {
		resp := doJSON(t, app, rt.method, rt.path, body, cookie)
		require.Equalf(t, http.StatusNotFound, resp.StatusCode, "%s %s", rt.method, rt.path)
		result := decodeMap(t, resp)
		assert.Equal(t, false, result["success"])
		assert.Equal(t, "Todo not found", result["message"])
	}
}

func TestTodoOwnership(t *testing.T) {
	app := createTestApp()
	cookieA, _ := newSession(t, app)
	cookieB, _ := newSession(t, app)

	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text": "Private todo",
	}, cookieA)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := floatID(decodeMap(t, resp)["data"].(map[string]interface{})["id"])

	// User lain tidak melihat todo milik A
	resp = doJSON(t, app, "GET", "/api/", nil, cookieB)
	assert.Len(t, decodeList(t, resp), 0)

	// Dan tidak boleh memutasinya
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "done"}, cookieB)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, app, "DELETE", "/api/"+id, nil, cookieB)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Admin boleh
	adminCookie := adminSession(t, app)
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "cancelled"}, adminCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestTodoLifecycleScenario(t *testing.T) {
	app := createTestApp()
	cookie, _ := newSession(t, app)

	// Create
	resp := doJSON(t, app, "POST", "/api/", map[string]interface{}{
		"text":    "Ship release",
		"status":  "todo",
		"startAt": "2025-01-01T09:00",
		"endAt":   "2025-01-01T17:00",
	}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeMap(t, resp)["data"].(map[string]interface{})
	id := floatID(created["id"])

	// Drag ke kolom inprogress
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "inprogress"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decodeMap(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "inprogress", patched["status"])
	assert.Equal(t, "Ship release", patched["text"])

	// Delete
	resp = doJSON(t, app, "DELETE", "/api/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeMap(t, resp)
	assert.Equal(t, "Todo deleted", result["message"])

	// Patch setelah delete: 404, bukan silent success
	resp = doJSON(t, app, "PATCH", "/api/"+id, map[string]interface{}{"status": "done"}, cookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
