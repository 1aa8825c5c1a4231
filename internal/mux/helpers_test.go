package mux

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"headsupholdem-server/internal/jwt"
	"headsupholdem-server/internal/util"
)

func TestMain(m *testing.M) {
	resetPublic := util.SetEnv("HUH_JWT_PUBLIC_KEY", filepath.Join("..", "jwt", "testdata", "public.pem"))
	resetPrivate := util.SetEnv("HUH_JWT_PRIVATE_KEY", filepath.Join("..", "jwt", "testdata", "private.key"))
	jwt.LoadKeys()

	code := m.Run()

	resetPublic()
	resetPrivate()
	os.Exit(code)
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return
	}

	assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	assertDo(t, req, respObj, statusCode, signedJWT...)
}

// registerPlayer creates a player through the API and returns it with a
// signed JWT
func registerPlayer(t *testing.T, ts *httptest.Server, name string) (*Player, string) {
	t.Helper()

	var resp postPlayerResponse
	assertPost(t, ts, "/player", postPlayerPayload{DisplayName: name}, &resp, http.StatusCreated)

	return resp.Player, resp.JWT
}
