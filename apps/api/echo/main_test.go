package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnonDomini/Exam-Bombers-V1/tests"
)

type httpErr struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var (
	errUnauthorized = httpErr{Message: "Unauthorized"}
	errForbidden    = httpErr{Message: "Forbidden"}
)

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	cookie   *http.Cookie
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path string, cookie *http.Cookie, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, nil, data...)
}

func serve(app *testutil.App, method, path string, cookie *http.Cookie, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, cookie, data...)
	app.Server.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns the session cookie set on rec, if any.
func sessionCookie(app *testutil.App, rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == app.Conf.Session.CookieName {
			return c
		}
	}
	return nil
}

// login signs uname in and returns the session cookie.
func login(t *testing.T, app *testutil.App, uname, pwd string) *http.Cookie {
	t.Helper()
	rec := serve(app, http.MethodPost, "/api/login", nil, marchallObj(t, map[string]string{"username": uname, "password": pwd}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(app, rec)
	require.NotNil(t, cookie)
	return cookie
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}

func runHTTPTests(t *testing.T, app *testutil.App, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		if tt.method == "" {
			tt.method = http.MethodGet
		}
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, tt.method, tt.path, tt.cookie, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
