package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/progress"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
	"github.com/AnnonDomini/Exam-Bombers-V1/tests"
)

func Test_progressApi(t *testing.T) {
	app := testutil.NewApp(t)
	teacher := testutil.CreateUser(t, app.UserRepo, "t1", "secret1", user.RoleTeacher)
	testutil.CreateUser(t, app.UserRepo, "s1", "secret1", user.RoleStudent)
	testutil.CreateUser(t, app.UserRepo, "s2", "secret1", user.RoleStudent)
	physics := testutil.CreateSubject(t, app.CourseRepo, "Physics", teacher.ID)
	mechanics := testutil.CreateTopic(t, app.CourseRepo, physics.ID, teacher.ID, "Mechanics")

	s1Cookie := login(t, app, "s1", "secret1")
	s2Cookie := login(t, app, "s2", "secret1")
	path := fmt.Sprintf("/api/topics/%d/progress", mechanics.ID)
	defaultProgress := []byte(`{"completed":false,"score":0}`)

	runHTTPTests(t, app, []httpTest{
		{name: "get: auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{name: "get: nothing recorded", path: path, cookie: s1Cookie, wantData: defaultProgress},
		{name: "get: unknown topic", path: "/api/topics/999/progress", cookie: s1Cookie, wantData: defaultProgress},
		{name: "post: auth required", method: http.MethodPost, path: path, body: []byte(`{"score":50}`), wantCode: http.StatusUnauthorized},
		{name: "post: missing score", method: http.MethodPost, path: path, body: []byte(`{"completed":true}`), cookie: s1Cookie, wantCode: http.StatusBadRequest},
		{name: "post: score too high", method: http.MethodPost, path: path, body: []byte(`{"score":101}`), cookie: s1Cookie, wantCode: http.StatusBadRequest},
		{name: "post: negative score", method: http.MethodPost, path: path, body: []byte(`{"score":-1}`), cookie: s1Cookie, wantCode: http.StatusBadRequest},
		{
			name: "post: unknown topic", method: http.MethodPost, path: "/api/topics/999/progress", body: []byte(`{"score":50}`), cookie: s1Cookie,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Topic not found"}),
		},
	})

	var first, second progress.Progress
	t.Run("record incomplete", func(t *testing.T) {
		rec := serve(app, http.MethodPost, path, s1Cookie, []byte(`{"score":40,"completed":false}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		unmarshal(t, rec, &first)
		assert.Equal(t, 40, first.Score)
		assert.False(t, first.Completed)
		assert.Nil(t, first.CompletedAt)
	})
	t.Run("record completed", func(t *testing.T) {
		rec := serve(app, http.MethodPost, path, s1Cookie, []byte(`{"score":90,"completed":true}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		unmarshal(t, rec, &second)
		assert.Greater(t, second.ID, first.ID)
		assert.NotNil(t, second.CompletedAt)
	})
	t.Run("newest is current", func(t *testing.T) {
		rec := serve(app, http.MethodGet, path, s1Cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		var current progress.Progress
		unmarshal(t, rec, &current)
		assert.Equal(t, second.ID, current.ID)
		assert.Equal(t, 90, current.Score)
	})
	t.Run("history newest first", func(t *testing.T) {
		rec := serve(app, http.MethodGet, path+"/history", s1Cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		var history []progress.Progress
		unmarshal(t, rec, &history)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})
	t.Run("other users unaffected", func(t *testing.T) {
		rec := serve(app, http.MethodGet, path, s2Cookie)
		assert.JSONEq(t, string(defaultProgress), rec.Body.String())

		rec = serve(app, http.MethodGet, path+"/history", s2Cookie)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func Test_progressApi_attempt(t *testing.T) {
	app := testutil.NewApp(t)
	teacher := testutil.CreateUser(t, app.UserRepo, "t1", "secret1", user.RoleTeacher)
	testutil.CreateUser(t, app.UserRepo, "s1", "secret1", user.RoleStudent)
	physics := testutil.CreateSubject(t, app.CourseRepo, "Physics", teacher.ID)
	mechanics := testutil.CreateTopic(t, app.CourseRepo, physics.ID, teacher.ID, "Mechanics")
	empty := testutil.CreateTopic(t, app.CourseRepo, physics.ID, teacher.ID, "Empty")
	testutil.CreateQuestion(t, app.CourseRepo, mechanics.ID, "Unit of force?", 0, "Newton", "Joule")
	testutil.CreateQuestion(t, app.CourseRepo, mechanics.ID, "First law?", 1, "F=ma", "Inertia")

	cookie := login(t, app, "s1", "secret1")
	path := fmt.Sprintf("/api/topics/%d/attempts", mechanics.ID)

	runHTTPTests(t, app, []httpTest{
		{name: "auth required", method: http.MethodPost, path: path, body: []byte(`{"answers":[0,1]}`), wantCode: http.StatusUnauthorized},
		{name: "missing answers", method: http.MethodPost, path: path, body: []byte(`{}`), cookie: cookie, wantCode: http.StatusBadRequest},
		{name: "unknown topic", method: http.MethodPost, path: "/api/topics/999/attempts", body: []byte(`{"answers":[0]}`), cookie: cookie, wantCode: http.StatusNotFound},
	})

	tests := []struct {
		name        string
		path        string
		answers     string
		wantCorrect int
		wantTotal   int
		wantScore   int
	}{
		{name: "all correct", path: path, answers: `[0,1]`, wantCorrect: 2, wantTotal: 2, wantScore: 100},
		{name: "half correct", path: path, answers: `[0,0]`, wantCorrect: 1, wantTotal: 2, wantScore: 50},
		{name: "unanswered", path: path, answers: `[]`, wantCorrect: 0, wantTotal: 2, wantScore: 0},
		{name: "no questions", path: fmt.Sprintf("/api/topics/%d/attempts", empty.ID), answers: `[1]`, wantCorrect: 0, wantTotal: 0, wantScore: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, http.MethodPost, tt.path, cookie, []byte(`{"answers":`+tt.answers+`}`))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var res progress.AttemptResult
			unmarshal(t, rec, &res)
			assert.Equal(t, tt.wantCorrect, res.Correct)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Equal(t, tt.wantScore, res.Progress.Score)
			assert.True(t, res.Progress.Completed)
			assert.NotNil(t, res.Progress.CompletedAt)
		})
	}

	t.Run("attempts are recorded", func(t *testing.T) {
		rec := serve(app, http.MethodGet, fmt.Sprintf("/api/topics/%d/progress/history", mechanics.ID), cookie)
		var history []progress.Progress
		unmarshal(t, rec, &history)
		require.Len(t, history, 3)
		assert.Equal(t, 0, history[0].Score)
		assert.Equal(t, 100, history[2].Score)
	})
}

func Test_unknownRoutesUnderGatedPrefixes(t *testing.T) {
	app := testutil.NewApp(t)

	runHTTPTests(t, app, []httpTest{
		{name: "unknown topic method", method: http.MethodDelete, path: "/api/topics/5", wantCode: http.StatusMethodNotAllowed, wantData: marchallObj(t, httpErr{Message: "Method Not Allowed"})},
		{name: "unknown topic path", path: "/api/topics/5/nope", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Not Found"})},
		{name: "unknown admin path", path: "/api/admin/nope", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Not Found"})},
		{name: "known progress path still gated", path: "/api/topics/5/progress", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
	})
}
