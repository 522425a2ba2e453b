package echoapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnonDomini/Exam-Bombers-V1/core/course"
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
	"github.com/AnnonDomini/Exam-Bombers-V1/tests"
)

func Test_topicApi_retrieve(t *testing.T) {
	app := testutil.NewApp(t)
	teacher := testutil.CreateUser(t, app.UserRepo, "t1", "secret1", user.RoleTeacher)
	physics := testutil.CreateSubject(t, app.CourseRepo, "Physics", teacher.ID)
	mechanics := testutil.CreateTopic(t, app.CourseRepo, physics.ID, teacher.ID, "Mechanics")
	q1 := testutil.CreateQuestion(t, app.CourseRepo, mechanics.ID, "Unit of force?", 0, "Newton", "Joule")
	q2 := testutil.CreateQuestion(t, app.CourseRepo, mechanics.ID, "First law?", 1, "F=ma", "Inertia", "Action")

	topicNotFound := marchallObj(t, httpErr{Message: "Topic not found"})

	runHTTPTests(t, app, []httpTest{
		{name: "topic", path: fmt.Sprintf("/api/topics/%d", mechanics.ID), wantData: marchallObj(t, mechanics)},
		{name: "unknown topic", path: "/api/topics/999", wantCode: http.StatusNotFound, wantData: topicNotFound},
		{name: "subject id is not a topic id", path: fmt.Sprintf("/api/topics/%d", physics.ID), wantCode: http.StatusNotFound, wantData: topicNotFound},
		{name: "questions", path: fmt.Sprintf("/api/topics/%d/questions", mechanics.ID), wantData: marchallList(t, q1, q2)},
		{name: "questions of unknown topic", path: "/api/topics/999/questions", wantData: marchallList(t)},
	})
}

func Test_topicApi_update(t *testing.T) {
	app := testutil.NewApp(t)
	t1 := testutil.CreateUser(t, app.UserRepo, "t1", "secret1", user.RoleTeacher)
	t2 := testutil.CreateUser(t, app.UserRepo, "t2", "secret1", user.RoleTeacher)
	testutil.CreateUser(t, app.UserRepo, "s1", "secret1", user.RoleStudent)
	physics := testutil.CreateSubject(t, app.CourseRepo, "Physics", t1.ID)
	chemistry := testutil.CreateSubject(t, app.CourseRepo, "Chemistry", t1.ID)
	mechanics := testutil.CreateTopic(t, app.CourseRepo, physics.ID, t1.ID, "Mechanics")

	t2Cookie := login(t, app, "t2", "secret1")
	studentCookie := login(t, app, "s1", "secret1")
	path := fmt.Sprintf("/api/topics/%d", mechanics.ID)

	tests := []httpTest{
		{name: "auth required", path: path, body: []byte(`{"name":"x"}`), wantCode: http.StatusUnauthorized},
		{name: "student forbidden", path: path, body: []byte(`{"name":"x"}`), cookie: studentCookie, wantCode: http.StatusForbidden},
		{
			name: "unknown topic", path: "/api/topics/999", body: []byte(`{"name":"x"}`), cookie: t2Cookie,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Topic not found"}),
		},
		{name: "blank name", path: path, body: []byte(`{"name":"   "}`), cookie: t2Cookie, wantCode: http.StatusBadRequest},
		{name: "wrong type", path: path, body: []byte(`{"subjectId":"physics"}`), cookie: t2Cookie, wantCode: http.StatusBadRequest},
		{
			name: "unknown subject", path: path, body: []byte(`{"subjectId":999}`), cookie: t2Cookie,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Subject not found"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPatch
	}
	runHTTPTests(t, app, tests)

	t.Run("partial update", func(t *testing.T) {
		rec := serve(app, http.MethodPatch, path, t2Cookie, []byte(`{"name":" Dynamics "}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var topic course.Topic
		unmarshal(t, rec, &topic)
		assert.Equal(t, "Dynamics", topic.Name)
		assert.Equal(t, mechanics.Content, topic.Content)
		assert.Equal(t, physics.ID, topic.SubjectID)
		assert.Equal(t, t2.ID, topic.TeacherID)
	})

	t.Run("move to another subject", func(t *testing.T) {
		body := marchallObj(t, map[string]interface{}{"subjectId": chemistry.ID, "content": "Moved"})
		rec := serve(app, http.MethodPatch, path, t2Cookie, body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		topics, err := app.CourseRepo.QueryTopics(chemistry.ID)
		require.NoError(t, err)
		require.Len(t, topics, 1)
		assert.Equal(t, "Moved", topics[0].Content)

		topics, _ = app.CourseRepo.QueryTopics(physics.ID)
		assert.Empty(t, topics)
	})
}

func Test_topicApi_createQuestion(t *testing.T) {
	app := testutil.NewApp(t)
	teacher := testutil.CreateUser(t, app.UserRepo, "t1", "secret1", user.RoleTeacher)
	testutil.CreateUser(t, app.UserRepo, "s1", "secret1", user.RoleStudent)
	physics := testutil.CreateSubject(t, app.CourseRepo, "Physics", teacher.ID)
	mechanics := testutil.CreateTopic(t, app.CourseRepo, physics.ID, teacher.ID, "Mechanics")

	teacherCookie := login(t, app, "t1", "secret1")
	studentCookie := login(t, app, "s1", "secret1")
	path := fmt.Sprintf("/api/topics/%d/questions", mechanics.ID)

	question := func(q string, correct interface{}, options ...string) []byte {
		data := map[string]interface{}{"question": q, "options": options}
		if correct != nil {
			data["correctAnswer"] = correct
		}
		return marchallObj(t, data)
	}
	valid := question("Unit of force?", 0, "Newton", "Joule")

	tests := []struct {
		httpTest
		wantErrFld string
	}{
		{httpTest: httpTest{name: "auth required", path: path, body: valid, wantCode: http.StatusUnauthorized}},
		{httpTest: httpTest{name: "student forbidden", path: path, body: valid, cookie: studentCookie, wantCode: http.StatusForbidden}},
		{httpTest: httpTest{name: "one option", path: path, body: question("?", 0, "A"), cookie: teacherCookie, wantCode: http.StatusBadRequest}, wantErrFld: "options"},
		{httpTest: httpTest{name: "blank option", path: path, body: question("?", 0, "A", " "), cookie: teacherCookie, wantCode: http.StatusBadRequest}},
		{httpTest: httpTest{name: "missing answer", path: path, body: question("?", nil, "A", "B"), cookie: teacherCookie, wantCode: http.StatusBadRequest}, wantErrFld: "correctAnswer"},
		{httpTest: httpTest{name: "answer out of range", path: path, body: question("?", 2, "A", "B"), cookie: teacherCookie, wantCode: http.StatusBadRequest}, wantErrFld: "correctAnswer"},
		{httpTest: httpTest{name: "negative answer", path: path, body: question("?", -1, "A", "B"), cookie: teacherCookie, wantCode: http.StatusBadRequest}, wantErrFld: "correctAnswer"},
		{httpTest: httpTest{name: "blank question", path: path, body: question(" ", 0, "A", "B"), cookie: teacherCookie, wantCode: http.StatusBadRequest}, wantErrFld: "question"},
		{
			httpTest: httpTest{
				name: "unknown topic", path: "/api/topics/999/questions", body: valid, cookie: teacherCookie,
				wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Message: "Topic not found"}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(app, http.MethodPost, tt.path, tt.cookie, tt.body)
			checkCodeAndData(t, tt.httpTest, rec)
			if tt.wantErrFld != "" {
				var herr httpErr
				unmarshal(t, rec, &herr)
				assert.Equal(t, "Invalid question data", herr.Message)
				assert.Contains(t, herr.Errors, tt.wantErrFld)
			}
		})
	}

	t.Run("created", func(t *testing.T) {
		rec := serve(app, http.MethodPost, path, teacherCookie, valid)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var q course.Question
		unmarshal(t, rec, &q)
		assert.Equal(t, mechanics.ID, q.TopicID)
		assert.Equal(t, []string{"Newton", "Joule"}, q.Options)
		assert.Equal(t, 0, q.CorrectAnswer)
	})
}
