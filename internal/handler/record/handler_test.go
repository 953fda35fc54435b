package record

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrifarma/advisor-api/internal/middleware"
	"github.com/nutrifarma/advisor-api/internal/session"
	"github.com/nutrifarma/advisor-api/pkg/token"
)

type testEnv struct {
	engine *gin.Engine
	sess   *session.Session
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := session.NewStore(time.Minute)
	tokens := token.NewService("test-secret", time.Minute)
	consent := middleware.NewConsentMiddleware(tokens, sessions)

	sess := sessions.Create()
	signed, err := tokens.Issue(sess.ID)
	require.NoError(t, err)

	engine := gin.New()
	NewHandler(consent).RegisterRoutes(engine.Group("/api/v1"))
	return &testEnv{engine: engine, sess: sess, token: signed}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestSaveProfile(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPut, "/api/v1/record/profile",
		`{"name":"María","age":54,"sex":"female","weight_kg":70,"height_cm":160}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"Overweight"`)

	snap := env.sess.Snapshot()
	assert.Equal(t, "María", snap.Profile.Name)
	assert.Equal(t, 54, snap.Profile.Age)
}

func TestSaveProfileOutOfRangeRejectedWithoutMutation(t *testing.T) {
	env := newTestEnv(t)

	cases := []string{
		`{"name":"X","age":150,"sex":"female","weight_kg":70,"height_cm":160}`,
		`{"name":"X","age":54,"sex":"female","weight_kg":10,"height_cm":160}`,
		`{"name":"X","age":54,"sex":"female","weight_kg":70,"height_cm":400}`,
		`{"name":"X","age":54,"sex":"unknown","weight_kg":70,"height_cm":160}`,
	}
	for _, body := range cases {
		w := env.do(http.MethodPut, "/api/v1/record/profile", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	snap := env.sess.Snapshot()
	assert.False(t, snap.HasProfile(), "rejected input must not touch the record")
}

func TestSaveLabsFiltersZeroes(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPut, "/api/v1/record/labs",
		`{"values":{"Glucosa":0,"HDL":55}}`)

	require.Equal(t, http.StatusOK, w.Code)
	snap := env.sess.Snapshot()
	require.Len(t, snap.LabPanel, 1)
	assert.Equal(t, 55.0, snap.LabPanel["HDL"])
}

func TestSaveLabsNegativeRejected(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPut, "/api/v1/record/labs", `{"values":{"HDL":-5}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.sess.Snapshot().LabPanel)
}

func TestSaveClinical(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPut, "/api/v1/record/clinical",
		`{"conditions":["Hipertensión"],"allergies":["lactosa"],"goal":"menos sal"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	snap := env.sess.Snapshot()
	assert.Equal(t, []string{"Hipertensión"}, snap.Clinical.Conditions)
	assert.Equal(t, "menos sal", snap.Clinical.Goal)
}

func TestMedicationLifecycle(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(http.MethodPost, "/api/v1/record/medications",
		`{"name":"metformina","dose":"850 mg","frequency":"2/día"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	snap := env.sess.Snapshot()
	require.Len(t, snap.Medications, 1)
	id := snap.Medications[0].ID

	w = env.do(http.MethodDelete, "/api/v1/record/medications/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.sess.Snapshot().Medications)

	w = env.do(http.MethodDelete, "/api/v1/record/medications/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/record/medications/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/reference/labs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Glucosa")

	w = env.do(http.MethodGet, "/api/v1/reference/conditions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Diabetes tipo 2")
}
