package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Mergington-App/internal/application"
	"Mergington-App/internal/domain/model"
	"Mergington-App/internal/logger"
	"Mergington-App/internal/repository"
)

const testActivities = `{
  "Chess Club": {
    "description": "Learn strategies and compete in chess tournaments",
    "schedule": "Fridays, 3:30 PM - 5:00 PM",
    "max_participants": 12,
    "participants": ["michael@mergington.edu"]
  },
  "Art/Design": {
    "description": "Painting and drawing",
    "schedule": "Thursdays, 3:30 PM - 5:00 PM",
    "max_participants": 1,
    "participants": ["ava@mergington.edu"]
  }
}`

func setupTestRouter(t *testing.T, options application.ServiceOptions) (*gin.Engine, application.ActivitiesService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "activities.json", []byte(testActivities), 0o644))

	service := application.NewActivitiesService(repository.NewJSONFileActivitiesRepository(fs, "activities.json"), logger.NewTestLogger(t), options)
	_, err := service.Load(context.Background())
	require.NoError(t, err)

	activitiesHandler := NewActivitiesHandler(service)
	healthHandler := NewHealthHandler("test-service", service)

	r := gin.New()
	r.UseRawPath = true
	r.GET("/activities", activitiesHandler.GetActivities)
	r.POST("/activities/:name/signup", activitiesHandler.SignUp)
	r.DELETE("/activities/:name/unregister", activitiesHandler.Unregister)
	r.GET("/api/health", healthHandler.GetHealth)

	return r, service
}

func activityPath(name, action, email string) string {
	path := "/activities/" + url.PathEscape(name) + "/" + action
	if email != "" {
		path += "?email=" + url.QueryEscape(email)
	}
	return path
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestActivitiesHandler_GetActivities(t *testing.T) {
	r, _ := setupTestRouter(t, application.ServiceOptions{})

	w := doRequest(r, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var directory model.Directory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &directory))
	require.Contains(t, directory, "Chess Club")
	assert.Equal(t, "Fridays, 3:30 PM - 5:00 PM", directory["Chess Club"].Schedule)
	assert.Equal(t, 12, directory["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu"}, directory["Chess Club"].Participants)
}

func TestActivitiesHandler_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		activity       string
		email          string
		options        application.ServiceOptions
		expectedStatus int
		expectedError  string
		expectedDetail string
		expectedMsg    string
	}{
		{
			name:           "success",
			activity:       "Chess Club",
			email:          "a@x.com",
			expectedStatus: http.StatusOK,
			expectedMsg:    "Signed up a@x.com for Chess Club",
		},
		{
			name:           "activity name with slash",
			activity:       "Art/Design",
			email:          "a@x.com",
			expectedStatus: http.StatusOK,
			expectedMsg:    "Signed up a@x.com for Art/Design",
		},
		{
			name:           "unknown activity",
			activity:       "Underwater Basket Weaving",
			email:          "a@x.com",
			expectedStatus: http.StatusNotFound,
			expectedError:  "activity_not_found",
			expectedDetail: "Activity not found",
		},
		{
			name:           "already signed up",
			activity:       "Chess Club",
			email:          "michael@mergington.edu",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "already_registered",
			expectedDetail: "Student is already signed up",
		},
		{
			name:           "missing email",
			activity:       "Chess Club",
			email:          "",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_parameter",
			expectedDetail: "email query parameter is required",
		},
		{
			name:           "full with capacity enforcement",
			activity:       "Art/Design",
			email:          "a@x.com",
			options:        application.ServiceOptions{EnforceCapacity: true},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "activity_full",
			expectedDetail: "Activity is full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestRouter(t, tt.options)

			w := doRequest(r, http.MethodPost, activityPath(tt.activity, "signup", tt.email))
			assert.Equal(t, tt.expectedStatus, w.Code)

			body := decodeBody(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
			} else {
				assert.Equal(t, tt.expectedError, body["error"])
				assert.Equal(t, tt.expectedDetail, body["detail"])
			}
		})
	}
}

func TestActivitiesHandler_Unregister(t *testing.T) {
	tests := []struct {
		name           string
		activity       string
		email          string
		expectedStatus int
		expectedError  string
		expectedMsg    string
	}{
		{
			name:           "success",
			activity:       "Chess Club",
			email:          "michael@mergington.edu",
			expectedStatus: http.StatusOK,
			expectedMsg:    "Unregistered michael@mergington.edu from Chess Club",
		},
		{
			name:           "unknown activity",
			activity:       "Underwater Basket Weaving",
			email:          "michael@mergington.edu",
			expectedStatus: http.StatusNotFound,
			expectedError:  "activity_not_found",
		},
		{
			name:           "not signed up",
			activity:       "Chess Club",
			email:          "b@x.com",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "not_registered",
		},
		{
			name:           "missing email",
			activity:       "Chess Club",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing_parameter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupTestRouter(t, application.ServiceOptions{})

			w := doRequest(r, http.MethodDelete, activityPath(tt.activity, "unregister", tt.email))
			assert.Equal(t, tt.expectedStatus, w.Code)

			body := decodeBody(t, w)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, body["message"])
			} else {
				assert.Equal(t, tt.expectedError, body["error"])
				assert.NotEmpty(t, body["detail"])
			}
		})
	}
}

func TestActivitiesHandler_EmailWithPlusIsDecoded(t *testing.T) {
	r, service := setupTestRouter(t, application.ServiceOptions{})

	w := doRequest(r, http.MethodPost, activityPath("Chess Club", "signup", "jo+chess@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	participants := service.ListActivities(context.Background())["Chess Club"].Participants
	assert.Contains(t, participants, "jo+chess@x.com")
}

func TestHealthHandler_GetHealth(t *testing.T) {
	r, _ := setupTestRouter(t, application.ServiceOptions{})

	w := doRequest(r, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test-service", body["service"])
	assert.Equal(t, float64(2), body["activities"])
}

func TestStatusForErrorCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForErrorCode(model.ErrCodeActivityNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusForErrorCode(model.ErrCodeAlreadyRegistered))
	assert.Equal(t, http.StatusBadRequest, StatusForErrorCode(model.ErrCodeNotRegistered))
	assert.Equal(t, http.StatusBadRequest, StatusForErrorCode(model.ErrCodeActivityFull))
	assert.Equal(t, http.StatusInternalServerError, StatusForErrorCode(model.ErrorCode("SOMETHING_ELSE")))
}
