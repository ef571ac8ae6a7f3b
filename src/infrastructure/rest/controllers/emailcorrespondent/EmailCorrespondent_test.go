package emailcorrespondent

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainCorrespondent "notification-dispatch-api/src/domain/correspondent"
	domainErrors "notification-dispatch-api/src/domain/errors"
	logger "notification-dispatch-api/src/infrastructure/logger"
	"notification-dispatch-api/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

// MockEmailCorrespondentService implements domainCorrespondent.IEmailCorrespondentService for testing
type MockEmailCorrespondentService struct {
	getAllFn    func(*domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error)
	createFn    func(*domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error)
	getByNameFn func(string) (*domainCorrespondent.EmailCorrespondent, error)
	updateFn    func(uuid.UUID, map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error)
	deleteFn    func(uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error)
}

func (m *MockEmailCorrespondentService) GetAll(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error) {
	if m.getAllFn != nil {
		return m.getAllFn(query)
	}
	return &[]domainCorrespondent.EmailCorrespondent{}, nil
}

func (m *MockEmailCorrespondentService) Create(correspondent *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error) {
	if m.createFn != nil {
		return m.createFn(correspondent)
	}
	return correspondent, nil
}

func (m *MockEmailCorrespondentService) GetByName(name string) (*domainCorrespondent.EmailCorrespondent, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(name)
	}
	return nil, nil
}

func (m *MockEmailCorrespondentService) Update(id uuid.UUID, correspondentMap map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error) {
	if m.updateFn != nil {
		return m.updateFn(id, correspondentMap)
	}
	return nil, nil
}

func (m *MockEmailCorrespondentService) Delete(id uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error) {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil, nil
}

// MockCommonService mocks the common service for testing
type MockCommonService struct {
	appendValidationErrorsFunc func(*gin.Context, validator.ValidationErrors, interface{})
}

func (m *MockCommonService) AppendValidationErrors(ctx *gin.Context, ve validator.ValidationErrors, intr interface{}) {
	if m.appendValidationErrorsFunc != nil {
		m.appendValidationErrorsFunc(ctx, ve, intr)
		return
	}
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": []string{"validation error"}})
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

// setupRouter mounts the controller behind the error handling middleware the
// way the application router does.
func setupRouter(controller IEmailCorrespondentController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares.ErrorHandler())
	group := router.Group("/v1/email_correspondent")
	group.POST("/create", controller.Create)
	group.GET("", controller.GetAll)
	group.PATCH("/update/:id", controller.Update)
	group.DELETE("/delete/:id", controller.Delete)
	return router
}

func TestEmailCorrespondentController_Create_Success(t *testing.T) {
	createdID, _ := uuid.NewV4()
	mockService := &MockEmailCorrespondentService{
		createFn: func(correspondent *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error) {
			stored := *correspondent
			stored.ID = createdID
			stored.IsActive = true
			return &stored, nil
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	requestBody, _ := json.Marshal(NewEmailCorrespondentRequest{
		Name:     "verified",
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer@example.com",
		Password: "secret",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/email_correspondent/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response EmailCorrespondentResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, createdID.String(), response.ID)
	assert.Equal(t, "verified", response.Name)
	assert.Equal(t, "smtp.example.com", response.Host)
	assert.True(t, response.IsActive)

	// The SMTP password must never appear in a response body.
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestEmailCorrespondentController_Create_ValidationError(t *testing.T) {
	controller := NewEmailCorrespondentController(&MockCommonService{}, &MockEmailCorrespondentService{}, setupLogger(t))
	router := setupRouter(controller)

	// Missing host, port, username and password
	requestBody := []byte(`{"name": "verified"}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/email_correspondent/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailCorrespondentController_Create_Conflict(t *testing.T) {
	mockService := &MockEmailCorrespondentService{
		createFn: func(correspondent *domainCorrespondent.EmailCorrespondent) (*domainCorrespondent.EmailCorrespondent, error) {
			return nil, domainErrors.NewAppErrorWithType(domainErrors.ResourceAlreadyExists)
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	requestBody, _ := json.Marshal(NewEmailCorrespondentRequest{
		Name:     "verified",
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer@example.com",
		Password: "secret",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/email_correspondent/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestEmailCorrespondentController_GetAll_Success(t *testing.T) {
	id, _ := uuid.NewV4()
	mockService := &MockEmailCorrespondentService{
		getAllFn: func(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error) {
			assert.Equal(t, "verif", query.Name)
			assert.NotNil(t, query.IsActive)
			assert.True(t, *query.IsActive)
			return &[]domainCorrespondent.EmailCorrespondent{{
				ID:       id,
				Name:     "verified",
				Host:     "smtp.example.com",
				Port:     587,
				Username: "mailer@example.com",
				Password: "secret",
				IsActive: true,
			}}, nil
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/email_correspondent?name=verif&isActive=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []EmailCorrespondentResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "verified", response[0].Name)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestEmailCorrespondentController_GetAll_InvalidID(t *testing.T) {
	controller := NewEmailCorrespondentController(&MockCommonService{}, &MockEmailCorrespondentService{}, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/email_correspondent?id=not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailCorrespondentController_GetAll_InvalidIsActive(t *testing.T) {
	mockService := &MockEmailCorrespondentService{
		getAllFn: func(query *domainCorrespondent.EmailCorrespondentQuery) (*[]domainCorrespondent.EmailCorrespondent, error) {
			t.Fatal("Service should not be called for a malformed isActive filter")
			return nil, nil
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/email_correspondent?isActive=banana", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailCorrespondentController_Update_Success(t *testing.T) {
	id, _ := uuid.NewV4()
	var receivedPatch map[string]interface{}
	mockService := &MockEmailCorrespondentService{
		updateFn: func(updateID uuid.UUID, patch map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error) {
			assert.Equal(t, id, updateID)
			receivedPatch = patch
			return &domainCorrespondent.EmailCorrespondent{
				ID:       id,
				Name:     "renamed",
				Host:     "smtp.example.com",
				Port:     587,
				Username: "mailer@example.com",
				IsActive: true,
			}, nil
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	requestBody := []byte(`{"name": "renamed"}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/v1/email_correspondent/update/"+id.String(), bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"name": "renamed"}, receivedPatch)

	var response EmailCorrespondentResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", response.Name)
}

func TestEmailCorrespondentController_Update_EmptyPatch(t *testing.T) {
	id, _ := uuid.NewV4()
	controller := NewEmailCorrespondentController(&MockCommonService{}, &MockEmailCorrespondentService{}, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/v1/email_correspondent/update/"+id.String(), bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmailCorrespondentController_Update_NotFound(t *testing.T) {
	id, _ := uuid.NewV4()
	mockService := &MockEmailCorrespondentService{
		updateFn: func(updateID uuid.UUID, patch map[string]interface{}) (*domainCorrespondent.EmailCorrespondent, error) {
			return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/v1/email_correspondent/update/"+id.String(), bytes.NewBufferString(`{"name": "renamed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmailCorrespondentController_Delete_Success(t *testing.T) {
	id, _ := uuid.NewV4()
	mockService := &MockEmailCorrespondentService{
		deleteFn: func(deleteID uuid.UUID) (*domainCorrespondent.EmailCorrespondent, error) {
			assert.Equal(t, id, deleteID)
			return &domainCorrespondent.EmailCorrespondent{
				ID:       id,
				Name:     "verified",
				IsActive: false,
			}, nil
		},
	}
	controller := NewEmailCorrespondentController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/v1/email_correspondent/delete/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response EmailCorrespondentResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.IsActive)
}

func TestEmailCorrespondentController_Delete_InvalidID(t *testing.T) {
	controller := NewEmailCorrespondentController(&MockCommonService{}, &MockEmailCorrespondentService{}, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/v1/email_correspondent/delete/not-a-uuid", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
