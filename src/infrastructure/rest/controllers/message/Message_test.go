package message

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"
	"notification-dispatch-api/src/infrastructure/rest/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

// MockMessageService implements domainMessage.IMessageService for testing
type MockMessageService struct {
	getAllFn         func(*domainMessage.MessageQuery) (*[]domainMessage.Message, error)
	createFn         func(*domainMessage.Message) (*domainMessage.Message, error)
	getByIDFn        func(uuid.UUID) (*domainMessage.Message, error)
	updateStatusFn   func(uuid.UUID, domainMessage.MessageStatus) (*domainMessage.Message, error)
	deleteFn         func(uuid.UUID) error
	recordDeliveryFn func(*domainMessage.Delivery) (*domainMessage.Delivery, error)
}

func (m *MockMessageService) GetAll(query *domainMessage.MessageQuery) (*[]domainMessage.Message, error) {
	if m.getAllFn != nil {
		return m.getAllFn(query)
	}
	return &[]domainMessage.Message{}, nil
}

func (m *MockMessageService) Create(msg *domainMessage.Message) (*domainMessage.Message, error) {
	if m.createFn != nil {
		return m.createFn(msg)
	}
	return msg, nil
}

func (m *MockMessageService) GetByID(id uuid.UUID) (*domainMessage.Message, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return nil, nil
}

func (m *MockMessageService) UpdateStatus(id uuid.UUID, status domainMessage.MessageStatus) (*domainMessage.Message, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, status)
	}
	return nil, nil
}

func (m *MockMessageService) Delete(id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *MockMessageService) RecordDelivery(delivery *domainMessage.Delivery) (*domainMessage.Delivery, error) {
	if m.recordDeliveryFn != nil {
		return m.recordDeliveryFn(delivery)
	}
	return delivery, nil
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

func setupRouter(controller IMessageController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middlewares.ErrorHandler())
	group := router.Group("/v1/message")
	group.POST("/create", controller.Create)
	group.GET("", controller.GetAll)
	group.GET("/:id/status", controller.GetStatus)
	group.DELETE("/delete/:id", controller.Delete)
	return router
}

func TestMessageController_Create_Success(t *testing.T) {
	createdID, _ := uuid.NewV4()
	mockService := &MockMessageService{
		createFn: func(msg *domainMessage.Message) (*domainMessage.Message, error) {
			stored := *msg
			stored.ID = createdID
			stored.Status = domainMessage.StatusPending
			return &stored, nil
		},
	}
	controller := NewMessageController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	requestBody, _ := json.Marshal(NewMessageRequest{
		Subject: "Welcome",
		Body:    "Hello there",
		Recipients: []NewRecipientRequest{
			{Channel: "EMAIL", Address: "alice@example.com"},
		},
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/message/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response MessageResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, createdID.String(), response.ID)
	assert.Equal(t, string(domainMessage.StatusPending), response.Status)
	assert.Len(t, response.Recipients, 1)
	assert.Equal(t, "alice@example.com", response.Recipients[0].Address)
}

func TestMessageController_Create_NoRecipients(t *testing.T) {
	controller := NewMessageController(&MockCommonService{}, &MockMessageService{}, setupLogger(t))
	router := setupRouter(controller)

	requestBody := []byte(`{"subject": "Welcome", "body": "Hello there", "recipients": []}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/message/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageController_Create_BadChannel(t *testing.T) {
	controller := NewMessageController(&MockCommonService{}, &MockMessageService{}, setupLogger(t))
	router := setupRouter(controller)

	requestBody := []byte(`{"body": "Hello", "recipients": [{"channel": "FAX", "address": "alice@example.com"}]}`)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/message/create", bytes.NewBuffer(requestBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageController_GetStatus_Success(t *testing.T) {
	id, _ := uuid.NewV4()
	recipientID, _ := uuid.NewV4()
	deliveryID, _ := uuid.NewV4()

	mockService := &MockMessageService{
		getByIDFn: func(queryID uuid.UUID) (*domainMessage.Message, error) {
			assert.Equal(t, id, queryID)
			return &domainMessage.Message{
				ID:     id,
				Status: domainMessage.StatusSent,
				Recipients: []domainMessage.Recipient{{
					ID:      recipientID,
					Channel: domainTemplate.ChannelEmail,
					Address: "alice@example.com",
					Deliveries: []domainMessage.Delivery{{
						ID:       deliveryID,
						Attempt:  1,
						Provider: "smtp",
						Status:   domainMessage.DeliverySent,
					}},
				}},
			}, nil
		},
	}
	controller := NewMessageController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/message/"+id.String()+"/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response MessageResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domainMessage.StatusSent), response.Status)
	assert.Len(t, response.Recipients, 1)
	assert.Len(t, response.Recipients[0].Deliveries, 1)
	assert.Equal(t, "smtp", response.Recipients[0].Deliveries[0].Provider)
	assert.Equal(t, string(domainMessage.DeliverySent), response.Recipients[0].Deliveries[0].Status)
}

func TestMessageController_GetStatus_NotFound(t *testing.T) {
	id, _ := uuid.NewV4()
	mockService := &MockMessageService{
		getByIDFn: func(queryID uuid.UUID) (*domainMessage.Message, error) {
			return nil, domainErrors.NewAppErrorWithType(domainErrors.NotFound)
		},
	}
	controller := NewMessageController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/message/"+id.String()+"/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageController_Delete_Success(t *testing.T) {
	id, _ := uuid.NewV4()
	deleted := false
	mockService := &MockMessageService{
		deleteFn: func(deleteID uuid.UUID) error {
			assert.Equal(t, id, deleteID)
			deleted = true
			return nil
		},
	}
	controller := NewMessageController(&MockCommonService{}, mockService, setupLogger(t))
	router := setupRouter(controller)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/v1/message/delete/"+id.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deleted)
}
