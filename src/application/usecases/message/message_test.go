package message

import (
	"testing"

	domainErrors "notification-dispatch-api/src/domain/errors"
	domainMessage "notification-dispatch-api/src/domain/message"
	domainTemplate "notification-dispatch-api/src/domain/template"
	logger "notification-dispatch-api/src/infrastructure/logger"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
)

type mockMessageRepo struct {
	createFn     func(*domainMessage.Message) (*domainMessage.Message, error)
	createCalled bool
}

func (m *mockMessageRepo) GetAll(query *domainMessage.MessageQuery) (*[]domainMessage.Message, error) {
	return &[]domainMessage.Message{}, nil
}
func (m *mockMessageRepo) Create(msg *domainMessage.Message) (*domainMessage.Message, error) {
	m.createCalled = true
	if m.createFn != nil {
		return m.createFn(msg)
	}
	return msg, nil
}
func (m *mockMessageRepo) GetByID(id uuid.UUID) (*domainMessage.Message, error) {
	return nil, nil
}
func (m *mockMessageRepo) UpdateStatus(id uuid.UUID, status domainMessage.MessageStatus) (*domainMessage.Message, error) {
	return nil, nil
}
func (m *mockMessageRepo) Delete(id uuid.UUID) error {
	return nil
}

type mockDeliveryRepo struct {
	createFn func(*domainMessage.Delivery) (*domainMessage.Delivery, error)
}

func (m *mockDeliveryRepo) Create(delivery *domainMessage.Delivery) (*domainMessage.Delivery, error) {
	if m.createFn != nil {
		return m.createFn(delivery)
	}
	return delivery, nil
}
func (m *mockDeliveryRepo) GetByRecipient(recipientID uuid.UUID) (*[]domainMessage.Delivery, error) {
	return nil, nil
}
func (m *mockDeliveryRepo) UpdateStatus(id uuid.UUID, status domainMessage.DeliveryStatus, errorCode, errorMessage string) (*domainMessage.Delivery, error) {
	return nil, nil
}

func setupLogger(t *testing.T) *logger.Logger {
	loggerInstance, err := logger.NewLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return loggerInstance
}

func TestMessageUseCase_Create_RejectsEmptyContent(t *testing.T) {
	repo := &mockMessageRepo{}
	uc := NewMessageUseCase(repo, &mockDeliveryRepo{}, setupLogger(t))

	_, err := uc.Create(&domainMessage.Message{
		Recipients: []domainMessage.Recipient{{Channel: domainTemplate.ChannelEmail, Address: "alice@example.com"}},
	})

	assert.Error(t, err)
	assert.Equal(t, domainErrors.ValidationError, domainErrors.TypeOf(err))
	assert.False(t, repo.createCalled)
}

func TestMessageUseCase_Create_TemplateReferenceIsEnoughContent(t *testing.T) {
	repo := &mockMessageRepo{}
	uc := NewMessageUseCase(repo, &mockDeliveryRepo{}, setupLogger(t))

	templateID, _ := uuid.NewV4()
	created, err := uc.Create(&domainMessage.Message{
		TemplateID: &templateID,
		Recipients: []domainMessage.Recipient{{Channel: domainTemplate.ChannelEmail, Address: "alice@example.com"}},
	})

	assert.NoError(t, err)
	assert.True(t, repo.createCalled)
	assert.Equal(t, domainMessage.StatusPending, created.Status)
}

func TestMessageUseCase_Create_DefaultsStatusToPending(t *testing.T) {
	var stored *domainMessage.Message
	repo := &mockMessageRepo{
		createFn: func(msg *domainMessage.Message) (*domainMessage.Message, error) {
			stored = msg
			return msg, nil
		},
	}
	uc := NewMessageUseCase(repo, &mockDeliveryRepo{}, setupLogger(t))

	_, err := uc.Create(&domainMessage.Message{Body: "plain body"})
	assert.NoError(t, err)
	assert.Equal(t, domainMessage.StatusPending, stored.Status)
}

func TestMessageUseCase_Create_KeepsExplicitStatus(t *testing.T) {
	var stored *domainMessage.Message
	repo := &mockMessageRepo{
		createFn: func(msg *domainMessage.Message) (*domainMessage.Message, error) {
			stored = msg
			return msg, nil
		},
	}
	uc := NewMessageUseCase(repo, &mockDeliveryRepo{}, setupLogger(t))

	_, err := uc.Create(&domainMessage.Message{Body: "plain body", Status: domainMessage.StatusSending})
	assert.NoError(t, err)
	assert.Equal(t, domainMessage.StatusSending, stored.Status)
}

func TestMessageUseCase_RecordDelivery_DefaultsStatusToQueued(t *testing.T) {
	var stored *domainMessage.Delivery
	deliveryRepo := &mockDeliveryRepo{
		createFn: func(delivery *domainMessage.Delivery) (*domainMessage.Delivery, error) {
			stored = delivery
			return delivery, nil
		},
	}
	uc := NewMessageUseCase(&mockMessageRepo{}, deliveryRepo, setupLogger(t))

	recipientID, _ := uuid.NewV4()
	_, err := uc.RecordDelivery(&domainMessage.Delivery{RecipientID: recipientID})
	assert.NoError(t, err)
	assert.Equal(t, domainMessage.DeliveryQueued, stored.Status)
}
