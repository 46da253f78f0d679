package services

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bsanthoshbsr/elearning-platform/internal/lib/smtp"
	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
	written strings.Builder
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type writeCloserBuf struct {
	buf *strings.Builder
}

func (w *writeCloserBuf) Write(p []byte) (int, error) { return w.buf.WriteString(string(p)) }
func (w *writeCloserBuf) Close() error                { return nil }

func newTestSender(transport *MockTransport) *SenderService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewSenderService(logger, transport)
}

func mustMarshal(t *testing.T, event models.NotificationEvent) []byte {
	t.Helper()
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return body
}

func TestSenderService_SendEnrollmentConfirmation(t *testing.T) {
	event := models.NotificationEvent{
		Type:        models.EventEnrollment,
		Username:    "testuser",
		Name:        "Test User",
		Email:       "test@example.com",
		CourseID:    42,
		CourseTitle: "Go for Backend",
	}

	transport := new(MockTransport)
	client := new(MockSMTPClient)
	buf := &writeCloserBuf{buf: &client.written}

	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "test@example.com").Return(nil).Once()
	client.On("Data").Return(buf, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := newTestSender(transport)

	err := svc.SendEnrollmentConfirmation(mustMarshal(t, event))
	assert.NoError(t, err)
	assert.Contains(t, client.written.String(), "Subject: Enrollment confirmation")
	assert.Contains(t, client.written.String(), `"Go for Backend"`)
	assert.Contains(t, client.written.String(), "Dear Test User")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_SendRegistrationConfirmation(t *testing.T) {
	event := models.NotificationEvent{
		Type:     models.EventRegistration,
		Username: "testuser",
		Name:     "Test User",
		Email:    "test@example.com",
	}

	transport := new(MockTransport)
	client := new(MockSMTPClient)
	buf := &writeCloserBuf{buf: &client.written}

	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(client, nil).Once()
	client.On("Mail", "noreply@example.com").Return(nil).Once()
	client.On("Rcpt", "test@example.com").Return(nil).Once()
	client.On("Data").Return(buf, nil).Once()
	client.On("Quit").Return(nil).Once()
	client.On("Close").Return(nil).Once()

	svc := newTestSender(transport)

	err := svc.SendRegistrationConfirmation(mustMarshal(t, event))
	assert.NoError(t, err)
	assert.Contains(t, client.written.String(), "Welcome to the e-learning platform")
	assert.Contains(t, client.written.String(), "testuser")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_ConnectError(t *testing.T) {
	event := models.NotificationEvent{
		Type:  models.EventPasswordReset,
		Name:  "Test User",
		Email: "test@example.com",
	}

	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("noreply@example.com")
	transport.On("Connect").Return(nil, errors.New("connection refused")).Once()

	svc := newTestSender(transport)

	err := svc.SendPasswordResetConfirmation(mustMarshal(t, event))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	transport.AssertExpectations(t)
}

func TestSenderService_InvalidBody(t *testing.T) {
	svc := newTestSender(new(MockTransport))

	err := svc.SendRegistrationConfirmation([]byte("not-json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error unmarshalling message")
}
