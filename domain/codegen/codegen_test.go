package codegen

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/infrastructure/analytics"
	"github.com/prasetyowira/qrforge/infrastructure/cache"
	"github.com/prasetyowira/qrforge/infrastructure/logo"
	"github.com/prasetyowira/qrforge/infrastructure/render"
	"github.com/prasetyowira/qrforge/infrastructure/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repository for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Store(ctx context.Context, artifact *Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Artifact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Artifact), args.Error(1)
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	return NewService(
		repo,
		cache.NewNamespaceLRU(100),
		logo.NewResolver(""),
		analytics.NewRecorder(filepath.Join(t.TempDir(), "events.log")),
		webhook.NewNotifier(""),
	)
}

func TestNewService(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)

	// Act
	service := newTestService(t, mockRepo)

	// Assert
	assert.NotNil(t, service)
	assert.Equal(t, Repository(mockRepo), service.repo)
}

func TestGenerate_EmptyPayload(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	// Act
	artifact, err := service.Generate(context.Background(), GenerateInput{
		Symbology: render.SymbologyQR,
	})

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyPayload, err.Error())
	assert.Nil(t, artifact)
	mockRepo.AssertNotCalled(t, "Store")
}

func TestGenerate_WifiEmptySSID(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	// Act
	artifact, err := service.Generate(context.Background(), GenerateInput{
		Symbology: render.SymbologyWifiQR,
		Password:  "hunter2",
	})

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptySSID, err.Error())
	assert.Nil(t, artifact)
	mockRepo.AssertNotCalled(t, "Store")
}

func TestGenerate_WifiEmptyPassword(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	// Act
	artifact, err := service.Generate(context.Background(), GenerateInput{
		Symbology: render.SymbologyWifiQR,
		SSID:      "HomeNet",
	})

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyPassword, err.Error())
	assert.Nil(t, artifact)
	mockRepo.AssertNotCalled(t, "Store")
}

func TestGenerate_QRSuccess(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("Store", mock.Anything, mock.AnythingOfType("*codegen.Artifact")).Return(nil)

	// Act
	artifact, err := service.Generate(context.Background(), GenerateInput{
		Payload:   "https://example.com",
		Symbology: render.SymbologyQR,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, artifact)

	_, err = uuid.Parse(artifact.ID)
	assert.NoError(t, err)
	assert.False(t, artifact.CreatedAt.IsZero())

	img, err := png.Decode(bytes.NewReader(artifact.Data))
	assert.NoError(t, err)
	assert.NotNil(t, img)

	mockRepo.AssertExpectations(t)
}

func TestGenerate_RecordsEvent(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)
	mockRepo.On("Store", mock.Anything, mock.Anything).Return(nil)

	// Act
	_, err := service.Generate(context.Background(), GenerateInput{
		Symbology:   render.SymbologyWifiQR,
		SSID:        "HomeNet",
		Password:    "hunter2",
		RequesterIP: "10.0.0.1",
	})
	require.NoError(t, err)

	// Assert
	events, err := service.events.Recent(context.Background(), analytics.EventWifiGenerate, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "HomeNet", events[0].SSID)
	assert.Equal(t, "10.0.0.1", events[0].IP)
	assert.Equal(t, len("WIFI:S:HomeNet;T:WPA;P:hunter2;;"), events[0].PayloadLen)
}

func TestGenerate_StoreFailureStillReturnsArtifact(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	storeErr := errors.New("disk full")
	mockRepo.On("Store", mock.Anything, mock.Anything).Return(storeErr)

	// Act
	artifact, err := service.Generate(context.Background(), GenerateInput{
		Payload:   "https://example.com",
		Symbology: render.SymbologyQR,
	})

	// Assert: the rendered image survives a persistence failure
	assert.Error(t, err)
	assert.Equal(t, storeErr, err)
	require.NotNil(t, artifact)
	assert.NotEmpty(t, artifact.Data)
}

func TestGenerate_UniqueIdentifiers(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)
	mockRepo.On("Store", mock.Anything, mock.Anything).Return(nil)

	seen := make(map[string]bool)

	// Act & Assert
	for i := 0; i < 50; i++ {
		artifact, err := service.Generate(context.Background(), GenerateInput{
			Payload:   "https://example.com",
			Symbology: render.SymbologyBarcode,
		})
		require.NoError(t, err)
		assert.False(t, seen[artifact.ID])
		seen[artifact.ID] = true
	}
}

func TestIdentifierIssuance_NoCollisions(t *testing.T) {
	// Arrange
	seen := make(map[string]bool, 10000)

	// Act & Assert: identifiers are drawn from the same generator Generate
	// uses, checked at a volume the full pipeline test cannot afford
	for i := 0; i < 10000; i++ {
		id := uuid.New().String()
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, 10000)
}

func TestGetArtifact_EmptyID(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	// Act
	artifact, err := service.GetArtifact(context.Background(), "")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrArtifactNotFound, err.Error())
	assert.Nil(t, artifact)
	mockRepo.AssertNotCalled(t, "FindByID")
}

func TestGetArtifact_NotFound(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, errors.New(constant.ErrArtifactNotFound))

	// Act
	artifact, err := service.GetArtifact(context.Background(), "missing")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrArtifactNotFound, err.Error())
	assert.Nil(t, artifact)
}

func TestGetArtifact_CachesRepositoryHit(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	stored := &Artifact{ID: "abc", Data: []byte("png-bytes")}
	mockRepo.On("FindByID", mock.Anything, "abc").Return(stored, nil).Once()

	// Act
	first, err1 := service.GetArtifact(context.Background(), "abc")
	second, err2 := service.GetArtifact(context.Background(), "abc")

	// Assert: second lookup is served from the cache
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, stored, first)
	assert.Equal(t, stored, second)
	mockRepo.AssertExpectations(t)
}

func TestTrackScan_UnknownArtifact(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	mockRepo.On("FindByID", mock.Anything, "missing").Return(nil, errors.New(constant.ErrArtifactNotFound))

	// Act
	err := service.TrackScan(context.Background(), "missing", "10.0.0.1", "curl/8")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrArtifactNotFound, err.Error())
}

func TestTrackScan_RecordsEvent(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	stored := &Artifact{ID: "abc", Data: []byte("png-bytes")}
	mockRepo.On("FindByID", mock.Anything, "abc").Return(stored, nil)

	// Act
	err := service.TrackScan(context.Background(), "abc", "10.0.0.1", "curl/8")
	require.NoError(t, err)
	err = service.TrackScan(context.Background(), "abc", "10.0.0.2", "curl/8")
	require.NoError(t, err)

	// Assert: every scan is its own event, newest first
	events, err := service.events.Recent(context.Background(), analytics.EventScan, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "10.0.0.2", events[0].IP)
	assert.Equal(t, "10.0.0.1", events[1].IP)
	assert.Equal(t, "abc", events[0].ArtifactID)
}

func TestRecordLogin_AndLoginAttempts(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	service := newTestService(t, mockRepo)

	// Act
	service.RecordLogin(context.Background(), "admin", "10.0.0.1", "Mozilla/5.0")
	service.RecordLogin(context.Background(), "root", "10.0.0.2", "Mozilla/5.0")

	attempts, err := service.LoginAttempts(context.Background(), 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "root", attempts[0].Username)
	assert.Equal(t, "admin", attempts[1].Username)
	assert.Equal(t, "10.0.0.2", attempts[0].IP)
}
