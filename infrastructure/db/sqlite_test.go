package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/domain/codegen"
	"github.com/stretchr/testify/assert"
)

// testDBPath is the path to the test database file
const testDBPath = "test.db"

// Helper function to clean up test database
func cleanupTestDB(t *testing.T) {
	err := os.Remove(testDBPath)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to clean up test database: %v", err)
	}
}

// Helper function to create a test repository
func createTestRepository(t *testing.T) *SQLiteRepository {
	cleanupTestDB(t)

	repo, err := NewSQLiteRepository(testDBPath)
	if err != nil {
		t.Fatalf("Failed to create test repository: %v", err)
	}

	return repo
}

func testArtifact(id string) *codegen.Artifact {
	return &codegen.Artifact{
		ID:        id,
		Data:      []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
		CreatedAt: time.Now().UTC().Truncate(time.Second), // SQLite may not preserve nanoseconds
	}
}

func TestNewSQLiteRepository(t *testing.T) {
	// Cleanup after test
	defer cleanupTestDB(t)

	// Act
	repo, err := NewSQLiteRepository(testDBPath)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)

	// Clean up
	err = repo.Close()
	assert.NoError(t, err)
}

func TestNewSQLiteRepository_InvalidPath(t *testing.T) {
	// Act - Try to create a repository with an invalid path
	repo, err := NewSQLiteRepository("/invalid/path/db.sqlite")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestSQLiteRepository_Store(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	defer cleanupTestDB(t)
	defer repo.Close()

	artifact := testArtifact("11111111-1111-1111-1111-111111111111")

	// Act
	err := repo.Store(context.Background(), artifact)

	// Assert
	assert.NoError(t, err)
}

func TestSQLiteRepository_Store_DuplicateID(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	defer cleanupTestDB(t)
	defer repo.Close()

	first := testArtifact("22222222-2222-2222-2222-222222222222")
	second := testArtifact("22222222-2222-2222-2222-222222222222")

	// Act
	err1 := repo.Store(context.Background(), first)
	err2 := repo.Store(context.Background(), second)

	// Assert
	assert.NoError(t, err1)
	assert.Error(t, err2)
	assert.Equal(t, constant.ErrArtifactExists, err2.Error())
}

func TestSQLiteRepository_FindByID(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	defer cleanupTestDB(t)
	defer repo.Close()

	stored := testArtifact("33333333-3333-3333-3333-333333333333")
	err := repo.Store(context.Background(), stored)
	assert.NoError(t, err)

	// Act
	found, err := repo.FindByID(context.Background(), stored.ID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)
	assert.Equal(t, stored.Data, found.Data)
}

func TestSQLiteRepository_FindByID_NotFound(t *testing.T) {
	// Arrange
	repo := createTestRepository(t)
	defer cleanupTestDB(t)
	defer repo.Close()

	// Act
	found, err := repo.FindByID(context.Background(), "no-such-id")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, constant.ErrArtifactNotFound, err.Error())
	assert.Nil(t, found)
}

func TestSQLiteRepository_Persistence(t *testing.T) {
	// Arrange - store with one connection, read back with a fresh one
	repo := createTestRepository(t)
	defer cleanupTestDB(t)

	stored := testArtifact("44444444-4444-4444-4444-444444444444")
	err := repo.Store(context.Background(), stored)
	assert.NoError(t, err)
	assert.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(testDBPath)
	assert.NoError(t, err)
	defer reopened.Close()

	// Act
	found, err := reopened.FindByID(context.Background(), stored.ID)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, stored.Data, found.Data)
}
