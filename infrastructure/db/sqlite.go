package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/domain/codegen"
	appLogger "github.com/prasetyowira/qrforge/infrastructure/logger"
)

// SQLiteRepository implements codegen.Repository as a keyed blob store
type SQLiteRepository struct {
	db *gorm.DB
}

// ArtifactModel is the GORM model for a stored artifact
type ArtifactModel struct {
	ID        string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	CreatedAt time.Time
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteRepository creates a new SQLite-backed artifact repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&ArtifactModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteRepository{db: db}, nil
}

// Store persists artifact bytes keyed by id. Ids are random, so a collision
// is not expected; an existing id is rejected rather than overwritten.
func (r *SQLiteRepository) Store(ctx context.Context, artifact *codegen.Artifact) error {
	var count int64
	err := r.db.Raw(`SELECT COUNT(*) FROM artifact_models WHERE id = ?`, artifact.ID).Count(&count).Error
	if err != nil {
		appLogger.CtxError(ctx, "Error checking for existing artifact", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBCheckExists,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifact.ID,
			},
		})
		return err
	}

	if count > 0 {
		appLogger.CtxWarn(ctx, "Artifact id already exists", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Data: map[string]interface{}{
				constant.DataArtifactID: artifact.ID,
			},
		})
		return errors.New(constant.ErrArtifactExists)
	}

	result := r.db.Exec(`INSERT INTO artifact_models (id, data, created_at) VALUES (?, ?, ?)`,
		artifact.ID, artifact.Data, artifact.CreatedAt)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to insert artifact", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStore,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBInsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifact.ID,
				constant.DataSize:       len(artifact.Data),
			},
		})
		return result.Error
	}

	appLogger.CtxInfo(ctx, "Artifact stored successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStore,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifact.ID,
			constant.DataSize:       len(artifact.Data),
		},
	})

	return nil
}

// FindByID retrieves an artifact by its identifier
func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*codegen.Artifact, error) {
	var model ArtifactModel

	appLogger.CtxDebug(ctx, "Looking up artifact", appLogger.LoggerInfo{
		ContextFunction: constant.CtxFindByID,
		Data: map[string]interface{}{
			constant.DataArtifactID: id,
		},
	})

	rows, err := r.db.Raw(`SELECT id, data, created_at FROM artifact_models WHERE id = ? LIMIT 1`, id).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up artifact", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: id,
			},
		})
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		appLogger.CtxInfo(ctx, "Artifact not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Data: map[string]interface{}{
				constant.DataArtifactID: id,
			},
		})
		return nil, errors.New(constant.ErrArtifactNotFound)
	}

	if err := r.db.ScanRows(rows, &model); err != nil {
		appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBScanRows,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: id,
			},
		})
		return nil, err
	}

	if err := rows.Err(); err != nil {
		appLogger.CtxError(ctx, "Row iteration error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxFindByID,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBRowIterate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: id,
			},
		})
		return nil, err
	}

	return &codegen.Artifact{
		ID:        model.ID,
		Data:      model.Data,
		CreatedAt: model.CreatedAt,
	}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	ctx := context.Background()
	sqlDB, err := r.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
