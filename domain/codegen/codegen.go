package codegen

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"time"

	"github.com/google/uuid"

	"github.com/prasetyowira/qrforge/constant"
	"github.com/prasetyowira/qrforge/infrastructure/analytics"
	"github.com/prasetyowira/qrforge/infrastructure/cache"
	"github.com/prasetyowira/qrforge/infrastructure/compose"
	"github.com/prasetyowira/qrforge/infrastructure/logger"
	"github.com/prasetyowira/qrforge/infrastructure/logo"
	"github.com/prasetyowira/qrforge/infrastructure/render"
	"github.com/prasetyowira/qrforge/infrastructure/webhook"
)

// Artifact is a generated image stored and retrievable by identifier.
// Written once, read many times, never mutated.
type Artifact struct {
	ID        string    `json:"id"`
	Data      []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository defines the interface for artifact persistence operations
type Repository interface {
	Store(ctx context.Context, artifact *Artifact) error
	FindByID(ctx context.Context, id string) (*Artifact, error)
}

// GenerateInput carries one generation request through the pipeline.
type GenerateInput struct {
	Payload   string
	Symbology render.Symbology

	// Wi-Fi fields, used when Symbology is WifiQR
	SSID     string
	Password string
	Security string

	// Logo candidates; at most one is supplied by the caller
	LogoUpload []byte
	LogoRef    string

	// Requester metadata recorded with the generation event
	RequesterIP string
	UserAgent   string
}

// Service orchestrates the generation pipeline: render, resolve logo,
// composite, persist, record event.
type Service struct {
	repo     Repository
	cache    *cache.NamespaceLRU
	logos    *logo.Resolver
	events   *analytics.Recorder
	notifier *webhook.Notifier
}

// NewService creates a new code generation service
func NewService(repo Repository, lru *cache.NamespaceLRU, logos *logo.Resolver, events *analytics.Recorder, notifier *webhook.Notifier) *Service {
	logger.Debug("Creating codegen service", logger.LoggerInfo{
		ContextFunction: constant.CtxDomain,
		Data: map[string]interface{}{
			constant.DataService: "codegen",
		},
	})

	return &Service{
		repo:     repo,
		cache:    lru,
		logos:    logos,
		events:   events,
		notifier: notifier,
	}
}

// Generate renders the requested code, composites an optional logo, persists
// the PNG under a fresh identifier and records a generation event.
//
// When persistence fails after the image was produced, both the in-memory
// artifact and the error are returned; the caller decides whether durable
// retrieval was the point of the request.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*Artifact, error) {
	if err := validate(in); err != nil {
		logger.CtxWarn(ctx, "Rejected invalid generation request", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    validationCode(err),
				Message: err.Error(),
				Type:    constant.ErrTypeValidation,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: string(in.Symbology),
			},
		})
		return nil, err
	}

	base, err := render.Render(ctx, render.Request{
		Payload:   in.Payload,
		Symbology: in.Symbology,
		Wifi: render.Wifi{
			SSID:     in.SSID,
			Password: in.Password,
			Security: in.Security,
		},
	})
	if err != nil {
		logger.CtxError(ctx, "Failed to render code", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeRenderFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeEncoding,
			},
			Data: map[string]interface{}{
				constant.DataSymbology: string(in.Symbology),
			},
		})
		return nil, err
	}

	img := base
	if in.Symbology != render.SymbologyBarcode {
		// Logo resolution failures degrade to "no logo", never to an error
		resolved := s.logos.Resolve(ctx, in.LogoUpload, in.LogoRef)
		img = compose.Composite(base, resolved)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	artifact := &Artifact{
		ID:        uuid.New().String(),
		Data:      buf.Bytes(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Store(ctx, artifact); err != nil {
		logger.CtxError(ctx, "Failed to persist artifact", logger.LoggerInfo{
			ContextFunction: constant.CtxGenerate,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeStorageFailure,
				Message: err.Error(),
				Type:    constant.ErrTypeStorage,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: artifact.ID,
			},
		})
		return artifact, err
	}

	s.cache.Set(constant.ArtifactNamespace, artifact.ID, artifact)

	s.events.Record(ctx, analytics.Event{
		Type:       eventTypeFor(in.Symbology),
		ArtifactID: artifact.ID,
		PayloadLen: len(effectivePayload(in)),
		IP:         in.RequesterIP,
		UserAgent:  in.UserAgent,
		SSID:       wifiSSID(in),
	})

	logger.CtxInfo(ctx, "Artifact generated", logger.LoggerInfo{
		ContextFunction: constant.CtxGenerate,
		Data: map[string]interface{}{
			constant.DataArtifactID: artifact.ID,
			constant.DataSymbology:  string(in.Symbology),
			constant.DataSize:       len(artifact.Data),
		},
	})

	return artifact, nil
}

// GetArtifact retrieves a stored artifact by identifier, preferring the cache.
func (s *Service) GetArtifact(ctx context.Context, id string) (*Artifact, error) {
	if id == "" {
		return nil, errors.New(constant.ErrArtifactNotFound)
	}

	if val, found := s.cache.Get(constant.ArtifactNamespace, id); found {
		if artifact, ok := val.(*Artifact); ok {
			return artifact, nil
		}
	}

	artifact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to find artifact", logger.LoggerInfo{
			ContextFunction: constant.CtxGetArtifact,
			Error: &logger.CustomError{
				Code:    constant.ErrCodeArtifactNotFound,
				Message: err.Error(),
				Type:    constant.ErrTypeRetrieval,
			},
			Data: map[string]interface{}{
				constant.DataArtifactID: id,
			},
		})
		return nil, err
	}

	s.cache.Set(constant.ArtifactNamespace, id, artifact)
	return artifact, nil
}

// TrackScan records a scan event for a known artifact and fires the webhook
// notification. Each call is logged as a new scan; there is deliberately no
// idempotence.
func (s *Service) TrackScan(ctx context.Context, id, ip, userAgent string) error {
	if _, err := s.GetArtifact(ctx, id); err != nil {
		return err
	}

	now := time.Now().UTC()
	s.events.Record(ctx, analytics.Event{
		Type:       analytics.EventScan,
		ArtifactID: id,
		IP:         ip,
		UserAgent:  userAgent,
		Timestamp:  now,
	})

	s.notifier.NotifyScan(webhook.ScanNotification{
		ArtifactID: id,
		IP:         ip,
		UserAgent:  userAgent,
		ScannedAt:  now,
	})

	logger.CtxInfo(ctx, "Scan tracked", logger.LoggerInfo{
		ContextFunction: constant.CtxTrackScan,
		Data: map[string]interface{}{
			constant.DataArtifactID: id,
			constant.DataIP:         ip,
		},
	})

	return nil
}

// RecordLogin appends a login-attempt event. The password never reaches the
// event log.
func (s *Service) RecordLogin(ctx context.Context, username, ip, userAgent string) {
	s.events.Record(ctx, analytics.Event{
		Type:      analytics.EventLogin,
		Username:  username,
		IP:        ip,
		UserAgent: userAgent,
	})

	logger.CtxInfo(ctx, "Login attempt recorded", logger.LoggerInfo{
		ContextFunction: constant.CtxRecordLogin,
		Data: map[string]interface{}{
			constant.DataUsername: username,
			constant.DataIP:       ip,
		},
	})
}

// LoginAttempts returns recorded login events, newest first.
func (s *Service) LoginAttempts(ctx context.Context, limit int) ([]analytics.Event, error) {
	return s.events.Recent(ctx, analytics.EventLogin, limit)
}

func validate(in GenerateInput) error {
	if in.Symbology == render.SymbologyWifiQR {
		if in.SSID == "" {
			return errors.New(constant.ErrEmptySSID)
		}
		if in.Password == "" {
			return errors.New(constant.ErrEmptyPassword)
		}
		return nil
	}
	if in.Payload == "" {
		return errors.New(constant.ErrEmptyPayload)
	}
	return nil
}

func validationCode(err error) string {
	switch err.Error() {
	case constant.ErrEmptySSID:
		return constant.ErrCodeEmptySSID
	case constant.ErrEmptyPassword:
		return constant.ErrCodeEmptyPassword
	default:
		return constant.ErrCodeEmptyPayload
	}
}

func eventTypeFor(symbology render.Symbology) analytics.EventType {
	switch symbology {
	case render.SymbologyBarcode:
		return analytics.EventBarcodeGenerate
	case render.SymbologyWifiQR:
		return analytics.EventWifiGenerate
	default:
		return analytics.EventQRGenerate
	}
}

func effectivePayload(in GenerateInput) string {
	if in.Symbology == render.SymbologyWifiQR {
		return render.WifiPayload(in.SSID, in.Password, in.Security)
	}
	return in.Payload
}

func wifiSSID(in GenerateInput) string {
	if in.Symbology == render.SymbologyWifiQR {
		return in.SSID
	}
	return ""
}
