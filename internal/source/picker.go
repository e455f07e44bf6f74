package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/lectio/internal/guideapi"
)

// DefaultPickerLimit is the widget's own multi-select ceiling. It is larger
// than the selection cap on purpose; the controller truncates.
const DefaultPickerLimit = 10

// TokenSource hands out the OAuth access token for Drive.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// DriveLister lists text files straight from Drive.
type DriveLister interface {
	ListTextFiles(ctx context.Context) ([]guideapi.DriveFile, error)
}

// DriveFactory builds a DriveLister for an access token and developer key.
type DriveFactory func(ctx context.Context, token, developerKey string) (DriveLister, error)

// PickerOptions configure a Picker.
type PickerOptions struct {
	Tokens       TokenSource
	DeveloperKey string
	Limit        int
	NewDrive     DriveFactory
	Logger       *zap.Logger
}

// Picker is the Drive-backed picker. It must be initialised with Init before
// it can offer candidates.
type Picker struct {
	tokens   TokenSource
	key      string
	limit    int
	newDrive DriveFactory
	log      *zap.Logger

	mu    sync.Mutex
	drive DriveLister
}

var _ Adapter = (*Picker)(nil)

// NewPicker returns an uninitialised Picker.
func NewPicker(opts PickerOptions) *Picker {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPickerLimit
	}
	factory := opts.NewDrive
	if factory == nil {
		factory = NewDriveLister
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Picker{
		tokens:   opts.Tokens,
		key:      strings.TrimSpace(opts.DeveloperKey),
		limit:    limit,
		newDrive: factory,
		log:      logger.Named("picker"),
	}
}

// Kind implements Adapter.
func (p *Picker) Kind() Kind { return KindPicker }

// Ready implements Adapter.
func (p *Picker) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.drive != nil
}

// Limit returns the widget's multi-select ceiling.
func (p *Picker) Limit() int { return p.limit }

// Init checks the configuration, fetches an access token and prepares the
// Drive client. Token failures are returned as *guideapi.AuthError.
func (p *Picker) Init(ctx context.Context) error {
	if p.key == "" {
		return errors.New("picker: developer key is not configured")
	}
	if p.tokens == nil {
		return errors.New("picker: no token source")
	}
	if _, err := p.connect(ctx); err != nil {
		return err
	}
	p.log.Info("picker ready")
	return nil
}

// connect requests a fresh access token and swaps in a Drive client built
// with it. Access tokens expire, so this runs on every open.
func (p *Picker) connect(ctx context.Context) (DriveLister, error) {
	token, err := p.tokens.AccessToken(ctx)
	if err != nil {
		var authErr *guideapi.AuthError
		if !errors.As(err, &authErr) {
			err = &guideapi.AuthError{Err: err}
		}
		p.log.Warn("access token unavailable", zap.Error(err))
		return nil, err
	}
	drive, err := p.newDrive(ctx, token, p.key)
	if err != nil {
		return nil, fmt.Errorf("picker: init drive: %w", err)
	}
	p.mu.Lock()
	p.drive = drive
	p.mu.Unlock()
	return drive, nil
}

// Candidates implements Adapter. Each open requests its own access token.
// Files come back in Drive's order; nothing is pre-checked because a pick
// always replaces the selection.
func (p *Picker) Candidates(ctx context.Context, _ []string) (Candidate, error) {
	if !p.Ready() {
		return Candidate{}, ErrNotReady
	}
	drive, err := p.connect(ctx)
	if err != nil {
		return Candidate{}, err
	}
	files, err := drive.ListTextFiles(ctx)
	if err != nil {
		return Candidate{}, fmt.Errorf("picker: list drive files: %w", err)
	}
	return Candidate{Kind: KindPicker, Files: files, Limit: p.limit}, nil
}
