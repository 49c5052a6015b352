package scanner

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/app"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/clock"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// State is the loop's lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateRequestingCamera
	StateScanning
	StateDecoding
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRequestingCamera:
		return "requesting_camera"
	case StateScanning:
		return "scanning"
	case StateDecoding:
		return "decoding"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ResultKind classifies one handled scan for operator feedback.
type ResultKind int

const (
	KindAccepted ResultKind = iota
	KindAlreadyMarked
	KindWrongEvent
	KindInvalid
	KindError
)

// Result is one handled scan. Outcome is set only for KindAccepted.
type Result struct {
	Kind    ResultKind
	Payload string
	Outcome app.ScanOutcome
	Err     error
}

// AttendanceMarker is the slice of the attendance service the loop needs.
type AttendanceMarker interface {
	Scan(ctx context.Context, payload []byte, selectedEventID string, day int) (app.ScanOutcome, error)
}

const (
	defaultCooldown = 2 * time.Second
	defaultSample   = 100 * time.Millisecond
)

// Config selects what the loop marks and how aggressively it samples.
type Config struct {
	EventID string
	Day     int

	// Cooldown suppresses repeat handling of the same payload while the
	// pass is still in front of the camera. Defaults to 2s.
	Cooldown time.Duration

	// SampleInterval caps how often frames are decoded. Defaults to
	// 100ms, about 10 frames a second.
	SampleInterval time.Duration
}

// Loop drives a camera session: sample frames, decode at most one at a
// time, and hand decoded payloads to the attendance service. Every
// handled payload produces a Result on Results().
type Loop struct {
	camera  Camera
	decoder Decoder
	marker  AttendanceMarker
	clock   clock.Clock
	cfg     Config

	results chan Result

	mu    sync.Mutex
	state State
}

func NewLoop(camera Camera, decoder Decoder, marker AttendanceMarker, clk clock.Clock, cfg Config) *Loop {
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaultCooldown
	}
	if cfg.SampleInterval <= 0 {
		cfg.SampleInterval = defaultSample
	}
	return &Loop{
		camera:  camera,
		decoder: decoder,
		marker:  marker,
		clock:   clk,
		cfg:     cfg,
		results: make(chan Result, 16),
		state:   StateIdle,
	}
}

// Results reports handled scans. The channel is closed when Run returns.
func (l *Loop) Results() <-chan Result {
	return l.results
}

// State reports the current lifecycle phase.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Run acquires a camera and processes frames until the context is
// cancelled or the session ends. The camera is released on every exit
// path. Run returns domain.ErrCameraUnavailable when no device can be
// started.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer close(l.results)
	defer l.setState(StateStopped)

	l.setState(StateRequestingCamera)

	devices, listErr := l.camera.ListDevices(ctx)
	if listErr != nil || len(devices) == 0 {
		return domain.ErrCameraUnavailable
	}
	device := pickDevice(devices)

	session, startErr := l.camera.Start(ctx, device.ID)
	if startErr != nil {
		return domain.ErrCameraUnavailable
	}
	defer func() {
		if stopErr := session.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	slog.Info("camera session started", "device", device.Label, "event_id", l.cfg.EventID, "day", l.cfg.Day)
	l.setState(StateScanning)

	var lastSample time.Time
	lastSeen := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-session.Frames():
			if !ok {
				return nil
			}
			now := l.clock.Now()
			if !lastSample.IsZero() && now.Sub(lastSample) < l.cfg.SampleInterval {
				continue
			}
			lastSample = now

			l.setState(StateDecoding)
			payload, decodeErr := l.decoder.Decode(frame)
			if decodeErr != nil {
				// No readable code in this frame.
				l.setState(StateScanning)
				continue
			}

			key := string(payload)
			if seen, ok := lastSeen[key]; ok && now.Sub(seen) < l.cfg.Cooldown {
				l.setState(StateScanning)
				continue
			}
			lastSeen[key] = now

			l.handle(ctx, payload)
			l.setState(StateScanning)
		}
	}
}

func (l *Loop) handle(ctx context.Context, payload []byte) {
	outcome, err := l.marker.Scan(ctx, payload, l.cfg.EventID, l.cfg.Day)
	result := Result{Payload: string(payload), Outcome: outcome, Err: err}

	switch {
	case err == nil:
		result.Kind = KindAccepted
	case errors.Is(err, domain.ErrAlreadyMarked):
		result.Kind = KindAlreadyMarked
	case errors.Is(err, domain.ErrWrongEvent):
		result.Kind = KindWrongEvent
	case errors.Is(err, domain.ErrInvalidCredential),
		errors.Is(err, domain.ErrRegistrationNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		result.Kind = KindInvalid
	default:
		result.Kind = KindError
	}

	select {
	case l.results <- result:
	case <-ctx.Done():
	}
}

// pickDevice prefers a rear-facing camera by label, falling back to the
// last discovered device.
func pickDevice(devices []Device) Device {
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Label), "back") {
			return d
		}
	}
	return devices[len(devices)-1]
}
