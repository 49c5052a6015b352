// Package scanner runs the kiosk-side attendance loop: pull frames from a
// camera, decode QR passes, and mark attendees present.
package scanner

import (
	"context"
	"image"
)

// Device identifies one attached camera.
type Device struct {
	ID    string
	Label string
}

// Session is a running capture. Frames is closed when the capture ends;
// Stop releases the device and must be called exactly once per session.
type Session interface {
	Frames() <-chan image.Image
	Stop() error
}

// Camera opens capture sessions. Implementations own device discovery;
// the loop picks which device to start.
type Camera interface {
	ListDevices(ctx context.Context) ([]Device, error)
	Start(ctx context.Context, deviceID string) (Session, error)
}

// Decoder extracts a QR payload from a frame. A frame with no readable
// code returns an error; the loop moves on to the next frame.
type Decoder interface {
	Decode(img image.Image) ([]byte, error)
}
