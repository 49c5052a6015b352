package scanner

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// DirCamera replays still images from a directory as camera frames. It
// stands in for a hardware capture pipeline on kiosks that drop pass
// photos into a watched folder.
type DirCamera struct {
	dir string
}

func NewDirCamera(dir string) *DirCamera {
	return &DirCamera{dir: dir}
}

func (c *DirCamera) ListDevices(ctx context.Context) ([]Device, error) {
	info, err := os.Stat(c.dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	return []Device{{ID: c.dir, Label: "frames:" + filepath.Base(c.dir)}}, nil
}

func (c *DirCamera) Start(ctx context.Context, deviceID string) (Session, error) {
	entries, err := os.ReadDir(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open frame dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".png", ".jpg", ".jpeg":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	s := &dirSession{
		frames: make(chan image.Image),
		done:   make(chan struct{}),
	}
	go s.feed(deviceID, names)
	return s, nil
}

type dirSession struct {
	frames chan image.Image
	done   chan struct{}
	once   sync.Once
}

func (s *dirSession) Frames() <-chan image.Image { return s.frames }

func (s *dirSession) Stop() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *dirSession) feed(dir string, names []string) {
	defer close(s.frames)
	for _, name := range names {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		select {
		case s.frames <- img:
		case <-s.done:
			return
		}
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
