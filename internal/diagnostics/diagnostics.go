package diagnostics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Sink receives the warnings, failures and screenshots of a login run
type Sink interface {
	Info(msg string)
	Warning(msg string)
	Failure(msg string)
	// CaptureScreenshot stores a screenshot under tag and returns its id
	CaptureScreenshot(tag string) (string, error)
}

// Screenshotter is the part of the driver the recorder needs
type Screenshotter interface {
	Screenshot() ([]byte, error)
}

// NewTag returns "<step>_<suffix>" with a 4 character alphanumeric suffix, so that
// repeated runs within one process never overwrite each other's screenshots
func NewTag(step string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return step + "_" + suffix
}

// Recorder is the Sink writing through logrus and saving screenshots as PNG files in Dir
type Recorder struct {
	log     *logrus.Entry
	shooter Screenshotter
	dir     string
}

// NewRecorder creates a Recorder. A nil shooter disables screenshots.
func NewRecorder(log *logrus.Entry, shooter Screenshotter, dir string) *Recorder {
	return &Recorder{log: log, shooter: shooter, dir: dir}
}

func (r *Recorder) Info(msg string)    { r.log.Info(msg) }
func (r *Recorder) Warning(msg string) { r.log.Warn(msg) }
func (r *Recorder) Failure(msg string) { r.log.Error(msg) }

// CaptureScreenshot writes <dir>/<tag>.png and returns that path
func (r *Recorder) CaptureScreenshot(tag string) (string, error) {
	if r.shooter == nil {
		return "", fmt.Errorf("no screenshot source for %s", tag)
	}

	png, err := r.shooter.Screenshot()
	if err != nil {
		return "", fmt.Errorf("capturing screenshot %s: %w", tag, err)
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating screenshot dir: %w", err)
	}

	path := filepath.Join(r.dir, tag+".png")
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("writing screenshot %s: %w", tag, err)
	}

	r.log.WithField("screenshot", path).Info("Screenshot captured")
	return path, nil
}
