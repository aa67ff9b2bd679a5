package render

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"reelfx/internal/faults"
)

// Quality selects the render fidelity.
type Quality string

const (
	QualityDraft   Quality = "draft"
	QualityPreview Quality = "preview"
	QualityHigh    Quality = "high"
	QualityFinal   Quality = "final"
)

// Format is the pixel layout of rendered frames.
type Format string

const (
	FormatRGB  Format = "rgb"
	FormatRGBA Format = "rgba"
	FormatYUV  Format = "yuv"
)

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Options configures a frame render.
type Options struct {
	Quality      Quality    `json:"quality" toml:"quality"`
	Resolution   Resolution `json:"resolution" toml:"resolution"`
	FPS          float64    `json:"fps" toml:"fps"`
	Format       Format     `json:"format" toml:"format"`
	Antialiasing bool       `json:"antialiasing" toml:"antialiasing"`
	MotionBlur   bool       `json:"motion_blur" toml:"motion_blur"`
}

// DefaultOptions returns 1080p preview settings at 30 fps.
func DefaultOptions() Options {
	return Options{
		Quality:      QualityPreview,
		Resolution:   Resolution{Width: 1920, Height: 1080},
		FPS:          30,
		Format:       FormatRGBA,
		Antialiasing: true,
	}
}

// Normalize lowercases the enumerated fields.
func (o Options) Normalize() Options {
	o.Quality = Quality(strings.ToLower(strings.TrimSpace(string(o.Quality))))
	o.Format = Format(strings.ToLower(strings.TrimSpace(string(o.Format))))
	return o
}

// Validate reports the first invalid option.
func (o Options) Validate() error {
	switch o.Quality {
	case QualityDraft, QualityPreview, QualityHigh, QualityFinal:
	default:
		return invalid(fmt.Sprintf("unsupported quality %q", o.Quality))
	}
	switch o.Format {
	case FormatRGB, FormatRGBA, FormatYUV:
	default:
		return invalid(fmt.Sprintf("unsupported format %q", o.Format))
	}
	if o.Resolution.Width <= 0 || o.Resolution.Height <= 0 {
		return invalid(fmt.Sprintf("resolution %s must be positive", o.Resolution))
	}
	if !(o.FPS > 0) {
		return invalid(fmt.Sprintf("fps %g must be > 0", o.FPS))
	}
	return nil
}

// Canonical renders the options as a stable string. Two option values that
// render identically produce the same string.
func (o Options) Canonical() string {
	o = o.Normalize()
	var b strings.Builder
	b.WriteString("q=")
	b.WriteString(string(o.Quality))
	b.WriteString(";r=")
	b.WriteString(o.Resolution.String())
	b.WriteString(";fps=")
	b.WriteString(strconv.FormatFloat(o.FPS, 'g', -1, 64))
	b.WriteString(";f=")
	b.WriteString(string(o.Format))
	b.WriteString(";aa=")
	b.WriteString(strconv.FormatBool(o.Antialiasing))
	b.WriteString(";mb=")
	b.WriteString(strconv.FormatBool(o.MotionBlur))
	return b.String()
}

// Fingerprint is the FNV-1a hash of the canonical form.
func (o Options) Fingerprint() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(o.Canonical()))
	return h.Sum64()
}

// FrameWindow returns the half-open interval covered by a frame starting at t.
func (o Options) FrameWindow(t float64) (float64, float64) {
	if o.FPS <= 0 {
		return t, t
	}
	return t, t + 1/o.FPS
}

func invalid(message string) error {
	return faults.Wrap(faults.ErrValidation, "render options", message, nil)
}
