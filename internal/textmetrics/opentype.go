package textmetrics

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// builtinFonts are the Go fonts registered in every OpenType measurer.
var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomono":    gomono.TTF,
}

type faceKey struct {
	family string
	size   int
}

// OpenType measures text with parsed OpenType/TrueType fonts. Faces are
// created lazily per (family, size) and reused. Safe for concurrent use.
type OpenType struct {
	mu    sync.Mutex
	dpi   float64
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

// NewOpenType creates a measurer with the Go fonts pre-registered.
func NewOpenType(dpi float64) (*OpenType, error) {
	m := &OpenType{
		dpi:   dpi,
		fonts: make(map[string]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	for family, data := range builtinFonts {
		if err := m.Register(family, data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Register parses font data and makes it available under family.
// Registering an existing family replaces it.
func (m *OpenType) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("could not parse font %s: %w", family, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[family] = f
	for key, face := range m.faces {
		if key.family == family {
			_ = face.Close()
			delete(m.faces, key)
		}
	}
	return nil
}

// RegisterFile loads a TTF/OTF file and registers it under family.
func (m *OpenType) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // font path comes from the operator's config
	if err != nil {
		return fmt.Errorf("could not read font file: %w", err)
	}
	return m.Register(family, data)
}

// face returns a cached face. Caller must hold m.mu.
func (m *OpenType) face(family string, pointSize int) (font.Face, error) {
	if pointSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, pointSize)
	}

	key := faceKey{family: family, size: pointSize}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}

	f, ok := m.fonts[family]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFont, family)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(pointSize),
		DPI:     m.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create face %s@%d: %w", family, pointSize, err)
	}
	m.faces[key] = face
	return face, nil
}

// MeasureText implements Measurer.
func (m *OpenType) MeasureText(text, family string, pointSize, strokeWidth int) (Size, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(family, pointSize)
	if err != nil {
		return Size{}, err
	}

	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, font.MeasureString(face, line).Ceil())
	}
	height := len(lines) * face.Metrics().Height.Ceil()

	return Size{W: widest + 2*strokeWidth, H: height + 2*strokeWidth}, nil
}

// WithFace runs fn with the face for (family, pointSize) while holding the
// measurer's lock, so the face can be used for drawing.
func (m *OpenType) WithFace(family string, pointSize int, fn func(font.Face) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	face, err := m.face(family, pointSize)
	if err != nil {
		return err
	}
	return fn(face)
}

// Close releases all cached faces.
func (m *OpenType) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, face := range m.faces {
		_ = face.Close()
		delete(m.faces, key)
	}
	return nil
}
