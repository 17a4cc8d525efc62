package pptx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	logoHeightIn   = 0.5
	logoRightIn    = 1.5
	logoTopIn      = 0.2
	logoPixelLimit = 150 // 0.5in at 300dpi
)

var errNoLogo = errors.New("no logo configured")

// logoCache decodes and scales the brand logo once per document
type logoCache struct {
	path string

	once   sync.Once
	data   []byte
	aspect float64
	err    error
}

func (l *logoCache) load() ([]byte, float64, error) {
	if l == nil || l.path == "" {
		return nil, 0, errNoLogo
	}
	l.once.Do(func() {
		if _, err := os.Stat(l.path); err != nil {
			l.err = fmt.Errorf("logo not found: %w", err)
			return
		}

		img, err := imaging.Open(l.path)
		if err != nil {
			l.err = fmt.Errorf("decoding logo: %w", err)
			return
		}
		if img.Bounds().Dy() > logoPixelLimit {
			img = imaging.Resize(img, 0, logoPixelLimit, imaging.Lanczos)
		}

		bounds := img.Bounds()
		if bounds.Dy() == 0 {
			l.err = errors.New("logo has no height")
			return
		}

		var buf bytes.Buffer
		if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
			l.err = fmt.Errorf("encoding logo: %w", err)
			return
		}
		l.data = buf.Bytes()
		l.aspect = float64(bounds.Dx()) / float64(bounds.Dy())
	})
	return l.data, l.aspect, l.err
}
