package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

type faceKey struct {
	family string
	size   float64
}

// faceCache holds the faces one surface has built. Faces keep per-face buffers and
// must not be shared between surfaces.
type faceCache struct {
	fonts *FontBook
	faces map[faceKey]font.Face
	face  font.Face
}

func newFaceCache(fonts *FontBook) faceCache {
	if fonts == nil {
		fonts = NewFontBook()
	}
	return faceCache{fonts: fonts, faces: map[faceKey]font.Face{}}
}

// setFont switches the current face. On an invalid size the current face is kept;
// on a face construction failure the basicfont fallback becomes current.
func (c *faceCache) setFont(family string, size float64) error {
	key := faceKey{family: family, size: size}
	if face, ok := c.faces[key]; ok {
		c.face = face
		return nil
	}
	face, err := c.fonts.NewFace(family, size)
	if face == nil {
		return err
	}
	c.faces[key] = face
	c.face = face
	return err
}

func (c *faceCache) current() font.Face {
	if c.face == nil {
		return basicfont.Face7x13
	}
	return c.face
}

func (c *faceCache) measure(text string) float64 {
	return fixedToFloat(font.MeasureString(c.current(), text))
}
