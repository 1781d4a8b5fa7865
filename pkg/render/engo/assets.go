// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"
	"math"

	"github.com/EngoEngine/engo/common"
)

// spriteKind selects the texture and tint of a sprite
type spriteKind int

const (
	spritePlayer spriteKind = iota
	spriteHostile
	spriteFriendly
	spriteVehicle
	spriteCrate
	spriteBullet
	spriteBomb
	spriteBlast
	spriteMissile
	spriteJet
)

// Texture edge length in pixels. Sprites are scaled to world size when placed.
const textureSize = 32

// shape reports whether a point in [-1, 1]² is inside a silhouette.
// y grows downwards like image rows.
type shape func(x, y float64) bool

func disc(x, y float64) bool {
	return x*x+y*y <= 1
}

func square(x, y float64) bool {
	return true
}

// arrow points up, the direction of travel at zero rotation
func arrow(x, y float64) bool {
	return (y+1)/2 >= math.Abs(x)
}

func ring(x, y float64) bool {
	d := x*x + y*y
	return d <= 1 && d >= 0.7
}

var spriteShapes = map[spriteKind]shape{
	spritePlayer:   arrow,
	spriteHostile:  square,
	spriteFriendly: square,
	spriteVehicle:  arrow,
	spriteCrate:    square,
	spriteBullet:   disc,
	spriteBomb:     disc,
	spriteBlast:    ring,
	spriteMissile:  disc,
	spriteJet:      arrow,
}

// AssetManager builds the white silhouettes sprites are tinted from
type AssetManager struct {
	sprites map[spriteKind]common.Drawable
}

// NewAssetManager creates a new asset manager
func NewAssetManager() *AssetManager {
	return &AssetManager{
		sprites: make(map[spriteKind]common.Drawable),
	}
}

// LoadAssets uploads every sprite texture. Needs a GL context.
func (am *AssetManager) LoadAssets() error {
	for kind, s := range spriteShapes {
		am.sprites[kind] = am.convertToEngoTexture(rasterize(textureSize, s))
	}
	return nil
}

// rasterize draws a white silhouette on a transparent square image
func rasterize(size int, inside shape) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			// Sample at the pixel center
			x := (float64(px)+0.5)/float64(size)*2 - 1
			y := (float64(py)+0.5)/float64(size)*2 - 1
			if inside(x, y) {
				img.Set(px, py, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// convertToEngoTexture uploads an image as an engo texture
func (am *AssetManager) convertToEngoTexture(img *image.NRGBA) common.Drawable {
	texture := common.NewImageObject(img)
	return common.NewTextureSingle(texture)
}

// GetSprite returns the texture for a kind, or nil before LoadAssets
func (am *AssetManager) GetSprite(kind spriteKind) common.Drawable {
	return am.sprites[kind]
}
