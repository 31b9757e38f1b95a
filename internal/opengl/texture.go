package opengl

import (
	"fmt"
	"image"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// uploadAlpha uploads an 8-bit alpha image as a single-channel texture
// and returns its id. Call this from the main goroutine (OpenGL context
// must be current).
func uploadAlpha(img *image.Alpha) (uint32, error) {
	if img == nil || len(img.Pix) == 0 {
		return 0, fmt.Errorf("empty alpha image")
	}
	b := img.Bounds()

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// rows of an image.Alpha are tightly packed
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.R8,
		int32(b.Dx()),
		int32(b.Dy()),
		0,
		gl.RED,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&img.Pix[0]),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}

func deleteTexture(id *uint32) {
	if *id == 0 {
		return
	}
	gl.DeleteTextures(1, id)
	*id = 0
}
