package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sirupsen/logrus"

	"debug-overlay/core"
	"debug-overlay/internal/glyph"
	"debug-overlay/math"
)

// Screen-space color shader shared by rectangles and polylines.
const colorVertSrc = `
#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec4 color;

out vec4 fragmentColor;

uniform mat4 projection;

void main() {
	gl_Position = projection * vec4(position, 0.0, 1.0);
	fragmentColor = color;
}
` + "\x00"

const colorFragSrc = `
#version 410 core
in vec4 fragmentColor;
out vec4 outColor;

void main() {
	outColor = fragmentColor;
}
` + "\x00"

const textVertSrc = `
#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in vec2 uv;

out vec2 fragUV;

uniform mat4 projection;

void main() {
	gl_Position = projection * vec4(position, 0.0, 1.0);
	fragUV = uv;
}
` + "\x00"

const textFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D atlas;
uniform vec4 textColor;

void main() {
	outColor = vec4(textColor.rgb, textColor.a * texture(atlas, fragUV).r);
}
` + "\x00"

// Renderer draws overlay primitives into the current OpenGL 4.1 context.
// It implements renderer.Backend.
type Renderer struct {
	colorProg uint32
	colorProj int32
	colorVAO  uint32
	colorVBO  uint32

	textProg  uint32
	textProj  int32
	textColor int32
	textAtlas int32
	textVAO   uint32
	textVBO   uint32
	atlasTex  uint32
	atlas     *glyph.Atlas

	proj [16]float32

	// Clear, when set, clears the framebuffer to ClearColor in BeginFrame.
	Clear      bool
	ClearColor core.Color

	scratch []float32
	log     logrus.FieldLogger
}

// NewRenderer compiles the overlay shaders and uploads the glyph atlas.
// The window's context must be current.
func NewRenderer(log logrus.FieldLogger) (*Renderer, error) {
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "opengl")
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("[OpenGL] context ready")

	colorProg, err := newProgram(colorVertSrc, colorFragSrc)
	if err != nil {
		return nil, fmt.Errorf("color shader compile: %w", err)
	}
	textProg, err := newProgram(textVertSrc, textFragSrc)
	if err != nil {
		gl.DeleteProgram(colorProg)
		return nil, fmt.Errorf("text shader compile: %w", err)
	}

	r := &Renderer{
		colorProg: colorProg,
		colorProj: gl.GetUniformLocation(colorProg, gl.Str("projection\x00")),
		textProg:  textProg,
		textProj:  gl.GetUniformLocation(textProg, gl.Str("projection\x00")),
		textColor: gl.GetUniformLocation(textProg, gl.Str("textColor\x00")),
		textAtlas: gl.GetUniformLocation(textProg, gl.Str("atlas\x00")),
		atlas:     glyph.NewAtlas(),
		log:       log,
	}

	r.colorVAO, r.colorVBO = newDynamicVAO(2, 4)
	r.textVAO, r.textVBO = newDynamicVAO(2, 2)

	r.atlasTex, err = uploadAlpha(r.atlas.Image)
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("glyph atlas: %w", err)
	}
	gl.UseProgram(textProg)
	gl.Uniform1i(r.textAtlas, 0)
	gl.UseProgram(0)

	return r, nil
}

// newDynamicVAO creates an interleaved float buffer with two attributes of
// sizes a0 and a1 at locations 0 and 1.
func newDynamicVAO(a0, a1 int32) (vao, vbo uint32) {
	stride := (a0 + a1) * 4
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)

	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	gl.VertexAttribPointer(0, a0, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, a1, gl.FLOAT, false, stride, gl.PtrOffset(int(a0)*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

// BeginFrame sets up a pixel-space projection over the whole framebuffer.
func (r *Renderer) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	if r.Clear {
		c := r.ClearColor
		gl.ClearColor(c.R, c.G, c.B, c.A)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.proj = math.Mat4ScreenSpace(float32(width), float32(height)).Flatten()
}

func (r *Renderer) DrawRect(rect core.Rect, c core.Color) {
	x0, y0 := rect.X, rect.Y
	x1, y1 := rect.X+rect.Width, rect.Bottom()
	v := r.scratch[:0]
	for _, p := range [6][2]float32{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y0}, {x1, y1}, {x0, y1}} {
		v = append(v, p[0], p[1], c.R, c.G, c.B, c.A)
	}
	r.scratch = v
	r.drawColor(v, gl.TRIANGLES)
}

// DrawLines draws an open polyline through points.
func (r *Renderer) DrawLines(points []math.Vec2, c core.Color) {
	if len(points) < 2 {
		return
	}
	v := r.scratch[:0]
	for _, p := range points {
		v = append(v, p.X, p.Y, c.R, c.G, c.B, c.A)
	}
	r.scratch = v
	r.drawColor(v, gl.LINE_STRIP)
}

func (r *Renderer) drawColor(vertices []float32, mode uint32) {
	gl.UseProgram(r.colorProg)
	gl.UniformMatrix4fv(r.colorProj, 1, false, &r.proj[0])

	gl.BindVertexArray(r.colorVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(mode, 0, int32(len(vertices)/6))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// DrawText renders a string at screen-space position (x, y), the top-left
// corner of its first glyph. scale=1 draws 7x13 pixel cells. Newlines
// start a new line; runes outside printable ASCII are skipped.
func (r *Renderer) DrawText(text string, x, y, scale float32, c core.Color) {
	cw := float32(glyph.Advance) * scale
	ch := float32(glyph.Height) * scale

	v := r.scratch[:0]
	for row, line := range strings.Split(text, "\n") {
		py := y + float32(row)*ch
		for col, ru := range []rune(line) {
			u0, v0, u1, v1, ok := r.atlas.UV(ru)
			if !ok {
				continue
			}
			px := x + float32(col)*cw
			v = append(v,
				px, py, u0, v0,
				px+cw, py, u1, v0,
				px+cw, py+ch, u1, v1,
				px, py, u0, v0,
				px+cw, py+ch, u1, v1,
				px, py+ch, u0, v1,
			)
		}
	}
	r.scratch = v
	if len(v) == 0 {
		return
	}

	gl.UseProgram(r.textProg)
	gl.UniformMatrix4fv(r.textProj, 1, false, &r.proj[0])
	gl.Uniform4f(r.textColor, c.R, c.G, c.B, c.A)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTex)

	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(v)*4, gl.Ptr(v), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(v)/4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// EndFrame restores depth testing and reports any pending GL error.
// Swapping buffers is left to the window owner.
func (r *Renderer) EndFrame() error {
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(0)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (r *Renderer) Destroy() {
	deleteTexture(&r.atlasTex)
	for _, vao := range []*uint32{&r.colorVAO, &r.textVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
			*vao = 0
		}
	}
	for _, vbo := range []*uint32{&r.colorVBO, &r.textVBO} {
		if *vbo != 0 {
			gl.DeleteBuffers(1, vbo)
			*vbo = 0
		}
	}
	if r.colorProg != 0 {
		gl.DeleteProgram(r.colorProg)
		r.colorProg = 0
	}
	if r.textProg != 0 {
		gl.DeleteProgram(r.textProg)
		r.textProg = 0
	}
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
