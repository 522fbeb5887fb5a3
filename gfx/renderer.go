package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DrawCommand asks for one mesh to be drawn with a shader and optional
// texture at the given model transform.
type DrawCommand struct {
	Mesh    *Mesh
	Shader  *Shader
	Texture *Texture
	Model   mgl32.Mat4
}

// FlushStats summarizes one Flush.
type FlushStats struct {
	Commands  int
	Triangles int
	Culled    int
}

// Renderer queues draw commands during a tick and projects them onto a
// Target when flushed. Components submit; the game loop flushes once per
// frame.
type Renderer struct {
	queue    []DrawCommand
	vertices []Vertex
	indices  []uint16
	behind   []bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Submit queues cmd. Commands without a mesh or shader are dropped.
func (r *Renderer) Submit(cmd DrawCommand) {
	if cmd.Mesh == nil || cmd.Shader == nil {
		return
	}
	r.queue = append(r.queue, cmd)
}

// Pending returns the queued commands.
func (r *Renderer) Pending() []DrawCommand {
	return r.queue
}

// Reset drops all queued commands.
func (r *Renderer) Reset() {
	clear(r.queue)
	r.queue = r.queue[:0]
}

// Draw draws every queued command onto t in submission order. The queue is
// kept so a frame can be redrawn. Triangles with a vertex behind the camera
// are culled.
func (r *Renderer) Draw(t Target) FlushStats {
	var stats FlushStats
	w, h := t.Size()
	for _, cmd := range r.queue {
		drawn, culled := r.draw(t, cmd, float32(w), float32(h))
		stats.Triangles += drawn
		stats.Culled += culled
		if drawn > 0 {
			stats.Commands++
		}
	}
	return stats
}

// Flush draws the queue onto t and empties it.
func (r *Renderer) Flush(t Target) FlushStats {
	stats := r.Draw(t)
	r.Reset()
	return stats
}

func (r *Renderer) draw(t Target, cmd DrawCommand, w, h float32) (drawn, culled int) {
	mesh := cmd.Mesh
	positions := mesh.Positions()
	if len(positions) == 0 || mesh.IndexCount() == 0 {
		return 0, 0
	}
	mvp := cmd.Shader.ProjectionMatrix().Mul4(cmd.Shader.View()).Mul4(cmd.Model)

	r.vertices = r.vertices[:0]
	r.behind = r.behind[:0]
	for i, p := range positions {
		clip := mvp.Mul4x1(p.Vec4(1))
		cw := clip.W()
		r.behind = append(r.behind, cw <= 0)
		if cw <= 0 {
			cw = 1
		}
		ndcX, ndcY := clip.X()/cw, clip.Y()/cw
		uv := mesh.UV(i)
		r.vertices = append(r.vertices, Vertex{
			X: (ndcX + 1) / 2 * w,
			Y: (1 - ndcY) / 2 * h,
			U: uv.X(),
			V: uv.Y(),
			R: 1, G: 1, B: 1, A: 1,
		})
	}

	r.indices = r.indices[:0]
	idx := mesh.Indices()
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if r.behind[a] || r.behind[b] || r.behind[c] {
			culled++
			continue
		}
		r.indices = append(r.indices, a, b, c)
	}
	if len(r.indices) == 0 {
		return 0, culled
	}

	opts := DrawOptions{
		Shader: cmd.Shader.Native(),
		Filter: DefaultFilter,
	}
	if cmd.Texture != nil {
		opts.Texture = cmd.Texture.Native()
		opts.Filter = cmd.Texture.Filter()
	}
	t.DrawTriangles(r.vertices, r.indices, opts)
	return len(r.indices) / 3, culled
}
