package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of fly-camera controls, already read from the device.
type Input struct {
	Forward float32 // -1..1
	Right   float32 // -1..1
	Up      float32 // -1..1
	Look    rl.Vector2
}

// Camera is a free-flying editor viewpoint. Each camera owns its render
// pipeline settings, so switching cameras switches settings with it.
type Camera struct {
	Name      string
	Position  rl.Vector3
	Yaw       float32
	Pitch     float32
	Fovy      float32
	MoveSpeed float32
	LookSpeed float32

	Pipeline *Pipeline
}

func New(name string, pos rl.Vector3) *Camera {
	return &Camera{
		Name:      name,
		Position:  pos,
		Yaw:       -90.0, // looking down -Z
		Pitch:     -20.0,
		Fovy:      45,
		MoveSpeed: 8.0, // Units per second
		LookSpeed: 0.1,
		Pipeline:  DefaultPipeline(),
	}
}

// ReadInput samples WASD/QE and, while the right button is held, the mouse.
func ReadInput() Input {
	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	if rl.IsKeyDown(rl.KeyE) {
		in.Up++
	}
	if rl.IsKeyDown(rl.KeyQ) {
		in.Up--
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		in.Look = rl.GetMouseDelta()
	}
	return in
}

func (c *Camera) Update(in Input, deltaTime float32) {
	c.Yaw += in.Look.X * c.LookSpeed
	c.Pitch -= in.Look.Y * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	forward, right := c.getDirections()

	var moveDir rl.Vector3
	moveDir = rl.Vector3Add(moveDir, rl.Vector3Scale(forward, in.Forward))
	moveDir = rl.Vector3Add(moveDir, rl.Vector3Scale(right, in.Right))
	moveDir.Y += in.Up

	// Normalize diagonal movement so you don't go faster diagonally
	if rl.Vector3Length(moveDir) > 0 {
		moveDir = rl.Vector3Normalize(moveDir)
	}

	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(moveDir, c.MoveSpeed*deltaTime))
}

// getDirections returns horizontal forward and right vectors.
func (c *Camera) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(c.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Y: 0,
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Y: 0,
		Z: float32(math.Cos(yawRad)),
	}
	return
}

// LookDirection is the unit view vector including pitch.
func (c *Camera) LookDirection() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.LookDirection()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
