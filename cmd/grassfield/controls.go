package main

import (
	"grass-field/core"
	"grass-field/scene"
)

// CameraController drives an ArcRotateCamera: right mouse drag orbits,
// the scroll wheel zooms and the arrow keys orbit at a fixed rate.
type CameraController struct {
	orbitSpeed float32 // radians per pixel of drag
	keySpeed   float32 // radians per second
	zoomSpeed  float32 // units per scroll step

	lastMouseX float64
	lastMouseY float64
	firstMouse bool

	pendingZoom float32
}

func NewCameraController(window *core.Window) *CameraController {
	cc := &CameraController{
		orbitSpeed: 0.005,
		keySpeed:   1.2,
		zoomSpeed:  0.5,
		firstMouse: true,
	}
	window.SetScrollCallback(func(_, yoff float64) {
		cc.pendingZoom += float32(yoff)
	})
	return cc
}

func (cc *CameraController) Update(window *core.Window, camera *scene.ArcRotateCamera, deltaTime float32) {
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	if window.IsMouseButtonPressed(core.MouseButtonRight) {
		mouseX, mouseY := window.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX = mouseX
			cc.lastMouseY = mouseY
			cc.firstMouse = false
		}
		camera.Orbit(
			-float32(mouseX-cc.lastMouseX)*cc.orbitSpeed,
			-float32(mouseY-cc.lastMouseY)*cc.orbitSpeed,
		)
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
	} else {
		cc.firstMouse = true
	}

	step := cc.keySpeed * deltaTime
	if window.IsKeyPressed(core.KeyLeft) {
		camera.Orbit(step, 0)
	}
	if window.IsKeyPressed(core.KeyRight) {
		camera.Orbit(-step, 0)
	}
	if window.IsKeyPressed(core.KeyUp) {
		camera.Orbit(0, -step)
	}
	if window.IsKeyPressed(core.KeyDown) {
		camera.Orbit(0, step)
	}

	if cc.pendingZoom != 0 {
		camera.Zoom(cc.pendingZoom * cc.zoomSpeed)
		cc.pendingZoom = 0
	}
}

// keyLatch reports a key once per press.
type keyLatch map[int]bool

func (k keyLatch) pressed(window *core.Window, key int) bool {
	down := window.IsKeyPressed(key)
	was := k[key]
	k[key] = down
	return down && !was
}
