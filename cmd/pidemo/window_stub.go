//go:build !cgo

package main

import (
	"errors"

	"pi-demo-renderer/internal/frameloop"
)

func runWindow(_ *frameloop.Renderer) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
