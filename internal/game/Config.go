package game

import "time"

const (
	GameTickDuration = 1 * time.Second
	GuardVisionRange = 2

	EasyTableSize   = 20
	MediumTableSize = 30
	HardTableSize   = 40

	// MaxTableSize caps the size a level or save may declare.
	MaxTableSize = 512

	// maxFacingRedraws bounds the memoryless redraws of a blocked guard before
	// the patrol falls back to checking every facing in order.
	maxFacingRedraws = 64

	SaveFileExtension = ".stga"
)
