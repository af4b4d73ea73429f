package render

import "errors"

var (
	ErrNilTarget        = errors.New("render: nil target")
	ErrNilShader        = errors.New("render: nil ray generation or miss shader")
	ErrEmptyTarget      = errors.New("render: target has zero width or height")
	ErrTargetTooLarge   = errors.New("render: target has too many pixels")
	ErrRenderInProgress = errors.New("render: scene is busy")
	ErrNilModel         = errors.New("render: nil model")
	ErrNilVertices      = errors.New("render: nil vertex view")
	ErrIndexCount       = errors.New("render: index count is not a multiple of 3")
	ErrIndexOutOfRange  = errors.New("render: vertex index out of range")
)
