package services

import "errors"

var (
	ErrNoManifest  = errors.New("no readable manifest")
	ErrNoTitle     = errors.New("manifest has no title")
	ErrBadDate     = errors.New("unparsable date")
	ErrUnsafePath  = errors.New("path escapes root")
	ErrUnknownType = errors.New("unknown manifest format")
)
