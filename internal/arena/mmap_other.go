//go:build !linux && !darwin

package arena

import "errors"

const mappingSupported = false

var errNoMapping = errors.New("arena: anonymous mappings not supported on this platform")

func mapRegion(int) ([]byte, error) { return nil, errNoMapping }

func protectRegion([]byte) error { return nil }

func unmapRegion([]byte) error { return nil }
