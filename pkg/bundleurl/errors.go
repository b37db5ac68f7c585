package bundleurl

import "errors"

var (
	// ErrMalformedRequestURL is returned when the request cannot be parsed as a URL.
	ErrMalformedRequestURL = errors.New("malformed request url")
	// ErrUnrecognizedArtifactKind is returned when the path does not end in
	// .bundle, .delta or .map.
	ErrUnrecognizedArtifactKind = errors.New("unrecognized artifact kind")
)
