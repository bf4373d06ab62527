package classifier

import "errors"

// ErrFeatureCount is returned when the input vector does not have one
// value per model feature.
var ErrFeatureCount = errors.New("feature count mismatch")

// ErrNonFinite is returned when an input value is NaN or infinite.
var ErrNonFinite = errors.New("non-finite feature value")

// ErrInvalidArtifact is returned when a model artifact cannot be used:
// missing sections, inconsistent lengths or a zero scale.
var ErrInvalidArtifact = errors.New("invalid model artifact")
