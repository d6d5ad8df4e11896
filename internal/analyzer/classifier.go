package analyzer

import (
	"fmt"
	"math"

	"github.com/saturnino-fabrica-de-software/hairmatch/internal/domain"
)

// Decision thresholds for the shape tree
const (
	wideFaceRatio  = 0.85 // widthToHeight above this: Round or Square
	longFaceRatio  = 0.7  // widthToHeight below this: Heart or Oblong
	roundJawRatio  = 0.9  // jawToForehead above this on a wide face: Round
	narrowJawRatio = 0.8  // jawToForehead below this on a long face: Heart
)

// ClassifyShape maps facial landmarks to a face shape. Landmarks that are
// missing or shorter than domain.MinLandmarks select a random shape instead.
// Geometry with a zero face height or forehead width returns
// domain.ErrInvalidGeometry.
func (e *Engine) ClassifyShape(landmarks domain.Landmarks) (domain.FaceShape, error) {
	if !landmarks.Complete() {
		return e.RandomShape(), nil
	}
	return classifyGeometry(landmarks)
}

// RandomShape picks one of the five shapes uniformly
func (e *Engine) RandomShape() domain.FaceShape {
	return pick(e.rng, domain.FaceShapes)
}

func classifyGeometry(l domain.Landmarks) (domain.FaceShape, error) {
	faceWidth := math.Abs(l[4].X - l[0].X)
	faceHeight := math.Abs(l[5].Y - l[1].Y)
	jawWidth := math.Abs(l[3].X - l[2].X)
	foreheadWidth := math.Abs(l[1].X - l[0].X)

	for _, m := range []float64{faceWidth, faceHeight, jawWidth, foreheadWidth} {
		if !finite(m) {
			return "", domain.ErrInvalidGeometry.WithError(fmt.Errorf("non-finite measurement %g", m))
		}
	}

	if faceHeight == 0 || foreheadWidth == 0 {
		return "", domain.ErrInvalidGeometry.WithError(
			fmt.Errorf("face height %g, forehead width %g", faceHeight, foreheadWidth))
	}

	widthToHeight := faceWidth / faceHeight
	jawToForehead := jawWidth / foreheadWidth

	if !finite(widthToHeight) || !finite(jawToForehead) {
		return "", domain.ErrInvalidGeometry.WithError(
			fmt.Errorf("ratios overflow: %g, %g", widthToHeight, jawToForehead))
	}

	switch {
	case widthToHeight > wideFaceRatio:
		if jawToForehead > roundJawRatio {
			return domain.FaceShapeRound, nil
		}
		return domain.FaceShapeSquare, nil
	case widthToHeight < longFaceRatio:
		if jawToForehead < narrowJawRatio {
			return domain.FaceShapeHeart, nil
		}
		return domain.FaceShapeOblong, nil
	default:
		return domain.FaceShapeOval, nil
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
