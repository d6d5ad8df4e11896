package domain

import (
	"time"

	"github.com/google/uuid"
)

// MinLandmarks is the number of ordered points the classifier needs.
// Index layout: 0 left forehead, 1 right forehead, 2 and 3 jaw corners,
// 4 rightmost face edge, 5 chin.
const MinLandmarks = 6

// Point is a 2D coordinate in image pixels
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Landmarks is an ordered sequence of facial reference points
type Landmarks []Point

// Complete reports whether the sequence carries enough points for classification
func (l Landmarks) Complete() bool {
	return len(l) >= MinLandmarks
}

// BoundingBox is the face region given by its top-left and bottom-right corners
type BoundingBox struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

func (b BoundingBox) Width() float64 {
	return b.BottomRight.X - b.TopLeft.X
}

func (b BoundingBox) Height() float64 {
	return b.BottomRight.Y - b.TopLeft.Y
}

type FaceShape string

const (
	FaceShapeRound  FaceShape = "Round"
	FaceShapeOval   FaceShape = "Oval"
	FaceShapeSquare FaceShape = "Square"
	FaceShapeHeart  FaceShape = "Heart"
	FaceShapeOblong FaceShape = "Oblong"
)

// FaceShapes lists every shape in catalog order
var FaceShapes = []FaceShape{
	FaceShapeRound,
	FaceShapeOval,
	FaceShapeSquare,
	FaceShapeHeart,
	FaceShapeOblong,
}

func (s FaceShape) Valid() bool {
	for _, shape := range FaceShapes {
		if s == shape {
			return true
		}
	}
	return false
}

type Forehead string

const (
	ForeheadWide   Forehead = "Wide"
	ForeheadNarrow Forehead = "Narrow"
	ForeheadMedium Forehead = "Medium"
)

type Jawline string

const (
	JawlineSoft    Jawline = "Soft"
	JawlineDefined Jawline = "Defined"
	JawlineAngular Jawline = "Angular"
	JawlineRounded Jawline = "Rounded"
)

var Jawlines = []Jawline{JawlineSoft, JawlineDefined, JawlineAngular, JawlineRounded}

type Cheekbones string

const (
	CheekbonesHigh      Cheekbones = "High"
	CheekbonesMedium    Cheekbones = "Medium"
	CheekbonesLow       Cheekbones = "Low"
	CheekbonesProminent Cheekbones = "Prominent"
)

var CheekboneTypes = []Cheekbones{CheekbonesHigh, CheekbonesMedium, CheekbonesLow, CheekbonesProminent}

// FeatureProfile describes the facial features used to personalize recommendations
type FeatureProfile struct {
	Forehead   Forehead   `json:"forehead"`
	Jawline    Jawline    `json:"jawline"`
	Cheekbones Cheekbones `json:"cheekbones"`
}

// RecommendationResult is the ranked, deduplicated list of hairstyles for a face
type RecommendationResult struct {
	Recommended []string `json:"recommended"`
	Reasoning   string   `json:"reasoning"`
	Confidence  int      `json:"confidence"`
}

type AnalysisSource string

const (
	SourceCamera    AnalysisSource = "camera"
	SourceLandmarks AnalysisSource = "landmarks"
	SourceUpload    AnalysisSource = "upload"
	SourceFile      AnalysisSource = "file"
)

// Analysis is the outcome of one detection or upload event.
// A new Analysis replaces the previous one; no history is kept.
type Analysis struct {
	ID              uuid.UUID            `json:"id"`
	Source          AnalysisSource       `json:"source"`
	FaceShape       FaceShape            `json:"face_shape"`
	Features        FeatureProfile       `json:"features"`
	Recommendations RecommendationResult `json:"recommendations"`
	// Fallback is set when the shape was picked at random instead of
	// classified from landmarks.
	Fallback  bool      `json:"fallback"`
	CreatedAt time.Time `json:"created_at"`
}
