package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/http/response"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/parameter"
)

// PointData represents a pixel coordinate
type PointData struct {
	X float64 `json:"x" example:"120.5"`
	Y float64 `json:"y" example:"88"`
}

// BoundingBoxData represents the detected face region
type BoundingBoxData struct {
	TopLeft     PointData `json:"top_left"`
	BottomRight PointData `json:"bottom_right"`
}

// LandmarksRequest represents client-side face geometry. Points are ordered:
// left forehead, right forehead, jaw corners, rightmost face edge, chin.
type LandmarksRequest struct {
	Landmarks   []PointData     `json:"landmarks"`
	BoundingBox BoundingBoxData `json:"bounding_box"`
}

// FeaturesData represents the analyzed facial features
type FeaturesData struct {
	Forehead   string `json:"forehead" example:"Medium"`
	Jawline    string `json:"jawline" example:"Defined"`
	Cheekbones string `json:"cheekbones" example:"High"`
}

// RecommendationsData represents the hairstyle recommendations
type RecommendationsData struct {
	Recommended []string `json:"recommended" example:"Long Layers,Side-Swept Bangs,Textured Bob,Beach Waves"`
	Reasoning   string   `json:"reasoning" example:"Your balanced proportions suit almost any hairstyle. Lucky you!"`
	Confidence  int      `json:"confidence" example:"95"`
}

// AnalysisResponse represents a completed face analysis
type AnalysisResponse struct {
	ID              string              `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Source          string              `json:"source" example:"camera"`
	FaceShape       string              `json:"face_shape" example:"Oval"`
	Features        FeaturesData        `json:"features"`
	Recommendations RecommendationsData `json:"recommendations"`
	Fallback        bool                `json:"fallback" example:"false"`
	CreatedAt       string              `json:"created_at" example:"2024-01-01T00:00:00Z"`
}

// CompatibilityResponse represents the score of one hairstyle
type CompatibilityResponse struct {
	Style       string `json:"style" example:"Textured Bob"`
	Score       int    `json:"score" example:"91"`
	Recommended bool   `json:"recommended" example:"true"`
	Verdict     string `json:"verdict" example:"Highly Recommended!"`
}

// GalleryResponse represents every catalog hairstyle scored for the current face
type GalleryResponse struct {
	FaceShape  string                  `json:"face_shape" example:"Oval"`
	Hairstyles []CompatibilityResponse `json:"hairstyles"`
}

// PreviewResponse represents the preview panel for a selected hairstyle
type PreviewResponse struct {
	Style      string `json:"style" example:"Textured Bob"`
	Reasoning  string `json:"reasoning" example:"Perfect choice for your features"`
	FaceShape  string `json:"face_shape" example:"Analyzing..."`
	Confidence *int   `json:"confidence" example:"95"`
}

// HairModelResponse represents the meshes for the 3D viewer
type HairModelResponse struct {
	HeadModel string `json:"head_model" example:"models/head.glb"`
	HairModel string `json:"hair_model" example:"models/hair2.glb"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code      string `json:"code" example:"VALIDATION_FAILED"`
	Message   string `json:"message" example:"Request validation failed"`
	RequestID string `json:"request_id,omitempty" example:"5f1c2a9e-3b7d-4c1a-9e2f-8d6b4a0c7e11"`
}

var (
	errValidation  = response.New(ErrorResponse{Code: "VALIDATION_FAILED", Message: "Request validation failed"}, "422", "Unprocessable Entity")
	errRateLimited = response.New(ErrorResponse{Code: "RATE_LIMIT_EXCEEDED", Message: "Rate limit exceeded"}, "429", "Too Many Requests")
	errInternal    = response.New(ErrorResponse{Code: "INTERNAL_ERROR", Message: "An unexpected error occurred"}, "500", "Internal Server Error")
	errNoAnalysis  = response.New(ErrorResponse{Code: "NO_ANALYSIS", Message: "No face analysis available yet"}, "404", "Not Found")
)

func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "HairMatch API",
		Version:     "v1.0.0",
		Description: "Face-shape classification and personalized hairstyle recommendations",
		Host:        "localhost:3000",
		Path:        "/v1",
	})

	endpoints := []*endpoint.EndPoint{
		// Analysis endpoints

		// POST /v1/analysis/scan - Camera scan
		endpoint.New(
			endpoint.POST,
			"/analysis/scan",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze camera frames"),
			endpoint.WithDescription("Runs face detection over the uploaded frames in order and analyzes the first frame that contains a face"),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.FileParam("frames", parameter.WithRequired(), parameter.WithDescription("One or more camera frames (jpeg, png or webp)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Analysis completed"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or size"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected. Please try again."}, "422", "Unprocessable Entity"),
				errRateLimited,
				errInternal,
			}),
		),

		// POST /v1/analysis/landmarks - Client-side geometry
		endpoint.New(
			endpoint.POST,
			"/analysis/landmarks",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze landmarks measured by the client"),
			endpoint.WithDescription("Classifies the face shape from six ordered landmarks. Fewer landmarks or degenerate geometry fall back to a random shape and set fallback=true."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(LandmarksRequest{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Analysis completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "BAD_REQUEST", Message: "Invalid request"}, "400", "Bad Request"),
				errValidation,
				errRateLimited,
				errInternal,
			}),
		),

		// POST /v1/analysis/upload - Photo upload
		endpoint.New(
			endpoint.POST,
			"/analysis/upload",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Analyze an uploaded photo"),
			endpoint.WithDescription("Accepts a photo and produces an analysis. The photo is not measured, so the result is always marked fallback."),
			endpoint.WithConsume([]mime.MIME{mime.MIME("multipart/form-data")}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.FileParam("image", parameter.WithRequired(), parameter.WithDescription("Photo (jpeg, png or webp)")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Analysis completed"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or size"}, "422", "Unprocessable Entity"),
				errRateLimited,
				errInternal,
			}),
		),

		// GET /v1/analysis/current - Latest analysis
		endpoint.New(
			endpoint.GET,
			"/analysis/current",
			endpoint.WithTags("Analysis"),
			endpoint.WithSummary("Get the latest analysis"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(AnalysisResponse{}, "200", "Latest analysis"),
			}),
			endpoint.WithErrors([]response.Response{
				errNoAnalysis,
				errInternal,
			}),
		),

		// Hairstyle endpoints

		// GET /v1/hairstyles - Gallery
		endpoint.New(
			endpoint.GET,
			"/hairstyles",
			endpoint.WithTags("Hairstyles"),
			endpoint.WithSummary("List hairstyles with compatibility scores"),
			endpoint.WithDescription("Scores every catalog hairstyle against the latest analysis"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(GalleryResponse{}, "200", "Scored gallery"),
			}),
			endpoint.WithErrors([]response.Response{
				errNoAnalysis,
				errInternal,
			}),
		),

		// GET /v1/hairstyles/{name}/compatibility
		endpoint.New(
			endpoint.GET,
			"/hairstyles/{name}/compatibility",
			endpoint.WithTags("Hairstyles"),
			endpoint.WithSummary("Score one hairstyle"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("name", parameter.Path, parameter.WithDescription("Hairstyle name, URL encoded")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(CompatibilityResponse{}, "200", "Compatibility score"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				errNoAnalysis,
				errInternal,
			}),
		),

		// GET /v1/hairstyles/{name}/preview
		endpoint.New(
			endpoint.GET,
			"/hairstyles/{name}/preview",
			endpoint.WithTags("Hairstyles"),
			endpoint.WithSummary("Preview a hairstyle"),
			endpoint.WithDescription("Returns the reasoning and face shape shown next to the preview. Works before any analysis exists."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithParams(
				parameter.StrParam("name", parameter.Path, parameter.WithDescription("Hairstyle name, URL encoded")),
			),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(PreviewResponse{}, "200", "Preview payload"),
			}),
			endpoint.WithErrors([]response.Response{
				errValidation,
				errInternal,
			}),
		),

		// POST /v1/preview/hair/next - 3D hair carousel
		endpoint.New(
			endpoint.POST,
			"/preview/hair/next",
			endpoint.WithTags("Preview"),
			endpoint.WithSummary("Switch to the next hair model"),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(HairModelResponse{}, "200", "Next hair model"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "HEAD_MODEL_NOT_LOADED", Message: "3D head model not loaded yet"}, "409", "Conflict"),
				response.New(ErrorResponse{Code: "NO_HAIR_MODELS", Message: "No hairstyle models configured"}, "409", "Conflict"),
				errInternal,
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
