package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/foodmagic/backend/internal/types"
)

const fallbackMediaType = "image/jpeg"

// ingredientInstruction constrains the vision model to a bare, Spanish, comma-separated list.
const ingredientInstruction = "Analiza la siguiente imagen de alimentos y extrae solo los nombres de los ingredientes que aparecen. " +
	"Devuélvelos únicamente en español, como una lista de texto plano, separados por comas. " +
	"No describas la imagen ni uses otro idioma que no sea español."

// IngredientService extracts ingredient names from food photos
type IngredientService struct {
	client    ChatClient
	model     string
	maxTokens int
	log       *zap.Logger
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(client ChatClient, model string, maxTokens int, log *zap.Logger) *IngredientService {
	return &IngredientService{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		log:       log,
	}
}

// ReadImagePayload reads an upload into memory and settles its media type.
// No size or format checks are made; the provider rejects what it cannot use.
func ReadImagePayload(r io.Reader, filename, declaredType string) (*types.ImagePayload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadPayload, err)
	}

	return &types.ImagePayload{
		Data:      data,
		MediaType: resolveMediaType(data, declaredType),
		Filename:  filename,
	}, nil
}

func resolveMediaType(data []byte, declared string) string {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType
	}
	if detected := mimetype.Detect(data).String(); strings.HasPrefix(detected, "image/") {
		return detected
	}
	return fallbackMediaType
}

// DataURL renders the payload as a base64 data URL
func DataURL(payload *types.ImagePayload) string {
	mediaType := payload.MediaType
	if mediaType == "" {
		mediaType = fallbackMediaType
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(payload.Data)
}

// BuildVisionRequest builds the single-message request sent for a photo
func (s *IngredientService) BuildVisionRequest(payload *types.ImagePayload) ChatRequest {
	return ChatRequest{
		Model: s.model,
		Messages: []Message{
			{
				Role: RoleUser,
				Parts: []ContentPart{
					{Type: PartTypeText, Text: ingredientInstruction},
					{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: DataURL(payload), Detail: ImageDetailHigh}},
				},
			},
		},
		MaxTokens: s.maxTokens,
	}
}

// ExtractIngredients returns the model's comma-separated ingredient list unparsed
func (s *IngredientService) ExtractIngredients(ctx context.Context, payload *types.ImagePayload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: no image supplied", ErrReadPayload)
	}

	s.log.Info("extracting ingredients",
		zap.String("filename", payload.Filename),
		zap.String("media_type", payload.MediaType),
		zap.Int("bytes", len(payload.Data)))

	text, err := s.client.CreateChatCompletion(ctx, s.BuildVisionRequest(payload))
	if err != nil {
		s.log.Error("ingredient extraction failed", zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrModelRequest, err)
	}
	if strings.TrimSpace(text) == "" {
		s.log.Warn("model returned an empty ingredient list")
		return "", fmt.Errorf("%w: empty completion", ErrModelRequest)
	}

	s.log.Debug("raw model response", zap.String("response", text))
	return text, nil
}
