package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/metrics"
	"github.com/passgen/passgen-go/internal/model"
)

// PresetLengths are the lengths offered by interactive front ends.
var PresetLengths = []int{6, 8, 16, 32, 64, 128, 256, 512, 1024}

var (
	ErrLengthTooLong      = fmt.Errorf("%w: password length exceeds the maximum", crypto.ErrInvalidArgument)
	ErrCountTooLarge      = fmt.Errorf("%w: password count exceeds the maximum", crypto.ErrInvalidArgument)
	ErrHistoryUnavailable = errors.New("generation history is not available")
)

// HistoryStore persists generation metadata.
type HistoryStore interface {
	Record(ctx context.Context, event *model.GenerationEvent) error
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]model.GenerationEvent, error)
}

// GeneratorLimits bounds what a single request may ask for.
type GeneratorLimits struct {
	DefaultLength int
	MaxLength     int
	MaxCount      int
}

// DefaultLimits returns 16 character passwords by default, at most 1024 characters and 100 per request.
func DefaultLimits() GeneratorLimits {
	return GeneratorLimits{
		DefaultLength: 16,
		MaxLength:     1024,
		MaxCount:      100,
	}
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	gen     *crypto.Generator
	limits  GeneratorLimits
	history HistoryStore
}

// NewGeneratorService creates a GeneratorService. A nil gen uses the system's secure random source.
func NewGeneratorService(gen *crypto.Generator, limits GeneratorLimits) *GeneratorService {
	if gen == nil {
		gen = crypto.NewGenerator(nil)
	}
	return &GeneratorService{gen: gen, limits: limits}
}

// WithHistory enables recording of generation events for authenticated accounts.
func (s *GeneratorService) WithHistory(h HistoryStore) *GeneratorService {
	s.history = h
	return s
}

// Generate produces one or more passwords. accountID is 0 for anonymous callers.
func (s *GeneratorService) Generate(ctx context.Context, accountID int64, req model.GenerateRequest) (model.GenerateResponse, error) {
	length, alphabet, count, err := s.resolve(req)
	if err != nil {
		metrics.GenerationErrors.WithLabelValues(errorReason(err)).Inc()
		return model.GenerateResponse{}, err
	}

	passwords := make([]string, count)
	for i := range passwords {
		passwords[i], err = s.gen.Generate(length, alphabet)
		if err != nil {
			metrics.GenerationErrors.WithLabelValues(errorReason(err)).Inc()
			return model.GenerateResponse{}, err
		}
	}

	metrics.PasswordsGenerated.WithLabelValues(alphabet.String()).Add(float64(count))
	metrics.CharactersGenerated.WithLabelValues(alphabet.String()).Add(float64(count * length))

	s.record(ctx, accountID, length, alphabet, count)

	resp := model.GenerateResponse{
		Password:     passwords[0],
		Length:       length,
		Alphabet:     alphabet.String(),
		AlphabetSize: alphabet.Size(),
	}
	if count > 1 {
		resp.Passwords = passwords
	}

	return resp, nil
}

func (s *GeneratorService) resolve(req model.GenerateRequest) (int, crypto.Alphabet, int, error) {
	length := s.limits.DefaultLength
	if req.Length != nil {
		length = *req.Length
	}
	if length < 0 {
		return 0, 0, 0, fmt.Errorf("%w: length must not be negative, got %d", crypto.ErrInvalidArgument, length)
	}
	if length > s.limits.MaxLength {
		return 0, 0, 0, fmt.Errorf("%w (%d > %d)", ErrLengthTooLong, length, s.limits.MaxLength)
	}

	alphabet := crypto.AlphabetFor(req.IncludeSpecialCharacters)
	if req.Alphabet != "" {
		var err error
		if alphabet, err = crypto.ParseAlphabet(req.Alphabet); err != nil {
			return 0, 0, 0, err
		}
	}

	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return 0, 0, 0, fmt.Errorf("%w: count must not be negative, got %d", crypto.ErrInvalidArgument, count)
	}
	if count > s.limits.MaxCount {
		return 0, 0, 0, fmt.Errorf("%w (%d > %d)", ErrCountTooLarge, count, s.limits.MaxCount)
	}

	return length, alphabet, count, nil
}

// record stores generation metadata. Failures are logged and never fail the request.
func (s *GeneratorService) record(ctx context.Context, accountID int64, length int, alphabet crypto.Alphabet, count int) {
	if s.history == nil || accountID == 0 {
		return
	}

	event := &model.GenerationEvent{
		AccountID: accountID,
		Length:    length,
		Alphabet:  alphabet.String(),
		Count:     count,
	}
	if err := s.history.Record(ctx, event); err != nil {
		slog.Warn("recording generation event failed", "account_id", accountID, "error", err)
	}
}

// Options describes the accepted lengths, limits and alphabets.
func (s *GeneratorService) Options() model.OptionsResponse {
	alphabets := make([]model.AlphabetInfo, len(crypto.Alphabets))
	for i, a := range crypto.Alphabets {
		alphabets[i] = model.AlphabetInfo{Name: a.String(), Size: a.Size(), Characters: a.Chars()}
	}

	var presets []int
	for _, n := range PresetLengths {
		if n <= s.limits.MaxLength {
			presets = append(presets, n)
		}
	}

	return model.OptionsResponse{
		PresetLengths: presets,
		DefaultLength: s.limits.DefaultLength,
		MaxLength:     s.limits.MaxLength,
		MaxCount:      s.limits.MaxCount,
		Alphabets:     alphabets,
	}
}

// History returns the most recent generation events of an account.
func (s *GeneratorService) History(ctx context.Context, accountID int64, limit int) ([]model.GenerationEventResponse, error) {
	if s.history == nil {
		return nil, ErrHistoryUnavailable
	}

	events, err := s.history.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]model.GenerationEventResponse, len(events))
	for i, e := range events {
		result[i] = model.GenerationEventResponse{
			ID:        e.ID,
			Length:    e.Length,
			Alphabet:  e.Alphabet,
			Count:     e.Count,
			CreatedAt: e.CreatedAt,
		}
	}
	return result, nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrLengthTooLong):
		return "length_too_long"
	case errors.Is(err, ErrCountTooLarge):
		return "count_too_large"
	case errors.Is(err, crypto.ErrUnknownAlphabet):
		return "unknown_alphabet"
	case errors.Is(err, crypto.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, crypto.ErrRandomSourceUnavailable):
		return "random_source_unavailable"
	}
	return "other"
}
