package service

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/deppfellow/querybox/internal/model"
	"github.com/rs/zerolog"
)

// Picker returns a uniformly random index in [0, n).
// *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultPicker draws from the auto-seeded math/rand/v2 source.
func DefaultPicker() Picker {
	return globalPicker{}
}

// DrawLotto picks LottoPicks distinct numbers from [LottoMin, LottoMax]:
// each round chooses a random index into the remaining pool and removes it.
func DrawLotto(picker Picker) model.LottoDraw {
	pool := make([]int, 0, model.LottoMax-model.LottoMin+1)
	for n := model.LottoMin; n <= model.LottoMax; n++ {
		pool = append(pool, n)
	}

	draw := make(model.LottoDraw, 0, model.LottoPicks)
	for range model.LottoPicks {
		i := picker.IntN(len(pool))
		draw = append(draw, pool[i])
		pool = slices.Delete(pool, i, i+1)
	}

	return draw
}

// Misses returns the drawn numbers that are absent from the guess,
// in draw order.
func Misses(guess model.LottoGuess, draw model.LottoDraw) []int {
	misses := make([]int, 0, len(draw))
	for _, n := range draw {
		if !slices.Contains(guess, n) {
			misses = append(misses, n)
		}
	}
	return misses
}

// TierFor maps a miss count onto its tier. Three misses or more fall
// through to TierBillion.
func TierFor(misses int) model.LottoTier {
	switch misses {
	case 0:
		return model.TierJackpot
	case 1:
		return model.TierHundred
	case 2:
		return model.TierFreeTicket
	default:
		return model.TierBillion
	}
}

// EvaluateLotto compares a guess against a draw.
func EvaluateLotto(guess model.LottoGuess, draw model.LottoDraw) model.LottoTier {
	return TierFor(len(Misses(guess, draw)))
}

// LottoService draws a fresh set of numbers for every play.
type LottoService struct {
	logger *zerolog.Logger
	picker Picker
}

func NewLottoService(logger *zerolog.Logger, picker Picker) *LottoService {
	return &LottoService{
		logger: logger,
		picker: picker,
	}
}

// Play draws the winning numbers and evaluates guess against them.
//
// The outcome is logged through the request logger carried by ctx, or the
// service logger when ctx has none.
func (s *LottoService) Play(ctx context.Context, guess model.LottoGuess) model.LottoTier {
	draw := DrawLotto(s.picker)
	misses := Misses(guess, draw)
	tier := TierFor(len(misses))

	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = s.logger
	}

	logger.Debug().
		Ints("guess", guess).
		Ints("draw", draw).
		Ints("misses", misses).
		Str("tier", string(tier)).
		Msg("lotto evaluated")

	return tier
}
