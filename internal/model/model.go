// Package model holds the typed values that flow from validation into the
// compute services. Every value lives for a single request.
package model

// SumRequest is a validated /sum query. Both operands are finite.
type SumRequest struct {
	A float64
	B float64
}

// CipherRequest is a validated /cipher query.
//
// Text is non-empty. Shift is finite; whole numbers are the normal case,
// fractional shifts go through the same floating-point arithmetic.
type CipherRequest struct {
	Text  string
	Shift float64
}

// LottoGuess holds exactly LottoPicks numbers, each within
// [LottoMin, LottoMax]. Duplicates are allowed.
type LottoGuess []int

// LottoDraw holds LottoPicks distinct numbers drawn from [LottoMin, LottoMax].
type LottoDraw []int

const (
	LottoMin   = 1
	LottoMax   = 20
	LottoPicks = 6
)

// LottoTier is the outcome message for a lottery comparison.
type LottoTier string

const (
	TierJackpot    LottoTier = "Wow! Unbelievable! You could have won the mega millions!"
	TierHundred    LottoTier = "Congratulations! You win $100!"
	TierFreeTicket LottoTier = "Congratulations, you win a free ticket!"
	// TierBillion is what three or more misses earn.
	TierBillion LottoTier = "YOU WON A BILLION!"
)
