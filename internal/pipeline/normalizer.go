package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
)

// normalize converts the amount into the reference currency when possible.
// The decision policy, in order:
//  1. absent or non-positive amount: deliberate no-op, the original pair is
//     passed through for visibility rather than rejected,
//  2. already in the reference currency: no-op,
//  3. otherwise a live rate lookup; every lookup failure mode (transport,
//     service error, missing reference currency, non-positive rate) falls
//     back to the original pair and never fails the request.
//
// Idempotent: a converted amount is already in the reference currency, so a
// second call is a no-op.
func (p *Processor) normalize(ctx context.Context, amount *float64, currency string) (*float64, string) {
	if amount == nil || *amount <= 0 {
		p.log.Warn().Str("currency", currency).Msg("Amount missing or non-positive, skipping currency conversion")
		return amount, currency
	}

	if currency == p.refCurrency {
		p.log.Debug().Str("currency", currency).Msg("Currency already matches reference, no conversion needed")
		return amount, currency
	}

	table, err := p.rates.Latest(ctx, currency)
	if err != nil {
		p.log.Warn().Err(err).Str("currency", currency).Msg("Rate lookup failed, keeping original amount and currency")
		return amount, currency
	}

	rate, ok := table[p.refCurrency]
	if !ok {
		p.log.Warn().
			Str("currency", currency).
			Str("reference", p.refCurrency).
			Msg("Reference currency missing from rate table, keeping original amount and currency")
		return amount, currency
	}
	if rate <= 0 {
		p.log.Warn().
			Float64("rate", rate).
			Str("currency", currency).
			Msg("Non-positive rate from rate service, keeping original amount and currency")
		return amount, currency
	}

	converted, _ := decimal.NewFromFloat(*amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		Float64()

	p.log.Info().
		Float64("original", *amount).
		Str("from", currency).
		Float64("rate", rate).
		Float64("converted", converted).
		Str("to", p.refCurrency).
		Msg("Converted amount to reference currency")

	return &converted, p.refCurrency
}
