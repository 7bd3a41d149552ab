// Package purchase credits confirmed in-app purchases. Verification belongs
// to the payment platform; by the time a confirmation reaches this service
// the money has already moved, so crediting must not fail on game rules.
package purchase

import (
	"context"
	"fmt"

	"github.com/petalworks/gardencore/internal/clock"
	"github.com/petalworks/gardencore/internal/domain"
	"github.com/petalworks/gardencore/internal/event"
	"github.com/petalworks/gardencore/internal/ledger"
	"github.com/petalworks/gardencore/internal/logger"
	"github.com/petalworks/gardencore/internal/metrics"
)

// Service defines the interface for purchase operations
type Service interface {
	// OnPurchaseConfirmed credits a verified purchase and records the spend.
	// The spend is recorded even when it is zero; lifetime spend never
	// decreases, refunds included.
	OnPurchaseConfirmed(ctx context.Context, confirmation domain.PurchaseConfirmation) error
}

type service struct {
	ledgerSvc ledger.Service
	bus       event.Bus
	cal       *clock.Calendar
}

// NewService creates a new purchase service
func NewService(ledgerSvc ledger.Service, bus event.Bus, cal *clock.Calendar) Service {
	return &service{ledgerSvc: ledgerSvc, bus: bus, cal: cal}
}

func (s *service) OnPurchaseConfirmed(ctx context.Context, confirmation domain.PurchaseConfirmation) error {
	if confirmation.Amount <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrContextInvalidAmount)
	}

	switch confirmation.Kind {
	case domain.PurchaseGemPack:
		if err := s.ledgerSvc.Credit(ctx, domain.ResourceGems, confirmation.Amount); err != nil {
			return err
		}
	case domain.PurchaseEnergyPack:
		if err := s.ledgerSvc.Credit(ctx, domain.ResourceEnergy, confirmation.Amount); err != nil {
			return err
		}
	case domain.PurchaseSeedPack:
		if err := s.ledgerSvc.CreditSeeds(ctx, domain.RarityRare, confirmation.Amount); err != nil {
			return err
		}
	case domain.PurchaseBoosterPack:
		// The booster pack unlocks the raised energy ceiling permanently
		s.ledgerSvc.SetPremium(ctx, true)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownPurchaseKind, confirmation.Kind)
	}

	s.ledgerSvc.RecordSpend(ctx, confirmation.PriceUSD)

	metrics.PurchasesCredited.WithLabelValues(string(confirmation.Kind)).Inc()
	logger.FromContext(ctx).Info(LogMsgPurchaseCredited,
		"kind", confirmation.Kind, "amount", confirmation.Amount, "price_usd", confirmation.PriceUSD)

	payload := event.PurchaseCreditedPayloadV1{
		Kind:     confirmation.Kind,
		Amount:   confirmation.Amount,
		PriceUSD: confirmation.PriceUSD,
	}
	_ = s.bus.Publish(ctx, event.New(event.PurchaseCredited, payload, s.cal.Now()))

	return nil
}
