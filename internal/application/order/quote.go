package order

import (
	"context"

	"github.com/jhoicas/retail-ops-api/internal/domain"
	"github.com/jhoicas/retail-ops-api/internal/domain/pricing"
)

// QuoteInput entrada para cotizar un carrito sin crear orden.
type QuoteInput struct {
	CustomerID  string
	ManualCodes []string
	Items       []CreateItemInput
}

// Quote cotiza el carrito contra el catálogo y las promociones vigentes.
// Es repetible y sin efectos: no reserva stock, no consume cupos ni puntos.
func (uc *UseCase) Quote(ctx context.Context, in QuoteInput) (*pricing.Breakdown, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.VariantID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	lines, _, err := uc.buildCartLines(in.Items)
	if err != nil {
		return nil, err
	}
	return uc.promoUC.Quote(ctx, lines, in.CustomerID, in.ManualCodes)
}
