package notify

import (
	"github.com/jhoicas/retail-ops-api/internal/application/order"
	"github.com/jhoicas/retail-ops-api/internal/domain/entity"
	"github.com/jhoicas/retail-ops-api/pkg/logger"
)

var _ order.Notifier = (*LogNotifier)(nil)

// LogNotifier emite los eventos de órdenes al log estructurado. Es el colaborador
// por defecto; un canal externo (webhook, cola) puede reemplazarlo sin tocar el
// orquestador.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// OrderCreated registra el evento de orden nueva.
func (n *LogNotifier) OrderCreated(o *entity.Order) {
	n.log.Info().
		Str("order_id", o.ID).
		Str("code", o.Code).
		Str("customer_id", o.CustomerID).
		Str("final_amount", o.FinalAmount.String()).
		Msg("orden creada")
}
