package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/audit"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	domaininv "github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// AlertUseCase es el motor de alertas: evalúa las reglas de umbral contra el
// estado del artículo y mantiene a lo sumo una alerta activa por (artículo, tipo).
// La re-evaluación es idempotente: sobre estado sin cambios no crea nada nuevo.
type AlertUseCase struct {
	alertRepo    repository.AlertRepository
	itemRepo     repository.ItemRepository
	auditor      *audit.Recorder
	publisher    AlertPublisher // puede ser nil (publicación deshabilitada)
	clock        Clock
	expiryWindow time.Duration
	log          *logger.Logger
}

// NewAlertUseCase construye el motor de alertas.
func NewAlertUseCase(
	alertRepo repository.AlertRepository,
	itemRepo repository.ItemRepository,
	auditor *audit.Recorder,
	publisher AlertPublisher,
	clock Clock,
	expiryWindow time.Duration,
	log *logger.Logger,
) *AlertUseCase {
	return &AlertUseCase{
		alertRepo:    alertRepo,
		itemRepo:     itemRepo,
		auditor:      auditor,
		publisher:    publisher,
		clock:        clock,
		expiryWindow: expiryWindow,
		log:          log,
	}
}

// Evaluate aplica las reglas sobre el estado actual del artículo y persiste una
// alerta activa por cada condición disparada que aún no tenga alerta activa del
// mismo tipo. Devuelve solo las alertas creadas en esta evaluación.
//
// El motor nunca resuelve alertas, ni siquiera si la condición dejó de cumplirse:
// la transición a resolved/ignored es siempre una acción externa explícita.
func (uc *AlertUseCase) Evaluate(ctx context.Context, item *entity.Item) ([]*entity.Alert, error) {
	now := uc.clock.Now()
	conditions := domaininv.EvaluateThresholds(item, now, uc.expiryWindow)

	var created []*entity.Alert
	for _, cond := range conditions {
		existing, err := uc.alertRepo.FindActiveByItemAndType(item.ID, cond.Type)
		if err != nil {
			return created, err
		}
		if existing != nil {
			// Dedupe: ya hay una alerta activa de este tipo para el artículo.
			continue
		}
		alert := &entity.Alert{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			Type:      cond.Type,
			Message:   cond.Message,
			Status:    entity.AlertStatusActive,
			CreatedAt: now,
		}
		if err := uc.alertRepo.Create(alert); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// Carrera con otra evaluación: la alerta activa ya existe
				// (índice único parcial del store), no hay nada que crear.
				continue
			}
			return created, err
		}
		created = append(created, alert)
		uc.publish(ctx, alert)
	}
	return created, nil
}

// EvaluateItem re-evalúa un artículo por ID (endpoint manual, idempotente).
func (uc *AlertUseCase) EvaluateItem(ctx context.Context, itemID string) ([]*entity.Alert, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.Evaluate(ctx, item)
}

// UpdateStatus transiciona el estado de una alerta. Al pasar a resolved se
// estampan resolved_at y resolved_by; la cantidad del artículo y su kardex
// nunca se ven afectados.
func (uc *AlertUseCase) UpdateStatus(ctx context.Context, alertID, status, actor string) (*entity.Alert, error) {
	if !entity.ValidAlertStatus(status) {
		return nil, fmt.Errorf("%w: status debe ser active, resolved o ignored", domain.ErrInvalidInput)
	}
	alert, err := uc.alertRepo.GetByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, domain.ErrNotFound
	}
	if alert.Status == status {
		return alert, nil
	}

	alert.Status = status
	if status == entity.AlertStatusResolved {
		now := uc.clock.Now()
		alert.ResolvedAt = &now
		alert.ResolvedBy = &actor
	}
	if err := uc.alertRepo.UpdateStatus(alert); err != nil {
		return nil, err
	}

	uc.auditor.Record("alert_status", "alerts", alert.ID,
		fmt.Sprintf(`{"status":%q}`, status), actor)
	return alert, nil
}

// List lista alertas según filtro (status, item, tipo), con paginación.
func (uc *AlertUseCase) List(filter repository.AlertFilter) ([]*entity.Alert, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Status != "" && !entity.ValidAlertStatus(filter.Status) {
		return nil, fmt.Errorf("%w: status de filtro desconocido", domain.ErrInvalidInput)
	}
	return uc.alertRepo.List(filter)
}

// publish envía el evento al broker si hay publisher configurado (best-effort).
func (uc *AlertUseCase) publish(ctx context.Context, alert *entity.Alert) {
	if uc.publisher == nil {
		return
	}
	ev := &AlertEvent{
		AlertID:   alert.ID,
		ItemID:    alert.ItemID,
		AlertType: alert.Type,
		Message:   alert.Message,
		Status:    alert.Status,
		CreatedAt: alert.CreatedAt,
	}
	if err := uc.publisher.PublishAlertEvent(ctx, ev); err != nil {
		uc.log.Warn().Err(err).
			Str("alert_id", alert.ID).
			Str("alert_type", alert.Type).
			Msg("no se pudo publicar el evento de alerta")
	}
}
