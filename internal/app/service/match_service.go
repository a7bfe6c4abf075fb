package service

import (
	"context"
	"log"
	"time"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

// Tope de botones por teclado; Telegram se pone pesado con listas largas.
const maxPickOptions = 10

// MatchConfig externaliza lo que antes vivía hardcodeado: chat de avisos,
// admin y ventana de cooldown para re-responder el mismo request.
type MatchConfig struct {
	AdminChatID      int64
	NotifyChatID     int64
	NotifyThreadID   int
	ResponseCooldown time.Duration
}

// MatchService es el engine de matchmaking: único escritor de transiciones
// de Requests/Responses. Todas sus secuencias son check-then-act sobre un
// store sin transacciones: entre la lectura y la escritura hay una ventana
// de carrera asumida (carga humana, segundos entre eventos por entidad).
// Nada acá pretende una garantía que el store no da.
type MatchService struct {
	users     UserRegistry
	requests  RequestLedger
	responses ResponseLedger
	notify    Notifier
	cfg       MatchConfig
	now       func() time.Time
}

func NewMatchService(users UserRegistry, requests RequestLedger, responses ResponseLedger, notify Notifier, cfg MatchConfig) *MatchService {
	return &MatchService{
		users:     users,
		requests:  requests,
		responses: responses,
		notify:    notify,
		cfg:       cfg,
		now:       time.Now,
	}
}

// SubmitRequest encola al usuario si no tiene ya un request OPEN. El guard
// es scan-then-append: dos submits casi simultáneos pueden colarse ambos.
func (s *MatchService) SubmitRequest(ctx context.Context, requesterID string) (string, error) {
	open, err := s.requests.FindOpenByRequester(ctx, requesterID)
	if err != nil {
		return "", err
	}
	if open != nil {
		return msgAlreadyQueued, nil
	}
	requestID := domain.NewRequestID(s.now(), requesterID)
	if err := s.requests.Create(ctx, requestID, requesterID); err != nil {
		return "", err
	}
	s.notifyChannelNewRequest(ctx, requesterID)
	return msgQueued, nil
}

// ListOpenRequests arma la oferta para un responder: requests OPEN ajenos,
// los más nuevos primero, top 10 como botones.
func (s *MatchService) ListOpenRequests(ctx context.Context, viewerID string) (string, []Option, error) {
	reqs, err := s.requests.ListOpenExcluding(ctx, viewerID)
	if err != nil {
		return "", nil, err
	}
	if len(reqs) == 0 {
		return msgNoOpenReqs, nil, nil
	}
	if len(reqs) > maxPickOptions {
		reqs = reqs[:maxPickOptions]
	}
	opts := make([]Option, 0, len(reqs))
	for _, r := range reqs {
		opts = append(opts, Option{
			Label: "🎮 Запрос: " + s.label(ctx, r.RequesterID),
			Token: domain.PickRequestToken(r.ID),
		})
	}
	return msgPickRequest, opts, nil
}

// SubmitResponse registra el PENDING de un responder sobre un request ajeno
// y le ofrece al autor la lista de pendientes. El cooldown se chequea acá,
// antes de cualquier escritura.
func (s *MatchService) SubmitResponse(ctx context.Context, requestID, responderID string) (string, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req == nil || req.Status != domain.RequestOpen {
		return msgRequestGone, nil
	}
	if req.RequesterID == responderID {
		return msgSelfResponse, nil
	}
	existing, err := s.responses.Get(ctx, requestID, responderID)
	if err != nil {
		return "", err
	}
	if existing != nil && !existing.CreatedAt.IsZero() {
		if s.now().Sub(existing.CreatedAt) < s.cfg.ResponseCooldown {
			return msgCooldown, nil
		}
	}
	if err := s.responses.Upsert(ctx, requestID, responderID, domain.ResponsePending); err != nil {
		return "", err
	}
	if err := s.offerPendingResponders(ctx, req.RequesterID, requestID); err != nil {
		// El otro lado no se entera todavía; el PENDING quedó escrito y
		// volverá a ofrecerse con el próximo otklik.
		log.Printf("offer pending to %s failed: %v", req.RequesterID, err)
	}
	return msgResponseSent, nil
}

// PickResponder cierra el match: el autor eligió a uno de los PENDING.
// Si el elegido ya no está PENDING (se lo llevó otro pick concurrente, o
// nunca existió) no se transiciona nada y se re-ofrece la lista vigente.
func (s *MatchService) PickResponder(ctx context.Context, requestID, requesterID, chosenID string) (string, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return "", err
	}
	if req == nil {
		return msgRequestGone, nil
	}
	if req.RequesterID != requesterID {
		return msgNotYourReq, nil
	}
	if req.Status != domain.RequestOpen {
		return msgRequestClosed, nil
	}

	resp, err := s.responses.Get(ctx, requestID, chosenID)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Status != domain.ResponsePending {
		if err := s.offerPendingResponders(ctx, requesterID, requestID); err != nil {
			log.Printf("re-offer pending to %s failed: %v", requesterID, err)
		}
		return msgResponderGone, nil
	}

	rejected, err := s.closeMatch(ctx, requestID, requesterID, chosenID)
	if err != nil {
		return "", err
	}

	requesterLabel := s.label(ctx, requesterID)
	responderLabel := s.label(ctx, chosenID)

	if err := s.notify.SendText(ctx, chosenID, msgMatchFoundResponder(requesterLabel)); err != nil {
		log.Printf("match notify to responder %s failed: %v", chosenID, err)
	}
	s.fanOut(ctx, rejected, msgConnectFailed)
	s.notifyAdminMatch(ctx, requesterID, chosenID)

	return msgMatchFoundRequester(responderLabel), nil
}

// ExitQueue cierra el request OPEN del usuario (si hay) y rechaza todos sus
// PENDING, avisándole a cada responder.
func (s *MatchService) ExitQueue(ctx context.Context, requesterID string) (string, error) {
	open, err := s.requests.FindOpenByRequester(ctx, requesterID)
	if err != nil {
		return "", err
	}
	if open == nil {
		return msgNotInQueue, nil
	}
	if err := s.requests.MarkClosed(ctx, open.ID); err != nil {
		return "", err
	}
	rejected, err := s.responses.RejectAllPending(ctx, open.ID)
	if err != nil {
		return "", err
	}
	s.fanOut(ctx, rejected, msgQueueClosed)
	return msgLeftQueue, nil
}

// CloseStale barre requests OPEN más viejos que maxAge (lo corre el
// janitor; sin avisos a usuarios, son colas abandonadas).
func (s *MatchService) CloseStale(ctx context.Context, maxAge time.Duration) (closed, rejected int, err error) {
	stale, err := s.requests.ListOpenOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, 0, err
	}
	for _, req := range stale {
		if err := s.requests.MarkClosed(ctx, req.ID); err != nil {
			return closed, rejected, err
		}
		closed++
		ids, err := s.responses.RejectAllPending(ctx, req.ID)
		if err != nil {
			return closed, rejected, err
		}
		rejected += len(ids)
	}
	return closed, rejected, nil
}

// closeMatch ejecuta la secuencia de cierre. Cada paso es una escritura
// independiente; un corte a mitad de camino deja estado parcial visible
// (MATCHED sin CLOSED, p.ej.) que el resto del sistema trata como "ya no
// está OPEN".
func (s *MatchService) closeMatch(ctx context.Context, requestID, requesterID, chosenID string) ([]string, error) {
	if err := s.requests.MarkMatched(ctx, requestID, chosenID); err != nil {
		return nil, err
	}
	if err := s.responses.SetStatus(ctx, requestID, chosenID, domain.ResponseAccepted); err != nil {
		return nil, err
	}
	rejected, err := s.responses.RejectOthers(ctx, requestID, chosenID)
	if err != nil {
		return nil, err
	}
	if err := s.users.IncrementScore(ctx, requesterID, 1); err != nil {
		return nil, err
	}
	if err := s.users.IncrementScore(ctx, chosenID, 1); err != nil {
		return nil, err
	}
	if err := s.requests.MarkClosed(ctx, requestID); err != nil {
		return nil, err
	}
	return rejected, nil
}

// offerPendingResponders le manda al autor la lista de PENDING como botones
// (top 10). Si el request ya no está OPEN o no hay pendientes, no hay nada
// que ofrecer.
func (s *MatchService) offerPendingResponders(ctx context.Context, requesterID, requestID string) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req == nil || req.Status != domain.RequestOpen {
		return nil
	}
	pending, err := s.responses.ListPendingResponders(ctx, requestID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}
	if len(pending) > maxPickOptions {
		pending = pending[:maxPickOptions]
	}
	opts := make([]Option, 0, len(pending))
	for _, rid := range pending {
		opts = append(opts, Option{
			Label: "✅ Выбрать " + s.label(ctx, rid),
			Token: domain.PickResponderToken(requestID, rid),
		})
	}
	return s.notify.SendOptions(ctx, requesterID, msgPickResponder, opts)
}

// fanOut: entrega best-effort e independiente por destinatario; una falla
// se loguea y no frena al resto.
func (s *MatchService) fanOut(ctx context.Context, recipients []string, text string) {
	for _, rid := range recipients {
		if err := s.notify.SendText(ctx, rid, text); err != nil {
			log.Printf("reject notify to %s failed: %v", rid, err)
		}
	}
}

func (s *MatchService) notifyChannelNewRequest(ctx context.Context, requesterID string) {
	if s.cfg.NotifyChatID == 0 {
		return
	}
	text := "Уведомление: кто-то запрашивает кооп.\nИгрок: " + s.label(ctx, requesterID)
	if err := s.notify.SendChannel(ctx, s.cfg.NotifyChatID, s.cfg.NotifyThreadID, text); err != nil {
		log.Printf("coop request notify failed: %v", err)
	}
}

func (s *MatchService) notifyAdminMatch(ctx context.Context, requesterID, responderID string) {
	if s.cfg.AdminChatID == 0 {
		return
	}
	text := "🎯 Найден кооп-матч!\n" +
		"1) " + s.label(ctx, requesterID) + " (" + requesterID + ")\n" +
		"2) " + s.label(ctx, responderID) + " (" + responderID + ")\n" +
		"Обоим начислено +1."
	if err := s.notify.SendChannel(ctx, s.cfg.AdminChatID, 0, text); err != nil {
		log.Printf("admin match notify failed: %v", err)
	}
}

// label resuelve el display name; ante una falla del store cae al id crudo
// (es sólo texto de notificación, no vale abortar por esto).
func (s *MatchService) label(ctx context.Context, tgID string) string {
	name, err := s.users.DisplayName(ctx, tgID)
	if err != nil {
		log.Printf("display name for %s failed: %v", tgID, err)
		return tgID
	}
	return name
}
