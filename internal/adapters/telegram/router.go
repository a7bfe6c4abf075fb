package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"

	"github.com/Ancr33z/TGRRCOOP/internal/app/service"
	"github.com/Ancr33z/TGRRCOOP/internal/domain"
	"github.com/Ancr33z/TGRRCOOP/internal/infra/storage"
)

const dispatchTimeout = 12 * time.Second

// Router recibe los updates del webhook de Telegram y los despacha a los
// services. Es el boundary de errores: acá un StoreError se vuelve una
// disculpa genérica para el usuario y detalle completo en el log.
type Router struct {
	client     *Client
	users      *storage.UserRepo
	match      *service.MatchService
	profile    *service.ProfileService
	publicName string
	secret     string
	mux        *mux.Router
}

func NewRouter(client *Client, users *storage.UserRepo, match *service.MatchService, profile *service.ProfileService, publicName, webhookSecret string) *Router {
	r := &Router{
		client:     client,
		users:      users,
		match:      match,
		profile:    profile,
		publicName: publicName,
		secret:     webhookSecret,
		mux:        mux.NewRouter(),
	}
	r.routes()
	return r
}

func (r *Router) Handler() http.Handler { return r.mux }

func (r *Router) routes() {
	r.mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods(http.MethodGet)
	r.mux.HandleFunc("/telegram", r.handleWebhook).Methods(http.MethodPost)
}

// handleWebhook contesta 200 enseguida (Telegram reintenta ante demoras) y
// procesa el update aparte con su propio timeout.
func (r *Router) handleWebhook(w http.ResponseWriter, req *http.Request) {
	if r.secret != "" {
		got := req.Header.Get("X-Telegram-Bot-Api-Secret-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(r.secret)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
	}
	var upd tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, req.Body, 1<<20)).Decode(&upd); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		r.Dispatch(ctx, upd)
	}()
}

// Dispatch procesa un update completo; lo comparte el server HTTP y el
// entrypoint lambda.
func (r *Router) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in update dispatch: %v", rec)
		}
	}()

	switch {
	case upd.Message != nil:
		r.handleMessage(ctx, upd.Message)
	case upd.CallbackQuery != nil:
		r.handleCallback(ctx, upd.CallbackQuery)
	}
}

func (r *Router) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	tgID := strconv.FormatInt(msg.From.ID, 10)
	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	if err := r.users.Upsert(ctx, tgID, atUsername(msg.From), fullName(msg.From)); err != nil {
		log.Printf("upsert user %s: %v", tgID, err)
		r.reply(ctx, chatID, msgOops)
		return
	}

	switch msg.Command() {
	case "start":
		r.reply(ctx, chatID, welcome(r.publicName))
	case "nick":
		nick := strings.TrimSpace(msg.CommandArguments())
		if nick == "" {
			r.reply(ctx, chatID, msgNickUsage)
			return
		}
		out, err := r.profile.SetNickname(ctx, tgID, nick)
		r.replyOutcome(ctx, chatID, out, err)
	default:
		r.reply(ctx, chatID, msgUseKeys)
	}
}

func (r *Router) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	tgID := strconv.FormatInt(cq.From.ID, 10)
	chatID := strconv.FormatInt(cq.Message.Chat.ID, 10)

	if err := r.users.Upsert(ctx, tgID, atUsername(cq.From), fullName(cq.From)); err != nil {
		log.Printf("upsert user %s: %v", tgID, err)
		r.reply(ctx, chatID, msgOops)
		return
	}
	if err := r.client.AnswerCallback(cq.ID); err != nil {
		log.Printf("answer callback %s: %v", cq.ID, err)
	}

	action, args := domain.SplitToken(cq.Data)
	log.Printf("callback: %s by=%s", action, tgID)

	switch action {
	case domain.CBSetNick, domain.CBChangeNick:
		r.reply(ctx, chatID, msgNickUsage)

	case domain.CBMyStats:
		out, err := r.profile.Stats(ctx, tgID)
		r.replyOutcome(ctx, chatID, out, err)

	case domain.CBRequestCoop:
		out, err := r.match.SubmitRequest(ctx, tgID)
		r.replyOutcome(ctx, chatID, out, err)

	case domain.CBRespondCoop:
		text, opts, err := r.match.ListOpenRequests(ctx, tgID)
		if err != nil {
			log.Printf("list open requests: %v", err)
			r.reply(ctx, chatID, msgOops)
			return
		}
		if len(opts) == 0 {
			r.reply(ctx, chatID, text)
			return
		}
		if err := r.client.SendOptions(ctx, chatID, text, opts); err != nil {
			log.Printf("send options to %s: %v", chatID, err)
		}

	case domain.CBPickRequest:
		if len(args) < 1 {
			r.reply(ctx, chatID, msgFallback)
			return
		}
		out, err := r.match.SubmitResponse(ctx, args[0], tgID)
		r.replyOutcome(ctx, chatID, out, err)

	case domain.CBPickResponder:
		if len(args) < 2 {
			r.reply(ctx, chatID, msgFallback)
			return
		}
		out, err := r.match.PickResponder(ctx, args[0], tgID, args[1])
		r.replyOutcome(ctx, chatID, out, err)

	case domain.CBExitQueue:
		out, err := r.match.ExitQueue(ctx, tgID)
		r.replyOutcome(ctx, chatID, out, err)

	case domain.CBCancel:
		r.reply(ctx, chatID, msgCancelled)

	default:
		r.reply(ctx, chatID, msgFallback)
	}
}

// replyOutcome: los services devuelven texto para el usuario o un error de
// verdad (store/schema); el error se loguea y se disculpa genéricamente.
func (r *Router) replyOutcome(ctx context.Context, chatID, out string, err error) {
	if err != nil {
		log.Printf("operation failed for %s: %v", chatID, err)
		r.reply(ctx, chatID, msgOops)
		return
	}
	r.reply(ctx, chatID, out)
}

func (r *Router) reply(ctx context.Context, chatID, text string) {
	if err := r.client.SendText(ctx, chatID, text); err != nil {
		log.Printf("reply to %s: %v", chatID, err)
	}
}

func atUsername(u *tgbotapi.User) string {
	if u.UserName == "" {
		return ""
	}
	return "@" + u.UserName
}

func fullName(u *tgbotapi.User) string {
	return strings.TrimSpace(strings.Join([]string{u.FirstName, u.LastName}, " "))
}
