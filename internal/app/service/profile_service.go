package service

import (
	"context"
	"fmt"
	"strings"
)

// ProfileService: estadística personal y nick de juego.
type ProfileService struct {
	users    UserRegistry
	requests RequestLedger
}

func NewProfileService(users UserRegistry, requests RequestLedger) *ProfileService {
	return &ProfileService{users: users, requests: requests}
}

// Stats arma la tarjeta "Моя статистика": nick resuelto, очки y si el
// usuario está o no en la cola ahora mismo.
func (s *ProfileService) Stats(ctx context.Context, tgID string) (string, error) {
	label, err := s.users.DisplayName(ctx, tgID)
	if err != nil {
		return "", err
	}
	score := 0
	if u, err := s.users.Brief(ctx, tgID); err != nil {
		return "", err
	} else if u != nil {
		score = u.Score
	}
	open, err := s.requests.FindOpenByRequester(ctx, tgID)
	if err != nil {
		return "", err
	}
	status := "⛔️ Ты сейчас не в очереди"
	if open != nil {
		status = "✅ Ты сейчас в очереди"
	}
	return fmt.Sprintf("📊 Твоя статистика\n\nНик: %s\nОчки: %d\n%s", label, score, status), nil
}

// SetNickname guarda el ник; el parseo del comando /nick es del transporte.
func (s *ProfileService) SetNickname(ctx context.Context, tgID, nick string) (string, error) {
	nick = strings.TrimSpace(nick)
	if err := s.users.SetNickname(ctx, tgID, nick); err != nil {
		return "", err
	}
	return "Запомнил ✅ Теперь ты: " + nick, nil
}
