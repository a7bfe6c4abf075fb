package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Ancr33z/TGRRCOOP/internal/domain"
)

// UserRepo es el registro de identidades: única escritora de score y nick.
type UserRepo struct {
	t   Table
	now func() time.Time
}

func NewUserRepo(t Table) *UserRepo { return &UserRepo{t: t, now: time.Now} }

// Upsert crea al usuario en el primer contacto y en los siguientes refresca
// username/nombre/last_active. El nick de juego no se toca acá.
func (r *UserRepo) Upsert(ctx context.Context, tgID, username, name string) error {
	row, err := r.t.Find(ctx, TableUsers, ColTGID, tgID)
	if err != nil {
		return err
	}
	if row == nil {
		return r.t.Append(ctx, TableUsers, map[string]string{
			ColTGID:       tgID,
			ColUsername:   username,
			ColName:       name,
			ColGameNick:   "",
			ColScore:      "0",
			ColCreatedAt:  NowISO(r.now()),
			ColLastActive: NowISO(r.now()),
		})
	}
	for _, upd := range []struct{ col, val string }{
		{ColUsername, username},
		{ColName, name},
		{ColLastActive, NowISO(r.now())},
	} {
		if !row.Has(upd.col) {
			continue
		}
		if err := r.t.UpdateCell(ctx, TableUsers, row.Index, upd.col, upd.val); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepo) SetNickname(ctx context.Context, tgID, nick string) error {
	nick = strings.TrimSpace(nick)
	row, err := r.t.Find(ctx, TableUsers, ColTGID, tgID)
	if err != nil {
		return err
	}
	if row == nil {
		return r.t.Append(ctx, TableUsers, map[string]string{
			ColTGID:       tgID,
			ColUsername:   "",
			ColName:       "",
			ColGameNick:   nick,
			ColScore:      "0",
			ColCreatedAt:  NowISO(r.now()),
			ColLastActive: NowISO(r.now()),
		})
	}
	if !row.Has(ColGameNick) {
		return &SchemaError{Table: TableUsers, Column: ColGameNick}
	}
	if err := r.t.UpdateCell(ctx, TableUsers, row.Index, ColGameNick, nick); err != nil {
		return err
	}
	if row.Has(ColLastActive) {
		return r.t.UpdateCell(ctx, TableUsers, row.Index, ColLastActive, NowISO(r.now()))
	}
	return nil
}

// IncrementScore lee el score actual y escribe current+delta. No es atómico:
// dos increments concurrentes del mismo usuario pueden pisarse. Aceptado
// para esta carga; no lo "arreglamos" en esta capa.
func (r *UserRepo) IncrementScore(ctx context.Context, tgID string, delta int) error {
	row, err := r.t.Find(ctx, TableUsers, ColTGID, tgID)
	if err != nil {
		return err
	}
	if row == nil {
		return nil
	}
	if !row.Has(ColScore) {
		return &SchemaError{Table: TableUsers, Column: ColScore}
	}
	cur, _ := strconv.Atoi(strings.TrimSpace(row.Get(ColScore)))
	return r.t.UpdateCell(ctx, TableUsers, row.Index, ColScore, strconv.Itoa(cur+delta))
}

// Brief devuelve el perfil o nil si no existe.
func (r *UserRepo) Brief(ctx context.Context, tgID string) (*domain.User, error) {
	row, err := r.t.Find(ctx, TableUsers, ColTGID, tgID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	score, _ := strconv.Atoi(strings.TrimSpace(row.Get(ColScore)))
	return &domain.User{
		TGID:       row.Get(ColTGID),
		Username:   row.Get(ColUsername),
		Name:       row.Get(ColName),
		GameNick:   row.Get(ColGameNick),
		Score:      score,
		CreatedAt:  ParseISO(row.Get(ColCreatedAt)),
		LastActive: ParseISO(row.Get(ColLastActive)),
	}, nil
}

// DisplayName resuelve nick → @username → nombre → tg_id crudo.
func (r *UserRepo) DisplayName(ctx context.Context, tgID string) (string, error) {
	u, err := r.Brief(ctx, tgID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return tgID, nil
	}
	return u.DisplayName(), nil
}
