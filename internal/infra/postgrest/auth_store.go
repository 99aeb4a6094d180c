package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/kmazur/budgetbook-go/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// Users and refresh tokens
// ============================================================

type userRow struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
	}
}

func (c *Client) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.GetUserByID")
	defer span.End()

	path := fmt.Sprintf("users?id=eq.%s&limit=1", userID)
	return c.getUser(ctx, path)
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.GetUserByEmail")
	defer span.End()

	path := fmt.Sprintf("users?email=eq.%s&limit=1", url.QueryEscape(email))
	return c.getUser(ctx, path)
}

func (c *Client) getUser(ctx context.Context, path string) (*domain.User, error) {
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/users", Err: err}
	}

	var rows []userRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	user := rows[0].toDomain()
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.CreateUser")
	defer span.End()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	body, err := c.doPost(ctx, "users", map[string]any{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/users", Err: err}
	}

	var rows []userRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return user, nil
	}
	created := rows[0].toDomain()
	return &created, nil
}

type refreshTokenRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	TokenHash string `json:"token_hash"`
	ExpiresAt string `json:"expires_at"`
	Revoked   bool   `json:"revoked"`
}

func (r refreshTokenRow) toDomain() domain.RefreshToken {
	expires, _ := time.Parse(time.RFC3339, r.ExpiresAt)
	return domain.RefreshToken{
		ID:        r.ID,
		UserID:    r.UserID,
		TokenHash: r.TokenHash,
		ExpiresAt: expires,
		Revoked:   r.Revoked,
	}
}

func (c *Client) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "Postgrest.StoreRefreshToken")
	defer span.End()

	_, err := c.doPost(ctx, "refresh_tokens", map[string]any{
		"id":         uuid.New().String(),
		"user_id":    userID,
		"token_hash": tokenHash,
		"expires_at": expiresAt.Format(time.RFC3339),
		"revoked":    false,
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "postgrest/refresh_tokens", Err: err}
	}
	return nil
}

func (c *Client) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Postgrest.GetRefreshToken")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?token_hash=eq.%s&revoked=eq.false&limit=1", tokenHash)
	body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "postgrest/refresh_tokens", Err: err}
	}

	var rows []refreshTokenRow
	if body != nil {
		if err := json.Unmarshal(body, &rows); err != nil {
			return nil, fmt.Errorf("decode refresh token: %w", err)
		}
	}
	if len(rows) == 0 {
		return nil, nil
	}
	token := rows[0].toDomain()
	return &token, nil
}

func (c *Client) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "Postgrest.RevokeRefreshToken")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?token_hash=eq.%s", tokenHash)
	if _, err := c.doPatch(ctx, path, map[string]any{"revoked": true}); err != nil {
		return &domain.ErrExternalService{Service: "postgrest/refresh_tokens", Err: err}
	}
	return nil
}

func (c *Client) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "Postgrest.RevokeAllRefreshTokens")
	defer span.End()

	path := fmt.Sprintf("refresh_tokens?user_id=eq.%s&revoked=eq.false", userID)
	if _, err := c.doPatch(ctx, path, map[string]any{"revoked": true}); err != nil {
		return &domain.ErrExternalService{Service: "postgrest/refresh_tokens", Err: err}
	}
	return nil
}
