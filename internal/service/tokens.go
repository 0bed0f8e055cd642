package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ubiquitousdiaries/diaries-server/internal/auth"
	"github.com/ubiquitousdiaries/diaries-server/internal/domain"
	"github.com/ubiquitousdiaries/diaries-server/internal/id"
	"github.com/ubiquitousdiaries/diaries-server/internal/store"
)

// issueActionToken creates a single-use token for an emailed link and
// persists its digest. Returns the raw token for embedding in the link;
// the raw value is never stored.
func issueActionToken(ctx context.Context, st store.TokenStore, ts *auth.TokenService, userID string, purpose domain.TokenPurpose, ttl time.Duration) (string, error) {
	raw, err := ts.GenerateOpaqueToken()
	if err != nil {
		return "", fmt.Errorf("generate link token: %w", err)
	}

	tokenID, err := id.Generate("tok")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}

	now := time.Now()
	token := &domain.ActionToken{
		ID:        tokenID,
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: auth.HashToken(raw),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := st.CreateActionToken(ctx, token); err != nil {
		return "", fmt.Errorf("save action token: %w", err)
	}

	return raw, nil
}

// consumeActionToken resolves a raw token from an emailed link, verifies its
// purpose and expiry, and marks it used. Every failure maps to the same
// generic error so a caller cannot distinguish forged, expired, and replayed
// links.
func consumeActionToken(ctx context.Context, st store.TokenStore, raw string, purpose domain.TokenPurpose) (*domain.ActionToken, error) {
	token, err := st.GetActionTokenByHash(ctx, auth.HashToken(raw))
	if err != nil {
		return nil, store.ErrInvalidToken.WithCause(err)
	}
	if token.Purpose != purpose || token.IsExpired() {
		return nil, store.ErrInvalidToken
	}
	// The store refuses the update if the token was consumed concurrently.
	if err := st.ConsumeActionToken(ctx, token.ID, time.Now()); err != nil {
		return nil, store.ErrInvalidToken.WithCause(err)
	}
	return token, nil
}
