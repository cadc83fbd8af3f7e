package vault

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSecretNotFound = errors.New("vault secret not found")

// VaultStore đọc secret từ Supabase Vault (schema vault) qua kết nối Postgres
type VaultStore struct {
	pool *pgxpool.Pool
}

func NewVaultStore(pool *pgxpool.Pool) *VaultStore {
	return &VaultStore{pool: pool}
}

// GetSecret trả về giá trị đã giải mã của secret theo name
func (v *VaultStore) GetSecret(ctx context.Context, name string) (string, error) {
	var secret *string
	err := v.pool.QueryRow(ctx,
		`SELECT decrypted_secret FROM vault.decrypted_secrets WHERE name = $1 LIMIT 1`, name,
	).Scan(&secret)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%s: %w", name, ErrSecretNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read vault secret %s: %w", name, err)
	}
	if secret == nil || *secret == "" {
		return "", fmt.Errorf("%s: %w", name, ErrSecretNotFound)
	}

	log.Printf("[VAULT] Secret %s resolved", name)
	return *secret, nil
}

// Count trả về số secret trong vault.secrets, dùng cho status check
func (v *VaultStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := v.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vault.secrets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vault secrets: %w", err)
	}
	return count, nil
}
