package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffpanel/internal/domain/auth"
	"staffpanel/internal/platform/config"
)

type seedRole struct {
	name        string
	index       int
	permissions auth.Bits
}

func defaultRoles() []seedRole {
	manager, _ := auth.NewSet(auth.Flags(
		string(auth.PermTasksCreate), string(auth.PermTasksView), string(auth.PermTasksViewAll),
		string(auth.PermTasksEdit), string(auth.PermTasksDelete),
		string(auth.PermEmployeesRead), string(auth.PermEmployeesReadBasic),
		string(auth.PermProjectsCreate), string(auth.PermProjectsRead), string(auth.PermProjectsReadAll),
		string(auth.PermProjectsUpdate),
		string(auth.PermAssetsRead),
	))
	staff, _ := auth.NewSet(auth.Flags(
		string(auth.PermTasksView),
		string(auth.PermProjectsRead),
		string(auth.PermAssetsRead),
	))
	return []seedRole{
		{name: "ADMIN", index: 0, permissions: auth.AllBits()},
		{name: "MANAGER", index: 1, permissions: manager.Value()},
		{name: "STAFF", index: 2, permissions: staff.Value()},
	}
}

// Seed installs the default role ladder and, when configured, a superuser
// account. Every step is idempotent.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	adminRoleID, err := ensureRoles(ctx, pool)
	if err != nil {
		return err
	}
	return ensureSuperuser(ctx, pool, adminRoleID, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
}

func ensureRoles(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	var adminID string
	for _, role := range defaultRoles() {
		var id string
		err := pool.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", role.name).Scan(&id)
		if err != nil {
			err = pool.QueryRow(ctx,
				`INSERT INTO roles (name, index, permissions) VALUES ($1, $2, $3) RETURNING id`,
				role.name, role.index, int64(role.permissions),
			).Scan(&id)
			if err != nil {
				return "", err
			}
		}
		if role.name == "ADMIN" {
			adminID = id
		}
	}
	return adminID, nil
}

func ensureSuperuser(ctx context.Context, pool *pgxpool.Pool, roleID, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id string
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, superuser, role_id, status)
		 VALUES ($1, $2, TRUE, $3, 'active') RETURNING id`,
		email, hash, roleID,
	).Scan(&id)
}
