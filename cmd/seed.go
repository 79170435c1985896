// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/db"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/logging"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/monitoring/prometheus"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/storage"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/tracing"
	"github.com/gauravraj347/multi-tenant-SaaS-Notes-Application/internal/types"
)

// seedCmd loads the development fixture: two tenants with an admin and a
// member each. Safe to run repeatedly, existing rows are left alone.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with development fixtures",
	Long:  `Seed the database with the development tenants and users.`,
	Run: func(cmd *cobra.Command, args []string) {
		dsn, _ := cmd.Flags().GetString("dsn")
		password, _ := cmd.Flags().GetString("password")

		if err := seed(cmd.Context(), dsn, password); err != nil {
			cmd.PrintErr(err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")
	seedCmd.Flags().String("password", "password", "Password assigned to every seeded user")
	_ = seedCmd.MarkFlagRequired("dsn")

	rootCmd.AddCommand(seedCmd)
}

type seedUser struct {
	email string
	role  types.Role
}

var seedTenants = []struct {
	slug  string
	name  string
	users []seedUser
}{
	{
		slug: "acme",
		name: "Acme",
		users: []seedUser{
			{email: "admin@acme.test", role: types.RoleAdmin},
			{email: "user@acme.test", role: types.RoleMember},
		},
	},
	{
		slug: "globex",
		name: "Globex",
		users: []seedUser{
			{email: "admin@globex.test", role: types.RoleAdmin},
			{email: "user@globex.test", role: types.RoleMember},
		},
	},
}

func seed(ctx context.Context, dsn, password string) error {
	logger := logging.NewLogger("info")
	defer logger.Sync()

	monitor := prometheus.NewMonitor("notes_service_seed", logger)
	tracer := tracing.NewNoopTracer()

	dbConfig := db.Config{
		DSN:             dsn,
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %v", err)
	}

	for _, st := range seedTenants {
		tenant, err := s.CreateTenant(ctx, &types.Tenant{Slug: st.slug, Name: st.name, Tier: types.TierFree})
		if err != nil {
			if !errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("failed to seed tenant %q: %v", st.slug, err)
			}
			tenant, err = s.GetTenantBySlug(ctx, st.slug)
			if err != nil {
				return fmt.Errorf("failed to fetch existing tenant %q: %v", st.slug, err)
			}
		}

		for _, su := range st.users {
			_, err := s.CreateUser(ctx, &types.User{
				Email:        su.email,
				PasswordHash: string(hash),
				Role:         su.role,
				TenantID:     tenant.ID,
			})
			if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
				return fmt.Errorf("failed to seed user %q: %v", su.email, err)
			}
		}

		logger.Infof("seeded tenant %q with %d users", st.slug, len(st.users))
	}

	return nil
}
