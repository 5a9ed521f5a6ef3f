package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"swipe-go/internal/app"
	"swipe-go/internal/config"
	"swipe-go/internal/db"
	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/pkg/logger"
)

func openDB(log logger.Logger) (*gorm.DB, func(), error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, nil, err
	}
	gormDB, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return gormDB, closeFn, nil
}

func migrateCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			status, _ := cmd.Flags().GetBool("status")

			if dir == "" {
				found, err := db.FindMigrationsDir()
				if err != nil {
					return fmt.Errorf("find migrations: %w", err)
				}
				dir = found
			}

			gormDB, closeFn, err := openDB(log)
			if err != nil {
				return err
			}
			defer closeFn()

			if status {
				pending, err := db.PendingMigrations(gormDB, dir)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
					return nil
				}
				for _, name := range pending {
					fmt.Fprintf(cmd.OutOrStdout(), "pending  %s\n", filepath.Base(name))
				}
				return nil
			}

			applied, err := db.MigrateDir(gormDB, dir, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", len(applied))
			return nil
		},
	}

	cmd.Flags().String("dir", "", "Migrations directory (defaults to the nearest ./migrations)")
	cmd.Flags().Bool("status", false, "List pending migrations without applying them")
	return cmd
}

func accountFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Email address")
	cmd.Flags().String("phone", "", "Phone number, e.g. +380991234567")
	cmd.Flags().String("first-name", "", "First name")
	cmd.Flags().String("last-name", "", "Last name")
	cmd.Flags().String("password", "", "Password (falls back to SWIPE_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
}

func accountInput(cmd *cobra.Command) identitydomain.RegisterInput {
	email, _ := cmd.Flags().GetString("email")
	phone, _ := cmd.Flags().GetString("phone")
	firstName, _ := cmd.Flags().GetString("first-name")
	lastName, _ := cmd.Flags().GetString("last-name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv("SWIPE_PASSWORD")
	}
	return identitydomain.RegisterInput{
		Email:       email,
		PhoneNumber: phone,
		FirstName:   firstName,
		LastName:    lastName,
		Password:    password,
		Password2:   password,
	}
}

func createSuperuserCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create a staff account with superuser rights",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, closeFn, err := openDB(log)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := app.NewIdentityService(gormDB).CreateSuperuser(cmd.Context(), accountInput(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "superuser %s created (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	accountFlags(cmd)
	return cmd
}

func createDeveloperCmd(log logger.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-developer",
		Short: "Create a developer account",
		RunE: func(cmd *cobra.Command, args []string) error {
			gormDB, closeFn, err := openDB(log)
			if err != nil {
				return err
			}
			defer closeFn()

			developer, err := app.NewIdentityService(gormDB).RegisterDeveloper(cmd.Context(), accountInput(cmd))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "developer %s created (id %d)\n", developer.User.Email, developer.ID)
			return nil
		},
	}
	accountFlags(cmd)
	return cmd
}
