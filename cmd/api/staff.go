package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage staff accounts",
	}

	var (
		username string
		password string
		name     string
		role     string
	)

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			if username == "" {
				return errors.New("--username is required")
			}
			if len(password) < 8 {
				return errors.New("--password must be at least 8 characters")
			}

			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}
			defer dbpkg.Close(db)

			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}

			user := &models.User{
				Username:     username,
				Name:         name,
				PasswordHash: string(hashed),
				Role:         role,
			}
			if err := infraRepo.NewUserGormRepository(db).CreateUser(cmd.Context(), user); err != nil {
				return err
			}

			fmt.Printf("Created staff user %q (id %d).\n", user.Username, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "Login name")
	createCmd.Flags().StringVar(&password, "password", "", "Password (min 8 characters)")
	createCmd.Flags().StringVar(&name, "name", "", "Display name")
	createCmd.Flags().StringVar(&role, "role", "staff", "Role")
	cmd.AddCommand(createCmd)

	return cmd
}
