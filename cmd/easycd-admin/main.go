package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/easycd-api/internal/dto"
	"github.com/noah-isme/easycd-api/internal/repository"
	"github.com/noah-isme/easycd-api/internal/service"
	"github.com/noah-isme/easycd-api/pkg/config"
	"github.com/noah-isme/easycd-api/pkg/database"
	"github.com/noah-isme/easycd-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "easycd-admin",
		Short:         "Administrative tasks for the easyCD API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newAddUserCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <" + strings.Join(database.MigrateCommands, "|") + "> [args]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: database.MigrateCommands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return database.Migrate(commandContext(cmd), db.DB, args[0], args[1:]...)
		},
	}
}

func newAddUserCmd() *cobra.Command {
	var req dto.CreatePersonRequest
	creds := dto.PersonCredentials{}

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a person with login credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logr, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer logr.Sync() //nolint:errcheck

			db, err := database.NewPostgres(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if req.Name == "" {
				req.Name = creds.Username
			}
			req.User = &creds
			people := service.NewPersonService(repository.NewPersonRepository(db), repository.NewUserRepository(db), repository.NewCourseRepository(db), repository.NewClassroomRepository(db), service.NewValidator(), logr)
			person, err := people.Create(commandContext(cmd), req)
			if err != nil {
				return err
			}
			logr.Info("user created", zap.String("person_id", person.ID), zap.String("username", creds.Username), zap.String("role", creds.Role))
			fmt.Fprintln(cmd.OutOrStdout(), person.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&creds.Username, "username", "", "login name")
	cmd.Flags().StringVar(&creds.Password, "password", "", "initial password (min 6 chars)")
	cmd.Flags().StringVar(&creds.Role, "role", "admin", "student, teacher or admin")
	cmd.Flags().StringVar(&req.Name, "name", "", "person name, defaults to the username")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
