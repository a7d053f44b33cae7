package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/repositories"
	"github.com/dstrand/photoweb/internal/shared"
	"github.com/urfave/cli/v3"
)

// withUsers opens the database and hands a user repository to fn.
func (r *Runner) withUsers(configPath string, fn func(*repositories.UserRepository) error) error {
	config := r.loadConfig(configPath)

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return fn(repositories.NewUserRepository(db))
}

// UsersAdd creates a user account.
func (r *Runner) UsersAdd(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	name := cmd.String("name")
	roles := cmd.String("roles")

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		user := models.NewUser(0, email, name)
		if roles != "" {
			user.SetRoles(roles)
		}

		if err := repo.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		r.logger.Info("user created", "email", email, "roles", user.Roles())
		r.writePlain("✓ User created: %s (%s)\n", email, user.Roles())
		return nil
	})
}

// UsersList lists user accounts, optionally filtered to enabled ones.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	enabledOnly := cmd.Bool("enabled")

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		criteria := map[string]any{}
		if enabledOnly {
			criteria["enabled"] = true
		}

		users, err := repo.List(criteria)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if useJSON {
			records := make([]map[string]any, 0, len(users))
			for _, u := range users {
				records = append(records, map[string]any{
					"email":   u.Email(),
					"name":    u.Name(),
					"roles":   u.RoleList(),
					"enabled": u.Enabled(),
				})
			}
			return r.writeJSON(records, true)
		}

		r.writePlainHeader(fmt.Sprintf("Users (%d)", len(users)))
		for _, u := range users {
			state := "enabled"
			if !u.Enabled() {
				state = "disabled"
			}
			r.writePlain("%-4d %-32s %-12s %s\n", u.Sequence(), u.Email(), state, strings.Join(u.RoleList(), ","))
		}
		return nil
	})
}

// UsersShow prints a single user account as JSON.
func (r *Runner) UsersShow(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		user, err := repo.GetByEmail(email)
		if err != nil {
			return err
		}

		record := map[string]any{
			"email":   user.Email(),
			"name":    user.Name(),
			"roles":   user.RoleList(),
			"enabled": user.Enabled(),
			"picture": user.Picture(),
		}
		if last := user.LastLogin(); last != nil {
			record["last_login"] = last
		}
		return r.writeJSON(record, true)
	})
}

// UsersUpdate changes a user's display name and/or roles.
func (r *Runner) UsersUpdate(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	name := cmd.String("name")
	roles := cmd.String("roles")
	if name == "" && roles == "" {
		return fmt.Errorf("%w: at least one of --name or --roles is required", shared.ErrMissingArgument)
	}

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		user, err := repo.GetByEmail(email)
		if err != nil {
			return err
		}

		if name != "" {
			user.SetName(name)
		}
		if roles != "" {
			user.SetRoles(roles)
		}

		if err := repo.Update(user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		r.writePlain("✓ User updated: %s (%s)\n", email, user.Roles())
		return nil
	})
}

// UsersEnable enables a user account.
func (r *Runner) UsersEnable(ctx context.Context, cmd *cli.Command) error {
	return r.setUserEnabled(cmd, true)
}

// UsersDisable disables a user account.
func (r *Runner) UsersDisable(ctx context.Context, cmd *cli.Command) error {
	return r.setUserEnabled(cmd, false)
}

func (r *Runner) setUserEnabled(cmd *cli.Command, enabled bool) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		user, err := repo.GetByEmail(email)
		if err != nil {
			return err
		}

		user.SetEnabled(enabled)
		if err := repo.Update(user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		state := "enabled"
		if !enabled {
			state = "disabled"
		}
		r.writePlain("✓ User %s: %s\n", state, email)
		return nil
	})
}

// UsersRemove soft-deletes a user account.
func (r *Runner) UsersRemove(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	return r.withUsers(cmd.String("config"), func(repo *repositories.UserRepository) error {
		user, err := repo.GetByEmail(email)
		if err != nil {
			return err
		}

		if err := repo.Delete(user.ID()); err != nil {
			return fmt.Errorf("failed to remove user: %w", err)
		}

		r.writePlain("✓ User removed: %s\n", email)
		return nil
	})
}
