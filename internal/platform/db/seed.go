package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"hradmin/internal/domain/auth"
	"hradmin/internal/platform/config"
)

// Seed creates the configured administrator account when it does not exist.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, logger *zap.Logger) error {
	if strings.TrimSpace(cfg.SeedAdminEmail) == "" || strings.TrimSpace(cfg.SeedAdminPassword) == "" {
		logger.Info("seed admin skipped", zap.String("reason", "SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD empty"))
		return nil
	}
	svc := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.TokenTTL, logger)
	created, err := svc.EnsureUser(ctx, cfg.SeedAdminName, cfg.SeedAdminEmail, cfg.SeedAdminPassword, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("seed admin created", zap.String("email", cfg.SeedAdminEmail))
	}
	return nil
}

type demoDepartment struct {
	name, code, location string
	budget               float64
}

type demoPosition struct {
	title, code, level, dept string
	min, max                 float64
}

type demoEmployee struct {
	code, first, last, position string
	salary                      float64
}

var (
	demoDepartments = []demoDepartment{
		{name: "Engineering", code: "ENG", location: "Building A", budget: 1500000},
		{name: "Human Resources", code: "HR", location: "Building B", budget: 400000},
		{name: "Finance", code: "FIN", location: "Building B", budget: 600000},
	}
	demoPositions = []demoPosition{
		{title: "Software Engineer", code: "ENG-SE", level: "mid", dept: "ENG", min: 60000, max: 110000},
		{title: "Engineering Manager", code: "ENG-EM", level: "manager", dept: "ENG", min: 110000, max: 160000},
		{title: "HR Generalist", code: "HR-GEN", level: "junior", dept: "HR", min: 40000, max: 65000},
		{title: "Accountant", code: "FIN-ACC", level: "mid", dept: "FIN", min: 50000, max: 85000},
	}
	demoEmployees = []demoEmployee{
		{code: "EMP-0001", first: "Amara", last: "Okafor", position: "ENG-EM", salary: 135000},
		{code: "EMP-0002", first: "Lena", last: "Fischer", position: "ENG-SE", salary: 92000},
		{code: "EMP-0003", first: "Diego", last: "Ramos", position: "ENG-SE", salary: 88000},
		{code: "EMP-0004", first: "Priya", last: "Nair", position: "HR-GEN", salary: 52000},
		{code: "EMP-0005", first: "Tomasz", last: "Nowak", position: "FIN-ACC", salary: 71000},
	}
)

// SeedDemo loads a small organisation into an empty database. It is a no-op
// when any department already exists.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM departments").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		logger.Info("demo seed skipped", zap.Int("departments", count))
		return nil
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		deptIDs := map[string]int64{}
		for _, d := range demoDepartments {
			var id int64
			if err := tx.QueryRow(ctx, `
        INSERT INTO departments (name, code, location, budget, status)
        VALUES ($1,$2,$3,$4,'active')
        RETURNING id
      `, d.name, d.code, d.location, d.budget).Scan(&id); err != nil {
				return fmt.Errorf("seed department %s: %w", d.code, err)
			}
			deptIDs[d.code] = id
		}

		posIDs := map[string]int64{}
		posDept := map[string]int64{}
		for _, p := range demoPositions {
			var id int64
			if err := tx.QueryRow(ctx, `
        INSERT INTO positions (title, code, department_id, level, min_salary, max_salary, status)
        VALUES ($1,$2,$3,$4,$5,$6,'active')
        RETURNING id
      `, p.title, p.code, deptIDs[p.dept], p.level, p.min, p.max).Scan(&id); err != nil {
				return fmt.Errorf("seed position %s: %w", p.code, err)
			}
			posIDs[p.code] = id
			posDept[p.code] = deptIDs[p.dept]
		}

		hireDate := time.Date(2022, time.March, 1, 0, 0, 0, 0, time.UTC)
		var managerID *int64
		for i, e := range demoEmployees {
			var id int64
			email := strings.ToLower(e.first+"."+e.last) + "@example.com"
			if err := tx.QueryRow(ctx, `
        INSERT INTO employees (employee_code, first_name, last_name, email, department_id, position_id, manager_id, hire_date, salary, skills)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,'[]'::jsonb)
        RETURNING id
      `, e.code, e.first, e.last, email, posDept[e.position], posIDs[e.position], managerID, hireDate.AddDate(0, i, 0), e.salary).Scan(&id); err != nil {
				return fmt.Errorf("seed employee %s: %w", e.code, err)
			}
			if i == 0 {
				managerID = &id
				if _, err := tx.Exec(ctx, "UPDATE departments SET manager_id = $1 WHERE id = $2", id, posDept[e.position]); err != nil {
					return err
				}
			}
		}

		logger.Info("demo seed loaded",
			zap.Int("departments", len(demoDepartments)),
			zap.Int("positions", len(demoPositions)),
			zap.Int("employees", len(demoEmployees)),
		)
		return nil
	})
}
