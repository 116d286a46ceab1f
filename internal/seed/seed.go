// Package seed fills a development database with plausible sample data.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/andalan-dev/shift-planner/backend/internal/config"
	"github.com/andalan-dev/shift-planner/backend/internal/domain"
	"github.com/andalan-dev/shift-planner/backend/internal/repository"
	"github.com/andalan-dev/shift-planner/backend/internal/utils"
)

var sampleShifts = []domain.Shift{
	{Name: "Morning", StartTime: "09:00:00", EndTime: "13:00:00", IsActive: true},
	{Name: "Afternoon", StartTime: "13:00:00", EndTime: "17:00:00", IsActive: true},
	{Name: "Evening", StartTime: "17:00:00", EndTime: "21:00:00", IsActive: true},
}

var firstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey", "Riley",
	"Jamie", "Avery", "Quinn", "Dana", "Robin", "Sam",
}

var lastNames = []string{
	"Smith", "Johnson", "Lee", "Brown", "Garcia", "Martinez",
	"Davis", "Wilson", "Anderson", "Thomas", "Moore", "Clark",
}

var departments = []string{"Front Desk", "Operations", "Support", "Logistics"}

var positions = []string{"Associate", "Senior Associate", "Coordinator"}

// Shifts inserts the standard three-shift day. Returns how many rows made
// it in; duplicates from earlier runs are skipped.
func Shifts(repo *repository.Repository) int {
	cnt := 0
	for i := range sampleShifts {
		shift := sampleShifts[i]
		if err := repo.CreateShift(&shift); err != nil {
			slog.Error("unable to insert shift", "name", shift.Name, "error", err)
			continue
		}
		cnt++
	}
	return cnt
}

// Employees inserts n random staff accounts with employee profiles, all
// sharing the configured seed password.
func Employees(repo *repository.Repository, cfg *config.Config, n int) int {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.Employee.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("unable to hash seed password", "error", err)
		return 0
	}

	cnt := 0
	for i := 0; i < n; i++ {
		fullName := fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))])
		username := utils.UsernameFromFullName(fullName)

		user := &domain.User{
			Username:     username,
			PasswordHash: string(passwordHash),
			FullName:     fullName,
			Email:        fmt.Sprintf("%s@%s", username, cfg.Email.UserDomain),
			Role:         domain.RoleStaff,
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("unable to insert user", "username", username, "error", err)
			continue
		}

		employee := &domain.Employee{
			UserID:      user.ID,
			Department:  departments[rand.Intn(len(departments))],
			Position:    positions[rand.Intn(len(positions))],
			IsAvailable: rand.Intn(10) > 0, // roughly one in ten is off roster
		}
		if err := repo.CreateEmployee(employee); err != nil {
			slog.Error("unable to insert employee", "username", username, "error", err)
			continue
		}

		cnt++
	}
	return cnt
}
