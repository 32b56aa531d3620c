package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domain "credit-conveyor/internal/domain/client"
)

func TestClient_CreateEnrichSave(t *testing.T) {
	db := openTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	cl := &domain.Client{
		ID:             "client-1",
		FirstName:      "John",
		LastName:       "Doe",
		Email:          "john@example.com",
		BirthDate:      time.Date(1992, 3, 14, 0, 0, 0, 0, time.UTC),
		PassportSeries: "1234",
		PassportNumber: "567890",
	}
	if err := repo.Create(ctx, cl); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// enrich with the finish-registration profile
	cl.Gender = domain.GenderMale
	cl.MaritalStatus = domain.MaritalSingle
	cl.Employment = &domain.Employment{
		Status:                domain.EmploymentEmployed,
		Salary:                decimal.RequireFromString("50000"),
		Position:              domain.PositionMiddle,
		WorkExperienceTotal:   30,
		WorkExperienceCurrent: 19,
	}
	if err := repo.Save(ctx, cl); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, "client-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "john@example.com" || got.Gender != domain.GenderMale {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.Employment == nil || got.Employment.Position != domain.PositionMiddle {
		t.Fatalf("employment lost: %+v", got.Employment)
	}
	if !got.Employment.Salary.Equal(decimal.RequireFromString("50000")) {
		t.Fatalf("salary = %s", got.Employment.Salary)
	}
}
