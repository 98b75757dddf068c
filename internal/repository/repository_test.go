package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
)

func newTestDB(t *testing.T) *database.GormDB {
	t.Helper()
	// A named shared-cache memory database keeps every pooled connection on
	// the same schema, which plain ":memory:" does not.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSQLite(dsn)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.InitSchema(); err != nil {
		t.Fatalf("initializing schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newCustomer(name string) *models.Customer {
	return &models.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		NationalID:   uuid.NewString()[:13],
		Phone:        "0100000000",
		CustomerType: models.CustomerTypeOwner,
	}
}

func TestAdd_And_GetByID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Alice")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID returned nil for existing row")
	}
	if got.Name != "Alice" {
		t.Errorf("Name = %q, want %q", got.Name, "Alice")
	}
}

func TestGetByID_MissIsNilNotError(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)

	got, err := repo.GetByID(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("GetByID returned error on miss: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID = %+v, want nil", got)
	}
}

func TestFirst_WithCondition(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Bob")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := repo.First(ctx, repository.Where("national_id = ?", c.NationalID))
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if got == nil || got.ID != c.ID {
		t.Errorf("First returned %+v, want customer %s", got, c.ID)
	}
}

func TestUpdate_ReportsRowsAffected(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Carol")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	c.Phone = "0111111111"
	rows, err := repo.Update(ctx, c)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}

	got, _ := repo.GetByID(ctx, c.ID)
	if got.Phone != "0111111111" {
		t.Errorf("Phone = %q, want updated value", got.Phone)
	}
}

func TestDelete_SoftDeletes(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Dave")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := repo.Delete(ctx, c); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// Row still exists physically.
	got, err := repo.GetByID(ctx, c.ID)
	if err != nil || got == nil {
		t.Fatalf("row should survive soft delete, got %+v err %v", got, err)
	}
	if !got.IsDeleted {
		t.Error("IsDeleted = false after Delete")
	}
	if got.DeletedAt == nil {
		t.Error("DeletedAt = nil after Delete")
	}

	// But the live filter hides it.
	live, err := repo.First(ctx, repository.And(
		repository.Where("id = ?", c.ID), repository.NotDeleted()))
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if live != nil {
		t.Error("soft-deleted row visible through NotDeleted filter")
	}
}

func TestHardDelete_RemovesRow(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Eve")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.HardDelete(ctx, c); err != nil {
		t.Fatalf("HardDelete failed: %v", err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("row still present after HardDelete")
	}
}

func TestList_Pagination(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		c := newCustomer(fmt.Sprintf("customer-%02d", i))
		if err := repo.Add(ctx, c); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	pageOne, err := repo.List(ctx, repository.Query{OrderBy: "name ASC", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List page 1 failed: %v", err)
	}
	if len(pageOne) != 10 {
		t.Fatalf("page 1 len = %d, want 10", len(pageOne))
	}
	if pageOne[0].Name != "customer-00" {
		t.Errorf("page 1 first = %q, want customer-00", pageOne[0].Name)
	}

	pageThree, err := repo.List(ctx, repository.Query{OrderBy: "name ASC", Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("List page 3 failed: %v", err)
	}
	if len(pageThree) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(pageThree))
	}
	if len(pageThree) > 0 && pageThree[0].Name != "customer-20" {
		t.Errorf("page 3 first = %q, want customer-20 (skip = (page-1)*pageSize)", pageThree[0].Name)
	}
}

func TestList_DefaultsOutOfRangePage(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Add(ctx, newCustomer(fmt.Sprintf("c-%d", i))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	items, err := repo.List(ctx, repository.Query{Page: -2, PageSize: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len = %d, want 3 (page<1 treated as first page)", len(items))
	}
}

func TestListPaged_TotalIgnoresWindow(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if err := repo.Add(ctx, newCustomer(fmt.Sprintf("c-%02d", i))); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	page, err := repo.ListPaged(ctx, repository.Query{OrderBy: "name ASC", Page: 2, PageSize: 5})
	if err != nil {
		t.Fatalf("ListPaged failed: %v", err)
	}
	if len(page.Items) != 5 {
		t.Errorf("len(Items) = %d, want 5", len(page.Items))
	}
	if page.Total != 12 {
		t.Errorf("Total = %d, want 12", page.Total)
	}
	if page.Page != 2 || page.PageSize != 5 {
		t.Errorf("page window = %d/%d, want 2/5", page.Page, page.PageSize)
	}
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Frank")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := repo.Exists(ctx, repository.Where("national_id = ?", c.NationalID))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("Exists = false for present row")
	}

	ok, err = repo.Exists(ctx, repository.Where("national_id = ?", "nope"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("Exists = true for absent row")
	}
}

func TestWithTx_RollbackDiscardsStagedWrites(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	c := newCustomer("Ghost")
	if err := repo.WithTx(tx).Add(ctx, c); err != nil {
		t.Fatalf("Add in tx failed: %v", err)
	}
	tx.Rollback()

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Error("rolled-back insert is visible")
	}
}

func TestFirst_ForUpdateInsideTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	c := newCustomer("Locked")
	if err := repo.Add(ctx, c); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer tx.Rollback()

	got, err := repo.WithTx(tx).First(ctx, repository.And(
		repository.Where("id = ?", c.ID), repository.ForUpdate()))
	if err != nil {
		t.Fatalf("locked First failed: %v", err)
	}
	if got == nil || got.ID != c.ID {
		t.Fatalf("locked First returned %+v, want customer %s", got, c.ID)
	}

	got.Phone = "0122222222"
	if _, err := repo.WithTx(tx).Update(ctx, got); err != nil {
		t.Fatalf("Update after locked read failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	after, _ := repo.GetByID(ctx, c.ID)
	if after.Phone != "0122222222" {
		t.Errorf("Phone = %q, want value written after the locked read", after.Phone)
	}
}

func TestWithTx_CommitMakesWritesDurable(t *testing.T) {
	db := newTestDB(t)
	repo := repository.New[models.Customer](db)
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer tx.Rollback()

	c := newCustomer("Kept")
	if err := repo.WithTx(tx).Add(ctx, c); err != nil {
		t.Fatalf("Add in tx failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	got, err := repo.GetByID(ctx, c.ID)
	if err != nil || got == nil {
		t.Fatalf("committed insert not visible: %+v err %v", got, err)
	}
}
