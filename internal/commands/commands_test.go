package commands_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
	"real-estate-backend/internal/storage"
)

func newTestDB(t *testing.T) *database.GormDB {
	t.Helper()
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

func seedCategory(t *testing.T, db *database.GormDB) *models.Category {
	t.Helper()
	c := &models.Category{ID: uuid.NewString(), Name: "villa-" + uuid.NewString()[:8]}
	if err := repository.New[models.Category](db).Add(context.Background(), c); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return c
}

func seedCustomer(t *testing.T, db *database.GormDB, name string) *models.Customer {
	t.Helper()
	c := &models.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		NationalID:   uuid.NewString()[:13],
		Phone:        "0100000000",
		CustomerType: models.CustomerTypeOwner,
	}
	if err := repository.New[models.Customer](db).Add(context.Background(), c); err != nil {
		t.Fatalf("seeding customer: %v", err)
	}
	return c
}

func seedProperty(t *testing.T, db *database.GormDB, owner *models.Customer, category *models.Category) *models.Property {
	t.Helper()
	p := &models.Property{
		ID:             uuid.NewString(),
		PropertyNumber: "PN-" + uuid.NewString()[:8],
		Title:          "Test listing",
		Price:          500000,
		Status:         models.PropertyStatusAvailable,
		CategoryID:     category.ID,
		OwnerID:        owner.ID,
	}
	if err := repository.New[models.Property](db).Add(context.Background(), p); err != nil {
		t.Fatalf("seeding property: %v", err)
	}
	return p
}

func fetchProperty(t *testing.T, db *database.GormDB, id string) *models.Property {
	t.Helper()
	p, err := repository.New[models.Property](db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching property: %v", err)
	}
	if p == nil {
		t.Fatalf("property %s not found", id)
	}
	return p
}

// memStore is an in-memory storage.ContractStore.
type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) Save(kind storage.Kind, filename string, data []byte) (string, error) {
	path := string(kind) + "/" + uuid.NewString() + "-" + filename
	s.files[path] = data
	return path, nil
}

func (s *memStore) Delete(path string) error {
	if _, ok := s.files[path]; !ok {
		return fmt.Errorf("no such file %q", path)
	}
	delete(s.files, path)
	return nil
}

func hasErrorCode(errs []*result.Error, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}
