// seed puebla la base de datos con datos de demostración: un usuario admin,
// dimensiones de referencia y un puñado de artículos con stock inicial.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el servidor (DATABASE_URL o DB_*).
// Idempotente: si el admin ya existe, no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("cargar configuración: %v", err)
	}

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		fatal("migraciones: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fatal("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	existing, err := userRepo.GetByUsername("admin")
	if err != nil {
		fatal("consultar admin: %v", err)
	}
	if existing != nil {
		fmt.Println("seed: el usuario admin ya existe, nada que hacer")
		return
	}

	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		fatal("hash de contraseña: %v", err)
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		CreatedBy:    "seed",
	}
	if err := userRepo.Create(admin); err != nil {
		fatal("crear admin: %v", err)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)

	category := &entity.Category{ID: uuid.NewString(), Name: "General", Description: "Categoría por defecto"}
	if err := categoryRepo.Create(category); err != nil {
		fatal("crear categoría: %v", err)
	}
	location := &entity.Location{ID: uuid.NewString(), Name: "Bodega principal", Description: "Ubicación por defecto"}
	if err := locationRepo.Create(location); err != nil {
		fatal("crear ubicación: %v", err)
	}
	supplier := &entity.Supplier{ID: uuid.NewString(), Name: "Proveedor demo", ContactInfo: "ventas@proveedor.example.com"}
	if err := supplierRepo.Create(supplier); err != nil {
		fatal("crear proveedor: %v", err)
	}

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)

	demo := []struct {
		name     string
		sku      string
		quantity int64
		minimum  int64
		price    string
	}{
		{"Tornillo 1/4", "TOR-014", 500, 100, "120.00"},
		{"Tuerca 1/4", "TUE-014", 350, 100, "80.00"},
		{"Arandela plana", "ARA-001", 40, 50, "30.00"}, // bajo mínimo a propósito
	}

	supplierID := supplier.ID
	for _, d := range demo {
		price, _ := decimal.NewFromString(d.price)
		item := &entity.Item{
			ID:           uuid.NewString(),
			Name:         d.name,
			SKU:          d.sku,
			CategoryID:   category.ID,
			LocationID:   location.ID,
			SupplierID:   &supplierID,
			Quantity:     d.quantity,
			MinimumStock: d.minimum,
			UnitPrice:    price,
			CreatedAt:    now,
			UpdatedAt:    now,
			CreatedBy:    "seed",
			UpdatedBy:    "seed",
		}
		if err := itemRepo.Create(item); err != nil {
			fatal("crear artículo %s: %v", d.sku, err)
		}
		// Stock inicial como movimiento de entrada para que el kardex cuadre.
		if d.quantity > 0 {
			movement := &entity.StockMovement{
				ID:              uuid.NewString(),
				ItemID:          item.ID,
				QuantityChanged: d.quantity,
				Type:            entity.MovementTypeIn,
				Reason:          "stock inicial",
				Timestamp:       now,
				CreatedBy:       "seed",
			}
			if err := movementRepo.Create(movement); err != nil {
				fatal("crear movimiento inicial %s: %v", d.sku, err)
			}
		}
	}

	fmt.Println("seed: datos de demostración creados (admin / admin12345)")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
