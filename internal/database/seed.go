package database

import (
	"fmt"
	"log"
	"time"

	"github.com/docgestor/docgestor/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDemo inserts the demo accounts and employees used by local
// development environments. Existing rows (matched by email) are kept.
func SeedDemo(db *gorm.DB) error {
	users := []struct {
		name, email, password, role string
	}{
		{"Administrador", "admin@docgestor.com", "admin123", "admin"},
		{"Usuário Teste", "user@docgestor.com", "user123", "user"},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		user := models.User{Name: u.name, Email: u.email, Password: string(hash), Role: u.role}
		if err := db.Where("email = ?", u.email).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	employees := []models.Employee{
		{Name: "João Silva", Email: "joao.silva@empresa.com", CPF: "12345678901", Position: "Desenvolvedor", Department: "TI", HireDate: time.Now()},
		{Name: "Maria Santos", Email: "maria.santos@empresa.com", CPF: "98765432109", Position: "Analista de RH", Department: "Recursos Humanos", HireDate: time.Now()},
		{Name: "Pedro Oliveira", Email: "pedro.oliveira@empresa.com", CPF: "11122233344", Position: "Gerente de Vendas", Department: "Vendas", HireDate: time.Now()},
	}
	for i := range employees {
		if err := db.Where("email = ?", employees[i].Email).FirstOrCreate(&employees[i]).Error; err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", employees[i].Email, err)
		}
	}

	log.Println("Demo seed completed")
	return nil
}
