package main

import (
	"bufio"
	"fmt"
	"foreclosure_flow_go/config"
	"foreclosure_flow_go/db"
	"foreclosure_flow_go/models"
	"foreclosure_flow_go/services"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.TursoDatabaseURL, cfg.TursoAuthToken, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.Firm{}, &models.User{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")
	fmt.Println()

	fmt.Print("Firm name: ")
	firmName, _ := reader.ReadString('\n')
	firmName = strings.TrimSpace(firmName)

	fmt.Print("Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Role (admin/lawyer/staff) [staff]: ")
	role, _ := reader.ReadString('\n')
	role = strings.TrimSpace(role)
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleAdmin && role != models.RoleLawyer && role != models.RoleStaff {
		log.Fatalf("Invalid role: %s", role)
	}

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	// Validate inputs
	if firmName == "" || name == "" || email == "" || password == "" {
		log.Fatal("Firm name, name, email, and password are required")
	}

	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters long")
	}

	// Check if user already exists
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		log.Fatalf("User with email %s already exists", email)
	}

	// Reuse the firm if one with this name exists, otherwise create it
	var firm models.Firm
	if err := db.DB.Where("name = ?", firmName).First(&firm).Error; err != nil {
		firm = models.Firm{
			Name:           firmName,
			CurrencySymbol: cfg.CurrencySymbol,
			Locale:         cfg.Locale,
		}
		if err := db.DB.Create(&firm).Error; err != nil {
			log.Fatalf("Failed to create firm: %v", err)
		}
	}

	// Hash password
	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		FirmID:   &firm.ID,
		Role:     role,
		IsActive: true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Println()
	fmt.Println("✓ User created successfully!")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Name: %s\n", user.Name)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Firm: %s\n", firm.Name)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Println()
	fmt.Println("The user can now log in at http://localhost:8080/login")
}
