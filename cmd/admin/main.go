// Package main provides account management utilities for operators.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/quocnhat02092003/thread-app/internal/config"
	"github.com/quocnhat02092003/thread-app/internal/database"
	"github.com/quocnhat02092003/thread-app/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go verify <user_id>       - Grant the verified badge")
		fmt.Println("  go run ./cmd/admin/main.go unverify <user_id>     - Revoke the verified badge")
		fmt.Println("  go run ./cmd/admin/main.go list-verified          - List all verified users")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "verify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go verify <user_id>")
			os.Exit(1)
		}
		setVerified(db, os.Args[2], true)

	case "unverify":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go unverify <user_id>")
			os.Exit(1)
		}
		setVerified(db, os.Args[2], false)

	case "list-verified":
		listVerified(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setVerified(db *gorm.DB, userID string, verified bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.Verified == verified {
		fmt.Printf("User %s (ID: %d) already has verified=%v\n", user.Username, user.ID, verified)
		return
	}

	user.Verified = verified
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if verified {
		fmt.Printf("✅ Granted verified badge to %s (ID: %d)\n", user.Username, user.ID)
	} else {
		fmt.Printf("✅ Revoked verified badge from %s (ID: %d)\n", user.Username, user.ID)
	}
}

func listVerified(db *gorm.DB) {
	var users []models.User
	if err := db.Where("verified = ?", true).Find(&users).Error; err != nil {
		log.Fatalf("Failed to fetch verified users: %v", err)
	}

	if len(users) == 0 {
		fmt.Println("No verified users found")
		return
	}

	fmt.Println("\n📋 Verified Users:")
	fmt.Println("─────────────────────────────────────")
	for _, u := range users {
		fmt.Printf("ID: %d | Username: %s | Display name: %s\n", u.ID, u.Username, u.DisplayName)
	}
	fmt.Println("─────────────────────────────────────")
}
