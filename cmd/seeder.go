package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

type seedRequest struct {
	Date   string
	Hours  int
	Reason string
	Status string
}

type seedUser struct {
	Email    string
	Password string
	MaxHours int
	Requests []seedRequest
}

// Sample accounts for development. Used hours are the sum of each user's
// seeded request hours, so balances line up with the request list.
var seedUsers = []seedUser{
	{
		Email:    "john@example.com",
		Password: "password",
		MaxHours: 120,
		Requests: []seedRequest{
			{Date: "01/10/2025", Hours: 16, Reason: "Vacation", Status: "approved"},
			{Date: "01/15/2025", Hours: 24, Reason: "Family Event", Status: "approved"},
			{Date: "01/20/2025", Hours: 8, Reason: "Doctor Appointment", Status: "pending"},
		},
	},
	{
		Email:    "jane@example.com",
		Password: "mypassword",
		MaxHours: 120,
		Requests: []seedRequest{
			{Date: "01/05/2025", Hours: 8, Reason: "Vacation", Status: "approved"},
			{Date: "01/08/2025", Hours: 16, Reason: "Personal Time", Status: "approved"},
			{Date: "01/12/2025", Hours: 8, Reason: "Doctor Appointment", Status: "approved"},
		},
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if seedClear {
			if _, err := db.Exec("DELETE FROM pto_requests"); err != nil {
				log.Fatalf("failed to clear pto_requests: %v", err)
			}
			if _, err := db.Exec("DELETE FROM users"); err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		for _, su := range seedUsers {
			var userID int64
			err := db.Get(&userID, "SELECT id FROM users WHERE email = $1", su.Email)
			if err == nil {
				fmt.Printf("user %s already exists, skipping\n", su.Email)
				continue
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), cfg.Security.GetBCryptCost())
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", su.Email, err)
			}

			usedHours := 0
			for _, r := range su.Requests {
				usedHours += r.Hours
			}

			err = db.Get(&userID,
				`INSERT INTO users (email, password_hash, max_pto_hours, used_pto_hours, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, now(), now()) RETURNING id`,
				su.Email, string(hash), su.MaxHours, usedHours)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", su.Email, err)
			}

			for _, r := range su.Requests {
				_, err := db.Exec(
					`INSERT INTO pto_requests (user_id, request_date, hours, reason, status, created_at)
					 VALUES ($1, $2, $3, $4, $5, now())`,
					userID, r.Date, r.Hours, r.Reason, r.Status)
				if err != nil {
					log.Fatalf("failed to insert pto request for %s: %v", su.Email, err)
				}
			}

			fmt.Printf("Seeded user %s with %d requests\n", su.Email, len(su.Requests))
		}

		fmt.Println("Seeding complete")
	},
}
