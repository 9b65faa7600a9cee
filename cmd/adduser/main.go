// Command adduser manages the operator accounts in users.json.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/auth"
)

func main() {
	usersFile := flag.String("file", "users.json", "Path to the users file")
	action := flag.String("action", "list", "One of: add, reset, delete, list")
	username := flag.String("username", "", "Account username")
	password := flag.String("password", "", "Account password (for add/reset)")
	admin := flag.Bool("admin", false, "Allow the account to view the config page (for add)")
	flag.Parse()

	if v := os.Getenv("USERS_FILE"); v != "" && *usersFile == "users.json" {
		*usersFile = v
	}

	users := auth.NewUsers(*usersFile)

	switch *action {
	case "add":
		requireArgs(*username, *password)
		if err := users.Add(*username, *password, *admin); err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				log.Fatalf("User '%s' already exists", *username)
			}
			log.Fatalf("Failed to add user: %v", err)
		}
		log.Printf("User '%s' added successfully (can_view_config: %t)", *username, *admin)

	case "reset":
		requireArgs(*username, *password)
		if err := users.SetPassword(*username, *password); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				log.Fatalf("User '%s' not found", *username)
			}
			log.Fatalf("Failed to reset password: %v", err)
		}
		log.Printf("Password for '%s' has been reset", *username)

	case "delete":
		requireArgs(*username, "-")
		if err := users.Delete(*username); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				log.Fatalf("User '%s' not found", *username)
			}
			log.Fatalf("Failed to delete user: %v", err)
		}
		log.Printf("User '%s' deleted", *username)

	case "list":
		list, err := users.List()
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		if len(list) == 0 {
			fmt.Println("No users found.")
			return
		}
		fmt.Println("All users:")
		for _, u := range list {
			fmt.Printf("- %s (can_view_config: %t)\n", u.Username, u.CanViewConfig)
		}

	default:
		log.Fatalf("Unknown action %q (want add, reset, delete, or list)", *action)
	}
}

func requireArgs(values ...string) {
	for _, v := range values {
		if v == "" {
			flag.Usage()
			os.Exit(2)
		}
	}
}
