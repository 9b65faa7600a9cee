// Command console is a terminal operator surface for the UAC dashboard:
// look up Utopia orders, edit the contact data, and push customers into
// PowerCode through a running UAC server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/apiclient"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/dashboard"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
)

func main() {
	baseURL := os.Getenv("UAC_SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5050"
	}

	client := apiclient.New(baseURL)
	client.Token = os.Getenv("UAC_TOKEN")

	store := record.NewStore()
	dlog := dashboard.NewLog()
	lookup := dashboard.NewLookupController(store, dlog, client)
	submit := dashboard.NewSubmitController(store, dlog, client)
	edit := dashboard.NewEditSession(store, dlog)

	in := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Printf("UAC console (%s). Type 'help' for commands.\n", baseURL)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "help":
			printHelp()

		case "lookup":
			if err := lookup.Submit(ctx, arg); err != nil {
				fmt.Println(err)
			}
			printLast(dlog)

		case "edit":
			if err := edit.Open(arg); err != nil {
				fmt.Println(err)
				continue
			}
			runEdit(in, edit)

		case "send":
			confirm := dashboard.ConfirmFunc(func(name, email, plan string) bool {
				fmt.Printf("Create customer %s <%s> on plan %s? [y/N] ", name, email, plan)
				if !in.Scan() {
					return false
				}
				return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
			})
			if err := submit.Send(ctx, arg, confirm); err != nil {
				fmt.Println(err)
			}
			printLast(dlog)

		case "raw":
			dlog.ToggleRaw(arg)
			if err := dashboard.RefreshEntry(store, dlog, arg); err != nil {
				fmt.Println(err)
				continue
			}
			printEntry(dlog, arg)

		case "log":
			for _, e := range dlog.Entries() {
				fmt.Println(e.Body)
			}
			text, _ := dlog.Status()
			fmt.Printf("[status: %s]\n", text)

		case "clear":
			dlog.Clear()
			fmt.Println("Log cleared.")

		case "logout":
			if err := client.Logout(ctx); err != nil {
				log.Printf("logout: %v", err)
			}
			fmt.Println("Logged out.")
			return

		case "quit", "exit":
			return

		default:
			fmt.Printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func printHelp() {
	fmt.Print(`Commands:
  lookup <orderref>   fetch an order from Utopia
  edit <orderref>     edit the stored contact data
  send <orderref>     create the customer in PowerCode
  raw <orderref>      toggle the raw JSON inspector
  log                 print the activity log
  clear               clear the activity log
  logout              end the server session and quit
  quit                quit without logging out
`)
}

// runEdit prompts for each field. Empty input keeps the current value;
// 'cancel' aborts the session.
func runEdit(in *bufio.Scanner, edit *dashboard.EditSession) {
	fields := edit.Fields()
	prompts := []struct {
		label string
		value *string
	}{
		{"First name", &fields.FirstName},
		{"Last name", &fields.LastName},
		{"Email", &fields.Email},
		{"Phone", &fields.Phone},
		{"Address", &fields.Address},
		{"Apt", &fields.Apt},
		{"City", &fields.City},
		{"State", &fields.State},
		{"Zip", &fields.Zip},
		{"Site ID", &fields.SiteID},
	}

	for _, p := range prompts {
		fmt.Printf("%s [%s]: ", p.label, *p.value)
		if !in.Scan() {
			edit.Cancel()
			return
		}
		input := strings.TrimSpace(in.Text())
		if input == "cancel" {
			edit.Cancel()
			fmt.Println("Edit cancelled.")
			return
		}
		if input != "" {
			*p.value = input
		}
	}

	edit.SetFields(fields)
	if err := edit.Save(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Saved.")
}

func printLast(dlog *dashboard.Log) {
	entries := dlog.Entries()
	if len(entries) > 0 {
		fmt.Println(entries[len(entries)-1].Body)
	}
}

func printEntry(dlog *dashboard.Log, orderRef string) {
	for _, e := range dlog.Entries() {
		if e.OrderRef == orderRef {
			fmt.Println(e.Body)
			return
		}
	}
}
