package main

import (
	"log"
	"net/http"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/auth"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/config"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/failure"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/handler"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/mailer"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/router"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/powercode"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/utopia"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/ws"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	utopiaClient := utopia.New(cfg.UtopiaEndpoint, cfg.UtopiaAPIKey)
	billingClient := powercode.New(cfg.PowerCodeURL, cfg.PowerCodeAPIKey, cfg.PowerCodeVerifySSL)

	hub := ws.NewHub()
	go hub.Run()

	// One tracker instance for both the provisioning flow and the API, so
	// file writes stay serialized behind a single lock.
	failures := failure.NewTracker(cfg.FailuresFile)

	provisioner := &handler.Provisioner{
		Utopia:  utopiaClient,
		Billing: billingClient,
		Plans: powercode.PlanIDs{
			Gbps1:   cfg.Plan1GbpsID,
			Mbps250: cfg.Plan250MbpsID,
			BondFee: cfg.PlanBondFeeID,
		},
		PortalPassword: cfg.PortalPassword,
		Mailer:         mailer.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailSender, cfg.MailRecipients),
		Failures:       failures,
		Hub:            hub,
		BillingURL:     cfg.PowerCodeURL,
	}

	r := router.New(cfg, router.Deps{
		Users:       auth.NewUsers(cfg.UsersFile),
		Utopia:      utopiaClient,
		Provisioner: provisioner,
		Failures:    failures,
		Hub:         hub,
	})

	log.Printf("Starting server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal(err)
	}
}
