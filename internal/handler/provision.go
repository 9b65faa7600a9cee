package handler

import (
	"context"
	"fmt"
	"log"

	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/mailer"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/record"
	"github.com/OleksSobol/Utopia-Account-Creation---UAC/internal/upstream/powercode"
)

// UtopiaClient defines the Utopia API methods the handlers need.
// Satisfied by *utopia.Client; narrow interface for testability.
type UtopiaClient interface {
	ContractLookup(ctx context.Context, orderRef string) (*record.OrderRecord, error)
	ContractDownload(ctx context.Context, orderRef string) ([]byte, error)
}

// BillingClient defines the PowerCode API methods the provisioning flow
// needs. Satisfied by *powercode.Client; narrow interface for testability.
type BillingClient interface {
	SearchCustomers(ctx context.Context, query string) ([]powercode.SearchResult, error)
	CreateCustomer(ctx context.Context, info powercode.CustomerInfo, portalPassword string) (string, error)
	AddCustomerService(ctx context.Context, customerID string, serviceID int) error
	CreateTicket(ctx context.Context, customerID, customerName string) (string, error)
}

// FailureRecorder records creation attempts that could not be completed.
// Satisfied by *failure.Tracker.
type FailureRecorder interface {
	Record(orderRef, errorMessage, failureType string, customerData *record.OrderRecord) (string, error)
}

// Broadcaster pushes activity events to connected dashboards.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	BroadcastJSON(eventType string, payload any)
}

// DuplicateCustomerError reports that the order's customer already has a
// billing account, so no new one was created.
type DuplicateCustomerError struct {
	CustomerID string
}

func (e *DuplicateCustomerError) Error() string {
	return fmt.Sprintf("customer already exists in PowerCode (ID %s)", e.CustomerID)
}

// ProvisionResult is the outcome of a completed provisioning run.
type ProvisionResult struct {
	CustomerID  string
	ServicePlan string
	Ticket      string
}

// Provisioner pushes a looked-up order into PowerCode: duplicate check,
// account creation, service plans, onboarding ticket, notification email.
type Provisioner struct {
	Utopia         UtopiaClient
	Billing        BillingClient
	Plans          powercode.PlanIDs
	PortalPassword string
	Mailer         mailer.Mailer
	Failures       FailureRecorder
	Hub            Broadcaster

	// BillingURL is the PowerCode base URL used to build management links
	// in notification mail.
	BillingURL string
}

// Provision runs the full creation flow for a looked-up order. A duplicate
// search hit or a creation failure returns an error; plan, ticket, and mail
// problems after the account exists are logged but do not fail the run.
func (p *Provisioner) Provision(ctx context.Context, orderRef string, rec *record.OrderRecord, planLabel string) (*ProvisionResult, error) {
	if rec == nil || rec.Customer == nil || rec.Address == nil {
		return nil, fmt.Errorf("order %s has no customer or address data", orderRef)
	}
	if planLabel == "" {
		planLabel = record.ServicePlan(rec)
	}

	info := powercode.CustomerInfo{
		FirstName: rec.Customer.FirstName,
		LastName:  rec.Customer.LastName,
		Email:     rec.Customer.Email,
		Phone:     rec.Customer.Phone,
		Address:   rec.Address.Address,
		City:      rec.Address.City,
		State:     rec.Address.State,
		Zip:       rec.Address.Zip,
		SiteID:    rec.Address.SiteID,
		OrderRef:  orderRef,
	}

	fullName := info.FirstName + " " + info.LastName
	existing, err := p.Billing.SearchCustomers(ctx, fullName)
	if err != nil {
		p.recordFailure(orderRef, fmt.Sprintf("duplicate search failed: %v", err), "customer_creation", rec)
		return nil, fmt.Errorf("search customers: %w", err)
	}
	if len(existing) > 0 {
		dup := &DuplicateCustomerError{CustomerID: existing[0].CustomerID.String()}
		p.sendMail(ctx, orderRef,
			fmt.Sprintf("Failed to create customer: Customer exist, Powercode ID %s", dup.CustomerID),
			formatContactInfo(info))
		return nil, dup
	}

	customerID, err := p.Billing.CreateCustomer(ctx, info, p.PortalPassword)
	if err != nil {
		p.recordFailure(orderRef, err.Error(), "customer_creation", rec)
		p.sendMail(ctx, orderRef,
			fmt.Sprintf("Failed to create customer: %s", fullName),
			"Check Powercode Logs. \n"+formatContactInfo(info))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	if err := p.Billing.AddCustomerService(ctx, customerID, p.Plans.ServicePlanID(planLabel)); err != nil {
		log.Printf("ERROR: failed to add service plan %q for customer %s: %v", planLabel, customerID, err)
		p.recordFailure(orderRef, fmt.Sprintf("service plan: %v", err), "service_plan", rec)
	}
	if p.Plans.BondFee != 0 {
		if err := p.Billing.AddCustomerService(ctx, customerID, p.Plans.BondFee); err != nil {
			log.Printf("ERROR: failed to add bond fee for customer %s: %v", customerID, err)
			p.recordFailure(orderRef, fmt.Sprintf("bond fee: %v", err), "service_plan", rec)
		}
	}

	ticketID, err := p.Billing.CreateTicket(ctx, customerID, info.FirstName)
	if err != nil {
		log.Printf("ERROR: failed to create onboarding ticket for customer %s: %v", customerID, err)
	}

	p.sendMail(ctx, orderRef,
		fmt.Sprintf("Customer created - Powercode#%s", customerID),
		fmt.Sprintf("Powercode id: %s:444/index.php?q&page=/customers/_view.php&customerid=%s \n%s",
			p.BillingURL, customerID, formatContactInfo(info)))

	if p.Hub != nil {
		p.Hub.BroadcastJSON("customer.created", map[string]string{
			"orderref":     orderRef,
			"customer_id":  customerID,
			"service_plan": planLabel,
			"ticket":       ticketID,
		})
	}

	return &ProvisionResult{CustomerID: customerID, ServicePlan: planLabel, Ticket: ticketID}, nil
}

func (p *Provisioner) recordFailure(orderRef, msg, failureType string, rec *record.OrderRecord) {
	if p.Failures == nil {
		return
	}
	if _, err := p.Failures.Record(orderRef, msg, failureType, rec); err != nil {
		log.Printf("ERROR: failed to record failure for order %s: %v", orderRef, err)
	}
}

// sendMail delivers a notification, attaching the signed contract PDF when
// Utopia can produce one. Mail problems never fail the provisioning run.
func (p *Provisioner) sendMail(ctx context.Context, orderRef, subject, body string) {
	if p.Mailer == nil {
		return
	}
	email := mailer.Email{Subject: subject, Body: body}
	if p.Utopia != nil && orderRef != "" {
		if pdf, err := p.Utopia.ContractDownload(ctx, orderRef); err == nil {
			email.Attachment = &mailer.Attachment{
				Filename:    orderRef + ".pdf",
				ContentType: "application/pdf",
				Content:     pdf,
			}
		} else {
			log.Printf("ERROR: failed to download contract for order %s: %v", orderRef, err)
		}
	}
	if err := p.Mailer.Send(ctx, email); err != nil {
		log.Printf("ERROR: failed to send notification %q: %v", subject, err)
	}
}

func formatContactInfo(info powercode.CustomerInfo) string {
	return fmt.Sprintf("Name: %s %s\nEmail: %s\nPhone: %s\nAddress: %s\nCity: %s\nState: %s\nZIP: %s\nSite ID: %s\nOrder Ref: %s",
		info.FirstName, info.LastName, info.Email, info.Phone, info.Address,
		info.City, info.State, info.Zip, info.SiteID, info.OrderRef)
}
