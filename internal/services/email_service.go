package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/autoventa/autoventa-api/internal/config"
	"github.com/autoventa/autoventa-api/internal/models"
	"github.com/autoventa/autoventa-api/pkg/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/email/*.html
var emailTemplates embed.FS

type EmailService struct {
	config       *config.Config
	resendClient *resend.Client
}

func NewEmailService(cfg *config.Config) *EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &EmailService{
		config:       cfg,
		resendClient: client,
	}
}

func (s *EmailService) SendRecoveryCode(ctx context.Context, user *models.User, code string) error {
	data := struct {
		Name    string
		Code    string
		Minutes int
		AppURL  string
	}{
		Name:    user.FullName,
		Code:    code,
		Minutes: 15,
		AppURL:  s.config.AppURL,
	}

	body, err := s.renderTemplate("reset_code.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "Código de reseteo",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Código de reseteo", user.Email))
	return nil
}

func (s *EmailService) SendAccountCreated(ctx context.Context, user *models.User) error {
	data := struct {
		Name   string
		AppURL string
	}{
		Name:   user.FullName,
		AppURL: s.config.AppURL,
	}

	body, err := s.renderTemplate("account_created.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{user.Email},
		Subject: "¡Bienvenido a AutoVenta!",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", user.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: ¡Bienvenido a AutoVenta!", user.Email))
	return nil
}

// SendAppointmentReminder mails the assigned seller ahead of a scheduled visit
func (s *EmailService) SendAppointmentReminder(ctx context.Context, appointment *models.Appointment) error {
	vehicleName := ""
	if appointment.Vehicle != nil {
		vehicleName = appointment.Vehicle.DisplayName()
	}

	data := struct {
		SellerName  string
		LeadName    string
		LeadPhone   string
		VehicleName string
		Kind        string
		ScheduledAt string
		AppURL      string
	}{
		SellerName:  appointment.Seller.FullName,
		LeadName:    appointment.Lead.FullName,
		LeadPhone:   appointment.Lead.Phone,
		VehicleName: vehicleName,
		Kind:        appointment.Kind,
		ScheduledAt: appointment.ScheduledAt.Format("02/01/2006 15:04"),
		AppURL:      s.config.AppURL,
	}

	body, err := s.renderTemplate("appointment_reminder.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{appointment.Seller.Email},
		Subject: "Recordatorio de cita",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", appointment.Seller.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Recordatorio de cita", appointment.Seller.Email))
	return nil
}

// SendSaleConfirmation mails the buyer when their sale is registered
func (s *EmailService) SendSaleConfirmation(ctx context.Context, sale *models.Sale) error {
	if sale.Lead == nil || sale.Lead.Email == nil {
		return nil
	}

	vehicleName := ""
	if sale.Vehicle != nil {
		vehicleName = sale.Vehicle.DisplayName()
	}

	data := struct {
		Name          string
		VehicleName   string
		SalePrice     string
		PaymentMethod string
		SaleDate      string
		SellerName    string
		AppURL        string
	}{
		Name:          sale.Lead.FullName,
		VehicleName:   vehicleName,
		SalePrice:     fmt.Sprintf("L%.2f", sale.SalePrice),
		PaymentMethod: sale.PaymentMethod,
		SaleDate:      sale.SaleDate.Format("02/01/2006"),
		SellerName:    sale.Seller.FullName,
		AppURL:        s.config.AppURL,
	}

	body, err := s.renderTemplate("sale_confirmation.html", data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.config.FromEmail,
		To:      []string{*sale.Lead.Email},
		Subject: "Confirmación de compra",
		Html:    body,
	}
	_, err = s.resendClient.Emails.Send(params)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send email to %s: %v", *sale.Lead.Email, err))
		return err
	}

	logger.Info(fmt.Sprintf("📧 [Email Sent] To: %s | Subject: Confirmación de compra", *sale.Lead.Email))
	return nil
}

func (s *EmailService) renderTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(emailTemplates, "templates/email/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
