package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"

	"rental-dashboard/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendWarningSummary(ctx context.Context, recipients []string, records []domain.RentalRecord) error {
	if len(recipients) == 0 || len(records) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", fmt.Sprintf("Lease Expiry Warning - %d record(s) need follow-up", len(records)))

	var b strings.Builder
	b.WriteString("The following rental records have leases ending soon:\n\n")
	for _, rec := range records {
		periode := ""
		if rec.PeriodeAkhir != nil {
			periode = *rec.PeriodeAkhir
		}
		fmt.Fprintf(&b, "  - %s / TID %s / %s (KC %s), lease ends %s\n",
			rec.JenisMesin, rec.TID, rec.Lokasi, rec.KCSupervisi, periode)
	}
	b.WriteString("\nPlease review them on the rental dashboard.\n")
	m.SetBody("text/plain", b.String())

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send warning summary: %w", err)
	}
	return nil
}
