package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

// SubscriberPageSize is the page size used to walk the subscriber list
const SubscriberPageSize = 100

const EventSubscribersChanged = "subscribers_changed"

// maxConcurrentDeletes bounds the parallel deletes of one batch
const maxConcurrentDeletes = 10

// SubscriberService manages newsletter subscribers
type SubscriberService struct {
	subscribers *repositories.SubscriberRepository
	mailer      MailSender
	events      EventPublisher
}

func NewSubscriberService(subscribers *repositories.SubscriberRepository, mailer MailSender, events EventPublisher) *SubscriberService {
	return &SubscriberService{subscribers: subscribers, mailer: mailer, events: events}
}

// FetchAll walks the subscriber list page by page until a short page
func (s *SubscriberService) FetchAll(ctx context.Context) ([]models.Subscriber, error) {
	all := []models.Subscriber{}
	offset := 0
	for {
		page, n, err := s.subscribers.Page(ctx, offset, SubscriberPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch subscribers: %w", err)
		}
		all = append(all, page...)
		if n < SubscriberPageSize {
			return all, nil
		}
		offset += n
	}
}

// DeleteSelected deletes the given subscribers concurrently. The first
// failure is returned once every delete has finished.
func (s *SubscriberService) DeleteSelected(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no subscribers selected", models.ErrInvalidInput)
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentDeletes)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := s.subscribers.Delete(ctx, id); err != nil {
				return fmt.Errorf("subscriber %s: %w", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to delete subscribers: %w", err)
	}

	publish(s.events, EventSubscribersChanged, "Subscribers deleted", map[string]interface{}{"ids": ids})
	return nil
}

// DeleteAll deletes every subscriber and returns how many were removed
func (s *SubscriberService) DeleteAll(ctx context.Context) (int, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, nil
	}
	ids := make([]string, len(all))
	for i, sub := range all {
		ids[i] = sub.ID
	}
	if err := s.DeleteSelected(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Emails returns the non-empty addresses of the selected subscribers
func (s *SubscriberService) Emails(ctx context.Context, ids []string) ([]string, error) {
	all, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	emails := []string{}
	for _, sub := range all {
		if selected[sub.ID] && strings.TrimSpace(sub.Email) != "" {
			emails = append(emails, strings.TrimSpace(sub.Email))
		}
	}
	return emails, nil
}

// MailtoLink builds a mailto link with every address on Bcc
func MailtoLink(emails []string, subject, body string) string {
	if subject == "" {
		subject = "Your Subject Here"
	}
	if body == "" {
		body = "Your message here."
	}
	return fmt.Sprintf("mailto:?bcc=%s&subject=%s&body=%s",
		encodeComponent(strings.Join(emails, ",")),
		encodeComponent(subject),
		encodeComponent(body),
	)
}

// encodeComponent escapes s for use inside a mailto query, spaces as %20
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Mailto returns the mailto link for the selected subscribers, or a warning
// notice when none of them has an address
func (s *SubscriberService) Mailto(ctx context.Context, req models.SubscriberMailRequest) (string, []models.Notice, error) {
	emails, err := s.Emails(ctx, req.IDs)
	if err != nil {
		return "", nil, err
	}
	if len(emails) == 0 {
		return "", []models.Notice{models.WarningNotice("No email addresses found for selected subscribers")}, nil
	}
	return MailtoLink(emails, req.Subject, req.Body), nil, nil
}

// Broadcast emails the selected subscribers through SMTP
func (s *SubscriberService) Broadcast(ctx context.Context, req models.SubscriberMailRequest) (int, []models.Notice, error) {
	if s.mailer == nil {
		return 0, nil, fmt.Errorf("%w: email delivery is not configured", models.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Subject) == "" {
		return 0, nil, fmt.Errorf("%w: subject is required", models.ErrInvalidInput)
	}
	emails, err := s.Emails(ctx, req.IDs)
	if err != nil {
		return 0, nil, err
	}
	if len(emails) == 0 {
		return 0, []models.Notice{models.WarningNotice("No email addresses found for selected subscribers")}, nil
	}
	if err := s.mailer.SendBcc(emails, req.Subject, req.Body); err != nil {
		return 0, nil, err
	}
	return len(emails), nil, nil
}
