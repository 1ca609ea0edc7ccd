package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

// EventWholesaleRequestUpdated is published after every successful transition
const EventWholesaleRequestUpdated = "wholesale_request_updated"

// TransitionResult reports a completed transition. View is the refreshed
// listing, or nil when the refresh failed.
type TransitionResult struct {
	Request       models.WholesaleRequest `json:"request"`
	MirrorSkipped bool                    `json:"mirrorSkipped"`
	View          *WholesaleView          `json:"-"`
	Notices       []models.Notice         `json:"notices"`
}

// WholesaleTransitions approves and rejects wholesale requests and mirrors
// the outcome onto the applicant's profile. The two writes are not atomic;
// in strict mode a failed mirror restores the request's previous state.
type WholesaleTransitions struct {
	requests   *repositories.WholesaleRequestRepository
	users      *repositories.UserRepository
	aggregator *WholesaleAggregator
	events     EventPublisher
	push       PushSender
	strict     bool
}

func NewWholesaleTransitions(
	requests *repositories.WholesaleRequestRepository,
	users *repositories.UserRepository,
	aggregator *WholesaleAggregator,
	events EventPublisher,
	push PushSender,
	strict bool,
) *WholesaleTransitions {
	return &WholesaleTransitions{
		requests:   requests,
		users:      users,
		aggregator: aggregator,
		events:     events,
		push:       push,
		strict:     strict,
	}
}

// Approve marks the request approved, clears any rejection reason and sets
// the applicant's wholesale flag
func (t *WholesaleTransitions) Approve(ctx context.Context, id string) (*TransitionResult, error) {
	return t.transition(ctx, id, models.WholesaleApproved, "")
}

// Reject marks the request rejected with an optional reason and clears the
// applicant's wholesale flag
func (t *WholesaleTransitions) Reject(ctx context.Context, id, reason string) (*TransitionResult, error) {
	return t.transition(ctx, id, models.WholesaleRejected, reason)
}

func (t *WholesaleTransitions) transition(ctx context.Context, id string, status models.WholesaleStatus, reason string) (*TransitionResult, error) {
	action := actionName(status)

	var prior models.WholesaleRequest
	if t.strict {
		var err error
		if prior, err = t.requests.Get(ctx, id); err != nil {
			wholesaleTransitionsTotal.WithLabelValues(action, "failed").Inc()
			return nil, fmt.Errorf("failed to read wholesale request %s: %w", id, err)
		}
	}

	updated, err := t.requests.UpdateStatus(ctx, id, status, reason)
	if err != nil {
		wholesaleTransitionsTotal.WithLabelValues(action, "failed").Inc()
		return nil, fmt.Errorf("failed to %s wholesale request %s: %w", action, id, err)
	}

	result := &TransitionResult{Request: updated}

	mirrorErr := t.mirror(ctx, updated.UserID, status == models.WholesaleApproved)
	switch {
	case mirrorErr == nil:
	case errors.Is(mirrorErr, errNoProfile) && !t.strict:
		logrus.WithFields(logrus.Fields{
			"requestId": id,
			"userId":    updated.UserID,
		}).Warn("User not found, wholesale flag not updated")
		result.MirrorSkipped = true
	default:
		if t.strict {
			t.compensate(ctx, prior)
			wholesaleTransitionsTotal.WithLabelValues(action, "compensated").Inc()
			return nil, fmt.Errorf("%w: request %s: %v", models.ErrMirrorFailed, id, mirrorErr)
		}
		wholesaleTransitionsTotal.WithLabelValues(action, "mirror_failed").Inc()
		return nil, fmt.Errorf("failed to update wholesale flag for user %s: %w", updated.UserID, mirrorErr)
	}

	outcome := "ok"
	if result.MirrorSkipped {
		outcome = "mirror_skipped"
	}
	wholesaleTransitionsTotal.WithLabelValues(action, outcome).Inc()

	if status == models.WholesaleApproved {
		result.Notices = append(result.Notices, models.SuccessNotice("Request approved successfully."))
	} else {
		result.Notices = append(result.Notices, models.SuccessNotice("Request rejected successfully."))
	}
	if result.MirrorSkipped {
		result.Notices = append(result.Notices, models.WarningNotice(fmt.Sprintf("User with userId %s not found.", updated.UserID)))
	}

	publish(t.events, EventWholesaleRequestUpdated, "Wholesale request "+string(status), updated)
	t.notifyApplicant(ctx, updated)

	view, err := t.aggregator.FetchAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error fetching wholesale requests after transition")
		result.Notices = append(result.Notices, models.ErrorNotice("Failed to fetch wholesale requests."))
	} else {
		result.View = view
	}

	return result, nil
}

var errNoProfile = errors.New("no user profile")

// mirror sets the wholesale flag on the first profile matching userID
func (t *WholesaleTransitions) mirror(ctx context.Context, userID string, approved bool) error {
	profiles, total, err := t.users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if total == 0 || len(profiles) == 0 {
		return errNoProfile
	}
	return t.users.SetWholesaleApproved(ctx, profiles[0].ID, approved)
}

func (t *WholesaleTransitions) compensate(ctx context.Context, prior models.WholesaleRequest) {
	_, err := t.requests.UpdateStatus(ctx, prior.ID, prior.Status, prior.RejectionReason)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"requestId": prior.ID,
			"status":    prior.Status,
		}).WithError(err).Error("Failed to restore wholesale request after mirror failure")
		return
	}
	logrus.WithField("requestId", prior.ID).Warn("Restored wholesale request after mirror failure")
}

func (t *WholesaleTransitions) notifyApplicant(ctx context.Context, req models.WholesaleRequest) {
	if t.push == nil {
		return
	}
	title := "Wholesale account approved"
	body := "Your wholesale account request has been approved."
	if req.Status == models.WholesaleRejected {
		title = "Wholesale account request rejected"
		body = "Your wholesale account request has been rejected."
		if req.RejectionReason != "" {
			body += " Reason: " + req.RejectionReason
		}
	}
	err := t.push.SendToTopic(ctx, UserTopic(req.UserID), title, body, map[string]string{
		"type":      EventWholesaleRequestUpdated,
		"requestId": req.ID,
		"status":    string(req.Status),
	})
	if err != nil {
		logrus.WithField("userId", req.UserID).WithError(err).Warn("Error sending wholesale push notification")
	}
}

func actionName(status models.WholesaleStatus) string {
	if status == models.WholesaleApproved {
		return "approve"
	}
	return "reject"
}
