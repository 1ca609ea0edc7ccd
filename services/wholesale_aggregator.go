package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
)

// DefaultFetchLimit caps both the request page and the batched user lookup
const DefaultFetchLimit = 100

// WholesaleView is a consistent snapshot of the requests and their
// applicants, built by one fetch cycle
type WholesaleView struct {
	Requests      []models.WholesaleRequest
	UsersByUserID map[string]models.UserProfile
}

// User returns the profile for userID, falling back to the placeholder
func (v *WholesaleView) User(userID string) models.UserProfile {
	if user, ok := v.UsersByUserID[userID]; ok {
		return user
	}
	return models.UnknownUser(userID)
}

// Filter returns the rows for a dashboard tab ("pending", "approved",
// "rejected" or "all") whose applicant name contains search, ignoring case
func (v *WholesaleView) Filter(tab, search string) []models.WholesaleRequestRow {
	tab = strings.ToLower(strings.TrimSpace(tab))
	search = strings.ToLower(strings.TrimSpace(search))

	rows := make([]models.WholesaleRequestRow, 0, len(v.Requests))
	for _, req := range v.Requests {
		if tab != "" && tab != "all" && string(req.Status) != tab {
			continue
		}
		user := v.User(req.UserID)
		if search != "" && !strings.Contains(strings.ToLower(user.Name), search) {
			continue
		}
		rows = append(rows, models.WholesaleRequestRow{
			Request: req,
			User:    user,
			Actions: models.AvailableActions(req.Status),
		})
	}
	return rows
}

// WholesaleAggregator joins wholesale requests with their applicants' profiles
type WholesaleAggregator struct {
	requests *repositories.WholesaleRequestRepository
	users    *repositories.UserRepository
	limit    int
}

func NewWholesaleAggregator(requests *repositories.WholesaleRequestRepository, users *repositories.UserRepository, limit int) *WholesaleAggregator {
	if limit <= 0 {
		limit = DefaultFetchLimit
	}
	return &WholesaleAggregator{requests: requests, users: users, limit: limit}
}

// FetchAll reads the requests, then resolves every distinct applicant with a
// single batched lookup. Any read failure aborts the whole fetch. Requests
// whose applicant is missing get a placeholder profile.
func (a *WholesaleAggregator) FetchAll(ctx context.Context) (*WholesaleView, error) {
	requests, err := a.requests.List(ctx, a.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wholesale requests: %w", err)
	}

	userIDs := distinctUserIDs(requests)

	profiles, err := a.users.FindByUserIDs(ctx, userIDs, a.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wholesale applicants: %w", err)
	}

	// Duplicate profiles for one userId: the last one read wins
	found := make(map[string]models.UserProfile, len(profiles))
	for _, profile := range profiles {
		found[profile.UserID] = profile
	}

	usersByUserID := make(map[string]models.UserProfile, len(userIDs))
	for _, userID := range userIDs {
		if profile, ok := found[userID]; ok {
			usersByUserID[userID] = profile
			continue
		}
		logrus.WithField("userId", userID).Warn("Wholesale applicant not found")
		wholesaleJoinMissesTotal.Inc()
		usersByUserID[userID] = models.UnknownUser(userID)
	}

	return &WholesaleView{Requests: requests, UsersByUserID: usersByUserID}, nil
}

// distinctUserIDs returns the userIds of requests in first-seen order
func distinctUserIDs(requests []models.WholesaleRequest) []string {
	seen := make(map[string]bool, len(requests))
	ids := make([]string, 0, len(requests))
	for _, req := range requests {
		if seen[req.UserID] {
			continue
		}
		seen[req.UserID] = true
		ids = append(ids, req.UserID)
	}
	return ids
}

// Get returns one request with its applicant's profile
func (a *WholesaleAggregator) Get(ctx context.Context, id string) (models.WholesaleRequest, models.UserProfile, error) {
	req, err := a.requests.Get(ctx, id)
	if err != nil {
		return models.WholesaleRequest{}, models.UserProfile{}, err
	}
	profiles, _, err := a.users.FindByUserID(ctx, req.UserID)
	if err != nil {
		return models.WholesaleRequest{}, models.UserProfile{}, fmt.Errorf("failed to fetch wholesale applicant: %w", err)
	}
	if len(profiles) == 0 {
		logrus.WithField("userId", req.UserID).Warn("Wholesale applicant not found")
		wholesaleJoinMissesTotal.Inc()
		return req, models.UnknownUser(req.UserID), nil
	}
	return req, profiles[len(profiles)-1], nil
}
