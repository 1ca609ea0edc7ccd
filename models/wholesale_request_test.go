package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWholesaleRequest_Normalize(t *testing.T) {
	req := WholesaleRequest{
		ID:              "r1",
		UserID:          " u1 ",
		Status:          "",
		RejectionReason: "stale",
		AccountType:     "Individual",
		TradingName:     "Acme",
	}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, WholesalePending, req.Status)
	assert.Empty(t, req.RejectionReason)
	assert.Equal(t, AccountIndividual, req.AccountType)
	assert.Empty(t, req.TradingName)
	assert.NotNil(t, req.Attachments)

	business := WholesaleRequest{UserID: "u2", Status: "REJECTED", RejectionReason: "blurry", AccountType: "business", TradingName: "Acme"}
	require.NoError(t, business.Normalize())
	assert.Equal(t, WholesaleRejected, business.Status)
	assert.Equal(t, "blurry", business.RejectionReason)
	assert.Equal(t, "Acme", business.TradingName)
}

func TestWholesaleRequest_NormalizeRejectsBadRecords(t *testing.T) {
	noUser := WholesaleRequest{ID: "r1", Status: WholesalePending}
	assert.ErrorIs(t, noUser.Normalize(), ErrInvalidRecord)

	badStatus := WholesaleRequest{ID: "r2", UserID: "u1", Status: "archived"}
	assert.ErrorIs(t, badStatus.Normalize(), ErrInvalidRecord)
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []WholesaleAction{ActionApprove, ActionReject}, AvailableActions(WholesalePending))
	assert.Equal(t, []WholesaleAction{ActionReject}, AvailableActions(WholesaleApproved))
	assert.Equal(t, []WholesaleAction{ActionUndo}, AvailableActions(WholesaleRejected))
	assert.Nil(t, AvailableActions("archived"))
}

func TestUnknownUser(t *testing.T) {
	user := UnknownUser("u9")
	assert.Equal(t, UserProfile{UserID: "u9", Name: "Unknown", Email: ""}, user)
}
