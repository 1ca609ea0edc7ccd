package models

import (
	"fmt"
	"strings"
)

// WholesaleStatus is the approval state of a wholesale account request
type WholesaleStatus string

const (
	WholesalePending  WholesaleStatus = "pending"
	WholesaleApproved WholesaleStatus = "approved"
	WholesaleRejected WholesaleStatus = "rejected"
)

func (s WholesaleStatus) Valid() bool {
	switch s {
	case WholesalePending, WholesaleApproved, WholesaleRejected:
		return true
	}
	return false
}

type AccountType string

const (
	AccountIndividual AccountType = "individual"
	AccountBusiness   AccountType = "business"
)

// WholesaleAction is an operation the dashboard may offer on a request row
type WholesaleAction string

const (
	ActionApprove WholesaleAction = "approve"
	ActionReject  WholesaleAction = "reject"
	ActionUndo    WholesaleAction = "undo"
)

// WholesaleRequest is an applicant's request for a wholesale account.
// Attachments hold file store ids; positions 0 and 1 are the photo ID and
// the utility bill.
type WholesaleRequest struct {
	ID           string      `json:"id" bson:"id,omitempty"`
	UserID       string      `json:"userId" bson:"userId"`
	FirstName    string      `json:"firstName" bson:"firstName"`
	LastName     string      `json:"lastName" bson:"lastName"`
	Address      string      `json:"address,omitempty" bson:"address,omitempty"`
	MobileNumber string      `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty"`
	AccountType  AccountType `json:"accountType" bson:"accountType"`

	// Business fields, only present for business accounts
	TradingName               string `json:"tradingName,omitempty" bson:"tradingName,omitempty"`
	CompanyRegisteredName     string `json:"companyRegisteredName,omitempty" bson:"companyRegisteredName,omitempty"`
	CompanyRegistrationNumber string `json:"companyRegistrationNumber,omitempty" bson:"companyRegistrationNumber,omitempty"`
	PositionInBusiness        string `json:"positionInBusiness,omitempty" bson:"positionInBusiness,omitempty"`
	BusinessDescription       string `json:"businessDescription,omitempty" bson:"businessDescription,omitempty"`

	Attachments     []string        `json:"attachments" bson:"attachments"`
	Status          WholesaleStatus `json:"status" bson:"status"`
	RejectionReason string          `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
}

// Normalize checks a request decoded from the store. A missing status is
// treated as pending; an unknown status or a missing user reference makes
// the record invalid.
func (r *WholesaleRequest) Normalize() error {
	r.UserID = strings.TrimSpace(r.UserID)
	if r.UserID == "" {
		return fmt.Errorf("%w: wholesale request %s has no userId", ErrInvalidRecord, r.ID)
	}

	status := WholesaleStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if status == "" {
		status = WholesalePending
	}
	if !status.Valid() {
		return fmt.Errorf("%w: wholesale request %s has unknown status %q", ErrInvalidRecord, r.ID, r.Status)
	}
	r.Status = status
	if r.Status != WholesaleRejected {
		r.RejectionReason = ""
	}

	if AccountType(strings.ToLower(string(r.AccountType))) == AccountBusiness {
		r.AccountType = AccountBusiness
	} else {
		r.AccountType = AccountIndividual
		r.TradingName = ""
		r.CompanyRegisteredName = ""
		r.CompanyRegistrationNumber = ""
		r.PositionInBusiness = ""
		r.BusinessDescription = ""
	}

	if r.Attachments == nil {
		r.Attachments = []string{}
	}
	return nil
}

// AvailableActions lists the transitions the dashboard offers for a status.
// The transition handler itself accepts every transition.
func AvailableActions(status WholesaleStatus) []WholesaleAction {
	switch status {
	case WholesalePending:
		return []WholesaleAction{ActionApprove, ActionReject}
	case WholesaleRejected:
		return []WholesaleAction{ActionUndo}
	case WholesaleApproved:
		return []WholesaleAction{ActionReject}
	}
	return nil
}

// WholesaleRequestRow is a request joined with its applicant's profile
type WholesaleRequestRow struct {
	Request WholesaleRequest  `json:"request"`
	User    UserProfile       `json:"user"`
	Actions []WholesaleAction `json:"actions"`
}

// WholesaleRequestDetails is a single request with resolved attachments
type WholesaleRequestDetails struct {
	Request     WholesaleRequest `json:"request"`
	User        UserProfile      `json:"user"`
	Attachments []Attachment     `json:"attachments"`
}

// Attachment is a labeled, previewable stored file
type Attachment struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// RejectRequest is the body of a reject call; the reason is optional
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}
