package domain

import "taskflow_realtime/pkg"

// GroupType group channel kind
type GroupType string

const (
	// GroupTypeText text channel
	GroupTypeText GroupType = "text"
	// GroupTypeVoice voice channel
	GroupTypeVoice GroupType = "voice"
)

// Privacy group visibility
type Privacy string

const (
	// PrivacyPublic readable by the whole organization
	PrivacyPublic Privacy = "public"
	// PrivacyPrivate members only
	PrivacyPrivate Privacy = "private"
)

// Group chat group, also the broadcast room id of its events
type Group struct {
	ID              string        `bson:"_id" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Type            GroupType     `bson:"type" json:"type"`
	Privacy         Privacy       `bson:"privacy" json:"privacy"`
	Members         []string      `bson:"members" json:"members"`
	OrganizationID  string        `bson:"organization_id" json:"organizationId"`
	CreatedBy       string        `bson:"created_by" json:"createdBy"`
	PinnedMessageID *string       `bson:"pinned_message_id" json:"pinnedMessageId"`
	LastReadBy      []ReadReceipt `bson:"last_read_by,omitempty" json:"lastReadBy,omitempty"`
}

// ReadReceipt last message a user has read in a group
type ReadReceipt struct {
	UserID            string `bson:"user_id" json:"userId"`
	LastReadMessageID string `bson:"last_read_message_id" json:"lastReadMessageId"`
}

// CanAccess public groups are open, private groups need membership
func (g *Group) CanAccess(userID string) bool {
	return g.Privacy != PrivacyPrivate || pkg.Contains(g.Members, userID)
}

// SetReadReceipt replace userID's receipt
func (g *Group) SetReadReceipt(userID, lastReadMessageID string) {
	receipts := make([]ReadReceipt, 0, len(g.LastReadBy)+1)
	for _, r := range g.LastReadBy {
		if r.UserID != userID {
			receipts = append(receipts, r)
		}
	}
	g.LastReadBy = append(receipts, ReadReceipt{UserID: userID, LastReadMessageID: lastReadMessageID})
}
