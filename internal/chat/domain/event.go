package domain

// DeletedMessage chat:delete_message body
type DeletedMessage struct {
	ID        string `json:"id"`
	ChannelID string `json:"channelId"`
}

// ReactionChanged chat:reaction body
type ReactionChanged struct {
	MsgID     string     `json:"msgId"`
	ChannelID string     `json:"channelId"`
	Reactions []Reaction `json:"reactions"`
}

// ReadUpdated chat:read body
type ReadUpdated struct {
	UserID            string `json:"userId"`
	LastReadMessageID string `json:"lastReadMessageId"`
	ChannelID         string `json:"channelId"`
}

// PinChanged group:pin body, PinnedMessageID nil after unpin
type PinChanged struct {
	GroupID         string  `json:"groupId"`
	PinnedMessageID *string `json:"pinnedMessageId"`
}
