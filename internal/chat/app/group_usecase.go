package app

import (
	"context"
	"errors"
	"strings"

	"taskflow_realtime/internal/chat/domain"
	"taskflow_realtime/internal/chat/repository"
	rtdomain "taskflow_realtime/internal/realtime/domain"
	errprocess "taskflow_realtime/pkg/err"
)

// GroupUseCase group level state: read receipts and the pinned message
type GroupUseCase struct {
	groups  repository.GroupRepository
	members repository.MemberRepository
	emitter RoomEmitter
}

// NewGroupUseCase create GroupUseCase
func NewGroupUseCase(groups repository.GroupRepository, members repository.MemberRepository, emitter RoomEmitter) *GroupUseCase {
	return &GroupUseCase{groups: groups, members: members, emitter: emitter}
}

// MarkRead replace actor's read receipt and broadcast chat:read
func (uc *GroupUseCase) MarkRead(ctx context.Context, groupID, actorID, lastReadMessageID string) ([]domain.ReadReceipt, error) {
	if strings.TrimSpace(lastReadMessageID) == "" {
		return nil, errprocess.Malformed("lastReadMessageId is required")
	}

	group, err := uc.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.SetReadReceipt(actorID, lastReadMessageID)
	if err := uc.groups.UpdateReadReceipts(ctx, groupID, group.LastReadBy); err != nil {
		return nil, err
	}

	uc.emitter.EmitToRoom(ctx, groupID, rtdomain.ChatRead, domain.ReadUpdated{
		UserID:            actorID,
		LastReadMessageID: lastReadMessageID,
		ChannelID:         groupID,
	})
	return group.LastReadBy, nil
}

// PinMessage admin only, replaces any current pin
func (uc *GroupUseCase) PinMessage(ctx context.Context, groupID, actorID, msgID string) error {
	if strings.TrimSpace(msgID) == "" {
		return errprocess.Malformed("msgId is required")
	}
	return uc.setPinned(ctx, groupID, actorID, &msgID)
}

// UnpinMessage admin only
func (uc *GroupUseCase) UnpinMessage(ctx context.Context, groupID, actorID string) error {
	return uc.setPinned(ctx, groupID, actorID, nil)
}

func (uc *GroupUseCase) setPinned(ctx context.Context, groupID, actorID string, msgID *string) error {
	actor, err := uc.members.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, errprocess.ErrNotFound) {
			return errprocess.Unauthorized("unknown user")
		}
		return err
	}
	if !actor.IsAdmin() {
		return errprocess.Unauthorized("admin role required")
	}

	if _, err := uc.groups.FindByID(ctx, groupID); err != nil {
		return err
	}
	if err := uc.groups.UpdatePinned(ctx, groupID, msgID); err != nil {
		return err
	}

	uc.emitter.EmitToRoom(ctx, groupID, rtdomain.GroupPin, domain.PinChanged{GroupID: groupID, PinnedMessageID: msgID})
	return nil
}
