package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskflow_realtime/internal/chat/domain"
	"taskflow_realtime/internal/chat/repository"
	rtdomain "taskflow_realtime/internal/realtime/domain"
	errprocess "taskflow_realtime/pkg/err"
	"taskflow_realtime/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RoomEmitter pushes a committed mutation to the room's subscribers
type RoomEmitter interface {
	EmitToRoom(ctx context.Context, roomID string, event rtdomain.Event, data interface{})
}

// MessageUseCase message lifecycle: send, edit, delete, react, list
type MessageUseCase struct {
	groups   repository.GroupRepository
	messages repository.MessageRepository
	members  repository.MemberRepository
	emitter  RoomEmitter
	now      func() time.Time
}

// NewMessageUseCase create MessageUseCase
func NewMessageUseCase(groups repository.GroupRepository, messages repository.MessageRepository, members repository.MemberRepository, emitter RoomEmitter) *MessageUseCase {
	return &MessageUseCase{
		groups:   groups,
		messages: messages,
		members:  members,
		emitter:  emitter,
		now:      time.Now,
	}
}

// SendMessage 寫入訊息並廣播 chat:new_message
func (uc *MessageUseCase) SendMessage(ctx context.Context, groupID, authorID, content string, attachment *domain.Attachment) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" && attachment == nil {
		return nil, errprocess.Malformed("content or attachment is required")
	}

	group, err := uc.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.CanAccess(authorID) {
		return nil, errprocess.Unauthorized("not a member of this group")
	}
	if _, err := uc.members.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, errprocess.ErrNotFound) {
			return nil, errprocess.Unauthorized("unknown author")
		}
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:         uuid.NewString(),
		ChannelID:  groupID,
		Content:    content,
		AuthorID:   authorID,
		CreatedAt:  uc.now().UTC(),
		Attachment: attachment,
		Reactions:  []domain.Reaction{},
	}
	if err := uc.messages.Insert(ctx, msg); err != nil {
		logger.Log.Errorf("insert message", err, zap.String("group", groupID))
		return nil, err
	}

	uc.emitter.EmitToRoom(ctx, groupID, rtdomain.ChatNewMessage, msg)
	return msg, nil
}

// EditMessage 僅作者可修改
func (uc *MessageUseCase) EditMessage(ctx context.Context, msgID, actorID, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errprocess.Malformed("content is required")
	}

	msg, err := uc.authored(ctx, msgID, actorID)
	if err != nil {
		return nil, err
	}
	if err := uc.messages.UpdateContent(ctx, msgID, content); err != nil {
		return nil, err
	}
	msg.Content = content
	msg.Edited = true

	uc.emitter.EmitToRoom(ctx, msg.ChannelID, rtdomain.ChatEditMessage, msg)
	return msg, nil
}

// DeleteMessage 僅作者可刪除
func (uc *MessageUseCase) DeleteMessage(ctx context.Context, msgID, actorID string) error {
	msg, err := uc.authored(ctx, msgID, actorID)
	if err != nil {
		return err
	}
	if err := uc.messages.Delete(ctx, msgID); err != nil {
		return err
	}

	uc.emitter.EmitToRoom(ctx, msg.ChannelID, rtdomain.ChatDeleteMessage, domain.DeletedMessage{ID: msg.ID, ChannelID: msg.ChannelID})
	return nil
}

// ToggleReaction 同一使用者再按一次即取消
func (uc *MessageUseCase) ToggleReaction(ctx context.Context, msgID, actorID, emoji string) ([]domain.Reaction, error) {
	if strings.TrimSpace(emoji) == "" {
		return nil, errprocess.Malformed("emoji is required")
	}

	msg, err := uc.messages.FindByID(ctx, msgID)
	if err != nil {
		return nil, err
	}
	msg.ToggleReaction(emoji, actorID)
	if msg.Reactions == nil {
		msg.Reactions = []domain.Reaction{}
	}
	if err := uc.messages.UpdateReactions(ctx, msgID, msg.Reactions); err != nil {
		return nil, err
	}

	uc.emitter.EmitToRoom(ctx, msg.ChannelID, rtdomain.ChatReaction, domain.ReactionChanged{
		MsgID:     msg.ID,
		ChannelID: msg.ChannelID,
		Reactions: msg.Reactions,
	})
	return msg.Reactions, nil
}

// ListMessages history of a group ordered by creation
func (uc *MessageUseCase) ListMessages(ctx context.Context, groupID, actorID string) ([]domain.ChatMessage, error) {
	group, err := uc.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.CanAccess(actorID) {
		return nil, errprocess.Unauthorized("not a member of this group")
	}
	return uc.messages.ListByChannel(ctx, groupID)
}

func (uc *MessageUseCase) authored(ctx context.Context, msgID, actorID string) (*domain.ChatMessage, error) {
	msg, err := uc.messages.FindByID(ctx, msgID)
	if err != nil {
		return nil, err
	}
	if msg.AuthorID != actorID {
		return nil, errprocess.Unauthorized("only the author may change a message")
	}
	return msg, nil
}
