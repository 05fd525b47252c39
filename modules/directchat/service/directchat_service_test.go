package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"artwalk-api/core/errors"
	"artwalk-api/modules/directchat/dto"
	"artwalk-api/modules/directchat/entity"
	membershipEntity "artwalk-api/modules/membership/entity"

	"github.com/google/uuid"
)

type pairKey struct {
	event uuid.UUID
	user  uuid.UUID
}

type fakeMembershipRepo struct {
	members map[pairKey]membershipEntity.MembershipRole
}

func (f *fakeMembershipRepo) Grant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, role membershipEntity.MembershipRole) error {
	f.members[pairKey{eventID, userID}] = role
	return nil
}

func (f *fakeMembershipRepo) GetByEventAndUser(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*membershipEntity.Membership, error) {
	role, ok := f.members[pairKey{eventID, userID}]
	if !ok {
		return nil, nil
	}
	return &membershipEntity.Membership{EventID: eventID, UserID: userID, Role: role}, nil
}

func (f *fakeMembershipRepo) HasRole(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, roles []membershipEntity.MembershipRole) (bool, error) {
	role, ok := f.members[pairKey{eventID, userID}]
	if !ok {
		return false, nil
	}
	for _, r := range roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembershipRepo) Revoke(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, expectedRole membershipEntity.MembershipRole) (bool, error) {
	return false, nil
}

func (f *fakeMembershipRepo) GetMembersByEventID(ctx context.Context, eventID uuid.UUID) ([]membershipEntity.Membership, error) {
	return nil, nil
}

type leaveKey struct {
	chat uuid.UUID
	user uuid.UUID
}

type tripleKey struct {
	event uuid.UUID
	userA uuid.UUID
	userB uuid.UUID
}

type fakeDirectChatRepo struct {
	chats    map[uuid.UUID]*entity.DirectChat
	byTriple map[tripleKey]uuid.UUID
	messages []entity.DirectMessage
	leaves   map[leaveKey]time.Time
}

func newFakeDirectChatRepo() *fakeDirectChatRepo {
	return &fakeDirectChatRepo{
		chats:    make(map[uuid.UUID]*entity.DirectChat),
		byTriple: make(map[tripleKey]uuid.UUID),
		leaves:   make(map[leaveKey]time.Time),
	}
}

func (f *fakeDirectChatRepo) GetOrCreate(ctx context.Context, eventID uuid.UUID, userA uuid.UUID, userB uuid.UUID) (*entity.DirectChat, error) {
	key := tripleKey{eventID, userA, userB}
	if id, ok := f.byTriple[key]; ok {
		copied := *f.chats[id]
		return &copied, nil
	}
	chat := &entity.DirectChat{
		ID:        uuid.New(),
		EventID:   eventID,
		UserA:     userA,
		UserB:     userB,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.chats[chat.ID] = chat
	f.byTriple[key] = chat.ID
	copied := *chat
	return &copied, nil
}

func (f *fakeDirectChatRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.DirectChat, error) {
	chat, ok := f.chats[id]
	if !ok {
		return nil, nil
	}
	copied := *chat
	return &copied, nil
}

func (f *fakeDirectChatRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.DirectChat, error) {
	var out []entity.DirectChat
	for _, chat := range f.chats {
		if !chat.HasParticipant(userID) {
			continue
		}
		if _, left := f.leaves[leaveKey{chat.ID, userID}]; left {
			continue
		}
		out = append(out, *chat)
	}
	return out, nil
}

func (f *fakeDirectChatRepo) InsertMessage(ctx context.Context, chatID uuid.UUID, senderID uuid.UUID, recipientID uuid.UUID, body string) (*entity.DirectMessage, error) {
	message := entity.DirectMessage{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	f.messages = append(f.messages, message)
	f.chats[chatID].UpdatedAt = time.Now()
	delete(f.leaves, leaveKey{chatID, recipientID})
	return &message, nil
}

func (f *fakeDirectChatRepo) GetMessagesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectMessage, error) {
	var out []entity.DirectMessage
	for _, m := range f.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeDirectChatRepo) CreateLeave(ctx context.Context, chatID uuid.UUID, userID uuid.UUID) (bool, error) {
	key := leaveKey{chatID, userID}
	if _, exists := f.leaves[key]; exists {
		return false, nil
	}
	f.leaves[key] = time.Now()
	return true, nil
}

func (f *fakeDirectChatRepo) GetLeavesByChatID(ctx context.Context, chatID uuid.UUID) ([]entity.DirectChatLeave, error) {
	var out []entity.DirectChatLeave
	for key, at := range f.leaves {
		if key.chat == chatID {
			out = append(out, entity.DirectChatLeave{ChatID: key.chat, UserID: key.user, LeftAt: at})
		}
	}
	return out, nil
}

func (f *fakeDirectChatRepo) MarkMessagesRead(ctx context.Context, chatID uuid.UUID, readerID uuid.UUID) error {
	for i := range f.messages {
		if f.messages[i].ChatID == chatID && f.messages[i].SenderID != readerID {
			f.messages[i].IsRead = true
		}
	}
	return nil
}

type directChatFixture struct {
	svc     DirectChatServiceInterface
	repo    *fakeDirectChatRepo
	eventID uuid.UUID
	alice   uuid.UUID
	bob     uuid.UUID
}

func setupDirectChat() *directChatFixture {
	eventID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()
	members := &fakeMembershipRepo{members: map[pairKey]membershipEntity.MembershipRole{
		{eventID, alice}: membershipEntity.RoleHost,
		{eventID, bob}:   membershipEntity.RoleAttendee,
	}}
	repo := newFakeDirectChatRepo()
	return &directChatFixture{
		svc:     NewDirectChatService(repo, members),
		repo:    repo,
		eventID: eventID,
		alice:   alice,
		bob:     bob,
	}
}

func (fx *directChatFixture) openChat(t *testing.T, requester, other uuid.UUID) uuid.UUID {
	t.Helper()
	chat, appErr := fx.svc.OpenChat(context.Background(), requester, &dto.OpenChatRequest{
		EventID: fx.eventID.String(),
		UserID:  other.String(),
	})
	if appErr != nil {
		t.Fatalf("OpenChat() failed: %v", appErr)
	}
	return uuid.MustParse(chat.ID)
}

func TestOpenChatOrderIndependent(t *testing.T) {
	fx := setupDirectChat()

	first := fx.openChat(t, fx.alice, fx.bob)
	second := fx.openChat(t, fx.bob, fx.alice)
	if first != second {
		t.Errorf("expected the same chat from either side, got %s and %s", first, second)
	}
	if len(fx.repo.chats) != 1 {
		t.Errorf("expected 1 chat, got %d", len(fx.repo.chats))
	}

	chat := fx.repo.chats[first]
	if chat.UserA.String() >= chat.UserB.String() {
		t.Errorf("pair not normalized: %s >= %s", chat.UserA, chat.UserB)
	}
}

func TestOpenChatRequiresMembership(t *testing.T) {
	fx := setupDirectChat()
	stranger := uuid.New()

	_, appErr := fx.svc.OpenChat(context.Background(), fx.alice, &dto.OpenChatRequest{
		EventID: fx.eventID.String(),
		UserID:  stranger.String(),
	})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("chat with non-member: got %v, want %s", appErr, errors.ErrForbidden)
	}

	_, appErr = fx.svc.OpenChat(context.Background(), fx.alice, &dto.OpenChatRequest{
		EventID: fx.eventID.String(),
		UserID:  fx.alice.String(),
	})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("chat with self: got %v, want %s", appErr, errors.ErrInvalidInput)
	}
}

func TestSendMessageValidation(t *testing.T) {
	fx := setupDirectChat()
	chatID := fx.openChat(t, fx.alice, fx.bob)
	ctx := context.Background()

	_, appErr := fx.svc.SendMessage(ctx, chatID, fx.alice, &dto.SendMessageRequest{Body: ""})
	if appErr == nil || appErr.Code != errors.ErrInvalidMessage {
		t.Errorf("empty message: got %v, want %s", appErr, errors.ErrInvalidMessage)
	}

	_, appErr = fx.svc.SendMessage(ctx, chatID, fx.alice, &dto.SendMessageRequest{Body: strings.Repeat("y", 501)})
	if appErr == nil || appErr.Code != errors.ErrInvalidMessage {
		t.Errorf("oversize message: got %v, want %s", appErr, errors.ErrInvalidMessage)
	}

	_, appErr = fx.svc.SendMessage(ctx, chatID, uuid.New(), &dto.SendMessageRequest{Body: "hi"})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("outsider send: got %v, want %s", appErr, errors.ErrForbidden)
	}
}

func TestLeaveChatTwice(t *testing.T) {
	fx := setupDirectChat()
	chatID := fx.openChat(t, fx.alice, fx.bob)
	ctx := context.Background()

	if appErr := fx.svc.LeaveChat(ctx, chatID, fx.bob); appErr != nil {
		t.Fatalf("LeaveChat() failed: %v", appErr)
	}

	appErr := fx.svc.LeaveChat(ctx, chatID, fx.bob)
	if appErr == nil || appErr.Code != errors.ErrAlreadyLeft {
		t.Errorf("second leave: got %v, want %s", appErr, errors.ErrAlreadyLeft)
	}
}

func TestRejoinOnSend(t *testing.T) {
	fx := setupDirectChat()
	chatID := fx.openChat(t, fx.alice, fx.bob)
	ctx := context.Background()

	if appErr := fx.svc.LeaveChat(ctx, chatID, fx.bob); appErr != nil {
		t.Fatalf("LeaveChat() failed: %v", appErr)
	}

	participants, appErr := fx.svc.GetActiveParticipants(ctx, chatID, fx.alice)
	if appErr != nil {
		t.Fatalf("GetActiveParticipants() failed: %v", appErr)
	}
	if len(participants.Participants) != 1 {
		t.Fatalf("expected 1 active participant after leave, got %d", len(participants.Participants))
	}

	if _, appErr := fx.svc.SendMessage(ctx, chatID, fx.alice, &dto.SendMessageRequest{Body: "you still coming?"}); appErr != nil {
		t.Fatalf("SendMessage() failed: %v", appErr)
	}

	participants, appErr = fx.svc.GetActiveParticipants(ctx, chatID, fx.alice)
	if appErr != nil {
		t.Fatalf("GetActiveParticipants() failed: %v", appErr)
	}
	if len(participants.Participants) != 2 {
		t.Errorf("expected both participants active after send, got %d", len(participants.Participants))
	}
}

func TestMarkRead(t *testing.T) {
	fx := setupDirectChat()
	chatID := fx.openChat(t, fx.alice, fx.bob)
	ctx := context.Background()

	if _, appErr := fx.svc.SendMessage(ctx, chatID, fx.alice, &dto.SendMessageRequest{Body: "meet at noon"}); appErr != nil {
		t.Fatalf("SendMessage() failed: %v", appErr)
	}

	if appErr := fx.svc.MarkRead(ctx, chatID, fx.bob); appErr != nil {
		t.Fatalf("MarkRead() failed: %v", appErr)
	}

	messages, appErr := fx.svc.GetMessages(ctx, chatID, fx.bob)
	if appErr != nil {
		t.Fatalf("GetMessages() failed: %v", appErr)
	}
	if !messages.Messages[0].IsRead {
		t.Error("expected message marked read")
	}
}
