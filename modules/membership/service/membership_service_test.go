package service

import (
	"context"
	"testing"
	"time"

	coreEntity "artwalk-api/core/entity"
	"artwalk-api/core/errors"
	"artwalk-api/core/params"
	eventEntity "artwalk-api/modules/event/entity"
	invitationEntity "artwalk-api/modules/invitation/entity"
	"artwalk-api/modules/membership/entity"

	"github.com/google/uuid"
)

type fakeEventRepo struct {
	events map[uuid.UUID]*eventEntity.Event
}

func (f *fakeEventRepo) CreateEventWithStops(ctx context.Context, event *eventEntity.Event, stops []eventEntity.EventStop) (*eventEntity.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*eventEntity.Event, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) GetEventBySlug(ctx context.Context, slug string) (*eventEntity.Event, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) GetStopsByEventID(ctx context.Context, eventID uuid.UUID) ([]eventEntity.EventStop, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, event *eventEntity.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) ReplaceStops(ctx context.Context, eventID uuid.UUID, stops []eventEntity.EventStop) error {
	return nil
}

func (f *fakeEventRepo) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	if e := f.events[id]; e != nil {
		e.IsDeleted = true
	}
	return nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[eventEntity.Event], error) {
	return &coreEntity.Pagination[eventEntity.Event]{}, nil
}

type memberKey struct {
	event uuid.UUID
	user  uuid.UUID
}

type fakeMembershipRepo struct {
	members map[memberKey]entity.MembershipRole
}

func newFakeMembershipRepo() *fakeMembershipRepo {
	return &fakeMembershipRepo{members: make(map[memberKey]entity.MembershipRole)}
}

func (f *fakeMembershipRepo) Grant(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, role entity.MembershipRole) error {
	f.members[memberKey{eventID, userID}] = role
	return nil
}

func (f *fakeMembershipRepo) GetByEventAndUser(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (*entity.Membership, error) {
	role, ok := f.members[memberKey{eventID, userID}]
	if !ok {
		return nil, nil
	}
	return &entity.Membership{EventID: eventID, UserID: userID, Role: role}, nil
}

func (f *fakeMembershipRepo) HasRole(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, roles []entity.MembershipRole) (bool, error) {
	role, ok := f.members[memberKey{eventID, userID}]
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

func (f *fakeMembershipRepo) Revoke(ctx context.Context, eventID uuid.UUID, userID uuid.UUID, expectedRole entity.MembershipRole) (bool, error) {
	key := memberKey{eventID, userID}
	role, ok := f.members[key]
	if !ok || role != expectedRole {
		return false, nil
	}
	delete(f.members, key)
	return true, nil
}

func (f *fakeMembershipRepo) GetMembersByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Membership, error) {
	var out []entity.Membership
	for key, role := range f.members {
		if key.event == eventID {
			out = append(out, entity.Membership{EventID: key.event, UserID: key.user, Role: role})
		}
	}
	return out, nil
}

type fakeInviteRepo struct {
	pending map[memberKey]bool
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{pending: make(map[memberKey]bool)}
}

func (f *fakeInviteRepo) CreateBatch(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) ([]invitationEntity.Invite, error) {
	var created []invitationEntity.Invite
	for _, id := range inviteeIDs {
		key := memberKey{eventID, id}
		if f.pending[key] {
			continue
		}
		f.pending[key] = true
		created = append(created, invitationEntity.Invite{EventID: eventID, InviteeID: id})
	}
	return created, nil
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id uuid.UUID) (*invitationEntity.Invite, error) {
	return nil, nil
}

func (f *fakeInviteRepo) HasPendingInvite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	return f.pending[memberKey{eventID, userID}], nil
}

func (f *fakeInviteRepo) Accept(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	delete(f.pending, memberKey{eventID, inviteeID})
	return nil
}

func (f *fakeInviteRepo) Decline(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	delete(f.pending, memberKey{eventID, inviteeID})
	return nil
}

func (f *fakeInviteRepo) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]invitationEntity.Invite, error) {
	return nil, nil
}

func (f *fakeInviteRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]invitationEntity.Invite, error) {
	return nil, nil
}

func newTestEvent(visibility eventEntity.EventVisibility, hostID uuid.UUID) *eventEntity.Event {
	return &eventEntity.Event{
		ID:         uuid.New(),
		Slug:       "gallery-walk",
		Title:      "Gallery Walk",
		HostID:     hostID,
		Visibility: visibility,
		StartsAt:   time.Now().Add(24 * time.Hour),
	}
}

func setupMembership(event *eventEntity.Event) (MembershipServiceInterface, *fakeMembershipRepo, *fakeInviteRepo) {
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]*eventEntity.Event{event.ID: event}}
	memberRepo := newFakeMembershipRepo()
	inviteRepo := newFakeInviteRepo()
	memberRepo.Grant(context.Background(), event.ID, event.HostID, entity.RoleHost)
	return NewMembershipService(memberRepo, eventRepo, inviteRepo), memberRepo, inviteRepo
}

func TestJoinOpenEvent(t *testing.T) {
	hostID := uuid.New()
	userID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPublicOpen, hostID)
	svc, memberRepo, _ := setupMembership(event)

	if appErr := svc.Join(context.Background(), event.ID, userID); appErr != nil {
		t.Fatalf("Join() failed: %v", appErr)
	}

	joined, _ := memberRepo.HasRole(context.Background(), event.ID, userID, []entity.MembershipRole{entity.RoleAttendee})
	if !joined {
		t.Error("expected attendee membership after join")
	}

	appErr := svc.Join(context.Background(), event.ID, userID)
	if appErr == nil || appErr.Code != errors.ErrAlreadyJoined {
		t.Errorf("second join: got %v, want %s", appErr, errors.ErrAlreadyJoined)
	}
}

func TestJoinPrivateEventAlwaysDenied(t *testing.T) {
	hostID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPrivate, hostID)
	svc, _, inviteRepo := setupMembership(event)

	userID := uuid.New()
	appErr := svc.Join(context.Background(), event.ID, userID)
	if appErr == nil || appErr.Code != errors.ErrPrivateEvent {
		t.Errorf("join private: got %v, want %s", appErr, errors.ErrPrivateEvent)
	}

	// Even a pending invite does not open the direct join path.
	inviteRepo.pending[memberKey{event.ID, userID}] = true
	appErr = svc.Join(context.Background(), event.ID, userID)
	if appErr == nil || appErr.Code != errors.ErrPrivateEvent {
		t.Errorf("join private with invite: got %v, want %s", appErr, errors.ErrPrivateEvent)
	}
}

func TestJoinInviteOnlyEvent(t *testing.T) {
	hostID := uuid.New()
	userID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPublicInvite, hostID)
	svc, _, inviteRepo := setupMembership(event)

	appErr := svc.Join(context.Background(), event.ID, userID)
	if appErr == nil || appErr.Code != errors.ErrInviteRequired {
		t.Errorf("join without invite: got %v, want %s", appErr, errors.ErrInviteRequired)
	}

	inviteRepo.pending[memberKey{event.ID, userID}] = true
	if appErr := svc.Join(context.Background(), event.ID, userID); appErr != nil {
		t.Errorf("join with pending invite failed: %v", appErr)
	}
}

func TestJoinDeletedEvent(t *testing.T) {
	hostID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPublicOpen, hostID)
	event.IsDeleted = true
	svc, _, _ := setupMembership(event)

	appErr := svc.Join(context.Background(), event.ID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("join deleted event: got %v, want %s", appErr, errors.ErrNotFound)
	}
}

func TestLeave(t *testing.T) {
	hostID := uuid.New()
	userID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPublicOpen, hostID)
	svc, _, _ := setupMembership(event)

	appErr := svc.Leave(context.Background(), event.ID, hostID)
	if appErr == nil || appErr.Code != errors.ErrHostCannotLeave {
		t.Errorf("host leave: got %v, want %s", appErr, errors.ErrHostCannotLeave)
	}

	appErr = svc.Leave(context.Background(), event.ID, userID)
	if appErr == nil || appErr.Code != errors.ErrNotAMember {
		t.Errorf("leave without membership: got %v, want %s", appErr, errors.ErrNotAMember)
	}

	if appErr := svc.Join(context.Background(), event.ID, userID); appErr != nil {
		t.Fatalf("Join() failed: %v", appErr)
	}
	if appErr := svc.Leave(context.Background(), event.ID, userID); appErr != nil {
		t.Errorf("leave after join failed: %v", appErr)
	}

	joined, _ := svc.UserHasJoined(context.Background(), event.ID, userID)
	if joined {
		t.Error("expected membership gone after leave")
	}
}

func TestGetMembersVisibility(t *testing.T) {
	hostID := uuid.New()
	event := newTestEvent(eventEntity.VisibilityPrivate, hostID)
	svc, _, inviteRepo := setupMembership(event)

	stranger := uuid.New()
	// Strangers get not-found, never a forbidden that confirms the
	// hidden event exists.
	_, appErr := svc.GetMembers(context.Background(), event.ID, stranger)
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Errorf("stranger GetMembers: got %v, want %s", appErr, errors.ErrNotFound)
	}

	members, appErr := svc.GetMembers(context.Background(), event.ID, hostID)
	if appErr != nil {
		t.Fatalf("host GetMembers failed: %v", appErr)
	}
	if len(members) != 1 {
		t.Errorf("expected 1 member, got %d", len(members))
	}

	// An invitee may view the private event's ledger.
	inviteRepo.pending[memberKey{event.ID, stranger}] = true
	if _, appErr := svc.GetMembers(context.Background(), event.ID, stranger); appErr != nil {
		t.Errorf("invitee GetMembers failed: %v", appErr)
	}
}
