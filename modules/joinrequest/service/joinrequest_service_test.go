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
	"artwalk-api/modules/joinrequest/entity"
	membershipEntity "artwalk-api/modules/membership/entity"

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
	return nil, nil
}

func (f *fakeEventRepo) GetStopsByEventID(ctx context.Context, eventID uuid.UUID) ([]eventEntity.EventStop, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, event *eventEntity.Event) error {
	return nil
}

func (f *fakeEventRepo) ReplaceStops(ctx context.Context, eventID uuid.UUID, stops []eventEntity.EventStop) error {
	return nil
}

func (f *fakeEventRepo) SoftDeleteEvent(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (f *fakeEventRepo) ListUpcoming(ctx context.Context, queryParams params.QueryParams) (*coreEntity.Pagination[eventEntity.Event], error) {
	return &coreEntity.Pagination[eventEntity.Event]{}, nil
}

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
	key := pairKey{eventID, userID}
	if f.members[key] != expectedRole {
		return false, nil
	}
	delete(f.members, key)
	return true, nil
}

func (f *fakeMembershipRepo) GetMembersByEventID(ctx context.Context, eventID uuid.UUID) ([]membershipEntity.Membership, error) {
	return nil, nil
}

type fakeInviteRepo struct {
	pending map[pairKey]bool
}

func (f *fakeInviteRepo) CreateBatch(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) ([]invitationEntity.Invite, error) {
	return nil, nil
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id uuid.UUID) (*invitationEntity.Invite, error) {
	return nil, nil
}

func (f *fakeInviteRepo) HasPendingInvite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	return f.pending[pairKey{eventID, userID}], nil
}

func (f *fakeInviteRepo) Accept(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	return nil
}

func (f *fakeInviteRepo) Decline(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	delete(f.pending, pairKey{eventID, inviteeID})
	return nil
}

func (f *fakeInviteRepo) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]invitationEntity.Invite, error) {
	return nil, nil
}

func (f *fakeInviteRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]invitationEntity.Invite, error) {
	return nil, nil
}

// fakeRequestRepo mimics the unique (event, requester) row with the
// revive-on-declined upsert.
type fakeRequestRepo struct {
	requests map[uuid.UUID]*entity.JoinRequest
	byPair   map[pairKey]uuid.UUID
	members  *fakeMembershipRepo
}

func (f *fakeRequestRepo) GetOrCreatePending(ctx context.Context, eventID uuid.UUID, requesterID uuid.UUID) (*entity.JoinRequest, bool, error) {
	key := pairKey{eventID, requesterID}
	if id, ok := f.byPair[key]; ok {
		existing := f.requests[id]
		if existing.Status == entity.JoinRequestStatusDeclined {
			existing.Status = entity.JoinRequestStatusPending
			existing.DecidedAt = nil
			copied := *existing
			return &copied, true, nil
		}
		copied := *existing
		return &copied, false, nil
	}

	request := &entity.JoinRequest{
		ID:          uuid.New(),
		EventID:     eventID,
		RequesterID: requesterID,
		Status:      entity.JoinRequestStatusPending,
		CreatedAt:   time.Now(),
	}
	f.requests[request.ID] = request
	f.byPair[key] = request.ID
	copied := *request
	return &copied, true, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (f *fakeRequestRepo) Approve(ctx context.Context, requestID uuid.UUID, eventID uuid.UUID, requesterID uuid.UUID) error {
	now := time.Now()
	request := f.requests[requestID]
	request.Status = entity.JoinRequestStatusApproved
	request.DecidedAt = &now
	f.members.members[pairKey{eventID, requesterID}] = membershipEntity.RoleAttendee
	return nil
}

func (f *fakeRequestRepo) Decline(ctx context.Context, requestID uuid.UUID) error {
	now := time.Now()
	request := f.requests[requestID]
	request.Status = entity.JoinRequestStatusDeclined
	request.DecidedAt = &now
	return nil
}

func (f *fakeRequestRepo) GetPendingByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.JoinRequest, error) {
	var out []entity.JoinRequest
	for _, request := range f.requests {
		if request.EventID == eventID && request.Status == entity.JoinRequestStatusPending {
			out = append(out, *request)
		}
	}
	return out, nil
}

type joinRequestFixture struct {
	svc     JoinRequestServiceInterface
	event   *eventEntity.Event
	members *fakeMembershipRepo
	invites *fakeInviteRepo
	store   *fakeRequestRepo
}

func setupJoinRequest(visibility eventEntity.EventVisibility) *joinRequestFixture {
	hostID := uuid.New()
	event := &eventEntity.Event{
		ID:         uuid.New(),
		Title:      "Sculpture Stroll",
		HostID:     hostID,
		Visibility: visibility,
	}
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]*eventEntity.Event{event.ID: event}}
	members := &fakeMembershipRepo{members: map[pairKey]membershipEntity.MembershipRole{
		{event.ID, hostID}: membershipEntity.RoleHost,
	}}
	invites := &fakeInviteRepo{pending: make(map[pairKey]bool)}
	store := &fakeRequestRepo{
		requests: make(map[uuid.UUID]*entity.JoinRequest),
		byPair:   make(map[pairKey]uuid.UUID),
		members:  members,
	}

	svc := NewJoinRequestService(store, eventRepo, members, invites, nil)
	return &joinRequestFixture{svc: svc, event: event, members: members, invites: invites, store: store}
}

func TestRequestJoinVisibilityTiers(t *testing.T) {
	openFixture := setupJoinRequest(eventEntity.VisibilityPublicOpen)
	_, appErr := openFixture.svc.RequestJoin(context.Background(), openFixture.event.ID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("request on open event: got %v, want %s", appErr, errors.ErrInvalidInput)
	}

	privateFixture := setupJoinRequest(eventEntity.VisibilityPrivate)
	_, appErr = privateFixture.svc.RequestJoin(context.Background(), privateFixture.event.ID, uuid.New())
	if appErr == nil || appErr.Code != errors.ErrPrivateEvent {
		t.Errorf("request on private event: got %v, want %s", appErr, errors.ErrPrivateEvent)
	}
}

func TestRequestJoinGuards(t *testing.T) {
	fixture := setupJoinRequest(eventEntity.VisibilityPublicInvite)
	ctx := context.Background()

	member := uuid.New()
	fixture.members.members[pairKey{fixture.event.ID, member}] = membershipEntity.RoleAttendee
	_, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, member)
	if appErr == nil || appErr.Code != errors.ErrAlreadyMember {
		t.Errorf("member request: got %v, want %s", appErr, errors.ErrAlreadyMember)
	}

	// Invite creation stores the pending invite together with its paired
	// "invited" membership row; seed both, as the invite flow would.
	invited := uuid.New()
	fixture.invites.pending[pairKey{fixture.event.ID, invited}] = true
	fixture.members.members[pairKey{fixture.event.ID, invited}] = membershipEntity.RoleInvited
	_, appErr = fixture.svc.RequestJoin(ctx, fixture.event.ID, invited)
	if appErr == nil || appErr.Code != errors.ErrAlreadyInvited {
		t.Errorf("invitee request: got %v, want %s", appErr, errors.ErrAlreadyInvited)
	}

	// Declining the invite removes both rows and clears the way for a
	// join request.
	delete(fixture.invites.pending, pairKey{fixture.event.ID, invited})
	delete(fixture.members.members, pairKey{fixture.event.ID, invited})
	request, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, invited)
	if appErr != nil {
		t.Fatalf("request after invite declined failed: %v", appErr)
	}
	if request.Status != string(entity.JoinRequestStatusPending) {
		t.Errorf("expected pending request, got %q", request.Status)
	}
}

func TestRequestJoinIdempotent(t *testing.T) {
	fixture := setupJoinRequest(eventEntity.VisibilityPublicInvite)
	ctx := context.Background()
	requester := uuid.New()

	first, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, requester)
	if appErr != nil {
		t.Fatalf("RequestJoin() failed: %v", appErr)
	}
	second, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, requester)
	if appErr != nil {
		t.Fatalf("repeat RequestJoin() failed: %v", appErr)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same request row, got %s and %s", first.ID, second.ID)
	}
	if len(fixture.store.requests) != 1 {
		t.Errorf("expected 1 stored request, got %d", len(fixture.store.requests))
	}
}

func TestApproveRequest(t *testing.T) {
	fixture := setupJoinRequest(eventEntity.VisibilityPublicInvite)
	ctx := context.Background()
	requester := uuid.New()

	request, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, requester)
	if appErr != nil {
		t.Fatalf("RequestJoin() failed: %v", appErr)
	}
	requestID := uuid.MustParse(request.ID)

	appErr = fixture.svc.ApproveRequest(ctx, requestID, requester)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("approve by non-host: got %v, want %s", appErr, errors.ErrForbidden)
	}

	if appErr := fixture.svc.ApproveRequest(ctx, requestID, fixture.event.HostID); appErr != nil {
		t.Fatalf("ApproveRequest() failed: %v", appErr)
	}
	if role := fixture.members.members[pairKey{fixture.event.ID, requester}]; role != membershipEntity.RoleAttendee {
		t.Errorf("expected attendee membership after approval, got %q", role)
	}

	appErr = fixture.svc.ApproveRequest(ctx, requestID, fixture.event.HostID)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Errorf("double approve: got %v, want %s", appErr, errors.ErrAlreadyExists)
	}
}

func TestDeclineThenRequestAgain(t *testing.T) {
	fixture := setupJoinRequest(eventEntity.VisibilityPublicInvite)
	ctx := context.Background()
	requester := uuid.New()

	request, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, requester)
	if appErr != nil {
		t.Fatalf("RequestJoin() failed: %v", appErr)
	}
	requestID := uuid.MustParse(request.ID)

	if appErr := fixture.svc.DeclineRequest(ctx, requestID, fixture.event.HostID); appErr != nil {
		t.Fatalf("DeclineRequest() failed: %v", appErr)
	}
	if _, exists := fixture.members.members[pairKey{fixture.event.ID, requester}]; exists {
		t.Error("decline must not create a membership")
	}

	revived, appErr := fixture.svc.RequestJoin(ctx, fixture.event.ID, requester)
	if appErr != nil {
		t.Fatalf("request after decline failed: %v", appErr)
	}
	if revived.Status != string(entity.JoinRequestStatusPending) {
		t.Errorf("expected revived pending request, got %q", revived.Status)
	}
	if len(fixture.store.requests) != 1 {
		t.Errorf("expected the pair's single request row, got %d", len(fixture.store.requests))
	}
}
