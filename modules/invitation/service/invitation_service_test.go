package service

import (
	"context"
	"testing"
	"time"

	coreEntity "artwalk-api/core/entity"
	"artwalk-api/core/errors"
	"artwalk-api/core/params"
	eventEntity "artwalk-api/modules/event/entity"
	"artwalk-api/modules/invitation/dto"
	"artwalk-api/modules/invitation/entity"
	userEntity "artwalk-api/modules/user/entity"

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

type fakeUserRepo struct {
	known map[uuid.UUID]bool
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userEntity.User, error) {
	if f.known[id] {
		return &userEntity.User{ID: id}, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) ExistsBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if f.known[id] {
			out[id] = true
		}
	}
	return out, nil
}

type pairKey struct {
	event uuid.UUID
	user  uuid.UUID
}

// fakeInviteStore mimics the unique (event, invitee) constraint and the
// paired invited-membership bookkeeping.
type fakeInviteStore struct {
	invites     map[uuid.UUID]*entity.Invite
	byPair      map[pairKey]uuid.UUID
	memberships map[pairKey]string
}

func newFakeInviteStore() *fakeInviteStore {
	return &fakeInviteStore{
		invites:     make(map[uuid.UUID]*entity.Invite),
		byPair:      make(map[pairKey]uuid.UUID),
		memberships: make(map[pairKey]string),
	}
}

func (f *fakeInviteStore) CreateBatch(ctx context.Context, eventID uuid.UUID, inviterID uuid.UUID, inviteeIDs []uuid.UUID) ([]entity.Invite, error) {
	var created []entity.Invite
	for _, inviteeID := range inviteeIDs {
		key := pairKey{eventID, inviteeID}
		if _, exists := f.byPair[key]; exists {
			continue
		}
		invite := &entity.Invite{
			ID:        uuid.New(),
			EventID:   eventID,
			InviterID: inviterID,
			InviteeID: inviteeID,
			Status:    entity.InviteStatusPending,
		}
		f.invites[invite.ID] = invite
		f.byPair[key] = invite.ID
		if _, hasMembership := f.memberships[key]; !hasMembership {
			f.memberships[key] = "invited"
		}
		created = append(created, *invite)
	}
	return created, nil
}

func (f *fakeInviteStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invite, error) {
	invite, ok := f.invites[id]
	if !ok {
		return nil, nil
	}
	copied := *invite
	return &copied, nil
}

func (f *fakeInviteStore) HasPendingInvite(ctx context.Context, eventID uuid.UUID, userID uuid.UUID) (bool, error) {
	id, ok := f.byPair[pairKey{eventID, userID}]
	if !ok {
		return false, nil
	}
	return f.invites[id].Status == entity.InviteStatusPending, nil
}

func (f *fakeInviteStore) Accept(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	now := time.Now()
	invite := f.invites[inviteID]
	invite.Status = entity.InviteStatusAccepted
	invite.RespondedAt = &now
	f.memberships[pairKey{eventID, inviteeID}] = "attendee"
	return nil
}

func (f *fakeInviteStore) Decline(ctx context.Context, inviteID uuid.UUID, eventID uuid.UUID, inviteeID uuid.UUID) error {
	now := time.Now()
	invite := f.invites[inviteID]
	invite.Status = entity.InviteStatusDeclined
	invite.RespondedAt = &now
	key := pairKey{eventID, inviteeID}
	if f.memberships[key] == "invited" {
		delete(f.memberships, key)
	}
	return nil
}

func (f *fakeInviteStore) GetPendingByInviteeID(ctx context.Context, inviteeID uuid.UUID) ([]entity.Invite, error) {
	var out []entity.Invite
	for _, invite := range f.invites {
		if invite.InviteeID == inviteeID && invite.Status == entity.InviteStatusPending {
			out = append(out, *invite)
		}
	}
	return out, nil
}

func (f *fakeInviteStore) GetByEventID(ctx context.Context, eventID uuid.UUID) ([]entity.Invite, error) {
	var out []entity.Invite
	for _, invite := range f.invites {
		if invite.EventID == eventID {
			out = append(out, *invite)
		}
	}
	return out, nil
}

func setupInvitation(hostID uuid.UUID, knownUsers ...uuid.UUID) (InvitationServiceInterface, *fakeInviteStore, *eventEntity.Event) {
	event := &eventEntity.Event{
		ID:         uuid.New(),
		Title:      "Mural Tour",
		HostID:     hostID,
		Visibility: eventEntity.VisibilityPublicInvite,
	}
	eventRepo := &fakeEventRepo{events: map[uuid.UUID]*eventEntity.Event{event.ID: event}}

	known := map[uuid.UUID]bool{hostID: true}
	for _, id := range knownUsers {
		known[id] = true
	}
	store := newFakeInviteStore()
	svc := NewInvitationService(store, eventRepo, &fakeUserRepo{known: known}, nil)
	return svc, store, event
}

func TestCreateInvitesDedupes(t *testing.T) {
	hostID := uuid.New()
	invitee := uuid.New()
	svc, store, event := setupInvitation(hostID, invitee)

	req := &dto.CreateInvitesRequest{InviteeIDs: []string{invitee.String(), invitee.String()}}
	resp, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, req)
	if appErr != nil {
		t.Fatalf("CreateInvites() failed: %v", appErr)
	}
	if resp.Total != 1 {
		t.Errorf("expected 1 invite from duplicated ids, got %d", resp.Total)
	}
	if len(store.invites) != 1 {
		t.Errorf("expected 1 stored invite, got %d", len(store.invites))
	}
	if role := store.memberships[pairKey{event.ID, invitee}]; role != "invited" {
		t.Errorf("expected invited membership row, got %q", role)
	}
}

func TestCreateInvitesSupersetSemantics(t *testing.T) {
	hostID := uuid.New()
	first := uuid.New()
	second := uuid.New()
	svc, store, event := setupInvitation(hostID, first, second)

	if _, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{first.String()}}); appErr != nil {
		t.Fatalf("first CreateInvites() failed: %v", appErr)
	}

	resp, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{first.String(), second.String()}})
	if appErr != nil {
		t.Fatalf("second CreateInvites() failed: %v", appErr)
	}
	if resp.Total != 1 {
		t.Errorf("expected only the new invitee in response, got %d", resp.Total)
	}
	if len(store.invites) != 2 {
		t.Errorf("expected 2 stored invites, got %d", len(store.invites))
	}
}

func TestCreateInvitesExcludesHostAndValidatesUsers(t *testing.T) {
	hostID := uuid.New()
	svc, _, event := setupInvitation(hostID)

	_, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{hostID.String()}})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("inviting only the host: got %v, want %s", appErr, errors.ErrInvalidInput)
	}

	unknown := uuid.New()
	_, appErr = svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{unknown.String()}})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Errorf("inviting unknown user: got %v, want %s", appErr, errors.ErrInvalidInput)
	}
}

func TestCreateInvitesHostOnly(t *testing.T) {
	hostID := uuid.New()
	invitee := uuid.New()
	svc, _, event := setupInvitation(hostID, invitee)

	_, appErr := svc.CreateInvites(context.Background(), event.ID, invitee, &dto.CreateInvitesRequest{InviteeIDs: []string{invitee.String()}})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("non-host invite: got %v, want %s", appErr, errors.ErrForbidden)
	}
}

func TestAcceptInvite(t *testing.T) {
	hostID := uuid.New()
	invitee := uuid.New()
	svc, store, event := setupInvitation(hostID, invitee)

	resp, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{invitee.String()}})
	if appErr != nil {
		t.Fatalf("CreateInvites() failed: %v", appErr)
	}
	inviteID := uuid.MustParse(resp.Invites[0].ID)

	_, appErr = svc.AcceptInvite(context.Background(), inviteID, hostID)
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Errorf("accept by non-invitee: got %v, want %s", appErr, errors.ErrForbidden)
	}

	accepted, appErr := svc.AcceptInvite(context.Background(), inviteID, invitee)
	if appErr != nil {
		t.Fatalf("AcceptInvite() failed: %v", appErr)
	}
	if accepted.Status != string(entity.InviteStatusAccepted) {
		t.Errorf("expected accepted status, got %q", accepted.Status)
	}
	if role := store.memberships[pairKey{event.ID, invitee}]; role != "attendee" {
		t.Errorf("expected attendee membership after accept, got %q", role)
	}

	_, appErr = svc.AcceptInvite(context.Background(), inviteID, invitee)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Errorf("double accept: got %v, want %s", appErr, errors.ErrAlreadyExists)
	}
}

func TestDeclineInviteRemovesInvitedMembership(t *testing.T) {
	hostID := uuid.New()
	invitee := uuid.New()
	svc, store, event := setupInvitation(hostID, invitee)

	resp, appErr := svc.CreateInvites(context.Background(), event.ID, hostID, &dto.CreateInvitesRequest{InviteeIDs: []string{invitee.String()}})
	if appErr != nil {
		t.Fatalf("CreateInvites() failed: %v", appErr)
	}
	inviteID := uuid.MustParse(resp.Invites[0].ID)

	if appErr := svc.DeclineInvite(context.Background(), inviteID, invitee); appErr != nil {
		t.Fatalf("DeclineInvite() failed: %v", appErr)
	}
	if _, exists := store.memberships[pairKey{event.ID, invitee}]; exists {
		t.Error("expected invited membership removed after decline")
	}

	appErr = svc.DeclineInvite(context.Background(), inviteID, invitee)
	if appErr == nil || appErr.Code != errors.ErrAlreadyExists {
		t.Errorf("double decline: got %v, want %s", appErr, errors.ErrAlreadyExists)
	}
}
