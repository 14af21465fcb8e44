package service

import (
	"context"
	"log/slog"

	"splitzy/internal/apperr"
	"splitzy/internal/models"
	"splitzy/internal/storage"
)

// GroupDetails is a group with its member users resolved.
type GroupDetails struct {
	Group   *models.Group
	Members []*models.User
}

// GroupService implements group lifecycle and membership rules.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with the given members. Every member must be an
// existing user.
func (s *GroupService) CreateGroup(ctx context.Context, name string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, apperr.Validation("Group name is required.")
	}
	if len(memberIDs) == 0 {
		return nil, apperr.Validation("A group needs at least one member.")
	}

	seen := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		if seen[id] {
			return nil, apperr.Validation("Duplicate member in group.")
		}
		seen[id] = true
		if _, err := getUser(ctx, s.store, id); err != nil {
			return nil, err
		}
	}

	group := &models.Group{Name: name, Members: memberIDs}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("Group created", "group_id", group.ID, "name", name, "members", len(memberIDs))
	return group, nil
}

// GetGroup returns a group with its member users resolved. Deleted accounts
// that somehow linger in the member list are omitted from Members.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*GroupDetails, error) {
	group, err := getGroup(ctx, s.store, groupID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return nil, apperr.Store(err)
	}

	details := &GroupDetails{Group: group}
	for _, id := range group.Members {
		if u, ok := users[id]; ok {
			details.Members = append(details.Members, u)
		}
	}
	return details, nil
}

// ListGroupsByUser returns all groups the user belongs to.
func (s *GroupService) ListGroupsByUser(ctx context.Context, userID string) ([]*models.Group, error) {
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroupsByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return groups, nil
}

// AddMember adds a user to the group.
func (s *GroupService) AddMember(ctx context.Context, groupID, userID string) error {
	group, err := getGroup(ctx, s.store, groupID)
	if err != nil {
		return err
	}
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return err
	}
	if memberSet(group)[userID] {
		return apperr.Validation("User already in group")
	}

	if err := s.store.AddGroupMember(ctx, groupID, userID); err != nil {
		return storeErr(err)
	}

	slog.Info("Member added", "group_id", groupID, "user_id", userID)
	return nil
}

// RemoveMember removes a user from the group. Removal is blocked while the
// member carries a non-zero net balance; expense history referencing the user
// is preserved either way.
func (s *GroupService) RemoveMember(ctx context.Context, groupID, userID string) error {
	group, err := getGroup(ctx, s.store, groupID)
	if err != nil {
		return err
	}
	if _, err := getUser(ctx, s.store, userID); err != nil {
		return err
	}
	if !memberSet(group)[userID] {
		return apperr.Validation("User is not part of the group")
	}

	outstanding, err := hasOutstandingBalance(ctx, s.store, groupID, userID)
	if err != nil {
		return err
	}
	if outstanding {
		return apperr.Validation("Cannot remove user with unsettled balances.")
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		return storeErr(err)
	}

	slog.Info("Member removed", "group_id", groupID, "user_id", userID)
	return nil
}
