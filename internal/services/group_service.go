package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/opentales/opentales-backend/internal/dto"
	"github.com/opentales/opentales-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupNameTaken      = errors.New("group name already exists")
	ErrNotGroupModerator   = errors.New("not authorized to update this group")
	ErrNotGroupCreator     = errors.New("only the group creator may do this")
	ErrAlreadyMember       = errors.New("you are already a member of this group")
	ErrNotMember           = errors.New("you are not a member of this group")
	ErrCreatorCannotLeave  = errors.New("you are the creator of this group; transfer ownership before leaving")
	ErrTargetNotMember     = errors.New("user must be a member of the group first")
	ErrAlreadyModerator    = errors.New("user is already a moderator")
	ErrTargetNotModerator  = errors.New("user is not a moderator")
	ErrCannotDemoteCreator = errors.New("cannot remove the creator as moderator")
)

// PrivateGroupError denies a private group to a non-member but carries the
// redacted summary the client may still render.
type PrivateGroupError struct {
	Name         string
	Description  string
	Category     string
	MembersCount int
}

func (e *PrivateGroupError) Error() string {
	return "this is a private group; join to see its content"
}

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// Create inserts a group with the creator as sole member and sole moderator,
// and appends the group to the creator's membership list.
func (s *GroupService) Create(creatorID uuid.UUID, req *dto.CreateGroupRequest) (*models.Group, error) {
	var existing models.Group
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrGroupNameTaken
	}

	level := req.ConfidentialityLevel
	if level == 0 {
		level = models.ConfidentialityPublic
	}

	group := models.Group{
		ID:                   uuid.New(),
		Name:                 req.Name,
		Description:          req.Description,
		CreatorID:            creatorID,
		Moderators:           []uuid.UUID{creatorID},
		Members:              []uuid.UUID{creatorID},
		IsPrivate:            req.IsPrivate,
		ConfidentialityLevel: level,
		Rules:                req.Rules,
		Category:             req.Category,
		Topics:               req.Topics,
	}

	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}

	if err := s.addToUserGroups(creatorID, group.ID); err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns public groups, newest first, member lists stripped.
func (s *GroupService) List(viewerID uuid.UUID, page, limit int) (*dto.GroupListResponse, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	if err := s.db.Model(&models.Group{}).Where("is_private = ?", false).Count(&total).Error; err != nil {
		return nil, err
	}

	var groups []models.Group
	err := s.db.Where("is_private = ?", false).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&groups).Error
	if err != nil {
		return nil, err
	}

	views := make([]dto.GroupView, len(groups))
	for i := range groups {
		view, err := s.buildView(&groups[i], viewerID)
		if err != nil {
			return nil, err
		}
		views[i] = *view
	}

	return &dto.GroupListResponse{
		Groups:      views,
		CurrentPage: page,
		TotalPages:  totalPages(total, limit),
		TotalGroups: total,
	}, nil
}

// Get applies the visibility rule: a private group seen by a non-member (or
// an anonymous caller) yields a PrivateGroupError carrying the redacted
// summary; everyone else gets the full view minus the raw member list.
func (s *GroupService) Get(viewerID, groupID uuid.UUID) (*dto.GroupView, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	if group.IsPrivate && !group.IsMember(viewerID) {
		return nil, &PrivateGroupError{
			Name:         group.Name,
			Description:  group.Description,
			Category:     group.Category,
			MembersCount: len(group.Members),
		}
	}

	return s.buildView(&group, viewerID)
}

// Update edits group settings. Moderators only; a rename re-checks name
// uniqueness.
func (s *GroupService) Update(userID, groupID uuid.UUID, req *dto.UpdateGroupRequest) (*dto.GroupView, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	if !group.IsModerator(userID) {
		return nil, ErrNotGroupModerator
	}

	if req.Name != "" && req.Name != group.Name {
		var existing models.Group
		if err := s.db.Where("name = ? AND id <> ?", req.Name, groupID).First(&existing).Error; err == nil {
			return nil, ErrGroupNameTaken
		}
		group.Name = req.Name
	}
	if req.Description != "" {
		group.Description = req.Description
	}
	if req.IsPrivate != nil {
		group.IsPrivate = *req.IsPrivate
	}
	if req.ConfidentialityLevel != 0 {
		group.ConfidentialityLevel = req.ConfidentialityLevel
	}
	if req.Rules != nil {
		group.Rules = req.Rules
	}
	if req.Category != "" {
		group.Category = req.Category
	}
	if req.Topics != nil {
		group.Topics = req.Topics
	}

	if err := s.db.Save(&group).Error; err != nil {
		return nil, err
	}
	return s.buildView(&group, userID)
}

// Join adds the caller to the member roster and the group to the caller's
// membership list.
func (s *GroupService) Join(userID, groupID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if group.IsMember(userID) {
		return ErrAlreadyMember
	}

	group.Members = append(group.Members, userID)
	if err := s.db.Model(&group).Update("members", group.Members).Error; err != nil {
		return err
	}

	return s.addToUserGroups(userID, groupID)
}

// Leave removes the caller from the member roster, and from the moderator
// roster when present. The creator cannot leave without transferring
// ownership first.
func (s *GroupService) Leave(userID, groupID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if !group.IsMember(userID) {
		return ErrNotMember
	}
	if group.IsCreator(userID) {
		return ErrCreatorCannotLeave
	}

	group.Members = removeID(group.Members, userID)
	if group.IsModerator(userID) {
		group.Moderators = removeID(group.Moderators, userID)
	}

	updates := map[string]interface{}{
		"members":    group.Members,
		"moderators": group.Moderators,
	}
	if err := s.db.Model(&group).Updates(updates).Error; err != nil {
		return err
	}

	return s.removeFromUserGroups(userID, groupID)
}

// AddModerator promotes an existing member. The caller must be the creator or
// a moderator.
func (s *GroupService) AddModerator(callerID, groupID, targetID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if !group.IsCreator(callerID) && !group.IsModerator(callerID) {
		return ErrNotGroupModerator
	}

	var target models.User
	if err := s.db.First(&target, "id = ?", targetID).Error; err != nil {
		return ErrUserNotFound
	}

	if !group.IsMember(targetID) {
		return ErrTargetNotMember
	}
	if group.IsModerator(targetID) {
		return ErrAlreadyModerator
	}

	group.Moderators = append(group.Moderators, targetID)
	return s.db.Model(&group).Update("moderators", group.Moderators).Error
}

// RemoveModerator demotes a moderator. Creator only, and never the creator
// themselves: ownership transfer is the only path that touches the creator's
// moderator seat.
func (s *GroupService) RemoveModerator(callerID, groupID, targetID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if !group.IsCreator(callerID) {
		return ErrNotGroupCreator
	}
	if !group.IsModerator(targetID) {
		return ErrTargetNotModerator
	}
	if group.IsCreator(targetID) {
		return ErrCannotDemoteCreator
	}

	group.Moderators = removeID(group.Moderators, targetID)
	return s.db.Model(&group).Update("moderators", group.Moderators).Error
}

// TransferOwnership reassigns the creator seat to an existing member and
// ensures the new owner is a moderator. The outgoing creator stays on both
// rosters; that is deliberate, not leakage.
func (s *GroupService) TransferOwnership(callerID, groupID, newOwnerID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if !group.IsCreator(callerID) {
		return ErrNotGroupCreator
	}

	var newOwner models.User
	if err := s.db.First(&newOwner, "id = ?", newOwnerID).Error; err != nil {
		return ErrUserNotFound
	}

	if !group.IsMember(newOwnerID) {
		return ErrTargetNotMember
	}

	group.CreatorID = newOwnerID
	if !group.IsModerator(newOwnerID) {
		group.Moderators = append(group.Moderators, newOwnerID)
	}

	return s.db.Model(&group).Updates(map[string]interface{}{
		"creator_id": group.CreatorID,
		"moderators": group.Moderators,
	}).Error
}

// Posts returns a group's published posts, gating private groups on
// membership.
func (s *GroupService) Posts(postSvc *PostService, viewerID, groupID uuid.UUID, page, limit int) (*dto.PostListResponse, error) {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return nil, ErrGroupNotFound
	}

	if group.IsPrivate && !group.IsMember(viewerID) {
		return nil, &PrivateGroupError{
			Name:         group.Name,
			Description:  group.Description,
			Category:     group.Category,
			MembersCount: len(group.Members),
		}
	}

	return postSvc.ListByGroup(viewerID, groupID, page, limit)
}

// Delete removes a group. Creator only. Posts that pointed at the group are
// detached, not deleted, and the group id is pulled from every member's
// membership list.
func (s *GroupService) Delete(callerID, groupID uuid.UUID) error {
	var group models.Group
	if err := s.db.First(&group, "id = ?", groupID).Error; err != nil {
		return ErrGroupNotFound
	}

	if !group.IsCreator(callerID) {
		return ErrNotGroupCreator
	}

	err := s.db.Model(&models.Post{}).
		Where("group_id = ?", groupID).
		Update("group_id", nil).Error
	if err != nil {
		return err
	}

	for _, memberID := range group.Members {
		if err := s.removeFromUserGroups(memberID, groupID); err != nil {
			return err
		}
	}

	return s.db.Delete(&group).Error
}

func (s *GroupService) buildView(group *models.Group, viewerID uuid.UUID) (*dto.GroupView, error) {
	view := &dto.GroupView{
		Group:        *group,
		MembersCount: len(group.Members),
		IsMember:     group.IsMember(viewerID),
		IsModerator:  group.IsModerator(viewerID),
		IsCreator:    group.IsCreator(viewerID),
	}

	creators, err := loadAuthorSummaries(s.db, []uuid.UUID{group.CreatorID})
	if err != nil {
		return nil, err
	}
	if c, ok := creators[group.CreatorID]; ok {
		view.Creator = &c
	}
	return view, nil
}

func (s *GroupService) addToUserGroups(userID, groupID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}
	if user.InGroup(groupID) {
		return nil
	}
	user.Groups = append(user.Groups, groupID)
	return s.db.Model(&user).Update("groups", user.Groups).Error
}

func (s *GroupService) removeFromUserGroups(userID, groupID uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil
	}
	if !user.InGroup(groupID) {
		return nil
	}
	user.Groups = removeID(user.Groups, groupID)
	return s.db.Model(&user).Update("groups", user.Groups).Error
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	next := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id != target {
			next = append(next, id)
		}
	}
	return next
}
