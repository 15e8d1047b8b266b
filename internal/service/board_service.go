package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"boardhub/internal/apperr"
	"boardhub/internal/model"
	"boardhub/internal/repository"

	"github.com/google/uuid"
)

type BoardService struct {
	boards   BoardStore
	members  MembershipStore
	settings SettingStore
	requests JoinRequestStore
	catalog  ServiceCatalog
}

func NewBoardService(
	boards BoardStore,
	members MembershipStore,
	settings SettingStore,
	requests JoinRequestStore,
	catalog ServiceCatalog,
) *BoardService {
	return &BoardService{
		boards:   boards,
		members:  members,
		settings: settings,
		requests: requests,
		catalog:  catalog,
	}
}

// BoardPatch carries the owner-updatable board fields; nil means unchanged.
type BoardPatch struct {
	Name            *string
	EnabledServices *[]string
}

// Create registers a board with a unique trimmed name. The owner membership
// row is written atomically with the board. Settings payloads are persisted
// for the enabled services they belong to.
func (s *BoardService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
	enabledServices []string,
	serviceSettings map[string]json.RawMessage,
) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArg("board name is required")
	}
	if err := s.validateServiceKeys(ctx, enabledServices); err != nil {
		return nil, err
	}

	existing, err := s.boards.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("board name already exists")
	}

	if enabledServices == nil {
		enabledServices = []string{}
	}
	board := &model.Board{
		ID:              uuid.New(),
		Name:            name,
		OwnerID:         ownerID,
		EnabledServices: enabledServices,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.AlreadyExists("board name already exists")
		}
		return nil, err
	}

	for serviceKey, cfg := range serviceSettings {
		if !board.HasService(serviceKey) {
			continue
		}
		if err := s.putSetting(ctx, board.ID, serviceKey, cfg); err != nil {
			return nil, err
		}
	}
	return board, nil
}

// Update applies a patch to the board. Owner only; renames re-check name
// uniqueness.
func (s *BoardService) Update(ctx context.Context, actorID, boardID uuid.UUID, patch BoardPatch) (*model.Board, error) {
	board, err := s.ownedBoard(ctx, actorID, boardID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperr.InvalidArg("board name is required")
		}
		if name != board.Name {
			existing, err := s.boards.FindByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != board.ID {
				return nil, apperr.AlreadyExists("board name already exists")
			}
			board.Name = name
		}
	}
	if patch.EnabledServices != nil {
		if err := s.validateServiceKeys(ctx, *patch.EnabledServices); err != nil {
			return nil, err
		}
		board.EnabledServices = *patch.EnabledServices
	}

	if err := s.boards.Update(ctx, board); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.AlreadyExists("board name already exists")
		}
		return nil, err
	}
	return board, nil
}

// EnableService turns a service on for the board (owner only) and stores its
// configuration. Re-enabling an already-enabled service replaces the config.
func (s *BoardService) EnableService(ctx context.Context, actorID, boardID uuid.UUID, serviceKey string, config json.RawMessage) error {
	board, err := s.ownedBoard(ctx, actorID, boardID)
	if err != nil {
		return err
	}
	if err := s.validateServiceKeys(ctx, []string{serviceKey}); err != nil {
		return err
	}

	if !board.HasService(serviceKey) {
		board.EnabledServices = append(board.EnabledServices, serviceKey)
		if err := s.boards.Update(ctx, board); err != nil {
			return err
		}
	}
	return s.putSetting(ctx, boardID, serviceKey, config)
}

// DisableService turns a service off (owner only), deletes its settings and
// cascades to dependent state: disabling approveJoin removes every pending
// join request on the board.
func (s *BoardService) DisableService(ctx context.Context, actorID, boardID uuid.UUID, serviceKey string) error {
	board, err := s.ownedBoard(ctx, actorID, boardID)
	if err != nil {
		return err
	}

	kept := board.EnabledServices[:0]
	for _, k := range board.EnabledServices {
		if k != serviceKey {
			kept = append(kept, k)
		}
	}
	board.EnabledServices = kept
	if err := s.boards.Update(ctx, board); err != nil {
		return err
	}

	if err := s.settings.DeleteByType(ctx, boardID, serviceKey); err != nil {
		return err
	}
	if serviceKey == model.ServiceApproveJoin {
		return s.requests.DeleteAllForBoard(ctx, boardID)
	}
	return nil
}

func (s *BoardService) Get(ctx context.Context, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board not found")
	}
	return board, nil
}

func (s *BoardService) ListAll(ctx context.Context) ([]model.Board, error) {
	return s.boards.ListAll(ctx)
}

func (s *BoardService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	return s.boards.GetOwned(ctx, ownerID)
}

// MyBoards returns boards the user owns plus boards the user manages,
// de-duplicated.
func (s *BoardService) MyBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	boards, err := s.boards.GetOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(boards))
	for _, b := range boards {
		seen[b.ID] = true
	}

	memberships, err := s.members.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, m := range memberships {
		if m.Role != model.RoleManager || seen[m.BoardID] {
			continue
		}
		board, err := s.boards.GetByID(ctx, m.BoardID)
		if err != nil {
			return nil, err
		}
		if board != nil {
			boards = append(boards, *board)
			seen[board.ID] = true
		}
	}
	return boards, nil
}

// ListSettings returns every service setting on the board. Owner only.
func (s *BoardService) ListSettings(ctx context.Context, actorID, boardID uuid.UUID) ([]model.ServiceSetting, error) {
	if _, err := s.ownedBoard(ctx, actorID, boardID); err != nil {
		return nil, err
	}
	return s.settings.List(ctx, boardID)
}

// ListAvailableServices returns the catalog of pluggable services.
func (s *BoardService) ListAvailableServices(ctx context.Context) ([]model.AvailableService, error) {
	return s.catalog.ListAll(ctx)
}

func (s *BoardService) ownedBoard(ctx context.Context, actorID, boardID uuid.UUID) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, apperr.NotFound("board not found")
	}
	if board.OwnerID != actorID {
		return nil, apperr.Forbidden("only the board owner may do this")
	}
	return board, nil
}

func (s *BoardService) validateServiceKeys(ctx context.Context, serviceKeys []string) error {
	for _, key := range serviceKeys {
		svc, err := s.catalog.GetByID(ctx, key)
		if err != nil {
			return err
		}
		if svc == nil {
			return apperr.InvalidArg("unknown service: " + key)
		}
	}
	return nil
}

// putSetting validates the config against the service type's schema and
// stores it under the derived instance id: singleton types use the type key,
// everything else gets a fresh id.
func (s *BoardService) putSetting(ctx context.Context, boardID uuid.UUID, serviceType string, config json.RawMessage) error {
	if serviceType == model.ServiceApproveJoin {
		if _, err := model.DecodeApproveJoinConfig(config); err != nil {
			return apperr.Wrap(apperr.CodeInvalidArgument, "invalid service config", err)
		}
	}
	instanceID := serviceType
	if !model.IsSingletonService(serviceType) {
		instanceID = uuid.New().String()
	}
	return s.settings.Put(ctx, &model.ServiceSetting{
		BoardID:     boardID,
		InstanceID:  instanceID,
		ServiceType: serviceType,
		Config:      config,
	})
}
