package service_test

import (
	"context"

	"boardhub/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockBoardStore struct {
	mock.Mock
}

func (m *mockBoardStore) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *mockBoardStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *mockBoardStore) FindByName(ctx context.Context, name string) (*model.Board, error) {
	args := m.Called(ctx, name)
	board, _ := args.Get(0).(*model.Board)
	return board, args.Error(1)
}

func (m *mockBoardStore) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, ownerID)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *mockBoardStore) ListAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	boards, _ := args.Get(0).([]model.Board)
	return boards, args.Error(1)
}

func (m *mockBoardStore) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

type mockMembershipStore struct {
	mock.Mock
}

func (m *mockMembershipStore) Create(ctx context.Context, membership *model.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipStore) UpdateRole(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, boardID, userID, role)
	return args.Error(0)
}

func (m *mockMembershipStore) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.Membership, error) {
	args := m.Called(ctx, boardID, userID)
	membership, _ := args.Get(0).(*model.Membership)
	return membership, args.Error(1)
}

func (m *mockMembershipStore) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, boardID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockMembershipStore) ListByRole(ctx context.Context, boardID uuid.UUID, role string) ([]model.Membership, error) {
	args := m.Called(ctx, boardID, role)
	memberships, _ := args.Get(0).([]model.Membership)
	return memberships, args.Error(1)
}

func (m *mockMembershipStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	args := m.Called(ctx, userID)
	memberships, _ := args.Get(0).([]model.Membership)
	return memberships, args.Error(1)
}

func (m *mockMembershipStore) SearchByUserName(ctx context.Context, boardID uuid.UUID, name string) ([]model.Membership, error) {
	args := m.Called(ctx, boardID, name)
	memberships, _ := args.Get(0).([]model.Membership)
	return memberships, args.Error(1)
}

type mockJoinRequestStore struct {
	mock.Mock
}

func (m *mockJoinRequestStore) Create(ctx context.Context, req *model.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockJoinRequestStore) Get(ctx context.Context, boardID, userID uuid.UUID) (*model.JoinRequest, error) {
	args := m.Called(ctx, boardID, userID)
	req, _ := args.Get(0).(*model.JoinRequest)
	return req, args.Error(1)
}

func (m *mockJoinRequestStore) HasPending(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, boardID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockJoinRequestStore) ListForBoard(ctx context.Context, boardID uuid.UUID) ([]model.JoinRequest, error) {
	args := m.Called(ctx, boardID)
	reqs, _ := args.Get(0).([]model.JoinRequest)
	return reqs, args.Error(1)
}

func (m *mockJoinRequestStore) Delete(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

func (m *mockJoinRequestStore) DeleteAllForBoard(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

func (m *mockJoinRequestStore) Approve(ctx context.Context, boardID, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, userID)
	return args.Error(0)
}

type mockSettingStore struct {
	mock.Mock
}

func (m *mockSettingStore) Put(ctx context.Context, setting *model.ServiceSetting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *mockSettingStore) Get(ctx context.Context, boardID uuid.UUID, instanceID string) (*model.ServiceSetting, error) {
	args := m.Called(ctx, boardID, instanceID)
	setting, _ := args.Get(0).(*model.ServiceSetting)
	return setting, args.Error(1)
}

func (m *mockSettingStore) List(ctx context.Context, boardID uuid.UUID) ([]model.ServiceSetting, error) {
	args := m.Called(ctx, boardID)
	settings, _ := args.Get(0).([]model.ServiceSetting)
	return settings, args.Error(1)
}

func (m *mockSettingStore) DeleteByType(ctx context.Context, boardID uuid.UUID, serviceType string) error {
	args := m.Called(ctx, boardID, serviceType)
	return args.Error(0)
}

type mockPermissionStore struct {
	mock.Mock
}

func (m *mockPermissionStore) Grant(ctx context.Context, perm *model.ServicePermission) error {
	args := m.Called(ctx, perm)
	return args.Error(0)
}

func (m *mockPermissionStore) Revoke(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) error {
	args := m.Called(ctx, boardID, serviceID, userID)
	return args.Error(0)
}

func (m *mockPermissionStore) Has(ctx context.Context, boardID uuid.UUID, serviceID string, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, boardID, serviceID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPermissionStore) ListForService(ctx context.Context, boardID uuid.UUID, serviceID string) ([]model.ServicePermission, error) {
	args := m.Called(ctx, boardID, serviceID)
	perms, _ := args.Get(0).([]model.ServicePermission)
	return perms, args.Error(1)
}

type mockServiceCatalog struct {
	mock.Mock
}

func (m *mockServiceCatalog) ListAll(ctx context.Context) ([]model.AvailableService, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]model.AvailableService)
	return services, args.Error(1)
}

func (m *mockServiceCatalog) GetByID(ctx context.Context, serviceID string) (*model.AvailableService, error) {
	args := m.Called(ctx, serviceID)
	svc, _ := args.Get(0).(*model.AvailableService)
	return svc, args.Error(1)
}
