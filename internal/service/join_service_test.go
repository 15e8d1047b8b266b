package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"boardhub/internal/apperr"
	"boardhub/internal/model"
	"boardhub/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type joinFixture struct {
	boards   *mockBoardStore
	members  *mockMembershipStore
	requests *mockJoinRequestStore
	settings *mockSettingStore
	svc      *service.JoinService
}

func newJoinFixture() *joinFixture {
	f := &joinFixture{
		boards:   new(mockBoardStore),
		members:  new(mockMembershipStore),
		requests: new(mockJoinRequestStore),
		settings: new(mockSettingStore),
	}
	f.svc = service.NewJoinService(f.boards, f.members, f.requests, f.settings)
	return f
}

func approveJoinSetting(boardID uuid.UUID, cfg model.ApproveJoinConfig) *model.ServiceSetting {
	raw, _ := json.Marshal(cfg)
	return &model.ServiceSetting{
		BoardID:     boardID,
		InstanceID:  model.ServiceApproveJoin,
		ServiceType: model.ServiceApproveJoin,
		Config:      raw,
	}
}

func TestJoin_BoardNotFound(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).Return(nil, nil)

	_, err := f.svc.Join(context.Background(), boardID, uuid.New())

	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestJoin_AlreadyMember(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: uuid.New()}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(true, nil)

	_, err := f.svc.Join(context.Background(), boardID, userID)

	assert.True(t, apperr.Is(err, apperr.CodeAlreadyExists))
}

func TestJoin_OpenBoardAdmitsImmediately(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: uuid.New(), EnabledServices: []string{}}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.members.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Membership) bool {
		return m.BoardID == boardID && m.UserID == userID && m.Role == model.RoleMember
	})).Return(nil)

	result, err := f.svc.Join(context.Background(), boardID, userID)

	assert.NoError(t, err)
	assert.True(t, result.Joined)
	assert.False(t, result.Requested)
	f.members.AssertExpectations(t)
	// No request record is ever written for an open board
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJoin_ApproveJoinCreatesPendingRequest(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
	f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
		Return(approveJoinSetting(boardID, model.ApproveJoinConfig{TTLDays: 3}), nil)

	var captured *model.JoinRequest
	f.requests.On("Create", mock.Anything, mock.AnythingOfType("*model.JoinRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.JoinRequest)
		}).Return(nil)

	before := time.Now().Unix()
	result, err := f.svc.Join(context.Background(), boardID, userID)
	after := time.Now().Unix()

	assert.NoError(t, err)
	assert.True(t, result.Requested)
	assert.False(t, result.Joined)
	assert.NotNil(t, captured)
	assert.Equal(t, boardID, captured.BoardID)
	assert.Equal(t, userID, captured.UserID)
	assert.Empty(t, captured.Answer)
	assert.GreaterOrEqual(t, captured.ExpiresAt, before+3*24*3600)
	assert.LessOrEqual(t, captured.ExpiresAt, after+3*24*3600)
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJoin_TTLClampedIntoWindow(t *testing.T) {
	cases := []struct {
		name         string
		ttlDays      int
		expectedDays int64
	}{
		{"below minimum", 0, 1},
		{"negative", -1, 1},
		{"above maximum", 7, 5},
		{"in range", 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newJoinFixture()
			boardID := uuid.New()
			userID := uuid.New()
			f.boards.On("GetByID", mock.Anything, boardID).
				Return(&model.Board{
					ID:              boardID,
					OwnerID:         uuid.New(),
					EnabledServices: []string{model.ServiceApproveJoin},
				}, nil)
			f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
			f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
			f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
				Return(approveJoinSetting(boardID, model.ApproveJoinConfig{TTLDays: tc.ttlDays}), nil)

			var captured *model.JoinRequest
			f.requests.On("Create", mock.Anything, mock.AnythingOfType("*model.JoinRequest")).
				Run(func(args mock.Arguments) {
					captured = args.Get(1).(*model.JoinRequest)
				}).Return(nil)

			before := time.Now().Unix()
			_, err := f.svc.Join(context.Background(), boardID, userID)
			after := time.Now().Unix()

			assert.NoError(t, err)
			assert.NotNil(t, captured)
			assert.GreaterOrEqual(t, captured.ExpiresAt, before+tc.expectedDays*24*3600)
			assert.LessOrEqual(t, captured.ExpiresAt, after+tc.expectedDays*24*3600)
		})
	}
}

func TestJoin_QuestionConfiguredRequiresAnswer(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
	f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
		Return(approveJoinSetting(boardID, model.ApproveJoinConfig{
			AskQuestion:  true,
			QuestionText: "why do you want in?",
		}), nil)

	_, err := f.svc.Join(context.Background(), boardID, userID)

	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestJoin_BlankAnswerRejected(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
	f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
		Return(approveJoinSetting(boardID, model.ApproveJoinConfig{
			AskQuestion:  true,
			QuestionText: "why do you want in?",
		}), nil)

	_, err := f.svc.RequestJoin(context.Background(), boardID, userID, "   ")

	assert.True(t, apperr.Is(err, apperr.CodeInvalidArgument))
}

func TestRequestJoin_AnswerStoredOnRequest(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
	f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
		Return(approveJoinSetting(boardID, model.ApproveJoinConfig{
			AskQuestion:  true,
			QuestionText: "why do you want in?",
		}), nil)

	var captured *model.JoinRequest
	f.requests.On("Create", mock.Anything, mock.AnythingOfType("*model.JoinRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.JoinRequest)
		}).Return(nil)

	result, err := f.svc.RequestJoin(context.Background(), boardID, userID, "I work on team x")

	assert.NoError(t, err)
	assert.True(t, result.Requested)
	assert.NotNil(t, captured)
	assert.Equal(t, "I work on team x", captured.Answer)
}

func TestJoin_SecondRequestWhilePending(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(true, nil)

	_, err := f.svc.Join(context.Background(), boardID, userID)

	assert.True(t, apperr.Is(err, apperr.CodeAlreadyExists))
	f.requests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJoin_CorruptConfigFallsBackToDefaults(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{
			ID:              boardID,
			OwnerID:         uuid.New(),
			EnabledServices: []string{model.ServiceApproveJoin},
		}, nil)
	f.members.On("IsMember", mock.Anything, boardID, userID).Return(false, nil)
	f.requests.On("HasPending", mock.Anything, boardID, userID).Return(false, nil)
	f.settings.On("Get", mock.Anything, boardID, model.ServiceApproveJoin).
		Return(&model.ServiceSetting{
			BoardID:     boardID,
			InstanceID:  model.ServiceApproveJoin,
			ServiceType: model.ServiceApproveJoin,
			Config:      json.RawMessage(`{not json`),
		}, nil)

	var captured *model.JoinRequest
	f.requests.On("Create", mock.Anything, mock.AnythingOfType("*model.JoinRequest")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*model.JoinRequest)
		}).Return(nil)

	before := time.Now().Unix()
	result, err := f.svc.Join(context.Background(), boardID, userID)

	assert.NoError(t, err)
	assert.True(t, result.Requested)
	assert.NotNil(t, captured)
	// Defaults clamp the TTL to the minimum day
	assert.GreaterOrEqual(t, captured.ExpiresAt, before+24*3600)
}

func TestApprove_AdmitsRequester(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	ownerID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: ownerID}, nil)
	f.requests.On("Get", mock.Anything, boardID, userID).
		Return(&model.JoinRequest{BoardID: boardID, UserID: userID}, nil)
	f.requests.On("Approve", mock.Anything, boardID, userID).Return(nil)

	err := f.svc.Approve(context.Background(), ownerID, boardID, userID)

	assert.NoError(t, err)
	f.requests.AssertExpectations(t)
}

func TestApprove_NonOwnerForbidden(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: uuid.New()}, nil)

	err := f.svc.Approve(context.Background(), uuid.New(), boardID, uuid.New())

	assert.True(t, apperr.Is(err, apperr.CodePermissionDenied))
	f.requests.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything)
}

func TestApprove_NoPendingRequest(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	ownerID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: ownerID}, nil)
	f.requests.On("Get", mock.Anything, boardID, userID).Return(nil, nil)

	err := f.svc.Approve(context.Background(), ownerID, boardID, userID)

	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestReject_RemovesPendingRequest(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	ownerID := uuid.New()
	userID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: ownerID}, nil)
	f.requests.On("Get", mock.Anything, boardID, userID).
		Return(&model.JoinRequest{BoardID: boardID, UserID: userID}, nil)
	f.requests.On("Delete", mock.Anything, boardID, userID).Return(nil)

	err := f.svc.Reject(context.Background(), ownerID, boardID, userID)

	assert.NoError(t, err)
	f.requests.AssertExpectations(t)
	f.members.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListPending_OwnerOnly(t *testing.T) {
	f := newJoinFixture()
	boardID := uuid.New()
	f.boards.On("GetByID", mock.Anything, boardID).
		Return(&model.Board{ID: boardID, OwnerID: uuid.New()}, nil)

	_, err := f.svc.ListPending(context.Background(), uuid.New(), boardID)

	assert.True(t, apperr.Is(err, apperr.CodePermissionDenied))
}
