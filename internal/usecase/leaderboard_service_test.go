package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
)

type eliteRepoMock struct {
	mock.Mock
}

func (m *eliteRepoMock) List(ctx context.Context) ([]elite.Elite, error) {
	args := m.Called(ctx)
	return args.Get(0).([]elite.Elite), args.Error(1)
}

func (m *eliteRepoMock) GetByName(ctx context.Context, name string) (elite.Elite, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(elite.Elite), args.Bool(1), args.Error(2)
}

func (m *eliteRepoMock) AddPoints(ctx context.Context, name string, delta int64) error {
	return m.Called(ctx, name, delta).Error(0)
}

func (m *eliteRepoMock) UpdateTuning(ctx context.Context, name string, pointsPerLoss int64, badge string) error {
	return m.Called(ctx, name, pointsPerLoss, badge).Error(0)
}

func (m *eliteRepoMock) Create(ctx context.Context, item elite.Elite) error {
	return m.Called(ctx, item).Error(0)
}

type hunterRepoMock struct {
	mock.Mock
}

func (m *hunterRepoMock) List(ctx context.Context) ([]hunter.Hunter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]hunter.Hunter), args.Error(1)
}

func (m *hunterRepoMock) GetByName(ctx context.Context, name string) (hunter.Hunter, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(hunter.Hunter), args.Bool(1), args.Error(2)
}

func (m *hunterRepoMock) Create(ctx context.Context, item hunter.Hunter) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *hunterRepoMock) AddPoints(ctx context.Context, name string, delta int64) error {
	return m.Called(ctx, name, delta).Error(0)
}

func (m *hunterRepoMock) UpdateBadge(ctx context.Context, name string, badge string) error {
	return m.Called(ctx, name, badge).Error(0)
}

func TestLeaderboardService_RanksBothBoards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eliteRepo := &eliteRepoMock{}
	hunterRepo := &hunterRepoMock{}
	service := NewLeaderboardService(eliteRepo, hunterRepo)

	eliteRepo.
		On("List", mock.Anything).
		Return([]elite.Elite{
			{Name: "MontalesGOC", PointsEarned: 25},
			{Name: "VIP862924621", PointsEarned: 31},
		}, nil).
		Once()
	hunterRepo.
		On("List", mock.Anything).
		Return([]hunter.Hunter{
			{Name: "Rio", PointsEarned: 4},
			{Name: "Sam", PointsEarned: 4},
			{Name: "Kai", PointsEarned: 9, Badge: "Elite Killer"},
		}, nil).
		Once()

	board, err := service.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}

	if len(board.Elites) != 2 || board.Elites[0].Name != "VIP862924621" || board.Elites[0].Rank != 1 {
		t.Fatalf("unexpected elite board: %+v", board.Elites)
	}
	if len(board.Hunters) != 3 {
		t.Fatalf("unexpected hunter board size: %d", len(board.Hunters))
	}
	if board.Hunters[0].Name != "Kai" || board.Hunters[0].Badge != "Elite Killer" {
		t.Fatalf("unexpected hunter leader: %+v", board.Hunters[0])
	}
	// Equal points break ties by name.
	if board.Hunters[1].Name != "Rio" || board.Hunters[2].Name != "Sam" {
		t.Fatalf("unexpected tie ordering: %+v", board.Hunters)
	}
	if board.Hunters[2].Rank != 3 {
		t.Fatalf("unexpected rank: %+v", board.Hunters[2])
	}

	eliteRepo.AssertExpectations(t)
	hunterRepo.AssertExpectations(t)
}

func TestLeaderboardService_TruncatesToTopTwenty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eliteRepo := &eliteRepoMock{}
	hunterRepo := &hunterRepoMock{}
	service := NewLeaderboardService(eliteRepo, hunterRepo)

	hunters := make([]hunter.Hunter, 0, 25)
	for i := 0; i < 25; i++ {
		hunters = append(hunters, hunter.Hunter{
			Name:         fmt.Sprintf("hunter-%02d", i),
			PointsEarned: int64(100 - i),
		})
	}

	eliteRepo.On("List", mock.Anything).Return([]elite.Elite{}, nil).Once()
	hunterRepo.On("List", mock.Anything).Return(hunters, nil).Once()

	board, err := service.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board.Hunters) != 20 {
		t.Fatalf("hunter board size = %d, want 20", len(board.Hunters))
	}
	if board.Hunters[19].Name != "hunter-19" || board.Hunters[19].Rank != 20 {
		t.Fatalf("unexpected last entry: %+v", board.Hunters[19])
	}
}

func TestLeaderboardService_ListFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	eliteRepo := &eliteRepoMock{}
	hunterRepo := &hunterRepoMock{}
	service := NewLeaderboardService(eliteRepo, hunterRepo)

	eliteRepo.
		On("List", mock.Anything).
		Return([]elite.Elite(nil), errors.New("connection refused")).
		Once()

	_, err := service.Leaderboard(ctx)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
