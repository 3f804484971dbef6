package db

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/suite"

	"github.com/udisondev/rpgcore/internal/model"
)

type RedisAttributeRepositoryTestSuite struct {
	suite.Suite
	mock redismock.ClientMock
	repo *RedisAttributeRepository
	id   model.EntityID
	key  string
}

func (s *RedisAttributeRepositoryTestSuite) SetupTest() {
	client, mock := redismock.NewClientMock()
	s.mock = mock
	s.repo = NewRedisAttributeRepository(client, "rpg:attrs:")
	s.id = model.NewEntityID()
	s.key = "rpg:attrs:" + s.id.String()
}

func (s *RedisAttributeRepositoryTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisAttributeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisAttributeRepositoryTestSuite))
}

func (s *RedisAttributeRepositoryTestSuite) TestLoad() {
	ctx := context.Background()
	s.mock.ExpectHGetAll(s.key).SetVal(map[string]string{
		"rpg.armor":      "6",
		"rpg.overshield": "2.5",
	})

	attrs, err := s.repo.Load(ctx, s.id)
	s.Require().NoError(err)
	s.Equal(map[string]float64{"rpg.armor": 6, "rpg.overshield": 2.5}, attrs)
}

func (s *RedisAttributeRepositoryTestSuite) TestLoad_Missing() {
	s.mock.ExpectHGetAll(s.key).SetVal(map[string]string{})

	attrs, err := s.repo.Load(context.Background(), s.id)
	s.Require().NoError(err)
	s.Empty(attrs)
}

func (s *RedisAttributeRepositoryTestSuite) TestLoad_BadValue() {
	s.mock.ExpectHGetAll(s.key).SetVal(map[string]string{"rpg.armor": "lots"})

	_, err := s.repo.Load(context.Background(), s.id)
	s.ErrorContains(err, `attribute "rpg.armor"`)
}

func (s *RedisAttributeRepositoryTestSuite) TestLoad_Error() {
	s.mock.ExpectHGetAll(s.key).SetErr(errors.New("connection refused"))

	_, err := s.repo.Load(context.Background(), s.id)
	s.ErrorContains(err, "connection refused")
}

func (s *RedisAttributeRepositoryTestSuite) TestSave() {
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel(s.key).SetVal(1)
	s.mock.ExpectHSet(s.key, "rpg.armor", "6", "rpg.overshield", "2.5").SetVal(2)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Save(context.Background(), s.id, map[string]float64{
		"rpg.overshield": 2.5,
		"rpg.armor":      6,
	})
	s.NoError(err)
}

func (s *RedisAttributeRepositoryTestSuite) TestSave_EmptyOnlyDeletes() {
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel(s.key).SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Save(context.Background(), s.id, nil))
}

func (s *RedisAttributeRepositoryTestSuite) TestDelete() {
	s.mock.ExpectDel(s.key).SetVal(1)
	s.NoError(s.repo.Delete(context.Background(), s.id))

	s.mock.ExpectDel(s.key).SetErr(errors.New("readonly replica"))
	s.ErrorContains(s.repo.Delete(context.Background(), s.id), "readonly replica")
}
