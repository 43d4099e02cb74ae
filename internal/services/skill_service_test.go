package services

import (
	"context"
	"strings"
	"testing"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SkillServiceTestSuite struct {
	suite.Suite
	service       SkillService
	mockSkillRepo *MockSkillRepository
	mockUserRepo  *MockUserRepository
	identity      *common.Identity
	user          *models.User
	ctx           context.Context
}

func (suite *SkillServiceTestSuite) SetupTest() {
	suite.mockSkillRepo = new(MockSkillRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = NewSkillService(suite.mockSkillRepo, suite.mockUserRepo)
	suite.identity = &common.Identity{Subject: "auth0|seller"}
	suite.user = &models.User{ID: uuid.New(), Subject: "auth0|seller", Username: "seller"}
	suite.ctx = context.Background()
}

func (suite *SkillServiceTestSuite) TearDownTest() {
	suite.mockSkillRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestSkillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SkillServiceTestSuite))
}

func (suite *SkillServiceTestSuite) TestListByUsername_Anonymous() {
	skills, err := suite.service.ListByUsername(suite.ctx, nil, "seller")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), skills)
	assert.Empty(suite.T(), skills)
}

func (suite *SkillServiceTestSuite) TestListByUsername_UnknownUser() {
	suite.mockUserRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repositories.ErrNotFound)

	skills, err := suite.service.ListByUsername(suite.ctx, suite.identity, "ghost")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), skills)
}

func (suite *SkillServiceTestSuite) TestListByUsername_Success() {
	expected := []*models.Skill{{ID: uuid.New(), UserID: suite.user.ID, Name: "Go"}}
	suite.mockUserRepo.On("GetByUsername", mock.Anything, "seller").Return(suite.user, nil)
	suite.mockSkillRepo.On("ListByUserID", mock.Anything, suite.user.ID).Return(expected, nil)

	skills, err := suite.service.ListByUsername(suite.ctx, suite.identity, "seller")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expected, skills)
}

func (suite *SkillServiceTestSuite) TestAdd_Success() {
	suite.mockUserRepo.On("GetBySubject", mock.Anything, "auth0|seller").Return(suite.user, nil)
	suite.mockSkillRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *models.Skill) bool {
		return s.Name == "Copywriting" && s.UserID == suite.user.ID
	})).Return(nil)

	skill, err := suite.service.Add(suite.ctx, suite.identity, "  Copywriting ")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Copywriting", skill.Name)
}

func (suite *SkillServiceTestSuite) TestAdd_Blank() {
	skill, err := suite.service.Add(suite.ctx, suite.identity, "   ")

	var validationErr *ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Nil(suite.T(), skill)
}

func (suite *SkillServiceTestSuite) TestAdd_TooLong() {
	skill, err := suite.service.Add(suite.ctx, suite.identity, strings.Repeat("x", 51))

	var validationErr *ValidationError
	assert.ErrorAs(suite.T(), err, &validationErr)
	assert.Nil(suite.T(), skill)
}

func (suite *SkillServiceTestSuite) TestAdd_Duplicate() {
	suite.mockUserRepo.On("GetBySubject", mock.Anything, "auth0|seller").Return(suite.user, nil)
	suite.mockSkillRepo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)

	skill, err := suite.service.Add(suite.ctx, suite.identity, "Go")

	assert.ErrorIs(suite.T(), err, ErrDuplicateSkill)
	assert.Nil(suite.T(), skill)
}

func (suite *SkillServiceTestSuite) TestAdd_UserNotStored() {
	suite.mockUserRepo.On("GetBySubject", mock.Anything, "auth0|seller").Return(nil, repositories.ErrNotFound)

	skill, err := suite.service.Add(suite.ctx, suite.identity, "Go")

	assert.ErrorIs(suite.T(), err, ErrUserNotStored)
	assert.Nil(suite.T(), skill)
}

func (suite *SkillServiceTestSuite) TestRemove_NotFound() {
	skillID := uuid.New()
	suite.mockUserRepo.On("GetBySubject", mock.Anything, "auth0|seller").Return(suite.user, nil)
	suite.mockSkillRepo.On("Delete", mock.Anything, suite.user.ID, skillID).Return(repositories.ErrNotFound)

	err := suite.service.Remove(suite.ctx, suite.identity, skillID)

	assert.ErrorIs(suite.T(), err, ErrSkillNotFound)
}

func (suite *SkillServiceTestSuite) TestRemove_Success() {
	skillID := uuid.New()
	suite.mockUserRepo.On("GetBySubject", mock.Anything, "auth0|seller").Return(suite.user, nil)
	suite.mockSkillRepo.On("Delete", mock.Anything, suite.user.ID, skillID).Return(nil)

	assert.NoError(suite.T(), suite.service.Remove(suite.ctx, suite.identity, skillID))
}
