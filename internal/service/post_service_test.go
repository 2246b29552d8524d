package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
)

type postServiceFixture struct {
	users    *MockUserRepository
	posts    *MockPostRepository
	profiles *MockUserService
	service  PostService
}

func newPostServiceFixture() *postServiceFixture {
	f := &postServiceFixture{
		users:    new(MockUserRepository),
		posts:    new(MockPostRepository),
		profiles: new(MockUserService),
	}
	f.service = NewPostService(f.users, f.posts, f.profiles)
	return f
}

func (f *postServiceFixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.posts.AssertExpectations(t)
	f.profiles.AssertExpectations(t)
}

func TestPostService_Create(t *testing.T) {
	f := newPostServiceFixture()
	owner := &model.User{ID: uuid.New(), Email: "a@x.com"}

	f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(owner, nil)
	f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.UserID == owner.ID && p.Title == "T" && p.Img == "http://img"
	})).Return(nil)
	f.profiles.On("Invalidate", mock.Anything, "a@x.com").Return()

	post, err := f.service.Create(context.Background(), "a@x.com", PostInput{Title: "T", Img: "http://img"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.Equal(t, owner.ID, post.UserID)
	f.assertExpectations(t)
}

func TestPostService_Create_UserMissing(t *testing.T) {
	f := newPostServiceFixture()
	f.users.On("FindByEmail", mock.Anything, "gone@x.com").Return(nil, gorm.ErrRecordNotFound)

	post, err := f.service.Create(context.Background(), "gone@x.com", PostInput{Title: "T"})

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, post)
	f.posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.profiles.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestPostService_Create_StorageError(t *testing.T) {
	f := newPostServiceFixture()
	dbErr := errors.New("disk full")
	f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(&model.User{ID: uuid.New()}, nil)
	f.posts.On("Create", mock.Anything, mock.Anything).Return(dbErr)

	_, err := f.service.Create(context.Background(), "a@x.com", PostInput{Title: "T"})

	assert.ErrorIs(t, err, dbErr)
	f.profiles.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestPostService_List(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Email: "a@x.com"}
	posts := []model.Post{{ID: uuid.New(), Title: "T", UserID: owner.ID}}

	tests := []struct {
		name          string
		setupMock     func(*postServiceFixture)
		expected      []model.Post
		expectedError error
	}{
		{
			name: "user with posts",
			setupMock: func(f *postServiceFixture) {
				f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(owner, nil)
				f.posts.On("ListByOwner", mock.Anything, owner.ID).Return(posts, nil)
			},
			expected: posts,
		},
		{
			name: "user without posts",
			setupMock: func(f *postServiceFixture) {
				f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(owner, nil)
				f.posts.On("ListByOwner", mock.Anything, owner.ID).Return(nil, nil)
			},
			expected: []model.Post{},
		},
		{
			name: "user missing",
			setupMock: func(f *postServiceFixture) {
				f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostServiceFixture()
			tt.setupMock(f)

			got, err := f.service.List(context.Background(), "a@x.com")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
			f.profiles.AssertNotCalled(t, "Profile", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestPostService_List_StorageError(t *testing.T) {
	f := newPostServiceFixture()
	owner := &model.User{ID: uuid.New()}
	dbErr := errors.New("too many connections")
	f.users.On("FindByEmail", mock.Anything, "a@x.com").Return(owner, nil)
	f.posts.On("ListByOwner", mock.Anything, owner.ID).Return(nil, dbErr)

	_, err := f.service.List(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, dbErr)
}

// Mutations go through a real profile cache: after each acknowledged write
// the next profile read must come from storage.
func TestPostService_MutationsRefreshCachedProfile(t *testing.T) {
	client, _ := newRedisCache(t)
	ctx := context.Background()
	owner := &model.User{ID: uuid.New(), Email: "a@x.com", Posts: []model.Post{}}
	postID := uuid.New()
	title := "T2"

	users := new(MockUserRepository)
	posts := new(MockPostRepository)
	profiles := NewUserService(users, client, time.Minute)
	service := NewPostService(users, posts, profiles)

	users.On("FindByEmail", mock.Anything, "a@x.com").Return(owner, nil)
	users.On("FindByEmailWithPosts", mock.Anything, "a@x.com").Return(owner, nil)
	posts.On("Create", mock.Anything, mock.Anything).Return(nil)
	posts.On("UpdateOwned", mock.Anything, postID, owner.ID, mock.Anything).Return(&model.Post{ID: postID, UserID: owner.ID, Title: title}, nil)
	posts.On("DeleteOwned", mock.Anything, postID, owner.ID).Return(nil)

	mutations := []func() error{
		func() error {
			_, err := service.Create(ctx, "a@x.com", PostInput{Title: "T"})
			return err
		},
		func() error {
			_, err := service.Update(ctx, "a@x.com", owner.ID.String(), postID.String(), model.PostPatch{Title: &title})
			return err
		},
		func() error {
			return service.Delete(ctx, "a@x.com", owner.ID.String(), postID.String())
		},
	}

	_, err := profiles.Profile(ctx, "a@x.com")
	require.NoError(t, err)
	_, err = profiles.Profile(ctx, "a@x.com")
	require.NoError(t, err)
	users.AssertNumberOfCalls(t, "FindByEmailWithPosts", 1)

	for i, mutate := range mutations {
		require.NoError(t, mutate())
		_, err := profiles.Profile(ctx, "a@x.com")
		require.NoError(t, err)
		users.AssertNumberOfCalls(t, "FindByEmailWithPosts", i+2)
	}
}

func TestPostService_Update(t *testing.T) {
	postID, ownerID, otherID := uuid.New(), uuid.New(), uuid.New()
	title := "T2"
	patch := model.PostPatch{Title: &title}

	tests := []struct {
		name          string
		userID        string
		postID        string
		setupMock     func(*postServiceFixture)
		expectedError error
	}{
		{
			name:   "owner updates",
			userID: ownerID.String(),
			postID: postID.String(),
			setupMock: func(f *postServiceFixture) {
				f.posts.On("UpdateOwned", mock.Anything, postID, ownerID, map[string]interface{}{"title": "T2"}).
					Return(&model.Post{ID: postID, UserID: ownerID, Title: "T2"}, nil)
				f.profiles.On("Invalidate", mock.Anything, "a@x.com").Return()
			},
		},
		{
			name:   "different user gets not found",
			userID: otherID.String(),
			postID: postID.String(),
			setupMock: func(f *postServiceFixture) {
				f.posts.On("UpdateOwned", mock.Anything, postID, otherID, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:          "malformed post id",
			userID:        ownerID.String(),
			postID:        "not-a-uuid",
			setupMock:     func(f *postServiceFixture) {},
			expectedError: apperrors.ErrPostNotFound,
		},
		{
			name:          "malformed user id claim",
			userID:        "legacy-id",
			postID:        postID.String(),
			setupMock:     func(f *postServiceFixture) {},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostServiceFixture()
			tt.setupMock(f)

			post, err := f.service.Update(context.Background(), "a@x.com", tt.userID, tt.postID, patch)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
				f.profiles.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "T2", post.Title)
			}
			f.assertExpectations(t)
		})
	}
}

func TestPostService_Update_StorageError(t *testing.T) {
	f := newPostServiceFixture()
	dbErr := errors.New("deadlock")
	f.posts.On("UpdateOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr)

	_, err := f.service.Update(context.Background(), "a@x.com", uuid.NewString(), uuid.NewString(), model.PostPatch{})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_Delete(t *testing.T) {
	postID, ownerID, otherID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name          string
		userID        string
		setupMock     func(*postServiceFixture)
		expectedError error
	}{
		{
			name:   "owner deletes",
			userID: ownerID.String(),
			setupMock: func(f *postServiceFixture) {
				f.posts.On("DeleteOwned", mock.Anything, postID, ownerID).Return(nil)
				f.profiles.On("Invalidate", mock.Anything, "a@x.com").Return()
			},
		},
		{
			name:   "different user gets not found",
			userID: otherID.String(),
			setupMock: func(f *postServiceFixture) {
				f.posts.On("DeleteOwned", mock.Anything, postID, otherID).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostServiceFixture()
			tt.setupMock(f)

			err := f.service.Delete(context.Background(), "a@x.com", tt.userID, postID.String())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				f.profiles.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			f.assertExpectations(t)
		})
	}
}
