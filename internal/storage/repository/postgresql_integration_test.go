package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bsanthoshbsr/elearning-platform/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	tests := []struct {
		name    string
		user    models.User
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful registration",
			user: models.User{
				Username:     "testuser",
				Name:         "Test User",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleStudent,
			},
			setup: func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "duplicate username",
			user: models.User{
				Username:     "testuser",
				Name:         "Another User",
				Email:        "another@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleStudent,
			},
			wantErr: ErrUsernameTaken,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
			},
		},
		{
			name: "duplicate email within the same role",
			user: models.User{
				Username:     "seconduser",
				Name:         "Second User",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleStudent,
			},
			wantErr: ErrEmailTaken,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
			},
		},
		{
			name: "same email under a different role is allowed",
			user: models.User{
				Username:     "adminuser",
				Name:         "Admin User",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				Role:         models.RoleAdmin,
			},
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			created, err := storage.RegisterUser(context.Background(), tt.user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				require.NotNil(t, created)
				assert.Equal(t, tt.user.Username, created.Username)
				assert.False(t, created.CreatedAt.IsZero())

				verification := NewTestVerification(storage)
				verification.VerifyUserExists(t, tt.user.Username)
			}
		})
	}
}

func TestStorage_GetUserByEmailAndRole(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		role     string
		wantUser string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "email is resolved within its role",
			email:    "shared@example.com",
			role:     models.RoleAdmin,
			wantUser: "adminuser",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "studentuser", "Student", "shared@example.com", "hash1", models.RoleStudent)
				factory.CreateUser(t, "adminuser", "Admin", "shared@example.com", "hash2", models.RoleAdmin)
			},
		},
		{
			name:    "unknown email",
			email:   "nobody@example.com",
			role:    models.RoleStudent,
			wantErr: ErrUserNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name:    "known email but wrong role",
			email:   "test@example.com",
			role:    models.RoleAdmin,
			wantErr: ErrUserNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.GetUserByEmailAndRole(context.Background(), tt.email, tt.role)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.wantUser, got.Username)
			}
		})
	}
}

func TestStorage_UpdatePasswordHash(t *testing.T) {
	tests := []struct {
		name     string
		username string
		newHash  string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:     "successful password update",
			username: "testuser",
			newHash:  "newhashedpassword",
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "oldhash", models.RoleStudent)
			},
		},
		{
			name:     "unknown user",
			username: "ghost",
			newHash:  "newhashedpassword",
			wantErr:  ErrUserNotFound,
			setup:    func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			err := storage.UpdatePasswordHash(context.Background(), tt.username, tt.newHash)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)

				verification := NewTestVerification(storage)
				verification.VerifyPasswordHash(t, tt.username, tt.newHash)
			}
		})
	}
}

func TestStorage_DeleteUser(t *testing.T) {
	t.Run("delete removes the user and its enrollments", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
		courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
		factory.CreateEnrollment(t, "testuser", courseID)

		err := storage.DeleteUser(context.Background(), "testuser")
		require.NoError(t, err)

		verification := NewTestVerification(storage)
		verification.VerifyUserDeleted(t, "testuser")
		verification.VerifyEnrollmentCount(t, "testuser", courseID, 0)
	})

	t.Run("unknown user", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		err := storage.DeleteUser(context.Background(), "ghost")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStorage_GetCourse(t *testing.T) {
	t.Run("existing course", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)

		got, err := storage.GetCourse(context.Background(), courseID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, courseID, got.ID)
		assert.Equal(t, "Go for Backend", got.Title)
	})

	t.Run("unknown course", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		got, err := storage.GetCourse(context.Background(), 9999)
		require.ErrorIs(t, err, ErrCourseNotFound)
		assert.Nil(t, got)
	})
}

func TestStorage_CreateEnrollment(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
		setup    func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:     "successful enrollment",
			username: "testuser",
			setup: func(t *testing.T, factory *TestDataFactory) int {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
				return factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
			},
		},
		{
			name:     "duplicate enrollment",
			username: "testuser",
			wantErr:  ErrAlreadyEnrolled,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
				courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
				factory.CreateEnrollment(t, "testuser", courseID)
				return courseID
			},
		},
		{
			name:     "unknown course",
			username: "testuser",
			wantErr:  ErrCourseNotFound,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
				return 9999
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			courseID := tt.setup(t, factory)

			got, err := storage.CreateEnrollment(context.Background(), tt.username, courseID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tt.username, got.Username)
				assert.Equal(t, courseID, got.CourseID)
				assert.False(t, got.EnrollmentDate.IsZero())

				verification := NewTestVerification(storage)
				verification.VerifyEnrollmentCount(t, tt.username, courseID, 1)
			}
		})
	}
}

// Гонка одновременных записей: при N параллельных попытках одной пары
// (пользователь, курс) в базе должна оказаться ровно одна строка, все
// проигравшие попытки получают ErrAlreadyEnrolled.
func TestStorage_CreateEnrollment_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
	courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)

	const attempts = 10

	var wg sync.WaitGroup
	errCh := make(chan error, attempts)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := storage.CreateEnrollment(context.Background(), "testuser", courseID)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var succeeded, conflicted int
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrAlreadyEnrolled)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicted)

	verification := NewTestVerification(storage)
	verification.VerifyEnrollmentCount(t, "testuser", courseID, 1)
}

func TestStorage_ExistsEnrollment(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
	courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)

	exists, err := storage.ExistsEnrollment(context.Background(), "testuser", courseID)
	require.NoError(t, err)
	assert.False(t, exists)

	factory.CreateEnrollment(t, "testuser", courseID)

	exists, err = storage.ExistsEnrollment(context.Background(), "testuser", courseID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStorage_ListEnrollmentsByUsername(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		limit     int
		offset    int
		wantCount int
		setup     func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name:      "list enrollments with pagination",
			username:  "testuser",
			limit:     10,
			offset:    0,
			wantCount: 2,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
				first := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
				second := factory.CreateCourse(t, "SQL Basics", "databases", "beginner", 99.0)
				factory.CreateEnrollment(t, "testuser", first)
				factory.CreateEnrollment(t, "testuser", second)
			},
		},
		{
			name:      "offset past the end",
			username:  "testuser",
			limit:     10,
			offset:    5,
			wantCount: 0,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, "testuser", "Test User", "test@example.com", "hashedpassword", models.RoleStudent)
				courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
				factory.CreateEnrollment(t, "testuser", courseID)
			},
		},
		{
			name:      "unknown user has no enrollments",
			username:  "nonexistent",
			limit:     10,
			offset:    0,
			wantCount: 0,
			setup:     func(_ *testing.T, _ *TestDataFactory) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			got, err := storage.ListEnrollmentsByUsername(context.Background(), tt.username, tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ListEnrollmentsByCourse(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "user1", "User One", "user1@example.com", "hash1", models.RoleStudent)
	factory.CreateUser(t, "user2", "User Two", "user2@example.com", "hash2", models.RoleStudent)
	courseID := factory.CreateCourse(t, "Go for Backend", "programming", "intermediate", 199.0)
	otherCourseID := factory.CreateCourse(t, "SQL Basics", "databases", "beginner", 99.0)
	factory.CreateEnrollment(t, "user1", courseID)
	factory.CreateEnrollment(t, "user2", courseID)
	factory.CreateEnrollment(t, "user1", otherCourseID)

	got, err := storage.ListEnrollmentsByCourse(context.Background(), courseID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	for _, e := range got {
		assert.Equal(t, courseID, e.CourseID)
	}
}
