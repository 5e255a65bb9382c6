// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/miniforum/internal/store"
	"github.com/MKhiriev/miniforum/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn         func(ctx context.Context, user models.User) (models.User, error)
	findUserByNameFn     func(ctx context.Context, username string) (models.User, error)
	findUserByIDFn       func(ctx context.Context, userID int64) (models.User, error)
	updatePasswordHashFn func(ctx context.Context, userID int64, hash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByName(ctx context.Context, username string) (models.User, error) {
	if m.findUserByNameFn != nil {
		return m.findUserByNameFn(ctx, username)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, userID, hash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.PostRepository
// ─────────────────────────────────────────────

type mockPostRepository struct {
	createPostFn   func(ctx context.Context, post models.Post) (models.Post, error)
	findPostByIDFn func(ctx context.Context, postID int64) (models.Post, error)
	updatePostFn   func(ctx context.Context, post models.Post) (models.Post, error)
	deletePostFn   func(ctx context.Context, postID, userID int64) error
	listPostsFn    func(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
}

func (m *mockPostRepository) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if m.createPostFn != nil {
		return m.createPostFn(ctx, post)
	}
	return post, nil
}

func (m *mockPostRepository) FindPostByID(ctx context.Context, postID int64) (models.Post, error) {
	if m.findPostByIDFn != nil {
		return m.findPostByIDFn(ctx, postID)
	}
	return models.Post{}, store.ErrPostNotFound
}

func (m *mockPostRepository) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if m.updatePostFn != nil {
		return m.updatePostFn(ctx, post)
	}
	return post, nil
}

func (m *mockPostRepository) DeletePost(ctx context.Context, postID, userID int64) error {
	if m.deletePostFn != nil {
		return m.deletePostFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	if m.listPostsFn != nil {
		return m.listPostsFn(ctx, filter)
	}
	return []models.Post{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.SessionStorage
// ─────────────────────────────────────────────

type mockSessionStorage struct {
	createFn             func(ctx context.Context, session models.Session) error
	getFn                func(ctx context.Context, key string) (models.Session, error)
	deleteFn             func(ctx context.Context, key string) error
	deleteUserSessionsFn func(ctx context.Context, userID int64) error
	deleteExpiredFn      func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockSessionStorage) Create(ctx context.Context, session models.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStorage) Get(ctx context.Context, key string) (models.Session, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return models.Session{}, store.ErrSessionNotFound
}

func (m *mockSessionStorage) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockSessionStorage) DeleteUserSessions(ctx context.Context, userID int64) error {
	if m.deleteUserSessionsFn != nil {
		return m.deleteUserSessionsFn(ctx, userID)
	}
	return nil
}

func (m *mockSessionStorage) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

func (m *mockSessionStorage) Close() error { return nil }

// ─────────────────────────────────────────────
// Fake: crypto.PasswordHasher
// ─────────────────────────────────────────────

// fakeHasher is a transparent hasher: the hash of p is "hashed:"+p.
type fakeHasher struct {
	mu          sync.Mutex
	dummyCalls  int
	verifyCalls int
	random      string
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", errors.New("password too long")
	}
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) Verify(plaintext, hash string) (bool, error) {
	h.mu.Lock()
	h.verifyCalls++
	h.mu.Unlock()

	if !strings.HasPrefix(hash, "hashed:") {
		return false, errors.New("malformed hash")
	}
	return hash == "hashed:"+plaintext, nil
}

func (h *fakeHasher) VerifyDummy(string) {
	h.mu.Lock()
	h.dummyCalls++
	h.mu.Unlock()
}

func (h *fakeHasher) GenerateRandomPassword() (string, error) {
	if h.random == "" {
		return "Rand0mPassw0rd", nil
	}
	return h.random, nil
}

// ─────────────────────────────────────────────
// In-memory repositories
// ─────────────────────────────────────────────

type memUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{users: make(map[int64]models.User)}
}

func (r *memUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return models.User{}, store.ErrLoginAlreadyExists
		}
	}
	r.nextID++
	user.UserID = r.nextID
	user.CreatedAt = time.Now()
	r.users[user.UserID] = user
	return user, nil
}

func (r *memUserRepository) FindUserByName(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (r *memUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return models.User{}, store.ErrNoUserWasFound
	}
	return u, nil
}

func (r *memUserRepository) UpdatePasswordHash(_ context.Context, userID int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return store.ErrNoUserWasFound
	}
	u.PasswordHash = hash
	r.users[userID] = u
	return nil
}

func (r *memUserRepository) delete(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
}

type memPostRepository struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]models.Post
}

func newMemPostRepository() *memPostRepository {
	return &memPostRepository{posts: make(map[int64]models.Post)}
}

func (r *memPostRepository) CreatePost(_ context.Context, post models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	post.PostID = r.nextID
	post.CreatedOn = time.Now()
	r.posts[post.PostID] = post
	return post, nil
}

func (r *memPostRepository) FindPostByID(_ context.Context, postID int64) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[postID]
	if !ok {
		return models.Post{}, store.ErrPostNotFound
	}
	return p, nil
}

func (r *memPostRepository) UpdatePost(_ context.Context, post models.Post) (models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.PostID]
	if !ok || stored.UserID != post.UserID {
		return models.Post{}, store.ErrPostNotFound
	}
	stored.Text = post.Text
	stored.CreatedOn = time.Now()
	r.posts[post.PostID] = stored
	return stored, nil
}

func (r *memPostRepository) DeletePost(_ context.Context, postID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[postID]
	if !ok || stored.UserID != userID {
		return store.ErrPostNotFound
	}
	delete(r.posts, postID)
	return nil
}

func (r *memPostRepository) ListPosts(_ context.Context, filter models.PostFilter) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if filter.AuthorID != 0 && p.UserID != filter.AuthorID {
			continue
		}
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].PostID > posts[j].PostID })
	if filter.Limit > 0 && uint64(len(posts)) > filter.Limit {
		posts = posts[:filter.Limit]
	}
	return posts, nil
}
