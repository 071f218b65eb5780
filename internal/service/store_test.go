package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/userauth/userauth-go/internal/model"
	"github.com/userauth/userauth-go/internal/repository"
)

// fakeStore is an in-memory UserStore. Setting err makes every call fail.
type fakeStore struct {
	mu    sync.Mutex
	users []model.User
	next  int
	err   error
}

func (f *fakeStore) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.next++
	user.ID = fmt.Sprintf("id-%d", f.next)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) Update(_ context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Name = upd.Name
			f.users[i].PasswordHash = upd.PasswordHash
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}
