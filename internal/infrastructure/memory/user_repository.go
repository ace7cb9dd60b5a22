package memory

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	v view
}

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{v: view{store: store}}
}

// Create persiste el usuario; el username es único.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, u := range st.users {
			if u.Username == user.Username {
				return domain.ErrDuplicate
			}
		}
		st.nextUser++
		user.ID = st.nextUser
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByUsername devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
