package inmemdb

import (
	"github.com/AnnonDomini/Exam-Bombers-V1/core/user"
)

type userRepository struct {
	db  *userTable
	seq *sequence
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user, seq: db.seq}
}

// CreateUser stores usr as is; username uniqueness is checked by the caller.
func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = repo.seq.next()
	usr.PasswordHash = append([]byte(nil), usr.PasswordHash...)
	row := usr
	repo.db.rows = append(repo.db.rows, &row)
	repo.db.index[usr.ID] = &row
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := make([]user.User, 0, len(repo.db.rows))
	for _, u := range repo.db.rows {
		users = append(users, *u)
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.index[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.db.rows {
		if usr.Username == username {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUserRole(id int, role string) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.index[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.Role = role
	return *usr, nil
}
